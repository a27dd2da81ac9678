// Package decode turns a raw 32-bit instruction word into the tagged
// isa.Instruction the executors consume. It is a demonstration decoder for
// the CLI, not a full RISC-V front end: it covers
// exactly the RV32I/RV64M(word-op)/RV32F opcodes the three executors
// implement. Bit-field extraction follows bassosimone-risc32's pkg/vm
// style of small, named shift-and-mask helpers over a single
// switch-on-opcode dispatcher.
package decode

import (
	"fmt"

	"github.com/riscv32core/riscv32core/pkg/isa"
)

// Base RISC-V opcode field (word[6:0]) values this decoder recognizes.
const (
	opLoad     = 0b0000011
	opLoadFP   = 0b0000111
	opMiscMem  = 0b0001111
	opOpImm    = 0b0010011
	opAuipc    = 0b0010111
	opStore    = 0b0100011
	opStoreFP  = 0b0100111
	opOp       = 0b0110011
	opLui      = 0b0110111
	opOp32     = 0b0111011
	opMadd     = 0b1000011
	opMsub     = 0b1000111
	opNmsub    = 0b1001011
	opNmadd    = 0b1001111
	opOpFP     = 0b1010011
	opBranch   = 0b1100011
	opJalr     = 0b1100111
	opJal      = 0b1101111
	opSystem   = 0b1110011
)

func rd(w uint32) uint32     { return (w >> 7) & 0x1F }
func funct3(w uint32) uint32 { return (w >> 12) & 0x7 }
func rs1(w uint32) uint32    { return (w >> 15) & 0x1F }
func rs2(w uint32) uint32    { return (w >> 20) & 0x1F }
func funct7(w uint32) uint32 { return (w >> 25) & 0x7F }
func opcode(w uint32) uint32 { return w & 0x7F }

func signExtend(v uint32, bits uint) int64 {
	shift := 32 - bits
	return int64(int32(v<<shift) >> shift)
}

func immI(w uint32) int64 {
	return signExtend(w>>20, 12)
}

func immS(w uint32) int64 {
	v := ((w >> 25) << 5) | ((w >> 7) & 0x1F)
	return signExtend(v, 12)
}

func immB(w uint32) int64 {
	v := (((w >> 31) & 0x1) << 12) |
		(((w >> 7) & 0x1) << 11) |
		(((w >> 25) & 0x3F) << 5) |
		(((w >> 8) & 0xF) << 1)
	return signExtend(v, 13)
}

func immU(w uint32) int64 {
	return int64(int32(w & 0xFFFFF000))
}

func immJ(w uint32) int64 {
	v := (((w >> 31) & 0x1) << 20) |
		(((w >> 12) & 0xFF) << 12) |
		(((w >> 20) & 0x1) << 11) |
		(((w >> 21) & 0x3FF) << 1)
	return signExtend(v, 21)
}

// Decode decodes one instruction word, returning which extension's opcode
// space it belongs to and the decoded instruction.
func Decode(w uint32) (isa.Extension, isa.Instruction, error) {
	op := opcode(w)
	base := isa.Instruction{
		Rs1: rs1(w), Rs2: rs2(w), Rd: rd(w),
		Funct3: funct3(w), Funct7: funct7(w),
	}
	switch op {
	case opOp:
		return decodeOp(w, base)
	case opOp32:
		return decodeOp32(w, base)
	case opOpImm:
		return decodeOpImm(w, base)
	case opLoad:
		return decodeLoad(w, base)
	case opStore:
		return decodeStore(w, base)
	case opBranch:
		return decodeBranch(w, base)
	case opLui:
		base.Shape, base.Imm, base.Opcode = isa.ShapeU, immU(w), uint32(isa.Lui)
		return isa.ExtRV32I, base, nil
	case opAuipc:
		base.Shape, base.Imm, base.Opcode = isa.ShapeU, immU(w), uint32(isa.Auipc)
		return isa.ExtRV32I, base, nil
	case opJal:
		base.Shape, base.Imm, base.Opcode = isa.ShapeJ, immJ(w), uint32(isa.Jal)
		return isa.ExtRV32I, base, nil
	case opJalr:
		base.Shape, base.Imm, base.Opcode = isa.ShapeI, immI(w), uint32(isa.Jalr)
		return isa.ExtRV32I, base, nil
	case opMiscMem:
		base.Shape = isa.ShapeI
		if funct3(w) == 0b001 {
			base.Opcode = uint32(isa.FenceI)
		} else {
			base.Opcode = uint32(isa.Fence)
		}
		return isa.ExtRV32I, base, nil
	case opSystem:
		return decodeSystem(w, base)
	case opLoadFP:
		base.Shape, base.Imm, base.Opcode = isa.ShapeI, immI(w), uint32(isa.Flw)
		return isa.ExtRV32F, base, nil
	case opStoreFP:
		base.Shape, base.Imm, base.Opcode = isa.ShapeS, immS(w), uint32(isa.Fsw)
		return isa.ExtRV32F, base, nil
	case opMadd:
		base.Shape, base.Opcode = isa.ShapeR, uint32(isa.FmaddS)
		return isa.ExtRV32F, base, nil
	case opMsub:
		base.Shape, base.Opcode = isa.ShapeR, uint32(isa.FmsubS)
		return isa.ExtRV32F, base, nil
	case opNmsub:
		base.Shape, base.Opcode = isa.ShapeR, uint32(isa.FnmsubS)
		return isa.ExtRV32F, base, nil
	case opNmadd:
		base.Shape, base.Opcode = isa.ShapeR, uint32(isa.FnmaddS)
		return isa.ExtRV32F, base, nil
	case opOpFP:
		return decodeOpFP(w, base)
	default:
		return 0, isa.Instruction{}, fmt.Errorf("decode: unrecognized opcode %07b", op)
	}
}

func decodeOp(w uint32, base isa.Instruction) (isa.Extension, isa.Instruction, error) {
	base.Shape = isa.ShapeR
	f3, f7 := funct3(w), funct7(w)
	switch {
	case f7 == 0b0000000 && f3 == 0b000:
		base.Opcode = uint32(isa.Add)
	case f7 == 0b0100000 && f3 == 0b000:
		base.Opcode = uint32(isa.Sub)
	case f7 == 0b0000000 && f3 == 0b001:
		base.Opcode = uint32(isa.Sll)
	case f7 == 0b0000000 && f3 == 0b010:
		base.Opcode = uint32(isa.Slt)
	case f7 == 0b0000000 && f3 == 0b011:
		base.Opcode = uint32(isa.Sltu)
	case f7 == 0b0000000 && f3 == 0b100:
		base.Opcode = uint32(isa.Xor)
	case f7 == 0b0000000 && f3 == 0b101:
		base.Opcode = uint32(isa.Srl)
	case f7 == 0b0100000 && f3 == 0b101:
		base.Opcode = uint32(isa.Sra)
	case f7 == 0b0000000 && f3 == 0b110:
		base.Opcode = uint32(isa.Or)
	case f7 == 0b0000000 && f3 == 0b111:
		base.Opcode = uint32(isa.And)
	default:
		return 0, isa.Instruction{}, fmt.Errorf("decode: unrecognized OP funct3=%03b funct7=%07b", f3, f7)
	}
	return isa.ExtRV32I, base, nil
}

func decodeOp32(w uint32, base isa.Instruction) (isa.Extension, isa.Instruction, error) {
	base.Shape = isa.ShapeR
	if funct7(w) != 0b0000001 {
		return 0, isa.Instruction{}, fmt.Errorf("decode: unrecognized OP-32 funct7=%07b", funct7(w))
	}
	switch funct3(w) {
	case 0b000:
		base.Opcode = uint32(isa.Mulw)
	case 0b100:
		base.Opcode = uint32(isa.Divw)
	case 0b101:
		base.Opcode = uint32(isa.Divuw)
	case 0b110:
		base.Opcode = uint32(isa.Remw)
	case 0b111:
		base.Opcode = uint32(isa.Remuw)
	default:
		return 0, isa.Instruction{}, fmt.Errorf("decode: unrecognized OP-32 funct3=%03b", funct3(w))
	}
	return isa.ExtRV64M, base, nil
}

func decodeOpImm(w uint32, base isa.Instruction) (isa.Extension, isa.Instruction, error) {
	base.Shape = isa.ShapeI
	base.Imm = immI(w)
	switch funct3(w) {
	case 0b000:
		base.Opcode = uint32(isa.Addi)
	case 0b010:
		base.Opcode = uint32(isa.Slti)
	case 0b011:
		base.Opcode = uint32(isa.Sltiu)
	case 0b100:
		base.Opcode = uint32(isa.Xori)
	case 0b110:
		base.Opcode = uint32(isa.Ori)
	case 0b111:
		base.Opcode = uint32(isa.Andi)
	case 0b001:
		base.Opcode = uint32(isa.Slli)
		base.Imm = int64(rs2(w))
	case 0b101:
		base.Imm = int64(rs2(w))
		if funct7(w)&0b0100000 != 0 {
			base.Opcode = uint32(isa.Srai)
		} else {
			base.Opcode = uint32(isa.Srli)
		}
	default:
		return 0, isa.Instruction{}, fmt.Errorf("decode: unrecognized OP-IMM funct3=%03b", funct3(w))
	}
	return isa.ExtRV32I, base, nil
}

func decodeLoad(w uint32, base isa.Instruction) (isa.Extension, isa.Instruction, error) {
	base.Shape = isa.ShapeI
	base.Imm = immI(w)
	switch funct3(w) {
	case 0b000:
		base.Opcode = uint32(isa.Lb)
	case 0b001:
		base.Opcode = uint32(isa.Lh)
	case 0b010:
		base.Opcode = uint32(isa.Lw)
	case 0b100:
		base.Opcode = uint32(isa.Lbu)
	case 0b101:
		base.Opcode = uint32(isa.Lhu)
	default:
		return 0, isa.Instruction{}, fmt.Errorf("decode: unrecognized LOAD funct3=%03b", funct3(w))
	}
	return isa.ExtRV32I, base, nil
}

func decodeStore(w uint32, base isa.Instruction) (isa.Extension, isa.Instruction, error) {
	base.Shape = isa.ShapeS
	base.Imm = immS(w)
	switch funct3(w) {
	case 0b000:
		base.Opcode = uint32(isa.Sb)
	case 0b001:
		base.Opcode = uint32(isa.Sh)
	case 0b010:
		base.Opcode = uint32(isa.Sw)
	default:
		return 0, isa.Instruction{}, fmt.Errorf("decode: unrecognized STORE funct3=%03b", funct3(w))
	}
	return isa.ExtRV32I, base, nil
}

func decodeBranch(w uint32, base isa.Instruction) (isa.Extension, isa.Instruction, error) {
	base.Shape = isa.ShapeB
	base.Imm = immB(w)
	switch funct3(w) {
	case 0b000:
		base.Opcode = uint32(isa.Beq)
	case 0b001:
		base.Opcode = uint32(isa.Bne)
	case 0b100:
		base.Opcode = uint32(isa.Blt)
	case 0b101:
		base.Opcode = uint32(isa.Bge)
	case 0b110:
		base.Opcode = uint32(isa.Bltu)
	case 0b111:
		base.Opcode = uint32(isa.Bgeu)
	default:
		return 0, isa.Instruction{}, fmt.Errorf("decode: unrecognized BRANCH funct3=%03b", funct3(w))
	}
	return isa.ExtRV32I, base, nil
}

func decodeSystem(w uint32, base isa.Instruction) (isa.Extension, isa.Instruction, error) {
	base.Shape = isa.ShapeI
	switch funct3(w) {
	case 0b000:
		switch immI(w) {
		case 0:
			base.Opcode = uint32(isa.Ecall)
		case 1:
			base.Opcode = uint32(isa.Ebreak)
		default:
			return 0, isa.Instruction{}, fmt.Errorf("decode: unrecognized SYSTEM imm=%d", immI(w))
		}
	case 0b001:
		base.Opcode, base.Imm = uint32(isa.Csrrw), int64(uint32(w)>>20)
	case 0b010:
		base.Opcode, base.Imm = uint32(isa.Csrrs), int64(uint32(w)>>20)
	case 0b011:
		base.Opcode, base.Imm = uint32(isa.Csrrc), int64(uint32(w)>>20)
	case 0b101:
		base.Opcode, base.Imm = uint32(isa.Csrrwi), int64(uint32(w)>>20)
	case 0b110:
		base.Opcode, base.Imm = uint32(isa.Csrrsi), int64(uint32(w)>>20)
	case 0b111:
		base.Opcode, base.Imm = uint32(isa.Csrrci), int64(uint32(w)>>20)
	default:
		return 0, isa.Instruction{}, fmt.Errorf("decode: unrecognized SYSTEM funct3=%03b", funct3(w))
	}
	return isa.ExtRV32I, base, nil
}

func decodeOpFP(w uint32, base isa.Instruction) (isa.Extension, isa.Instruction, error) {
	base.Shape = isa.ShapeR
	f7 := funct7(w)
	switch f7 {
	case 0b0000000:
		base.Opcode = uint32(isa.FaddS)
	case 0b0000100:
		base.Opcode = uint32(isa.FsubS)
	case 0b0001000:
		base.Opcode = uint32(isa.FmulS)
	case 0b0001100:
		base.Opcode = uint32(isa.FdivS)
	case 0b0101100:
		base.Opcode = uint32(isa.FsqrtS)
	case 0b0010000:
		switch funct3(w) {
		case 0b000:
			base.Opcode = uint32(isa.FsgnjS)
		case 0b001:
			base.Opcode = uint32(isa.FsgnjnS)
		case 0b010:
			base.Opcode = uint32(isa.FsgnjxS)
		default:
			return 0, isa.Instruction{}, fmt.Errorf("decode: unrecognized FSGNJ funct3=%03b", funct3(w))
		}
	case 0b0010100:
		if funct3(w) == 0b000 {
			base.Opcode = uint32(isa.FminS)
		} else {
			base.Opcode = uint32(isa.FmaxS)
		}
	case 0b1100000:
		if rs2(w) == 0 {
			base.Opcode = uint32(isa.FcvtWS)
		} else {
			base.Opcode = uint32(isa.FcvtWuS)
		}
	case 0b1101000:
		if rs2(w) == 0 {
			base.Opcode = uint32(isa.FcvtSW)
		} else {
			base.Opcode = uint32(isa.FcvtSWu)
		}
	case 0b1110000:
		if funct3(w) == 0b001 {
			base.Opcode = uint32(isa.FclassS)
		} else {
			base.Opcode = uint32(isa.FmvXW)
		}
	case 0b1111000:
		base.Opcode = uint32(isa.FmvWX)
	case 0b1010000:
		switch funct3(w) {
		case 0b010:
			base.Opcode = uint32(isa.FeqS)
		case 0b001:
			base.Opcode = uint32(isa.FltS)
		case 0b000:
			base.Opcode = uint32(isa.FleS)
		default:
			return 0, isa.Instruction{}, fmt.Errorf("decode: unrecognized FCMP funct3=%03b", funct3(w))
		}
	default:
		return 0, isa.Instruction{}, fmt.Errorf("decode: unrecognized OP-FP funct7=%07b", f7)
	}
	return isa.ExtRV32F, base, nil
}
