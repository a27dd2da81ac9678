package decode

import (
	"testing"

	"github.com/riscv32core/riscv32core/pkg/isa"
)

// encodeR builds a raw R-type word with the given fields, for round-trip
// decode tests; funct7/funct3/opcode follow the standard RISC-V layout.
func encodeR(opcode, funct3, funct7, rd, rs1, rs2 uint32) uint32 {
	return (funct7&0x7F)<<25 | (rs2&0x1F)<<20 | (rs1&0x1F)<<15 | (funct3&0x7)<<12 | (rd&0x1F)<<7 | (opcode & 0x7F)
}

func encodeI(opcode, funct3, rd, rs1, imm uint32) uint32 {
	return (imm&0xFFF)<<20 | (rs1&0x1F)<<15 | (funct3&0x7)<<12 | (rd&0x1F)<<7 | (opcode & 0x7F)
}

func TestDecodeAdd(t *testing.T) {
	w := encodeR(0b0110011, 0b000, 0b0000000, 3, 1, 2)
	ext, ins, err := Decode(w)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if ext != isa.ExtRV32I {
		t.Errorf("extension = %s, want RV32I", ext)
	}
	if isa.Rv32iOp(ins.Opcode) != isa.Add {
		t.Errorf("opcode = %d, want Add", ins.Opcode)
	}
	if ins.Rd != 3 || ins.Rs1 != 1 || ins.Rs2 != 2 {
		t.Errorf("fields = rd=%d rs1=%d rs2=%d, want 3,1,2", ins.Rd, ins.Rs1, ins.Rs2)
	}
}

func TestDecodeAddiNegativeImmSignExtends(t *testing.T) {
	w := encodeI(0b0010011, 0b000, 1, 0, 0xFFF) // imm = -1
	_, ins, err := Decode(w)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if ins.Imm != -1 {
		t.Errorf("imm = %d, want -1", ins.Imm)
	}
}

func TestDecodeMulwIsRV64M(t *testing.T) {
	w := encodeR(0b0111011, 0b000, 0b0000001, 3, 1, 2)
	ext, ins, err := Decode(w)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if ext != isa.ExtRV64M {
		t.Errorf("extension = %s, want RV64M", ext)
	}
	if isa.Rv64mOp(ins.Opcode) != isa.Mulw {
		t.Errorf("opcode = %d, want Mulw", ins.Opcode)
	}
}

func TestDecodeFaddS(t *testing.T) {
	w := encodeR(0b1010011, 0b000, 0b0000000, 3, 1, 2)
	ext, ins, err := Decode(w)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if ext != isa.ExtRV32F {
		t.Errorf("extension = %s, want RV32F", ext)
	}
	if isa.Rv32fOp(ins.Opcode) != isa.FaddS {
		t.Errorf("opcode = %d, want FaddS", ins.Opcode)
	}
}

func TestDecodeJalImmediate(t *testing.T) {
	// JAL x1, +0x20: imm[20|10:1|11|19:12] with value 0x20 -> bits10:1 = 0x10.
	w := uint32(1<<7) | 0b1101111 // rd=1, opcode=JAL, imm bits all zero except what we set below
	w |= uint32(0x10) << 21       // imm[10:1] = 0x10 -> represents +0x20
	ext, ins, err := Decode(w)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if ext != isa.ExtRV32I {
		t.Errorf("extension = %s, want RV32I", ext)
	}
	if isa.Rv32iOp(ins.Opcode) != isa.Jal {
		t.Errorf("opcode = %d, want Jal", ins.Opcode)
	}
	if ins.Imm != 0x20 {
		t.Errorf("imm = 0x%X, want 0x20", ins.Imm)
	}
	if ins.Rd != 1 {
		t.Errorf("rd = %d, want 1", ins.Rd)
	}
}

func TestDecodeUnknownOpcodeErrors(t *testing.T) {
	if _, _, err := Decode(0x7F); err == nil {
		t.Error("fully-reserved opcode should fail to decode")
	}
}
