// Package rv32f implements the single-precision floating point extension,
// wiring pkg/softfloat's rounding-mode-parameterized kernel into the
// register-file/CSR/bus state the rest of the core shares.
package rv32f

import (
	"math"

	"github.com/riscv32core/riscv32core/pkg/bus"
	"github.com/riscv32core/riscv32core/pkg/csr"
	"github.com/riscv32core/riscv32core/pkg/fpregfile"
	"github.com/riscv32core/riscv32core/pkg/isa"
	"github.com/riscv32core/riscv32core/pkg/regfile"
	"github.com/riscv32core/riscv32core/pkg/softfloat"
	"github.com/riscv32core/riscv32core/pkg/trap"
)

// dynamicRM is the funct3 encoding meaning "use fcsr's rounding mode"
// rather than a literal mode.
const dynamicRM = 0b111

// Execute dispatches a decoded RV32F instruction against the shared
// register files, CSR file, and bus.
func Execute(ins isa.Instruction, x *regfile.File, f *fpregfile.File, c *csr.File, b *bus.Bus) trap.Cause {
	switch isa.Rv32fOp(ins.Opcode) {
	case isa.FmaddS, isa.FmsubS, isa.FnmsubS, isa.FnmaddS:
		return execFma(ins, f, c)
	case isa.FaddS, isa.FsubS, isa.FmulS, isa.FdivS, isa.FsqrtS:
		return execArith(ins, f, c)
	case isa.FsgnjS, isa.FsgnjnS, isa.FsgnjxS:
		return execSgnj(ins, f)
	case isa.FminS, isa.FmaxS:
		return execMinMax(ins, f, c)
	case isa.FcvtWS, isa.FcvtWuS:
		return execCvtToInt(ins, x, f, c)
	case isa.FcvtSW, isa.FcvtSWu:
		return execCvtFromInt(ins, x, f, c)
	case isa.FmvXW:
		x.Write32(ins.Rd, int32(f.ReadBits(ins.Rs1)))
		return trap.Cause{}
	case isa.FmvWX:
		f.WriteBits(ins.Rd, x.Read32U(ins.Rs1))
		return trap.Cause{}
	case isa.FeqS:
		x.Write32(ins.Rd, boolToInt32(softfloat.Eq(rs1(f, ins), rs2(f, ins))))
		return trap.Cause{}
	case isa.FltS:
		x.Write32(ins.Rd, boolToInt32(softfloat.Lt(rs1(f, ins), rs2(f, ins))))
		return trap.Cause{}
	case isa.FleS:
		x.Write32(ins.Rd, boolToInt32(softfloat.Le(rs1(f, ins), rs2(f, ins))))
		return trap.Cause{}
	case isa.FclassS:
		x.Write32(ins.Rd, int32(rs1(f, ins).Classify()))
		return trap.Cause{}
	case isa.Flw:
		addr := uint64(uint32(x.Read32S(ins.Rs1) + int32(ins.Imm)))
		f.WriteBits(ins.Rd, b.Load32(addr))
		return trap.Cause{}
	case isa.Fsw:
		addr := uint64(uint32(x.Read32S(ins.Rs1) + int32(ins.Imm)))
		b.Store32(addr, f.ReadBits(ins.Rs2))
		return trap.Cause{}
	default:
		return trap.Illegal("unknown RV32F opcode %d", ins.Opcode)
	}
}

func rs1(f *fpregfile.File, ins isa.Instruction) softfloat.Float32 {
	return softfloat.FromBits(f.ReadBits(ins.Rs1))
}

func rs2(f *fpregfile.File, ins isa.Instruction) softfloat.Float32 {
	return softfloat.FromBits(f.ReadBits(ins.Rs2))
}

func rs3(f *fpregfile.File, ins isa.Instruction) softfloat.Float32 {
	return softfloat.FromBits(f.ReadBits(ins.Rs3()))
}

// resolveRoundingMode turns the instruction's funct3 into a concrete
// RoundingMode, consulting fcsr's dynamic mode when funct3 selects it.
// The reserved encodings (0b101, 0b110) and an invalid dynamic mode both
// raise IllegalInstruction instead of panicking.
func resolveRoundingMode(ins isa.Instruction, c *csr.File) (softfloat.RoundingMode, trap.Cause) {
	funct3 := ins.Funct3
	if funct3 == dynamicRM {
		funct3 = uint32(c.FCSRRoundingMode())
	}
	mode, ok := softfloat.DecodeRoundingMode(funct3)
	if !ok {
		return 0, trap.Illegal("invalid rounding mode %03b", funct3)
	}
	return mode, trap.Cause{}
}

func applyFlags(c *csr.File, flags softfloat.Exceptions) {
	c.SetFCSRFlags(uint8(flags))
}

func execFma(ins isa.Instruction, f *fpregfile.File, c *csr.File) trap.Cause {
	mode, tr := resolveRoundingMode(ins, c)
	if !tr.Ok() {
		return tr
	}
	a, b, cc := rs1(f, ins), rs2(f, ins), rs3(f, ins)
	var result softfloat.Float32
	var flags softfloat.Exceptions
	switch isa.Rv32fOp(ins.Opcode) {
	case isa.FmaddS:
		result, flags = softfloat.FusedMulAdd(a, b, cc, mode)
	case isa.FmsubS:
		result, flags = softfloat.FusedMulAdd(a, b, cc.Neg(), mode)
	case isa.FnmsubS:
		result, flags = softfloat.FusedMulAdd(a.Neg(), b, cc, mode)
	case isa.FnmaddS:
		result, flags = softfloat.FusedMulAdd(a.Neg(), b, cc.Neg(), mode)
	}
	f.WriteBits(ins.Rd, result.ToBits())
	applyFlags(c, flags)
	return trap.Cause{}
}

func execArith(ins isa.Instruction, f *fpregfile.File, c *csr.File) trap.Cause {
	mode, tr := resolveRoundingMode(ins, c)
	if !tr.Ok() {
		return tr
	}
	a := rs1(f, ins)
	var result softfloat.Float32
	var flags softfloat.Exceptions
	switch isa.Rv32fOp(ins.Opcode) {
	case isa.FaddS:
		result, flags = softfloat.Add(a, rs2(f, ins), mode)
	case isa.FsubS:
		result, flags = softfloat.Sub(a, rs2(f, ins), mode)
	case isa.FmulS:
		result, flags = softfloat.Mul(a, rs2(f, ins), mode)
	case isa.FdivS:
		result, flags = softfloat.Div(a, rs2(f, ins), mode)
	case isa.FsqrtS:
		result, flags = softfloat.Sqrt(a, mode)
	}
	f.WriteBits(ins.Rd, result.ToBits())
	applyFlags(c, flags)
	return trap.Cause{}
}

func execSgnj(ins isa.Instruction, f *fpregfile.File) trap.Cause {
	a, b := rs1(f, ins), rs2(f, ins)
	var result softfloat.Float32
	switch isa.Rv32fOp(ins.Opcode) {
	case isa.FsgnjS:
		result = a.SetSign(b.Sign())
	case isa.FsgnjnS:
		result = a.SetSign(!b.Sign())
	case isa.FsgnjxS:
		result = a.SetSign(a.Sign() != b.Sign())
	}
	f.WriteBits(ins.Rd, result.ToBits())
	return trap.Cause{}
}

func execMinMax(ins isa.Instruction, f *fpregfile.File, c *csr.File) trap.Cause {
	a, b := rs1(f, ins), rs2(f, ins)
	var result softfloat.Float32
	var flags softfloat.Exceptions
	if isa.Rv32fOp(ins.Opcode) == isa.FminS {
		result, flags = softfloat.Min(a, b)
	} else {
		result, flags = softfloat.Max(a, b)
	}
	f.WriteBits(ins.Rd, result.ToBits())
	applyFlags(c, flags)
	return trap.Cause{}
}

// execCvtToInt implements FCVT.W.S / FCVT.WU.S. A NaN source saturates to
// the respective maximum value rather than producing an undefined result.
func execCvtToInt(ins isa.Instruction, x *regfile.File, f *fpregfile.File, c *csr.File) trap.Cause {
	mode, tr := resolveRoundingMode(ins, c)
	if !tr.Ok() {
		return tr
	}
	a := rs1(f, ins)
	var v int32
	var flags softfloat.Exceptions
	if isa.Rv32fOp(ins.Opcode) == isa.FcvtWS {
		v, flags = a.ToInt32(mode)
	} else {
		var uv uint32
		uv, flags = a.ToUint32(mode)
		v = int32(uv)
	}
	x.Write32(ins.Rd, v)
	applyFlags(c, flags)
	return trap.Cause{}
}

func execCvtFromInt(ins isa.Instruction, x *regfile.File, f *fpregfile.File, c *csr.File) trap.Cause {
	mode, tr := resolveRoundingMode(ins, c)
	if !tr.Ok() {
		return tr
	}
	var result softfloat.Float32
	var src int64
	if isa.Rv32fOp(ins.Opcode) == isa.FcvtSW {
		src = int64(x.Read32S(ins.Rs1))
		result = softfloat.FromInt32(int32(src), mode)
	} else {
		src = int64(x.Read32U(ins.Rs1))
		result = softfloat.FromUint32(uint32(src), mode)
	}
	f.WriteBits(ins.Rd, result.ToBits())
	// A converted 32-bit integer is always integer-valued as a float32, so
	// it differs from the source exactly when the conversion rounded.
	if int64(math.Float32frombits(result.ToBits())) != src {
		applyFlags(c, softfloat.FlagInexact)
	}
	return trap.Cause{}
}

func boolToInt32(v bool) int32 {
	if v {
		return 1
	}
	return 0
}
