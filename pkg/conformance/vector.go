// Package conformance runs scripted and randomized instruction sequences
// against a hart.Hart and checks the architectural state afterward: a pool
// of independent checks, run concurrently, collected into a single report.
package conformance

import (
	"fmt"

	"github.com/riscv32core/riscv32core/pkg/hart"
	"github.com/riscv32core/riscv32core/pkg/isa"
	"github.com/riscv32core/riscv32core/pkg/softfloat"
)

// Vector is one self-contained conformance check: it builds its own hart,
// runs a short instruction sequence, and reports whether the resulting
// state matches expectation.
type Vector struct {
	Name string
	Run  func() error
}

func step(h *hart.Hart, ext isa.Extension, ins isa.Instruction) error {
	cause := h.Step(ext, ins)
	if !cause.Ok() {
		return fmt.Errorf("unexpected trap: %s", cause)
	}
	return nil
}

func newHart() *hart.Hart {
	return hart.New(0x1000, 0x4000)
}

func rtype(op isa.Rv32iOp, rd, rs1, rs2 uint32) isa.Instruction {
	return isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(op), Rd: rd, Rs1: rs1, Rs2: rs2}
}

func itype(op isa.Rv32iOp, rd, rs1 uint32, imm int64) isa.Instruction {
	return isa.Instruction{Shape: isa.ShapeI, Opcode: uint32(op), Rd: rd, Rs1: rs1, Imm: imm}
}

// BuiltinVectors returns the fixed conformance vectors covering the core's
// documented scenarios and resolved edge-case behaviors.
func BuiltinVectors() []Vector {
	return []Vector{
		vectorAddWrap(),
		vectorSignedUnsignedCompare(),
		vectorJalJalrLinkage(),
		vectorLoadSignExtension(),
		vectorFaddRNE(),
		vectorFclassOneHot(),
		vectorDivwByZero(),
		vectorFcvtWuSNaNSaturates(),
		vectorFminFmaxNaNPropagation(),
		vectorEcallTraps(),
		vectorInvalidRoundingModeTraps(),
		vectorFcsrFlagsAccumulate(),
	}
}

// ADDI x1, x0, -1; ADDI x2, x1, 1 -> x1 = 0xFFFFFFFF (sign-extended in its
// 64-bit cell), x2 = 0.
func vectorAddWrap() Vector {
	return Vector{Name: "add-wraps-to-all-ones-and-back", Run: func() error {
		h := newHart()
		if err := step(h, isa.ExtRV32I, itype(isa.Addi, 1, 0, -1)); err != nil {
			return err
		}
		if err := step(h, isa.ExtRV32I, itype(isa.Addi, 2, 1, 1)); err != nil {
			return err
		}
		if got := h.X.ReadUnsigned(1); got != 0xFFFFFFFFFFFFFFFF {
			return fmt.Errorf("x1 = 0x%X, want 0xFFFFFFFF sign-extended to 0xFFFFFFFFFFFFFFFF", got)
		}
		if got := h.X.ReadUnsigned(2); got != 0 {
			return fmt.Errorf("x2 = 0x%X, want 0", got)
		}
		return nil
	}}
}

// ADDI x1,x0,-1; ADDI x2,x0,1; SLT x3,x1,x2; SLTU x4,x1,x2 -> x3=1, x4=0.
func vectorSignedUnsignedCompare() Vector {
	return Vector{Name: "slt-vs-sltu-disagree-on-negative-one", Run: func() error {
		h := newHart()
		for _, ins := range []isa.Instruction{
			itype(isa.Addi, 1, 0, -1),
			itype(isa.Addi, 2, 0, 1),
			rtype(isa.Slt, 3, 1, 2),
			rtype(isa.Sltu, 4, 1, 2),
		} {
			if err := step(h, isa.ExtRV32I, ins); err != nil {
				return err
			}
		}
		if got := h.X.ReadUnsigned(3); got != 1 {
			return fmt.Errorf("x3 (SLT) = %d, want 1", got)
		}
		if got := h.X.ReadUnsigned(4); got != 0 {
			return fmt.Errorf("x4 (SLTU) = %d, want 0", got)
		}
		return nil
	}}
}

// JAL x1, +0x20 at PC=0x1000 -> x1=0x1004, PC=0x1020; JALR x0, x1, 0 -> PC=0x1004.
func vectorJalJalrLinkage() Vector {
	return Vector{Name: "jal-then-jalr-round-trip", Run: func() error {
		h := newHart()
		jal := isa.Instruction{Shape: isa.ShapeJ, Opcode: uint32(isa.Jal), Rd: 1, Imm: 0x20}
		if err := step(h, isa.ExtRV32I, jal); err != nil {
			return err
		}
		if got := h.X.ReadUnsigned(1); got != 0x1004 {
			return fmt.Errorf("link addr = 0x%X, want 0x1004", got)
		}
		if got := h.PC.Read32(); got != 0x1020 {
			return fmt.Errorf("PC after JAL = 0x%X, want 0x1020", got)
		}
		jalr := isa.Instruction{Shape: isa.ShapeI, Opcode: uint32(isa.Jalr), Rd: 0, Rs1: 1, Imm: 0}
		if err := step(h, isa.ExtRV32I, jalr); err != nil {
			return err
		}
		if got := h.PC.Read32(); got != 0x1004 {
			return fmt.Errorf("PC after JALR = 0x%X, want 0x1004", got)
		}
		return nil
	}}
}

// Bus byte at 0x2000 = 0xFF; LB x2, 0(x1) with x1=0x2000 -> x2 = 0xFFFFFFFF
// (sign-extended in its 64-bit cell).
func vectorLoadSignExtension() Vector {
	return Vector{Name: "lb-sign-extends-negative-byte", Run: func() error {
		h := newHart()
		h.Bus.Store8(0x2000, 0xFF)
		if err := step(h, isa.ExtRV32I, itype(isa.Addi, 1, 0, 0x2000)); err != nil {
			return err
		}
		lb := isa.Instruction{Shape: isa.ShapeI, Opcode: uint32(isa.Lb), Rd: 2, Rs1: 1, Imm: 0}
		if err := step(h, isa.ExtRV32I, lb); err != nil {
			return err
		}
		if got := h.X.ReadUnsigned(2); got != 0xFFFFFFFFFFFFFFFF {
			return fmt.Errorf("x2 = 0x%X, want 0xFFFFFFFF sign-extended to 0xFFFFFFFFFFFFFFFF", got)
		}
		return nil
	}}
}

// FMV.W.X f1,x1 / f2,x1 load 1.0 twice; FADD.S f3,f1,f2 rm=RNE -> 2.0.
func vectorFaddRNE() Vector {
	return Vector{Name: "fadd-one-plus-one-is-two-under-rne", Run: func() error {
		h := newHart()
		if err := step(h, isa.ExtRV32I, itype(isa.Addi, 1, 0, 0)); err != nil {
			return err
		}
		h.X.WriteUnsigned(1, 0x3F800000)
		mv := func(fd, rs1 uint32) isa.Instruction {
			return isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.FmvWX), Rd: fd, Rs1: rs1}
		}
		if err := step(h, isa.ExtRV32F, mv(1, 1)); err != nil {
			return err
		}
		if err := step(h, isa.ExtRV32F, mv(2, 1)); err != nil {
			return err
		}
		add := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.FaddS), Rd: 3, Rs1: 1, Rs2: 2, Funct3: 0b000}
		if err := step(h, isa.ExtRV32F, add); err != nil {
			return err
		}
		if got := h.F.ReadBits(3); got != 0x40000000 {
			return fmt.Errorf("f3 bits = 0x%X, want 0x40000000", got)
		}
		return nil
	}}
}

// FCLASS.S on -Inf and on a quiet NaN.
func vectorFclassOneHot() Vector {
	return Vector{Name: "fclass-reports-exactly-one-bit", Run: func() error {
		h := newHart()
		h.F.WriteBits(1, softfloat.NegativeInfinity)
		cls := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.FclassS), Rd: 1, Rs1: 1}
		if err := step(h, isa.ExtRV32F, cls); err != nil {
			return err
		}
		if got := h.X.ReadUnsigned(1); got != 0x001 {
			return fmt.Errorf("FCLASS(-inf) = 0x%X, want 0x001", got)
		}
		h.F.WriteBits(1, softfloat.QuietNaN)
		if err := step(h, isa.ExtRV32F, cls); err != nil {
			return err
		}
		if got := h.X.ReadUnsigned(1); got != 0x200 {
			return fmt.Errorf("FCLASS(qNaN) = 0x%X, want 0x200", got)
		}
		return nil
	}}
}

// Open question 1: DIVW by zero yields -1, not i64::MAX.
func vectorDivwByZero() Vector {
	return Vector{Name: "divw-by-zero-yields-negative-one", Run: func() error {
		h := newHart()
		if err := step(h, isa.ExtRV32I, itype(isa.Addi, 1, 0, 5)); err != nil {
			return err
		}
		divw := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.Divw), Rd: 2, Rs1: 1, Rs2: 0}
		if err := step(h, isa.ExtRV64M, divw); err != nil {
			return err
		}
		if got := h.X.ReadSigned(2); got != -1 {
			return fmt.Errorf("5/0 (DIVW) = %d, want -1", got)
		}
		return nil
	}}
}

// Open question 2: FCVT.WU.S of NaN saturates to UINT32_MAX.
func vectorFcvtWuSNaNSaturates() Vector {
	return Vector{Name: "fcvt-wu-s-nan-saturates-high", Run: func() error {
		h := newHart()
		h.F.WriteBits(1, softfloat.QuietNaN)
		cvt := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.FcvtWuS), Rd: 1, Rs1: 1, Funct3: 0b000}
		if err := step(h, isa.ExtRV32F, cvt); err != nil {
			return err
		}
		if got := h.X.ReadUnsigned(1); got != 0xFFFFFFFFFFFFFFFF {
			return fmt.Errorf("FCVT.WU.S(NaN) = 0x%X, want 0xFFFFFFFF sign-extended to 0xFFFFFFFFFFFFFFFF", got)
		}
		return nil
	}}
}

// Open question 3: FMIN.S/FMAX.S ignore a quiet NaN operand.
func vectorFminFmaxNaNPropagation() Vector {
	return Vector{Name: "fmin-fmax-ignore-quiet-nan-operand", Run: func() error {
		h := newHart()
		h.F.WriteBits(1, softfloat.QuietNaN)
		h.F.WriteBits(2, 0x3F800000) // 1.0
		min := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.FminS), Rd: 3, Rs1: 1, Rs2: 2, Funct3: 0b000}
		if err := step(h, isa.ExtRV32F, min); err != nil {
			return err
		}
		if got := h.F.ReadBits(3); got != 0x3F800000 {
			return fmt.Errorf("FMIN.S(NaN, 1.0) = 0x%X, want 0x3F800000", got)
		}
		max := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.FmaxS), Rd: 4, Rs1: 1, Rs2: 2, Funct3: 0b001}
		if err := step(h, isa.ExtRV32F, max); err != nil {
			return err
		}
		if got := h.F.ReadBits(4); got != 0x3F800000 {
			return fmt.Errorf("FMAX.S(NaN, 1.0) = 0x%X, want 0x3F800000", got)
		}
		return nil
	}}
}

// Open question 4: ECALL raises a trap rather than silently continuing.
func vectorEcallTraps() Vector {
	return Vector{Name: "ecall-raises-environment-call-trap", Run: func() error {
		h := newHart()
		ecall := isa.Instruction{Shape: isa.ShapeI, Opcode: uint32(isa.Ecall)}
		cause := h.Step(isa.ExtRV32I, ecall)
		if cause.Ok() {
			return fmt.Errorf("ECALL completed without trapping")
		}
		return nil
	}}
}

// Open question 5: an invalid dynamic rounding mode raises IllegalInstruction.
func vectorInvalidRoundingModeTraps() Vector {
	return Vector{Name: "reserved-rounding-mode-traps-illegal", Run: func() error {
		h := newHart()
		h.F.WriteBits(1, 0x3F800000)
		h.F.WriteBits(2, 0x40000000)
		add := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.FaddS), Rd: 3, Rs1: 1, Rs2: 2, Funct3: 0b101}
		cause := h.Step(isa.ExtRV32F, add)
		if cause.Ok() {
			return fmt.Errorf("FADD.S with reserved rm=0b101 did not trap")
		}
		return nil
	}}
}

// Open question 6: fcsr's accrued flags accumulate after an inexact op.
func vectorFcsrFlagsAccumulate() Vector {
	return Vector{Name: "fcsr-accrues-inexact-flag", Run: func() error {
		h := newHart()
		// 0x1 (smallest positive subnormal) / 3.0 is not exactly representable.
		h.F.WriteBits(1, 0x00000001)
		h.F.WriteBits(2, 0x40400000) // 3.0
		div := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.FdivS), Rd: 3, Rs1: 1, Rs2: 2, Funct3: 0b000}
		if err := step(h, isa.ExtRV32F, div); err != nil {
			return err
		}
		if h.CSR.Read(0x003)&0x1F == 0 {
			return fmt.Errorf("fcsr accrued flags still zero after an inexact division")
		}
		return nil
	}}
}
