package rv32f

import (
	"testing"

	"github.com/riscv32core/riscv32core/pkg/bus"
	"github.com/riscv32core/riscv32core/pkg/csr"
	"github.com/riscv32core/riscv32core/pkg/fpregfile"
	"github.com/riscv32core/riscv32core/pkg/isa"
	"github.com/riscv32core/riscv32core/pkg/regfile"
	"github.com/riscv32core/riscv32core/pkg/softfloat"
)

func newState() (*regfile.File, *fpregfile.File, *csr.File, *bus.Bus) {
	return &regfile.File{}, &fpregfile.File{}, csr.New(), bus.New(0x1000)
}

func TestFaddRNE(t *testing.T) {
	x, f, c, b := newState()
	f.WriteBits(1, 0x3F800000) // 1.0
	f.WriteBits(2, 0x3F800000) // 1.0
	ins := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.FaddS), Rd: 3, Rs1: 1, Rs2: 2, Funct3: 0b000}
	if cause := Execute(ins, x, f, c, b); !cause.Ok() {
		t.Fatalf("unexpected trap: %s", cause)
	}
	if got := f.ReadBits(3); got != 0x40000000 {
		t.Errorf("1.0+1.0 = 0x%X, want 0x40000000 (2.0)", got)
	}
}

func TestFmvRoundTripPreservesNaNPayload(t *testing.T) {
	x, f, c, b := newState()
	const payload = 0x7FA12345 // signaling NaN with a distinct payload
	x.WriteSigned(1, int64(int32(payload)))
	toF := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.FmvWX), Rd: 1, Rs1: 1}
	if cause := Execute(toF, x, f, c, b); !cause.Ok() {
		t.Fatalf("unexpected trap: %s", cause)
	}
	toX := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.FmvXW), Rd: 2, Rs1: 1}
	if cause := Execute(toX, x, f, c, b); !cause.Ok() {
		t.Fatalf("unexpected trap: %s", cause)
	}
	if got := x.ReadUnsigned(2); uint32(got) != payload {
		t.Errorf("round trip = 0x%X, want 0x%X", got, payload)
	}
}

func TestFcvtWuSOfNaNSaturates(t *testing.T) {
	x, f, c, b := newState()
	f.WriteBits(1, softfloat.QuietNaN)
	ins := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.FcvtWuS), Rd: 1, Rs1: 1, Funct3: 0b000}
	if cause := Execute(ins, x, f, c, b); !cause.Ok() {
		t.Fatalf("unexpected trap: %s", cause)
	}
	if got := x.ReadUnsigned(1); got != 0xFFFFFFFFFFFFFFFF {
		t.Errorf("FCVT.WU.S(NaN) = 0x%X, want 0xFFFFFFFF sign-extended to 0xFFFFFFFFFFFFFFFF", got)
	}
}

func TestFminIgnoresNaNOperand(t *testing.T) {
	x, f, c, b := newState()
	f.WriteBits(1, softfloat.QuietNaN)
	f.WriteBits(2, 0x3F800000)
	ins := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.FminS), Rd: 3, Rs1: 1, Rs2: 2, Funct3: 0b000}
	if cause := Execute(ins, x, f, c, b); !cause.Ok() {
		t.Fatalf("unexpected trap: %s", cause)
	}
	if got := f.ReadBits(3); got != 0x3F800000 {
		t.Errorf("FMIN.S(NaN, 1.0) = 0x%X, want 0x3F800000", got)
	}
}

func TestReservedRoundingModeTraps(t *testing.T) {
	x, f, c, b := newState()
	f.WriteBits(1, 0x3F800000)
	f.WriteBits(2, 0x40000000)
	ins := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.FaddS), Rd: 3, Rs1: 1, Rs2: 2, Funct3: 0b101}
	if cause := Execute(ins, x, f, c, b); cause.Ok() {
		t.Fatal("reserved rounding mode should trap IllegalInstruction")
	}
}

func TestDynamicRoundingModeReadsFCSR(t *testing.T) {
	x, f, c, b := newState()
	c.Csrrw(csr.FCSR, uint64(softfloat.RoundTowardZero)<<csr.FCSRRoundingModeShift)
	f.WriteBits(1, 0x3F800000) // 1.0
	f.WriteBits(2, 0x33C00000) // 0.75 ulp of 1.0: RNE gives 0x3F800001, RTZ gives 1.0
	ins := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.FaddS), Rd: 3, Rs1: 1, Rs2: 2, Funct3: 0b111}
	if cause := Execute(ins, x, f, c, b); !cause.Ok() {
		t.Fatalf("unexpected trap: %s", cause)
	}
	if got := f.ReadBits(3); got != 0x3F800000 {
		t.Errorf("FADD.S under fcsr rm=RTZ = 0x%X, want 0x3F800000", got)
	}
}

func TestFclassDetectsNegativeInfinity(t *testing.T) {
	x, f, c, b := newState()
	f.WriteBits(1, softfloat.NegativeInfinity)
	ins := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.FclassS), Rd: 1, Rs1: 1}
	if cause := Execute(ins, x, f, c, b); !cause.Ok() {
		t.Fatalf("unexpected trap: %s", cause)
	}
	if got := x.ReadUnsigned(1); got != 0x001 {
		t.Errorf("FCLASS(-inf) = 0x%X, want 0x001", got)
	}
}

func TestFlwFswRoundTrip(t *testing.T) {
	x, f, c, b := newState()
	x.WriteSigned(1, 0x100)
	f.WriteBits(2, 0x3F800000)
	sw := isa.Instruction{Shape: isa.ShapeS, Opcode: uint32(isa.Fsw), Rs1: 1, Rs2: 2, Imm: 0}
	if cause := Execute(sw, x, f, c, b); !cause.Ok() {
		t.Fatalf("unexpected trap: %s", cause)
	}
	lw := isa.Instruction{Shape: isa.ShapeI, Opcode: uint32(isa.Flw), Rd: 3, Rs1: 1, Imm: 0}
	if cause := Execute(lw, x, f, c, b); !cause.Ok() {
		t.Fatalf("unexpected trap: %s", cause)
	}
	if got := f.ReadBits(3); got != 0x3F800000 {
		t.Errorf("FLW after FSW = 0x%X, want 0x3F800000", got)
	}
}
