package rv64m

import (
	"testing"

	"github.com/riscv32core/riscv32core/pkg/isa"
	"github.com/riscv32core/riscv32core/pkg/regfile"
)

func TestMulw(t *testing.T) {
	x := &regfile.File{}
	x.WriteSigned(1, 6)
	x.WriteSigned(2, 7)
	ins := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.Mulw), Rd: 3, Rs1: 1, Rs2: 2}
	if cause := Execute(ins, x); !cause.Ok() {
		t.Fatalf("unexpected trap: %s", cause)
	}
	if got := x.ReadSigned(3); got != 42 {
		t.Errorf("6*7 = %d, want 42", got)
	}
}

func TestDivwByZeroYieldsNegativeOne(t *testing.T) {
	x := &regfile.File{}
	x.WriteSigned(1, 5)
	x.WriteSigned(2, 0)
	ins := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.Divw), Rd: 3, Rs1: 1, Rs2: 2}
	if cause := Execute(ins, x); !cause.Ok() {
		t.Fatalf("unexpected trap: %s", cause)
	}
	if got := x.ReadSigned(3); got != -1 {
		t.Errorf("5/0 (DIVW) = %d, want -1", got)
	}
}

func TestDivuwByZeroYieldsAllOnes(t *testing.T) {
	x := &regfile.File{}
	x.WriteSigned(1, 5)
	x.WriteSigned(2, 0)
	ins := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.Divuw), Rd: 3, Rs1: 1, Rs2: 2}
	if cause := Execute(ins, x); !cause.Ok() {
		t.Fatalf("unexpected trap: %s", cause)
	}
	if got := x.ReadUnsigned(3); got != 0xFFFFFFFFFFFFFFFF {
		t.Errorf("5/0 (DIVUW) = 0x%X, want 0xFFFFFFFF sign-extended to 0xFFFFFFFFFFFFFFFF", got)
	}
}

func TestDivwOverflow(t *testing.T) {
	x := &regfile.File{}
	x.WriteSigned(1, -1<<31)
	x.WriteSigned(2, -1)
	ins := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.Divw), Rd: 3, Rs1: 1, Rs2: 2}
	if cause := Execute(ins, x); !cause.Ok() {
		t.Fatalf("unexpected trap: %s", cause)
	}
	if got := x.ReadSigned(3); got != -1<<31 {
		t.Errorf("INT32_MIN/-1 (DIVW) = %d, want %d", got, int64(-1<<31))
	}
}

func TestRemwByZeroReturnsDividend(t *testing.T) {
	x := &regfile.File{}
	x.WriteSigned(1, 5)
	x.WriteSigned(2, 0)
	ins := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.Remw), Rd: 3, Rs1: 1, Rs2: 2}
	if cause := Execute(ins, x); !cause.Ok() {
		t.Fatalf("unexpected trap: %s", cause)
	}
	if got := x.ReadSigned(3); got != 5 {
		t.Errorf("5%%0 (REMW) = %d, want 5", got)
	}
}
