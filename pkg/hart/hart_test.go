package hart

import (
	"testing"

	"github.com/riscv32core/riscv32core/pkg/isa"
)

func TestStepAdvancesPCByFourOnNonBranch(t *testing.T) {
	h := New(0x1000, 0x1000)
	ins := isa.Instruction{Shape: isa.ShapeI, Opcode: uint32(isa.Addi), Rd: 1, Rs1: 0, Imm: 5}
	cause := h.Step(isa.ExtRV32I, ins)
	if !cause.Ok() {
		t.Fatalf("unexpected trap: %s", cause)
	}
	if got := h.PC.Read32(); got != 0x1004 {
		t.Errorf("PC = 0x%X, want 0x1004", got)
	}
	if got := h.X.ReadUnsigned(1); got != 5 {
		t.Errorf("x1 = %d, want 5", got)
	}
}

func TestStepDoesNotDoubleAdvancePCOnJump(t *testing.T) {
	h := New(0x1000, 0x1000)
	ins := isa.Instruction{Shape: isa.ShapeJ, Opcode: uint32(isa.Jal), Rd: 1, Imm: 0x100}
	if cause := h.Step(isa.ExtRV32I, ins); !cause.Ok() {
		t.Fatalf("unexpected trap: %s", cause)
	}
	if got := h.PC.Read32(); got != 0x1100 {
		t.Errorf("PC = 0x%X, want 0x1100 (not 0x1104)", got)
	}
}

func TestStepLeavesPCOnTrap(t *testing.T) {
	h := New(0x1000, 0x1000)
	ins := isa.Instruction{Shape: isa.ShapeI, Opcode: uint32(isa.Ecall)}
	cause := h.Step(isa.ExtRV32I, ins)
	if cause.Ok() {
		t.Fatal("ECALL should trap")
	}
	if got := h.PC.Read32(); got != 0x1000 {
		t.Errorf("PC = 0x%X, want unchanged 0x1000 on trap", got)
	}
}

func TestStepRoutesWordOpToRV64M(t *testing.T) {
	h := New(0x1000, 0x1000)
	h.X.WriteSigned(1, 6)
	h.X.WriteSigned(2, 7)
	ins := isa.Instruction{Shape: isa.ShapeR, Opcode: uint32(isa.Mulw), Rd: 3, Rs1: 1, Rs2: 2}
	if cause := h.Step(isa.ExtRV64M, ins); !cause.Ok() {
		t.Fatalf("unexpected trap: %s", cause)
	}
	if got := h.X.ReadSigned(3); got != 42 {
		t.Errorf("x3 = %d, want 42", got)
	}
}
