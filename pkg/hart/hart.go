// Package hart bundles the register files, program counter, CSR file, and
// bus into a single execution context and routes decoded instructions to
// the extension executor that owns their opcode space.
package hart

import (
	"github.com/riscv32core/riscv32core/pkg/bus"
	"github.com/riscv32core/riscv32core/pkg/csr"
	"github.com/riscv32core/riscv32core/pkg/exec/rv32f"
	"github.com/riscv32core/riscv32core/pkg/exec/rv32i"
	"github.com/riscv32core/riscv32core/pkg/exec/rv64m"
	"github.com/riscv32core/riscv32core/pkg/fpregfile"
	"github.com/riscv32core/riscv32core/pkg/isa"
	"github.com/riscv32core/riscv32core/pkg/pc"
	"github.com/riscv32core/riscv32core/pkg/regfile"
	"github.com/riscv32core/riscv32core/pkg/trap"
)

// Hart is one RISC-V hardware thread's architectural state: integer and
// floating point register files, program counter, CSR file, and the
// memory bus it's wired to.
type Hart struct {
	X    regfile.File
	F    fpregfile.File
	PC   *pc.PC
	CSR  *csr.File
	Bus  *bus.Bus
}

// New returns a Hart with its PC at the given reset address and a bus of
// the given size.
func New(resetPC uint64, busSize int) *Hart {
	return &Hart{
		PC:  pc.New(resetPC),
		CSR: csr.New(),
		Bus: bus.New(busSize),
	}
}

// Step executes one decoded instruction. On success (trap.Cause.Ok()) the
// PC is advanced by 4 unless the instruction itself redirected it
// (branches, JAL, JALR); on trap, PC is left where it was so a debugger
// can inspect the faulting instruction.
func (h *Hart) Step(ext isa.Extension, ins isa.Instruction) trap.Cause {
	pcBefore := h.PC.Read32()
	var cause trap.Cause
	switch ext {
	case isa.ExtRV32I:
		cause = rv32i.Execute(ins, &h.X, h.PC, h.CSR, h.Bus)
	case isa.ExtRV64M:
		cause = rv64m.Execute(ins, &h.X)
	case isa.ExtRV32F:
		cause = rv32f.Execute(ins, &h.X, &h.F, h.CSR, h.Bus)
	default:
		return trap.Illegal("unknown extension %s", ext)
	}
	if !cause.Ok() {
		return cause
	}
	// rv32i's branch/jump opcodes move PC themselves; everything else
	// (including every RV64M and RV32F instruction, which never branch)
	// falls through to the default +4 advance.
	if h.PC.Read32() == pcBefore {
		h.PC.Jump32(pcBefore + 4)
	}
	return trap.Cause{}
}
