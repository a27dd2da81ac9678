// Package rv32i implements the base integer instruction set executor: one
// switch over the decoded opcode, operating on a shared mutable state.
package rv32i

import (
	"github.com/riscv32core/riscv32core/pkg/bus"
	"github.com/riscv32core/riscv32core/pkg/csr"
	"github.com/riscv32core/riscv32core/pkg/isa"
	"github.com/riscv32core/riscv32core/pkg/pc"
	"github.com/riscv32core/riscv32core/pkg/regfile"
	"github.com/riscv32core/riscv32core/pkg/trap"
)

const mask5 = 0x1F
const mask12 = 0xFFF

// Execute dispatches a decoded RV32I instruction, mutating x/PC/csr/bus as
// needed. It never advances PC by the default +4: the caller does that
// unless a branch/jump/JAL/JALR fired.
func Execute(ins isa.Instruction, x *regfile.File, p *pc.PC, c *csr.File, b *bus.Bus) trap.Cause {
	switch ins.Shape {
	case isa.ShapeR:
		return execR(ins, x)
	case isa.ShapeI:
		return execI(ins, x, p, c, b)
	case isa.ShapeS:
		return execS(ins, x, b)
	case isa.ShapeB:
		return execB(ins, x, p)
	case isa.ShapeU:
		return execU(ins, x, p)
	case isa.ShapeJ:
		return execJ(ins, x, p)
	default:
		return trap.Illegal("unknown instruction shape %d", ins.Shape)
	}
}

func execR(ins isa.Instruction, x *regfile.File) trap.Cause {
	a := x.Read32S(ins.Rs1)
	ua := x.Read32U(ins.Rs1)
	bv := x.Read32S(ins.Rs2)
	ub := x.Read32U(ins.Rs2)
	switch isa.Rv32iOp(ins.Opcode) {
	case isa.Add:
		x.Write32(ins.Rd, a+bv)
	case isa.Sub:
		x.Write32(ins.Rd, a-bv)
	case isa.Sll:
		x.Write32(ins.Rd, int32(ua<<(ub&mask5)))
	case isa.Srl:
		x.Write32(ins.Rd, int32(ua>>(ub&mask5)))
	case isa.Sra:
		x.Write32(ins.Rd, a>>(ub&mask5))
	case isa.Xor:
		x.Write32(ins.Rd, int32(ua^ub))
	case isa.Or:
		x.Write32(ins.Rd, int32(ua|ub))
	case isa.And:
		x.Write32(ins.Rd, int32(ua&ub))
	case isa.Slt:
		x.Write32(ins.Rd, boolToInt32(a < bv))
	case isa.Sltu:
		x.Write32(ins.Rd, boolToInt32(ua < ub))
	default:
		return trap.Illegal("unknown RV32I type-R opcode %d", ins.Opcode)
	}
	return trap.Cause{}
}

func execI(ins isa.Instruction, x *regfile.File, p *pc.PC, c *csr.File, b *bus.Bus) trap.Cause {
	a := x.Read32S(ins.Rs1)
	ua := x.Read32U(ins.Rs1)
	imm := int32(ins.Imm)
	uimm := uint32(ins.Imm)
	switch isa.Rv32iOp(ins.Opcode) {
	case isa.Addi:
		x.Write32(ins.Rd, a+imm)
	case isa.Slti:
		x.Write32(ins.Rd, boolToInt32(a < imm))
	case isa.Sltiu:
		x.Write32(ins.Rd, boolToInt32(ua < uimm))
	case isa.Xori:
		x.Write32(ins.Rd, int32(ua^uimm))
	case isa.Ori:
		x.Write32(ins.Rd, int32(ua|uimm))
	case isa.Andi:
		x.Write32(ins.Rd, int32(ua&uimm))
	case isa.Slli:
		x.Write32(ins.Rd, int32(ua<<(uimm&mask5)))
	case isa.Srli:
		x.Write32(ins.Rd, int32(ua>>(uimm&mask5)))
	case isa.Srai:
		x.Write32(ins.Rd, a>>(uimm&mask5))
	case isa.Lb:
		addr := uint64(uint32(a + imm))
		x.Write32(ins.Rd, int32(int8(b.Load8(addr))))
	case isa.Lh:
		addr := uint64(uint32(a + imm))
		x.Write32(ins.Rd, int32(int16(b.Load16(addr))))
	case isa.Lw:
		addr := uint64(uint32(a + imm))
		x.Write32(ins.Rd, int32(b.Load32(addr)))
	case isa.Lbu:
		addr := uint64(uint32(a + imm))
		x.Write32(ins.Rd, int32(uint32(b.Load8(addr))))
	case isa.Lhu:
		addr := uint64(uint32(a + imm))
		x.Write32(ins.Rd, int32(uint32(b.Load16(addr))))
	case isa.Jalr:
		link := p.Read32() + 4
		target := uint32(a+imm) &^ 1
		p.Jump32(target)
		x.Write32(ins.Rd, int32(link))
	case isa.Fence, isa.FenceI:
		// No-op at this scope: a single hart has no memory ordering to
		// enforce.
	case isa.Ecall:
		return trap.Cause{Kind: trap.EnvironmentCallFromU}
	case isa.Ebreak:
		return trap.Cause{Kind: trap.Breakpoint}
	case isa.Csrrw:
		old := c.Csrrw(uint16(uimm&mask12), uint64(ua))
		x.Write32(ins.Rd, int32(old))
	case isa.Csrrs:
		old := c.Csrrs(uint16(uimm&mask12), uint64(ua))
		x.Write32(ins.Rd, int32(old))
	case isa.Csrrc:
		old := c.Csrrc(uint16(uimm&mask12), uint64(ua))
		x.Write32(ins.Rd, int32(old))
	case isa.Csrrwi:
		old := c.Csrrw(uint16(uimm&mask12), uint64(ins.Rs1))
		x.Write32(ins.Rd, int32(old))
	case isa.Csrrsi:
		old := c.Csrrs(uint16(uimm&mask12), uint64(ins.Rs1))
		x.Write32(ins.Rd, int32(old))
	case isa.Csrrci:
		old := c.Csrrc(uint16(uimm&mask12), uint64(ins.Rs1))
		x.Write32(ins.Rd, int32(old))
	default:
		return trap.Illegal("unknown RV32I type-I opcode %d", ins.Opcode)
	}
	return trap.Cause{}
}

func execS(ins isa.Instruction, x *regfile.File, b *bus.Bus) trap.Cause {
	addr := uint64(uint32(x.Read32S(ins.Rs1) + int32(ins.Imm)))
	v := x.Read32U(ins.Rs2)
	switch isa.Rv32iOp(ins.Opcode) {
	case isa.Sb:
		b.Store8(addr, uint8(v))
	case isa.Sh:
		b.Store16(addr, uint16(v))
	case isa.Sw:
		b.Store32(addr, v)
	default:
		return trap.Illegal("unknown RV32I type-S opcode %d", ins.Opcode)
	}
	return trap.Cause{}
}

func execB(ins isa.Instruction, x *regfile.File, p *pc.PC) trap.Cause {
	a := x.Read32S(ins.Rs1)
	ua := x.Read32U(ins.Rs1)
	bv := x.Read32S(ins.Rs2)
	ub := x.Read32U(ins.Rs2)
	var taken bool
	switch isa.Rv32iOp(ins.Opcode) {
	case isa.Beq:
		taken = a == bv
	case isa.Bne:
		taken = a != bv
	case isa.Blt:
		taken = a < bv
	case isa.Bge:
		taken = a >= bv
	case isa.Bltu:
		taken = ua < ub
	case isa.Bgeu:
		taken = ua >= ub
	default:
		return trap.Illegal("unknown RV32I type-B opcode %d", ins.Opcode)
	}
	if taken {
		p.JumpRelative32(int32(ins.Imm))
	}
	return trap.Cause{}
}

func execU(ins isa.Instruction, x *regfile.File, p *pc.PC) trap.Cause {
	switch isa.Rv32iOp(ins.Opcode) {
	case isa.Lui:
		x.Write32(ins.Rd, int32(ins.Imm))
	case isa.Auipc:
		x.Write32(ins.Rd, int32(p.Read32()+uint32(ins.Imm)))
	default:
		return trap.Illegal("unknown RV32I type-U opcode %d", ins.Opcode)
	}
	return trap.Cause{}
}

func execJ(ins isa.Instruction, x *regfile.File, p *pc.PC) trap.Cause {
	switch isa.Rv32iOp(ins.Opcode) {
	case isa.Jal:
		x.Write32(ins.Rd, int32(p.Read32()+4))
		p.JumpRelative32(int32(ins.Imm))
	default:
		return trap.Illegal("unknown RV32I type-J opcode %d", ins.Opcode)
	}
	return trap.Cause{}
}

func boolToInt32(v bool) int32 {
	if v {
		return 1
	}
	return 0
}
