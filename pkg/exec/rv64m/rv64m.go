// Package rv64m implements the word-width multiply/divide/remainder
// instructions: the *W forms RV64 adds on top of RV32M.
package rv64m

import (
	"github.com/riscv32core/riscv32core/pkg/isa"
	"github.com/riscv32core/riscv32core/pkg/regfile"
	"github.com/riscv32core/riscv32core/pkg/trap"
)

// Execute dispatches a decoded RV64M word-op instruction. All five
// operations read and write the low 32 bits of their operands/result,
// sign-extended to the 64-bit register.
func Execute(ins isa.Instruction, x *regfile.File) trap.Cause {
	a := x.Read32S(ins.Rs1)
	ua := x.Read32U(ins.Rs1)
	b := x.Read32S(ins.Rs2)
	ub := x.Read32U(ins.Rs2)
	switch isa.Rv64mOp(ins.Opcode) {
	case isa.Mulw:
		x.Write32(ins.Rd, a*b)
	case isa.Divw:
		x.Write32(ins.Rd, divw(a, b))
	case isa.Divuw:
		x.Write32(ins.Rd, int32(divuw(ua, ub)))
	case isa.Remw:
		x.Write32(ins.Rd, remw(a, b))
	case isa.Remuw:
		x.Write32(ins.Rd, int32(remuw(ua, ub)))
	default:
		return trap.Illegal("unknown RV64M opcode %d", ins.Opcode)
	}
	return trap.Cause{}
}

// divw implements signed 32-bit division. Division by zero yields -1 (no
// trap). Signed overflow (INT32_MIN / -1) yields INT32_MIN, matching
// two's-complement wraparound.
func divw(a, b int32) int32 {
	if b == 0 {
		return -1
	}
	if a == minInt32 && b == -1 {
		return minInt32
	}
	return a / b
}

func divuw(a, b uint32) uint32 {
	if b == 0 {
		return maxUint32
	}
	return a / b
}

func remw(a, b int32) int32 {
	if b == 0 {
		return a
	}
	if a == minInt32 && b == -1 {
		return 0
	}
	return a % b
}

func remuw(a, b uint32) uint32 {
	if b == 0 {
		return a
	}
	return a % b
}

const minInt32 = -1 << 31
const maxUint32 = 1<<32 - 1
