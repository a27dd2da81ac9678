package isa

// Rv32iOp enumerates the base integer instruction set's opcodes, organized
// by instruction shape.
type Rv32iOp uint32

const (
	// === Type R: register-register arithmetic ===
	Add Rv32iOp = iota
	Sub
	Sll
	Slt
	Sltu
	Xor
	Srl
	Sra
	Or
	And

	// === Type I: register-immediate arithmetic ===
	Addi
	Slti
	Sltiu
	Xori
	Ori
	Andi
	Slli
	Srli
	Srai

	// === Type I: loads ===
	Lb
	Lh
	Lw
	Lbu
	Lhu

	// === Type S: stores ===
	Sb
	Sh
	Sw

	// === Type B: branches ===
	Beq
	Bne
	Blt
	Bge
	Bltu
	Bgeu

	// === Type U ===
	Lui
	Auipc

	// === Type J ===
	Jal

	// === Type I: jump-and-link register ===
	Jalr

	// === Type I: CSR ===
	Csrrw
	Csrrs
	Csrrc
	Csrrwi
	Csrrsi
	Csrrci

	// === Type I: system (FENCE/FENCE.I are no-ops; ECALL/EBREAK trap) ===
	Fence
	FenceI
	Ecall
	Ebreak
)
