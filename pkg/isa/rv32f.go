package isa

// Rv32fOp enumerates the single-precision floating point opcodes.
type Rv32fOp uint32

const (
	// === Type R: FMA (R4-type; rs3 from funct7[6:2]) ===
	FmaddS Rv32fOp = iota
	FmsubS
	FnmsubS
	FnmaddS

	// === Type R: arithmetic ===
	FaddS
	FsubS
	FmulS
	FdivS
	FsqrtS

	// === Type R: sign injection ===
	FsgnjS
	FsgnjnS
	FsgnjxS

	// === Type R: min/max ===
	FminS
	FmaxS

	// === Type R: conversions ===
	FcvtWS
	FcvtWuS
	FcvtSW
	FcvtSWu

	// === Type R: bit-exact moves ===
	FmvXW
	FmvWX

	// === Type R: comparisons ===
	FeqS
	FltS
	FleS

	// === Type R: classification ===
	FclassS

	// === Type I: load ===
	Flw

	// === Type S: store ===
	Fsw
)
