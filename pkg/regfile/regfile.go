// Package regfile implements the 32-entry integer register file shared by
// every extension executor.
package regfile

// NumRegisters is the number of general-purpose integer registers.
const NumRegisters = 32

// File is a fixed-length array of 32 xlen-bit cells. x0 always reads as
// zero and silently discards writes. Signed and unsigned views are bitwise
// reinterpretations of the same storage, never separate copies.
type File struct {
	cells [NumRegisters]uint64
}

// ReadUnsigned returns the unsigned value of register i. Register 0 always
// reads as zero.
func (f *File) ReadUnsigned(i uint32) uint64 {
	if i == 0 {
		return 0
	}
	return f.cells[i&0x1F]
}

// ReadSigned returns the two's-complement signed reinterpretation of
// register i.
func (f *File) ReadSigned(i uint32) int64 {
	return int64(f.ReadUnsigned(i))
}

// WriteUnsigned stores v into register i. Writes to x0 are a no-op.
func (f *File) WriteUnsigned(i uint32, v uint64) {
	if i == 0 {
		return
	}
	f.cells[i&0x1F] = v
}

// WriteSigned stores the bit pattern of the signed value v into register i.
// Writes to x0 are a no-op.
func (f *File) WriteSigned(i uint32, v int64) {
	f.WriteUnsigned(i, uint64(v))
}

// Read32U returns the low 32 bits of register i, unsigned.
func (f *File) Read32U(i uint32) uint32 {
	return uint32(f.ReadUnsigned(i))
}

// Read32S returns the low 32 bits of register i, signed.
func (f *File) Read32S(i uint32) int32 {
	return int32(f.Read32U(i))
}

// Write32 writes a 32-bit result to register i, sign-extended to 64 bits,
// matching the RV64 convention that word-width instructions always
// sign-extend their result into the full register.
func (f *File) Write32(i uint32, v int32) {
	f.WriteSigned(i, int64(v))
}

// Snapshot returns a copy of all 32 cells, for the snapshot package.
func (f *File) Snapshot() [NumRegisters]uint64 {
	return f.cells
}

// Restore replaces all 32 cells from a previously captured snapshot.
func (f *File) Restore(cells [NumRegisters]uint64) {
	f.cells = cells
}
