// Package fpregfile implements the 32-entry single-precision floating
// point register file.
package fpregfile

// NumRegisters is the number of floating point registers.
const NumRegisters = 32

// File holds 32 cells, each the raw 32-bit IEEE-754 single encoding. Unlike
// the integer register file, no index is wired to zero: the executor is
// free to store any bit pattern, and the soft-float kernel imposes
// semantic meaning on read.
type File struct {
	cells [NumRegisters]uint32
}

// ReadBits returns the raw 32-bit encoding stored in register i.
func (f *File) ReadBits(i uint32) uint32 {
	return f.cells[i&0x1F]
}

// WriteBits stores the raw 32-bit encoding bits into register i.
func (f *File) WriteBits(i uint32, bits uint32) {
	f.cells[i&0x1F] = bits
}

// Snapshot returns a copy of all 32 cells, for the snapshot package.
func (f *File) Snapshot() [NumRegisters]uint32 {
	return f.cells
}

// Restore replaces all 32 cells from a previously captured snapshot.
func (f *File) Restore(cells [NumRegisters]uint32) {
	f.cells = cells
}
