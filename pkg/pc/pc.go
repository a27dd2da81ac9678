// Package pc implements the program counter cell.
package pc

// PC is a single xlen-bit cell holding the address of the instruction
// currently being executed.
type PC struct {
	value uint64
}

// New returns a PC initialized to the given address.
func New(addr uint64) *PC {
	return &PC{value: addr}
}

// Read returns the current PC value.
func (p *PC) Read() uint64 {
	return p.value
}

// Read32 returns the current PC truncated to 32 bits, for RV32 callers.
func (p *PC) Read32() uint32 {
	return uint32(p.value)
}

// Jump unconditionally replaces PC with the given absolute address.
// Alignment (e.g. clearing bit 0 for JALR) is the caller's responsibility.
func (p *PC) Jump(absolute uint64) {
	p.value = absolute
}

// Jump32 is Jump for RV32 callers working with 32-bit addresses.
func (p *PC) Jump32(absolute uint32) {
	p.value = uint64(absolute)
}

// JumpRelative adds a signed offset to the current PC.
func (p *PC) JumpRelative(offset int64) {
	p.value = uint64(int64(p.value) + offset)
}

// JumpRelative32 is JumpRelative for RV32 callers with a 32-bit-wrapping PC.
func (p *PC) JumpRelative32(offset int32) {
	p.value = uint64(uint32(int32(uint32(p.value)) + offset))
}
