// Package bus implements the flat-memory system bus: an address-to-byte
// mapping with little-endian 8/16/32-bit accessors. Narrow signed loads are
// sign-extended by the executor, never by the bus.
package bus

import "encoding/binary"

// Bus is a flat byte-addressed memory. It grows to the requested size
// ahead of time; there is no sparse paging or MMIO dispatch at this scope.
type Bus struct {
	mem []byte
}

// New returns a Bus backed by a zeroed memory region of size bytes.
func New(size int) *Bus {
	return &Bus{mem: make([]byte, size)}
}

// Len returns the size of the backing memory in bytes.
func (b *Bus) Len() int {
	return len(b.mem)
}

// Load loads a block of raw bytes starting at addr into the bus, growing
// the backing store if necessary. Used by the CLI to load a flat binary
// image.
func (b *Bus) Load(addr uint64, data []byte) {
	end := int(addr) + len(data)
	if end > len(b.mem) {
		grown := make([]byte, end)
		copy(grown, b.mem)
		b.mem = grown
	}
	copy(b.mem[addr:end], data)
}

// Load8 reads a single byte at addr.
func (b *Bus) Load8(addr uint64) uint8 {
	return b.mem[addr]
}

// Load16 reads a little-endian 16-bit halfword at addr.
func (b *Bus) Load16(addr uint64) uint16 {
	return binary.LittleEndian.Uint16(b.mem[addr : addr+2])
}

// Load32 reads a little-endian 32-bit word at addr.
func (b *Bus) Load32(addr uint64) uint32 {
	return binary.LittleEndian.Uint32(b.mem[addr : addr+4])
}

// Store8 writes a single byte at addr.
func (b *Bus) Store8(addr uint64, v uint8) {
	b.mem[addr] = v
}

// Store16 writes a little-endian 16-bit halfword at addr.
func (b *Bus) Store16(addr uint64, v uint16) {
	binary.LittleEndian.PutUint16(b.mem[addr:addr+2], v)
}

// Store32 writes a little-endian 32-bit word at addr.
func (b *Bus) Store32(addr uint64, v uint32) {
	binary.LittleEndian.PutUint32(b.mem[addr:addr+4], v)
}

// Bytes returns the backing memory slice directly, for snapshotting. The
// caller must not retain it across mutating calls.
func (b *Bus) Bytes() []byte {
	return b.mem
}

// Restore replaces the backing memory with a copy of data.
func (b *Bus) Restore(data []byte) {
	b.mem = make([]byte, len(data))
	copy(b.mem, data)
}
