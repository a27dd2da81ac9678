package bus

import "testing"

func TestStoreLoad32RoundTrip(t *testing.T) {
	b := New(0x100)
	b.Store32(0x10, 0xDEADBEEF)
	if got := b.Load32(0x10); got != 0xDEADBEEF {
		t.Errorf("Load32 = 0x%X, want 0xDEADBEEF", got)
	}
}

func TestLittleEndianByteOrder(t *testing.T) {
	b := New(0x100)
	b.Store16(0x10, 0x1234)
	if got := b.Load8(0x10); got != 0x34 {
		t.Errorf("low byte = 0x%X, want 0x34", got)
	}
	if got := b.Load8(0x11); got != 0x12 {
		t.Errorf("high byte = 0x%X, want 0x12", got)
	}
}

func TestLoadGrowsBackingStore(t *testing.T) {
	b := New(4)
	b.Load(0x10, []byte{1, 2, 3, 4})
	if got := b.Len(); got < 0x14 {
		t.Errorf("Len = %d, want >= 0x14 after loading past original size", got)
	}
	if got := b.Load8(0x10); got != 1 {
		t.Errorf("byte at 0x10 = %d, want 1", got)
	}
}

func TestBytesRestoreRoundTrip(t *testing.T) {
	b := New(4)
	b.Store32(0, 0x11223344)
	snap := append([]byte(nil), b.Bytes()...)

	c := New(4)
	c.Restore(snap)
	if got := c.Load32(0); got != 0x11223344 {
		t.Errorf("restored Load32 = 0x%X, want 0x11223344", got)
	}
}
