package fpregfile

import "testing"

func TestReadWriteBits(t *testing.T) {
	var f File
	f.WriteBits(1, 0x3F800000)
	if got := f.ReadBits(1); got != 0x3F800000 {
		t.Errorf("f1 = 0x%X, want 0x3F800000", got)
	}
}

func TestNoRegisterIsWiredToZero(t *testing.T) {
	var f File
	f.WriteBits(0, 0xDEADBEEF)
	if got := f.ReadBits(0); got != 0xDEADBEEF {
		t.Errorf("f0 = 0x%X, want 0xDEADBEEF (unlike the integer file, f0 is a real register)", got)
	}
}

func TestSnapshotRestore(t *testing.T) {
	var f File
	f.WriteBits(3, 0x12345678)
	snap := f.Snapshot()

	var g File
	g.Restore(snap)
	if got := g.ReadBits(3); got != 0x12345678 {
		t.Errorf("restored f3 = 0x%X, want 0x12345678", got)
	}
}
