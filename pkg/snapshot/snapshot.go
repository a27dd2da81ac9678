// Package snapshot persists and restores a Hart's architectural state
// using encoding/gob. The CLI's run command uses Save to write a hart's
// final state; Load applies a saved state onto an existing hart.
package snapshot

import (
	"encoding/gob"
	"os"

	"github.com/riscv32core/riscv32core/pkg/hart"
)

// State is the gob-serializable architectural state of a single Hart.
type State struct {
	X    [32]uint64
	F    [32]uint32
	PC   uint64
	CSR  map[uint16]uint64
	Mem  []byte
}

// Capture reads h's current architectural state into a State value.
func Capture(h *hart.Hart) *State {
	return &State{
		X:   h.X.Snapshot(),
		F:   h.F.Snapshot(),
		PC:  h.PC.Read(),
		CSR: h.CSR.Snapshot(),
		Mem: append([]byte(nil), h.Bus.Bytes()...),
	}
}

// Apply restores h's architectural state from s, overwriting whatever h
// held before.
func Apply(h *hart.Hart, s *State) {
	h.X.Restore(s.X)
	h.F.Restore(s.F)
	h.PC.Jump(s.PC)
	h.CSR.Restore(s.CSR)
	h.Bus.Restore(s.Mem)
}

// Save writes h's state to path.
func Save(path string, h *hart.Hart) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(Capture(h))
}

// Load reads a previously saved state from path and applies it to h.
func Load(path string, h *hart.Hart) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	var s State
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return err
	}
	Apply(h, &s)
	return nil
}
