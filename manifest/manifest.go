package manifest

import (
	"github.com/Krulknul/radix-engine-toolkit/types"
)

// Manifest is an ordered, finite instruction sequence, already decoded from
// its textual or binary form by an external decoder. The analyzer consumes
// it front to back exactly once.
type Manifest struct {
	Instructions []types.Instruction
}

// New wraps an instruction slice. The slice is owned by the manifest
// afterwards.
func New(instructions []types.Instruction) *Manifest {
	return &Manifest{Instructions: instructions}
}

// Len reports the instruction count.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Instructions)
}
