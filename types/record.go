package types

// TrustedInstructionRecord is the verdict for one manifest instruction. An
// instruction is trusted when the analyzer knows the exact resources it
// moves, including the case where it provably moves none. Resources is empty
// unless a specific non empty quantity is known to move. Records are created
// once and never mutated.
type TrustedInstructionRecord struct {
	Trusted   bool                `json:"trusted"`
	Resources []ResourceSpecifier `json:"resources"`
}

// NewTrustedInstructionRecord normalizes a possibly nil resource list so
// consumers can range over it unconditionally.
func NewTrustedInstructionRecord(trusted bool, resources []ResourceSpecifier) TrustedInstructionRecord {
	if resources == nil {
		resources = []ResourceSpecifier{}
	}
	return TrustedInstructionRecord{Trusted: trusted, Resources: resources}
}
