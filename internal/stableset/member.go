package stableset

import "github.com/maidsafe/stableset/internal/fakecrypto"

// Member is a committed-or-committing roster entry: an insertion rank
// (OrdIdx) paired with a node identity. Equality and ordering are
// lexicographic on (OrdIdx, Id), matching spec §3.
type Member struct {
	OrdIdx uint64
	Id     fakecrypto.Id
}

// Less orders members lexicographically on (OrdIdx, Id).
func (m Member) Less(other Member) bool {
	if m.OrdIdx != other.OrdIdx {
		return m.OrdIdx < other.OrdIdx
	}
	return m.Id < other.Id
}
