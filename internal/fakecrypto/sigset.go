package fakecrypto

import "sort"

// SigSet accumulates signature shares by signer. A set may hold shares for
// several distinct payloads at once (e.g. two elders signing different
// ord_idx assignments for the same candidate during a race); quorum is
// always evaluated against one specific payload, never against "whatever
// the set happens to contain the most of".
type SigSet[T comparable] struct {
	shares map[Id]Sig[T]
}

// NewSigSet returns an empty SigSet.
func NewSigSet[T comparable]() *SigSet[T] {
	return &SigSet[T]{shares: make(map[Id]Sig[T])}
}

// AddShare records signer's share, overwriting any prior share from the
// same signer (a signer only ever has one current claim in the set).
func (s *SigSet[T]) AddShare(signer Id, sig Sig[T]) {
	s.shares[signer] = sig
}

// Merge folds another SigSet's shares into this one.
func (s *SigSet[T]) Merge(other *SigSet[T]) {
	if other == nil {
		return
	}
	for signer, sig := range other.shares {
		s.AddShare(signer, sig)
	}
}

// Verify reports whether a strict majority of voters contributed a share
// that verifies against msg. Shares from signers outside voters, or shares
// for a different payload, do not count.
func (s *SigSet[T]) Verify(voters map[Id]struct{}, msg T) bool {
	valid := 0
	for id := range voters {
		sig, ok := s.shares[id]
		if !ok {
			continue
		}
		if sig.Verify(id, msg) {
			valid++
		}
	}
	return Majority(valid, len(voters))
}

// Ids returns the signers who have contributed a share, sorted for
// deterministic iteration (the section's wire shapes are value-based and
// observable by the model checker, so map iteration order must never leak
// into behavior).
func (s *SigSet[T]) Ids() []Id {
	ids := make([]Id, 0, len(s.shares))
	for id := range s.shares {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of distinct signers with a recorded share.
func (s *SigSet[T]) Len() int {
	return len(s.shares)
}

// Shares returns a copy of the signer->share map, for cloning and
// diagnostics. Callers must not assume any iteration order over the
// result.
func (s *SigSet[T]) Shares() map[Id]Sig[T] {
	out := make(map[Id]Sig[T], len(s.shares))
	for id, sig := range s.shares {
		out[id] = sig
	}
	return out
}
