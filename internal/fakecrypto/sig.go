// Package fakecrypto provides the section's placeholder signature scheme.
//
// Real signature forgery resistance is out of scope for this core (see
// spec Non-goals): a "signature" is just the signer's identity tagged onto
// the signed value, and verification checks that tag plus payload equality.
// What the package does model faithfully is the quorum rule used
// everywhere else in the section: a SigSet accumulates per-signer shares
// and answers "do these voters, for this exact payload, cross strict
// majority" — that predicate is what StableSet promotion and Ledger
// commitment both gate on.
package fakecrypto

// Id is the section's opaque node identifier.
type Id uint64

// Sig is a signed value: signer plus the signed payload. "Signing" is
// construction; verification is equality.
type Sig[T comparable] struct {
	Signer Id
	Msg    T
}

// Sign constructs a Sig as if signer had signed msg.
func Sign[T comparable](signer Id, msg T) Sig[T] {
	return Sig[T]{Signer: signer, Msg: msg}
}

// Verify reports whether this share was produced by id over msg.
func (s Sig[T]) Verify(id Id, msg T) bool {
	return s.Signer == id && s.Msg == msg
}

// Majority is the section-wide quorum rule: strict majority, m > n/2. Every
// quorum check in the core — StableSet promotion, Ledger commitment — is
// expressed in terms of this one predicate so the rule never drifts.
func Majority(m, n int) bool {
	return m > n/2
}
