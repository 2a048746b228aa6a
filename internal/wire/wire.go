// Package wire provides the section's deterministic, value-based
// serialization. Every message on the network carries a StableSet
// anti-entropy payload and an Action; the spec requires that encoding be
// stable and that enum ordinals and field order be observable by the model
// checker (they affect hashing), so this package fixes one canonical
// encoding rather than leaving it to whatever each caller's JSON tags
// happen to produce.
package wire

import (
	"bytes"
	"crypto/sha256"

	"github.com/ugorji/go/codec"
)

// handle is the shared CBOR handle for all section encoding. CBOR (rather
// than gob or JSON) gives canonical map-key ordering and stable, compact
// framing without depending on field names matching between versions —
// the same property the teacher's rippled-derived binary-codec chases by
// hand for its own wire types.
var handle = newHandle()

func newHandle() *codec.CborHandle {
	h := &codec.CborHandle{}
	h.Canonical = true
	h.StructToArray = true
	return h
}

// Encode serializes v into the section's canonical wire format.
func Encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := codec.NewEncoder(&buf, handle)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode deserializes the section's canonical wire format into v.
func Decode(data []byte, v interface{}) error {
	dec := codec.NewDecoder(bytes.NewReader(data), handle)
	return dec.Decode(v)
}

// Hash returns the content address of v: the SHA-256 digest of its
// canonical encoding. Dbc and Tx identity (DbcId, TxID) are both derived
// from this, so two values that would encode identically are the same
// value as far as the ledger is concerned, regardless of how they were
// constructed.
func Hash(v interface{}) ([32]byte, error) {
	b, err := Encode(v)
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(b), nil
}

// MustHash is Hash for values whose encoding cannot fail (no channels,
// funcs, or unexported-only structs) — every content-addressed type in
// this module qualifies, and a failure here is a programming bug, not a
// runtime condition callers should handle.
func MustHash(v interface{}) [32]byte {
	h, err := Hash(v)
	if err != nil {
		panic("wire: unhashable value: " + err.Error())
	}
	return h
}
