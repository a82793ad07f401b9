package ginternals

import (
	"crypto/sha1" //nolint:gosec // content addressing, not a security boundary
	"encoding/hex"
)

// OidSize is the length of an Oid, in bytes
const OidSize = 20

// NullOid is the value of an empty Oid, or one that's all 0s
var NullOid = Oid{}

// Oid represents a git object identifier: the SHA-1 of an object's wire
// form (type, space, ascii length, NUL, payload).
type Oid [OidSize]byte

// Bytes returns the raw 20-byte Oid
func (o Oid) Bytes() []byte {
	return o[:]
}

// String converts an Oid to its 40-character lowercase hex form
func (o Oid) String() string {
	return hex.EncodeToString(o[:])
}

// IsZero returns whether the oid has the zero value (NullOid)
func (o Oid) IsZero() bool {
	return o == NullOid
}

// NewOidFromContent returns the Oid of the given content: the SHA-1 sum
// of the bytes as-is. Callers are expected to pass the full wire form,
// not just the object's payload.
func NewOidFromContent(data []byte) Oid {
	return sha1.Sum(data) //nolint:gosec
}

// NewOidFromBytes builds an Oid from a 20-byte binary representation, as
// found in the tree codec's leaf stream.
func NewOidFromBytes(id []byte) (Oid, error) {
	if len(id) != OidSize {
		return NullOid, ErrInvalidOid
	}
	var oid Oid
	copy(oid[:], id)
	return oid, nil
}

// NewOidFromHex builds an Oid from its 40-character hex representation.
func NewOidFromHex(id string) (Oid, error) {
	raw, err := hex.DecodeString(id)
	if err != nil {
		return NullOid, ErrInvalidOid
	}
	return NewOidFromBytes(raw)
}

// NewOidFromChars is a convenience wrapper around NewOidFromHex for
// callers holding a []byte slice of hex characters (as extracted from a
// KVLM field).
func NewOidFromChars(id []byte) (Oid, error) {
	return NewOidFromHex(string(id))
}
