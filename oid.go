package gitkit

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

// OIDHexLen is the length of the textual form of an OID.
const OIDHexLen = 40

// OID is a 20-byte binary content identifier addressing an object in the
// repository's object store. The zero value is the null OID.
type OID [20]byte

// ParseOID parses the 40-character hexadecimal form of an object id.
// Unlike the engine's own parser it rejects short, long and non-hex
// input instead of zero-padding it.
func ParseOID(s string) (OID, error) {
	var oid OID
	if len(s) != OIDHexLen {
		return oid, fmt.Errorf("invalid oid %q: expected %d characters, got %d", s, OIDHexLen, len(s))
	}
	if _, err := hex.Decode(oid[:], []byte(s)); err != nil {
		return oid, fmt.Errorf("invalid oid %q: %w", s, err)
	}
	return oid, nil
}

// String returns the 40-character lowercase hexadecimal form.
func (o OID) String() string {
	return hex.EncodeToString(o[:])
}

// IsZero reports whether o is the null OID.
func (o OID) IsZero() bool {
	return o == OID{}
}

// Compare returns -1, 0 or 1 ordering o against other by unsigned
// byte-wise comparison.
func (o OID) Compare(other OID) int {
	return bytes.Compare(o[:], other[:])
}

// hash converts o to the engine's hash type.
func (o OID) hash() plumbing.Hash {
	return plumbing.Hash(o)
}

// oidFromHash copies an engine hash into an OID.
func oidFromHash(h plumbing.Hash) OID {
	return OID(h)
}
