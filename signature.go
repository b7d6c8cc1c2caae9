package gitkit

import (
	"time"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// Time is a commit timestamp: seconds since the Unix epoch plus the
// timezone offset, in minutes, that was in effect where the commit was
// made.
type Time struct {
	Seconds int64
	Offset  int
}

// Compare orders two timestamps by their UTC-normalized instant, not by
// wall-clock fields. Returns -1, 0 or 1.
func (t Time) Compare(other Time) int {
	a := t.Seconds + int64(t.Offset)*60
	b := other.Seconds + int64(other.Offset)*60
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Equal reports whether two timestamps denote the same instant.
func (t Time) Equal(other Time) bool {
	return t.Compare(other) == 0
}

// Signature is the identity attached to a commit as author or committer.
type Signature struct {
	Name  string
	Email string
	When  Time
}

// NewSignature builds a Signature from a wall-clock time, preserving the
// time's zone offset.
func NewSignature(name, email string, when time.Time) *Signature {
	_, offsetSeconds := when.Zone()
	return &Signature{
		Name:  name,
		Email: email,
		When:  Time{Seconds: when.Unix(), Offset: offsetSeconds / 60},
	}
}

func (s *Signature) engine() object.Signature {
	loc := time.FixedZone("", s.When.Offset*60)
	return object.Signature{
		Name:  s.Name,
		Email: s.Email,
		When:  time.Unix(s.When.Seconds, 0).In(loc),
	}
}

func signatureFromEngine(sig object.Signature) Signature {
	_, offsetSeconds := sig.When.Zone()
	return Signature{
		Name:  sig.Name,
		Email: sig.Email,
		When:  Time{Seconds: sig.When.Unix(), Offset: offsetSeconds / 60},
	}
}
