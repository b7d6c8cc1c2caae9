package gitkit

import (
	"fmt"
	"io"

	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/binary"
)

// Blob is a handle on a blob object of its owning Repository.
type Blob struct {
	blob  *object.Blob
	owner *Repository
}

// ID returns the blob's object id.
func (b *Blob) ID() OID {
	return oidFromHash(b.blob.Hash)
}

// Size returns the blob's size in bytes.
func (b *Blob) Size() int64 {
	return b.blob.Size
}

// IsBinary guesses whether the blob content is binary, using the
// engine's heuristic (NUL bytes and the printable ratio over the
// leading content).
func (b *Blob) IsBinary() (bool, error) {
	reader, err := b.blob.Reader()
	if err != nil {
		return false, wrapEngineError(ClassObject, fmt.Sprintf("read blob %s", b.blob.Hash), err)
	}
	defer reader.Close()
	bin, err := binary.IsBinary(reader)
	if err != nil {
		return false, wrapEngineError(ClassObject, fmt.Sprintf("read blob %s", b.blob.Hash), err)
	}
	return bin, nil
}

// RawContent passes the blob's raw content to fn. The byte slice is
// only valid for the duration of the call and must not be retained.
// A negative reported size indicates a corrupt object and is an error.
func (b *Blob) RawContent(fn func(data []byte) error) error {
	if b.blob.Size < 0 {
		return newGitError(ClassODB, "blob %s reports negative size %d", b.blob.Hash, b.blob.Size)
	}
	reader, err := b.blob.Reader()
	if err != nil {
		return wrapEngineError(ClassObject, fmt.Sprintf("read blob %s", b.blob.Hash), err)
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return wrapEngineError(ClassObject, fmt.Sprintf("read blob %s", b.blob.Hash), err)
	}
	return fn(data)
}
