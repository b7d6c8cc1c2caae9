package gitkit

import (
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
)

// FileMode is the mode of an index or tree entry. Values match the
// engine's on-disk encoding.
type FileMode uint32

const (
	FileModeNew            FileMode = 0000000
	FileModeTree           FileMode = 0040000
	FileModeBlob           FileMode = 0100644
	FileModeBlobExecutable FileMode = 0100755
	FileModeLink           FileMode = 0120000
	FileModeCommit         FileMode = 0160000
)

// IsTree reports whether the mode denotes a subtree.
func (m FileMode) IsTree() bool {
	return m == FileModeTree
}

func (m FileMode) engine() filemode.FileMode {
	return filemode.FileMode(m)
}

func fileModeFromEngine(m filemode.FileMode) FileMode {
	return FileMode(m)
}

// ObjectType is the basic type of a Git object. Values match the
// engine's object-type encoding, including the delta variants that only
// appear inside pack files.
type ObjectType int8

const (
	ObjectAny      ObjectType = -2
	ObjectBad      ObjectType = -1
	ObjectExt1     ObjectType = 0
	ObjectCommit   ObjectType = 1
	ObjectTree     ObjectType = 2
	ObjectBlob     ObjectType = 3
	ObjectTag      ObjectType = 4
	ObjectExt2     ObjectType = 5
	ObjectOfsDelta ObjectType = 6
	ObjectRefDelta ObjectType = 7
)

func (t ObjectType) String() string {
	switch t {
	case ObjectAny:
		return "any"
	case ObjectCommit:
		return "commit"
	case ObjectTree:
		return "tree"
	case ObjectBlob:
		return "blob"
	case ObjectTag:
		return "tag"
	case ObjectOfsDelta:
		return "ofs-delta"
	case ObjectRefDelta:
		return "ref-delta"
	default:
		return "bad"
	}
}

func objectTypeFromEngine(t plumbing.ObjectType) ObjectType {
	switch t {
	case plumbing.CommitObject:
		return ObjectCommit
	case plumbing.TreeObject:
		return ObjectTree
	case plumbing.BlobObject:
		return ObjectBlob
	case plumbing.TagObject:
		return ObjectTag
	case plumbing.OFSDeltaObject:
		return ObjectOfsDelta
	case plumbing.REFDeltaObject:
		return ObjectRefDelta
	case plumbing.AnyObject:
		return ObjectAny
	default:
		return ObjectBad
	}
}
