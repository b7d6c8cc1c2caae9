package gitkit

// Condition channel: every engine call funnels its failure through this
// file. Expected alternative outcomes (absence, unborn HEAD, invalid
// spec, callback stop) are classified here and converted to nil/false
// values at the call site; everything else becomes a class-tagged
// *GitError. Use errors.Is/errors.As to inspect returned errors.

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// ErrorClass identifies the engine subsystem an error originated from.
// Values mirror the engine's own error-class enumeration order.
type ErrorClass int

const (
	ClassNone ErrorClass = iota
	ClassNoMemory
	ClassOS
	ClassInvalid
	ClassReference
	ClassZlib
	ClassRepository
	ClassConfig
	ClassRegex
	ClassODB
	ClassIndex
	ClassObject
	ClassNet
	ClassTag
	ClassTree
	ClassIndexer
	ClassSSL
	ClassSubmodule
	ClassThread
	ClassStash
	ClassCheckout
	ClassFetchHead
	ClassMerge
)

var errorClassNames = map[ErrorClass]string{
	ClassNone:       "none",
	ClassNoMemory:   "nomemory",
	ClassOS:         "os",
	ClassInvalid:    "invalid",
	ClassReference:  "reference",
	ClassZlib:       "zlib",
	ClassRepository: "repository",
	ClassConfig:     "config",
	ClassRegex:      "regex",
	ClassODB:        "odb",
	ClassIndex:      "index",
	ClassObject:     "object",
	ClassNet:        "net",
	ClassTag:        "tag",
	ClassTree:       "tree",
	ClassIndexer:    "indexer",
	ClassSSL:        "ssl",
	ClassSubmodule:  "submodule",
	ClassThread:     "thread",
	ClassStash:      "stash",
	ClassCheckout:   "checkout",
	ClassFetchHead:  "fetchhead",
	ClassMerge:      "merge",
}

func (c ErrorClass) String() string {
	if name, ok := errorClassNames[c]; ok {
		return name
	}
	return fmt.Sprintf("class(%d)", int(c))
}

// GitError is a structured failure raised by an engine call. Message is
// human readable; Class names the subsystem that produced it.
type GitError struct {
	Message string
	Class   ErrorClass
	cause   error
}

func (e *GitError) Error() string {
	return fmt.Sprintf("%s: %s", e.Class, e.Message)
}

// Unwrap exposes the underlying engine error for errors.Is/As.
func (e *GitError) Unwrap() error {
	return e.cause
}

// newGitError creates a GitError with a formatted message.
func newGitError(class ErrorClass, format string, args ...any) *GitError {
	return &GitError{Message: fmt.Sprintf(format, args...), Class: class}
}

// wrapEngineError captures the engine's error record for the operation
// that just failed. It must be called with the error returned by the
// failing engine call itself, never with one saved from an earlier call.
func wrapEngineError(class ErrorClass, op string, err error) *GitError {
	return &GitError{
		Message: fmt.Sprintf("%s: %s", op, err.Error()),
		Class:   class,
		cause:   err,
	}
}

// isNotFound reports whether err is one of the engine's expected-absence
// sentinels. Callers translate these to nil handles or false, never into
// a raised error.
func isNotFound(err error) bool {
	return errors.Is(err, plumbing.ErrObjectNotFound) ||
		errors.Is(err, plumbing.ErrReferenceNotFound) ||
		errors.Is(err, object.ErrEntryNotFound) ||
		errors.Is(err, object.ErrDirectoryNotFound) ||
		errors.Is(err, git.ErrBranchNotFound) ||
		errors.Is(err, git.ErrRemoteNotFound)
}

// errStop ends an engine-driven enumeration early. It is translated to a
// "stopped by callback" result by the driving call and never surfaces to
// the caller. storer.ErrStop is the engine's own stop sentinel.
var errStop = storer.ErrStop
