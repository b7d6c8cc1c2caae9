package gitkit

import (
	"github.com/go-git/go-git/v5"
)

// Status describes the state of a single path as two sets of flags: the
// Index flags compare the index against HEAD, the Wt flags compare the
// working tree against the index. A Status is a snapshot taken at
// enumeration time and is never updated afterwards.
type Status struct {
	IndexNew        bool
	IndexModified   bool
	IndexDeleted    bool
	IndexRenamed    bool
	IndexTypeChange bool

	WtNew        bool
	WtModified   bool
	WtDeleted    bool
	WtTypeChange bool

	Ignored bool
}

// IsClean reports whether no flag is set.
func (s Status) IsClean() bool {
	return s == Status{}
}

// StatusEntry pairs a path with its Status snapshot.
type StatusEntry struct {
	Path   string
	Status Status
}

// statusFromEngine converts the engine's per-file staging/worktree codes
// into the flag set. The engine does not report type changes through
// this interface, so the typechange flags stay unset.
func statusFromEngine(fs *git.FileStatus) Status {
	var s Status

	switch fs.Staging {
	case git.Added:
		s.IndexNew = true
	case git.Modified:
		s.IndexModified = true
	case git.Deleted:
		s.IndexDeleted = true
	case git.Renamed:
		s.IndexRenamed = true
	case git.Copied:
		s.IndexModified = true
	}

	switch fs.Worktree {
	case git.Untracked:
		s.WtNew = true
	case git.Modified:
		s.WtModified = true
	case git.Deleted:
		s.WtDeleted = true
	}
	if fs.Staging == git.Untracked {
		s.WtNew = true
	}

	return s
}
