package gitkit

// WalkMode is the per-entry control value returned by a pre-order tree
// walk callback.
type WalkMode int

const (
	// WalkPass continues the walk.
	WalkPass WalkMode = 0
	// WalkSkip excludes the current entry's descendants from the walk.
	// It only has an effect on tree entries; for other entries it
	// behaves like WalkPass.
	WalkSkip WalkMode = 1
	// WalkStop halts the walk immediately.
	WalkStop WalkMode = -1
)

// TreeWalkFunc is invoked once per entry during a pre-order tree walk.
// root is the slash-terminated path of the entry's parent tree relative
// to the walk root ("" at the top level). The entry aliases memory owned
// by the tree being walked and must not be retained after the call
// returns.
type TreeWalkFunc func(root string, entry *TreeEntry) WalkMode

// TreeVisitFunc is invoked once per entry during a post-order tree walk.
// Returning false stops the walk. The entry must not be retained after
// the call returns.
type TreeVisitFunc func(root string, entry *TreeEntry) bool

// BranchFunc is invoked once per branch by Repository.BranchForeach.
// Returning false stops the enumeration.
type BranchFunc func(name string, isRemote bool) bool

// StatusFunc is invoked once per path by Repository.StatusForeach.
// Returning false stops the enumeration. The Status value is an
// immutable snapshot and may be retained.
type StatusFunc func(path string, status Status) bool
