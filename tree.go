package gitkit

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Tree is a handle on a tree object of its owning Repository.
type Tree struct {
	tree  *object.Tree
	owner *Repository
}

// TreeEntry is one entry of a Tree. An entry is either owned (an
// independent copy, safe to retain) or borrowed (it aliases the parent
// Tree's entry storage and must not be retained past the parent). The
// tag is explicit so the two release paths cannot be confused.
type TreeEntry struct {
	entry *object.TreeEntry
	owned bool
}

// ID returns the tree's object id.
func (t *Tree) ID() OID {
	return oidFromHash(t.tree.Hash)
}

// EntryCount returns the number of entries directly in this tree.
func (t *Tree) EntryCount() int {
	return len(t.tree.Entries)
}

// EntryByName looks up a direct entry by filename. The returned entry
// is borrowed: it aliases this Tree and must not outlive it. Returns
// nil when no entry has that name.
func (t *Tree) EntryByName(name string) *TreeEntry {
	for i := range t.tree.Entries {
		if t.tree.Entries[i].Name == name {
			return &TreeEntry{entry: &t.tree.Entries[i]}
		}
	}
	return nil
}

// EntryByOID looks up a direct entry by the id it points at. This scans
// every entry in the tree, so it is not fast. The returned entry is
// borrowed. Returns nil when no entry points at oid.
func (t *Tree) EntryByOID(oid OID) *TreeEntry {
	hash := oid.hash()
	for i := range t.tree.Entries {
		if t.tree.Entries[i].Hash == hash {
			return &TreeEntry{entry: &t.tree.Entries[i]}
		}
	}
	return nil
}

// EntryByPath looks up an entry by a slash-separated path relative to
// this tree, loading subtrees as needed. The returned entry is an
// independent copy and may be retained after the Tree is gone. Returns
// nil when the path does not exist.
func (t *Tree) EntryByPath(path string) *TreeEntry {
	found, err := t.tree.FindEntry(path)
	if err != nil {
		return nil
	}
	copied := *found
	return &TreeEntry{entry: &copied, owned: true}
}

// WalkPreorder traverses the tree and its subtrees in pre-order,
// loading children as required. The callback's WalkMode steers the
// walk: WalkSkip on a subtree entry excludes its descendants, WalkStop
// halts immediately. It returns false when the walk was stopped by the
// callback, true when it ran to completion.
func (t *Tree) WalkPreorder(fn TreeWalkFunc) (bool, error) {
	stopped, err := t.walkPre(t.tree, "", fn)
	if err != nil {
		return false, err
	}
	return !stopped, nil
}

func (t *Tree) walkPre(tree *object.Tree, root string, fn TreeWalkFunc) (bool, error) {
	for i := range tree.Entries {
		engineEntry := &tree.Entries[i]
		entry := &TreeEntry{entry: engineEntry}
		switch fn(root, entry) {
		case WalkStop:
			return true, nil
		case WalkSkip:
			continue
		}
		if engineEntry.Mode == filemode.Dir {
			subtree, err := t.subtree(engineEntry)
			if err != nil {
				return false, err
			}
			stopped, err := t.walkPre(subtree, root+engineEntry.Name+"/", fn)
			if stopped || err != nil {
				return stopped, err
			}
		}
	}
	return false, nil
}

// WalkPostorder traverses the tree and its subtrees in post-order: a
// subtree entry is visited after all of its descendants. Returning
// false from the callback halts the walk. It returns false when the
// walk was stopped by the callback, true when it ran to completion.
func (t *Tree) WalkPostorder(fn TreeVisitFunc) (bool, error) {
	stopped, err := t.walkPost(t.tree, "", fn)
	if err != nil {
		return false, err
	}
	return !stopped, nil
}

func (t *Tree) walkPost(tree *object.Tree, root string, fn TreeVisitFunc) (bool, error) {
	for i := range tree.Entries {
		engineEntry := &tree.Entries[i]
		if engineEntry.Mode == filemode.Dir {
			subtree, err := t.subtree(engineEntry)
			if err != nil {
				return false, err
			}
			stopped, err := t.walkPost(subtree, root+engineEntry.Name+"/", fn)
			if stopped || err != nil {
				return stopped, err
			}
		}
		if !fn(root, &TreeEntry{entry: engineEntry}) {
			return true, nil
		}
	}
	return false, nil
}

func (t *Tree) subtree(entry *object.TreeEntry) (*object.Tree, error) {
	subtree, err := t.owner.repo.TreeObject(entry.Hash)
	if err != nil {
		return nil, wrapEngineError(ClassTree, fmt.Sprintf("load subtree %s (%s)", entry.Name, entry.Hash), err)
	}
	return subtree, nil
}

// Name returns the entry's filename.
func (e *TreeEntry) Name() string {
	return e.entry.Name
}

// ID returns the id of the object the entry points at.
func (e *TreeEntry) ID() OID {
	return oidFromHash(e.entry.Hash)
}

// ObjectType returns the basic type of the object the entry points at,
// derived from the entry mode.
func (e *TreeEntry) ObjectType() ObjectType {
	switch e.entry.Mode {
	case filemode.Dir:
		return ObjectTree
	case filemode.Submodule:
		return ObjectCommit
	default:
		return ObjectBlob
	}
}

// FileMode returns the entry's file mode.
func (e *TreeEntry) FileMode() FileMode {
	return fileModeFromEngine(e.entry.Mode)
}

// Owned reports whether the entry is an independent copy rather than a
// borrowed view into its parent Tree.
func (e *TreeEntry) Owned() bool {
	return e.owned
}

// Dup returns an owned copy of the entry, safe to retain independently
// of the parent Tree.
func (e *TreeEntry) Dup() *TreeEntry {
	copied := *e.entry
	return &TreeEntry{entry: &copied, owned: true}
}

// Compare orders two entries the way the engine sorts tree entries:
// byte-wise by name, with subtree names compared as if they ended in a
// slash. Returns -1, 0 or 1.
func (e *TreeEntry) Compare(other *TreeEntry) int {
	a, b := treeOrderKey(e.entry), treeOrderKey(other.entry)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func treeOrderKey(entry *object.TreeEntry) string {
	if entry.Mode == filemode.Dir {
		return entry.Name + "/"
	}
	return entry.Name
}
