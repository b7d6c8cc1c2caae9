package gitkit

import (
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// TreeBuilder composes a tree object in memory. It is independent of
// any Tree or Repository until Write serializes it into a repository's
// object store. A TreeBuilder is not safe for concurrent use.
type TreeBuilder struct {
	entries map[string]object.TreeEntry
}

// NewTreeBuilder returns an empty tree builder.
func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{entries: make(map[string]object.TreeEntry)}
}

// NewTreeBuilderFromTree returns a tree builder seeded with the direct
// entries of an existing tree.
func NewTreeBuilderFromTree(tree *Tree) *TreeBuilder {
	b := NewTreeBuilder()
	for _, entry := range tree.tree.Entries {
		b.entries[entry.Name] = entry
	}
	return b
}

// Get returns the entry named name, or nil if the builder has none.
// The entry is borrowed and reflects the builder's state at call time.
func (b *TreeBuilder) Get(name string) *TreeEntry {
	entry, ok := b.entries[name]
	if !ok {
		return nil
	}
	return &TreeEntry{entry: &entry}
}

// Insert adds or updates the entry named name. No check is made that id
// points at an existing object or that the mode matches the pointed-at
// object's type; mode must not be FileModeNew. The returned entry is
// borrowed.
func (b *TreeBuilder) Insert(name string, id OID, mode FileMode) (*TreeEntry, error) {
	if mode == FileModeNew {
		return nil, newGitError(ClassInvalid, "cannot insert %q with the unset file mode", name)
	}
	if !validEntryName(name) {
		return nil, newGitError(ClassInvalid, "invalid tree entry name %q", name)
	}
	entry := object.TreeEntry{Name: name, Mode: mode.engine(), Hash: id.hash()}
	b.entries[name] = entry
	return &TreeEntry{entry: &entry}, nil
}

func validEntryName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, "/\x00")
}

// Remove deletes the entry named name, reporting whether it existed.
func (b *TreeBuilder) Remove(name string) bool {
	if _, ok := b.entries[name]; !ok {
		return false
	}
	delete(b.entries, name)
	return true
}

// Filter removes every entry for which keep returns false. The entry
// passed to keep is borrowed.
func (b *TreeBuilder) Filter(keep func(*TreeEntry) bool) {
	for name, entry := range b.entries {
		if !keep(&TreeEntry{entry: &entry}) {
			delete(b.entries, name)
		}
	}
}

// EntryCount returns the number of entries currently in the builder.
func (b *TreeBuilder) EntryCount() int {
	return len(b.entries)
}

// Clear removes all entries.
func (b *TreeBuilder) Clear() {
	b.entries = make(map[string]object.TreeEntry)
}

// Write serializes the current entries, in the engine's tree entry
// order, as a tree object in repo's object store and returns its id.
func (b *TreeBuilder) Write(repo *Repository) (OID, error) {
	entries := make([]object.TreeEntry, 0, len(b.entries))
	for _, entry := range b.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return treeOrderKey(&entries[i]) < treeOrderKey(&entries[j])
	})

	tree := &object.Tree{Entries: entries}
	obj := repo.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.TreeObject)
	if err := tree.Encode(obj); err != nil {
		return OID{}, wrapEngineError(ClassTree, "encode tree", err)
	}
	hash, err := repo.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return OID{}, wrapEngineError(ClassODB, "store tree", err)
	}
	return oidFromHash(hash), nil
}
