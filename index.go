package gitkit

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Index is a handle on the repository's staging area. Mutations are in
// memory until Write persists them; the handle requires exclusive
// access for the duration of any mutating call.
type Index struct {
	index *index.Index
	owner *Repository
}

// mergedStage is the stage number of a fully merged entry. Entries at
// any other stage are merge-conflict sides.
const mergedStage = 0

// AddByPath stages the file at path, relative to the working directory,
// forcing it into the index without consulting ignore rules. If the
// path is currently conflicted, the conflict entries are relocated to
// the resolve-undo section.
func (i *Index) AddByPath(path string) error {
	workdir, ok := i.owner.Workdir()
	if !ok {
		return newGitError(ClassIndex, "cannot add %q to a bare index", path)
	}

	fullPath := filepath.Join(workdir, path)
	fi, err := os.Lstat(fullPath)
	if err != nil {
		return wrapEngineError(ClassIndex, fmt.Sprintf("stat %s", path), err)
	}

	var blob *Blob
	mode := filemode.Regular
	switch {
	case fi.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(fullPath)
		if err != nil {
			return wrapEngineError(ClassIndex, fmt.Sprintf("read link %s", path), err)
		}
		blob, err = i.owner.CreateBlobFromBuffer([]byte(target))
		if err != nil {
			return err
		}
		mode = filemode.Symlink
	case fi.Mode().IsRegular():
		blob, err = i.owner.CreateBlobFromDisk(fullPath)
		if err != nil {
			return err
		}
		if fi.Mode()&0o111 != 0 {
			mode = filemode.Executable
		}
	default:
		return newGitError(ClassIndex, "cannot add %q: not a regular file or symlink", path)
	}

	i.moveConflictsToResolveUndo(path)

	for _, entry := range i.index.Entries {
		if entry.Name == path && entry.Stage == mergedStage {
			entry.Hash = blob.ID().hash()
			entry.Mode = mode
			entry.ModifiedAt = fi.ModTime()
			entry.Size = uint32(fi.Size())
			return nil
		}
	}
	i.index.Entries = append(i.index.Entries, &index.Entry{
		Name:       path,
		Hash:       blob.ID().hash(),
		Mode:       mode,
		ModifiedAt: fi.ModTime(),
		Size:       uint32(fi.Size()),
	})
	return nil
}

// RemoveByPath removes the entry for path from the index. If the path
// is currently conflicted, the conflict entries are relocated to the
// resolve-undo section. Removing a path that is not in the index is an
// error.
func (i *Index) RemoveByPath(path string) error {
	hadConflict := i.moveConflictsToResolveUndo(path)

	kept := i.index.Entries[:0]
	removed := false
	for _, entry := range i.index.Entries {
		if entry.Name == path && entry.Stage == mergedStage {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	i.index.Entries = kept

	if !removed && !hadConflict {
		return newGitError(ClassIndex, "path %q is not in the index", path)
	}
	return nil
}

// moveConflictsToResolveUndo strips the conflict-stage entries for path
// from the index and records them in the resolve-undo section. It
// reports whether any conflict entries existed.
func (i *Index) moveConflictsToResolveUndo(path string) bool {
	stages := make(map[index.Stage]plumbing.Hash)
	kept := i.index.Entries[:0]
	for _, entry := range i.index.Entries {
		if entry.Name == path && entry.Stage != mergedStage {
			stages[entry.Stage] = entry.Hash
			continue
		}
		kept = append(kept, entry)
	}
	if len(stages) == 0 {
		return false
	}
	i.index.Entries = kept
	if i.index.ResolveUndo == nil {
		i.index.ResolveUndo = &index.ResolveUndo{}
	}
	i.index.ResolveUndo.Entries = append(i.index.ResolveUndo.Entries, index.ResolveUndoEntry{
		Path:   path,
		Stages: stages,
	})
	return true
}

// ReadTree replaces the index contents with the entries of tree,
// discarding any staged or conflicted state.
func (i *Index) ReadTree(tree *Tree) error {
	var entries []*index.Entry
	complete, err := tree.WalkPreorder(func(root string, entry *TreeEntry) WalkMode {
		if entry.FileMode().IsTree() {
			return WalkPass
		}
		entries = append(entries, &index.Entry{
			Name: root + entry.Name(),
			Hash: entry.ID().hash(),
			Mode: entry.FileMode().engine(),
		})
		return WalkPass
	})
	if err != nil {
		return err
	}
	if !complete {
		return newGitError(ClassIndex, "tree walk stopped unexpectedly")
	}
	i.index.Entries = entries
	i.index.ResolveUndo = nil
	i.index.Cache = nil
	return nil
}

// Write persists the index to disk. The engine writes through a
// temporary file and renames it into place, so the update is atomic.
func (i *Index) Write() error {
	if err := i.owner.repo.Storer.SetIndex(i.index); err != nil {
		return wrapEngineError(ClassIndex, "write index", err)
	}
	return nil
}

// WriteTree scans the index and writes its current state as a tree
// object, recursively creating tree objects for each subtree, and
// returns the root tree. It fails when any entry is still conflicted.
func (i *Index) WriteTree() (*Tree, error) {
	for _, entry := range i.index.Entries {
		if entry.Stage != mergedStage {
			return nil, newGitError(ClassIndex, "cannot write tree: %q is conflicted", entry.Name)
		}
	}

	hash, err := i.writeTreeLevel("")
	if err != nil {
		return nil, err
	}
	tree, err := i.owner.LookupTree(oidFromHash(hash))
	if err != nil || tree == nil {
		// The root tree was just written; failing to load it back
		// means the object store is corrupt.
		panic(fmt.Sprintf("gitkit: tree %s written but not found: %v", hash, err))
	}
	return tree, nil
}

// writeTreeLevel writes the tree object for one directory level of the
// index, recursing into subdirectories first.
func (i *Index) writeTreeLevel(prefix string) (plumbing.Hash, error) {
	files := make(map[string]*index.Entry)
	subdirs := make(map[string]struct{})
	for _, entry := range i.index.Entries {
		rest, ok := strings.CutPrefix(entry.Name, prefix)
		if !ok {
			continue
		}
		if name, _, nested := strings.Cut(rest, "/"); nested {
			subdirs[name] = struct{}{}
		} else {
			files[rest] = entry
		}
	}

	entries := make([]object.TreeEntry, 0, len(files)+len(subdirs))
	for name, entry := range files {
		entries = append(entries, object.TreeEntry{Name: name, Mode: entry.Mode, Hash: entry.Hash})
	}
	for name := range subdirs {
		subHash, err := i.writeTreeLevel(prefix + name + "/")
		if err != nil {
			return plumbing.ZeroHash, err
		}
		entries = append(entries, object.TreeEntry{Name: name, Mode: filemode.Dir, Hash: subHash})
	}
	sort.Slice(entries, func(a, b int) bool {
		return treeOrderKey(&entries[a]) < treeOrderKey(&entries[b])
	})

	tree := &object.Tree{Entries: entries}
	obj := i.owner.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.TreeObject)
	if err := tree.Encode(obj); err != nil {
		return plumbing.ZeroHash, wrapEngineError(ClassTree, "encode tree", err)
	}
	hash, err := i.owner.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, wrapEngineError(ClassODB, "store tree", err)
	}
	return hash, nil
}

// Clear empties the index in memory. Call Write to persist the cleared
// state.
func (i *Index) Clear() {
	i.index.Entries = nil
	i.index.ResolveUndo = nil
	i.index.Cache = nil
}

// EntryCount returns the number of entries in the index, including
// conflict stages.
func (i *Index) EntryCount() int {
	return len(i.index.Entries)
}

// HasConflicts reports whether any entry is at a conflict stage.
func (i *Index) HasConflicts() bool {
	for _, entry := range i.index.Entries {
		if entry.Stage != mergedStage {
			return true
		}
	}
	return false
}
