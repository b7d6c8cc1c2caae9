package gitkit

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repository is the owning handle for one repository. All other handle
// types are derived from it and keep a back-reference to it; a derived
// handle is only meaningful while its Repository is in use.
type Repository struct {
	repo    *git.Repository
	gitDir  string
	workdir string // empty for bare repositories
}

// Open opens the repository at path, auto-detecting bare versus
// worktree layout. The path must be the repository itself, not a
// subdirectory; use Discover to locate a repository from below.
func Open(path string) (*Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, wrapEngineError(ClassOS, "open repository", err)
	}
	repo, err := git.PlainOpen(abs)
	if err != nil {
		return nil, wrapEngineError(ClassRepository, fmt.Sprintf("open repository at %s", abs), err)
	}
	return newRepository(repo, abs), nil
}

// Init creates a new repository at path.
func Init(path string, bare bool) (*Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, wrapEngineError(ClassOS, "init repository", err)
	}
	repo, err := git.PlainInit(abs, bare)
	if err != nil {
		return nil, wrapEngineError(ClassRepository, fmt.Sprintf("init repository at %s", abs), err)
	}
	return newRepository(repo, abs), nil
}

// Clone clones the repository at url into path with default options.
func Clone(url, path string) (*Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, wrapEngineError(ClassOS, "clone repository", err)
	}
	repo, err := git.PlainClone(abs, false, &git.CloneOptions{URL: url})
	if err != nil {
		return nil, wrapEngineError(ClassNet, fmt.Sprintf("clone %s", url), err)
	}
	return newRepository(repo, abs), nil
}

func newRepository(repo *git.Repository, abs string) *Repository {
	r := &Repository{repo: repo}
	dotGit := filepath.Join(abs, git.GitDirName)
	if fi, err := os.Stat(dotGit); err == nil && fi.IsDir() {
		r.gitDir = dotGit
		r.workdir = abs
	} else {
		// bare layout: the repository directory is the git directory
		r.gitDir = abs
	}
	return r
}

// Path returns the repository's git directory, with a trailing
// separator, matching the engine's convention.
func (r *Repository) Path() string {
	return r.gitDir + string(filepath.Separator)
}

// Workdir returns the working directory. ok is false for bare
// repositories.
func (r *Repository) Workdir() (string, bool) {
	if r.workdir == "" {
		return "", false
	}
	return r.workdir, true
}

// IsBare reports whether the repository has no working directory.
func (r *Repository) IsBare() bool {
	return r.workdir == ""
}

// IsEmpty reports whether the repository has just been initialized:
// HEAD is unborn and no local branches exist.
func (r *Repository) IsEmpty() (bool, error) {
	_, err := r.repo.Head()
	if err == nil {
		return false, nil
	}
	if !isNotFound(err) {
		return false, wrapEngineError(ClassRepository, "resolve HEAD", err)
	}
	iter, err := r.repo.Branches()
	if err != nil {
		return false, wrapEngineError(ClassReference, "list branches", err)
	}
	defer iter.Close()
	if _, err := iter.Next(); err == nil {
		return false, nil
	} else if err != io.EOF {
		return false, wrapEngineError(ClassReference, "list branches", err)
	}
	return true, nil
}

// Head resolves HEAD to the current branch reference. It returns nil
// without error when HEAD is unborn or orphaned.
func (r *Repository) Head() (*Reference, error) {
	ref, err := r.repo.Head()
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrapEngineError(ClassReference, "resolve HEAD", err)
	}
	return &Reference{ref: ref, owner: r}, nil
}

// Lookup finds a reference by its full name, for example
// "refs/heads/main". It returns nil without error when the reference
// does not exist.
func (r *Repository) Lookup(name string) (*Reference, error) {
	ref, err := r.repo.Reference(plumbing.ReferenceName(name), false)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrapEngineError(ClassReference, fmt.Sprintf("lookup %s", name), err)
	}
	return &Reference{ref: ref, owner: r}, nil
}

// LookupBranch finds a local or remote-tracking branch by its short
// name. It returns nil without error when the branch does not exist.
func (r *Repository) LookupBranch(name string, remote bool) (*Reference, error) {
	var refName plumbing.ReferenceName
	if remote {
		refName = plumbing.NewRemoteReferenceName(splitRemoteBranch(name))
	} else {
		refName = plumbing.NewBranchReferenceName(name)
	}
	return r.Lookup(string(refName))
}

func splitRemoteBranch(name string) (string, string) {
	remote, branch, ok := strings.Cut(name, "/")
	if !ok {
		return name, ""
	}
	return remote, branch
}

// LookupCommit loads the commit identified by oid. It returns nil
// without error when no such commit exists.
func (r *Repository) LookupCommit(oid OID) (*Commit, error) {
	c, err := r.repo.CommitObject(oid.hash())
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrapEngineError(ClassObject, fmt.Sprintf("lookup commit %s", oid), err)
	}
	return &Commit{commit: c, owner: r}, nil
}

// LookupTree loads the tree identified by oid. It returns nil without
// error when no such tree exists.
func (r *Repository) LookupTree(oid OID) (*Tree, error) {
	t, err := r.repo.TreeObject(oid.hash())
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrapEngineError(ClassObject, fmt.Sprintf("lookup tree %s", oid), err)
	}
	return &Tree{tree: t, owner: r}, nil
}

// LookupBlob loads the blob identified by oid. It returns nil without
// error when no such blob exists.
func (r *Repository) LookupBlob(oid OID) (*Blob, error) {
	b, err := r.repo.BlobObject(oid.hash())
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrapEngineError(ClassObject, fmt.Sprintf("lookup blob %s", oid), err)
	}
	return &Blob{blob: b, owner: r}, nil
}

// CheckoutHead resets the index and working tree to match HEAD's
// commit, discarding local modifications. It returns false without
// error when HEAD is unborn.
func (r *Repository) CheckoutHead() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, wrapEngineError(ClassRepository, "open worktree", err)
	}
	err = wt.Reset(&git.ResetOptions{Mode: git.HardReset})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, wrapEngineError(ClassCheckout, "checkout HEAD", err)
	}
	return true, nil
}

// Index returns the repository's staging area.
func (r *Repository) Index() (*Index, error) {
	idx, err := r.repo.Storer.Index()
	if err != nil {
		return nil, wrapEngineError(ClassIndex, "read index", err)
	}
	return &Index{index: idx, owner: r}, nil
}

// Status computes the status of every changed path, ordered by path.
func (r *Repository) Status() ([]StatusEntry, error) {
	var entries []StatusEntry
	_, err := r.StatusForeach(func(path string, status Status) bool {
		entries = append(entries, StatusEntry{Path: path, Status: status})
		return true
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// StatusForeach drives the engine's per-path status enumeration,
// invoking fn once per changed path in path order. It returns false
// when fn requested a stop, true when the enumeration ran to
// completion.
func (r *Repository) StatusForeach(fn StatusFunc) (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, wrapEngineError(ClassRepository, "open worktree", err)
	}
	engineStatus, err := wt.Status()
	if err != nil {
		return false, wrapEngineError(ClassRepository, "compute status", err)
	}

	paths := make([]string, 0, len(engineStatus))
	for path := range engineStatus {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		status := statusFromEngine(engineStatus[path])
		if status.IsClean() {
			continue
		}
		if !fn(path, status) {
			return false, nil
		}
	}
	return true, nil
}

// BranchCreate creates a local branch named name pointing at target.
// It returns nil without error when name is not a valid branch name.
// Unless force is set, creating over an existing branch fails.
func (r *Repository) BranchCreate(name string, target *Commit, force bool) (*Reference, error) {
	if target == nil || target.owner != r {
		return nil, newGitError(ClassInvalid, "branch target must be a commit of this repository")
	}
	refName := plumbing.NewBranchReferenceName(name)
	if refName.Validate() != nil {
		return nil, nil
	}
	if !force {
		if _, err := r.repo.Reference(refName, false); err == nil {
			return nil, newGitError(ClassReference, "branch %q already exists", name)
		}
	}
	ref := plumbing.NewHashReference(refName, target.commit.Hash)
	if err := r.repo.Storer.SetReference(ref); err != nil {
		return nil, wrapEngineError(ClassReference, fmt.Sprintf("create branch %s", name), err)
	}
	return &Reference{ref: ref, owner: r}, nil
}

// BranchForeach enumerates local and/or remote-tracking branches,
// invoking fn once per branch with its short name. It returns false
// when fn requested a stop, true when the enumeration completed.
func (r *Repository) BranchForeach(local, remote bool, fn BranchFunc) (bool, error) {
	iter, err := r.repo.References()
	if err != nil {
		return false, wrapEngineError(ClassReference, "list references", err)
	}
	// The engine swallows errStop and reports a clean ForEach, so the
	// stopped-by-callback outcome is tracked separately.
	stopped := false
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name()
		switch {
		case local && name.IsBranch():
			if !fn(name.Short(), false) {
				stopped = true
				return errStop
			}
		case remote && name.IsRemote():
			if !fn(name.Short(), true) {
				stopped = true
				return errStop
			}
		}
		return nil
	})
	if err != nil {
		return false, wrapEngineError(ClassReference, "enumerate branches", err)
	}
	return !stopped, nil
}

// UpstreamName returns the canonical name of the upstream reference
// configured for the branch named by canonical (a "refs/heads/..."
// name). ok is false when no upstream is configured.
func (r *Repository) UpstreamName(canonical string) (string, bool) {
	refName := plumbing.ReferenceName(canonical)
	if !refName.IsBranch() {
		return "", false
	}
	cfg, err := r.repo.Config()
	if err != nil {
		return "", false
	}
	branch, ok := cfg.Branches[refName.Short()]
	if !ok || branch.Remote == "" || branch.Merge == "" {
		return "", false
	}
	if branch.Remote == "." {
		return string(branch.Merge), true
	}
	return string(plumbing.NewRemoteReferenceName(branch.Remote, branch.Merge.Short())), true
}

// RemoteName returns the name of the remote that the remote-tracking
// reference named by canonical belongs to. Both "no remote matches" and
// "more than one remote matches" are reported as config errors.
func (r *Repository) RemoteName(canonical string) (string, error) {
	cfg, err := r.repo.Config()
	if err != nil {
		return "", wrapEngineError(ClassConfig, "read config", err)
	}
	var matches []string
	for name, remote := range cfg.Remotes {
		for _, spec := range remote.Fetch {
			if refSpecDstMatch(spec.String(), canonical) {
				matches = append(matches, name)
				break
			}
		}
	}
	switch len(matches) {
	case 0:
		return "", newGitError(ClassConfig, "no remote matches %q", canonical)
	case 1:
		return matches[0], nil
	default:
		sort.Strings(matches)
		return "", newGitError(ClassConfig, "reference %q matches multiple remotes: %s",
			canonical, strings.Join(matches, ", "))
	}
}

// refSpecDstMatch reports whether the destination side of a fetch
// refspec matches the given canonical reference name.
func refSpecDstMatch(spec, canonical string) bool {
	spec = strings.TrimPrefix(spec, "+")
	_, dst, ok := strings.Cut(spec, ":")
	if !ok {
		return false
	}
	prefix, suffix, wildcard := strings.Cut(dst, "*")
	if !wildcard {
		return dst == canonical
	}
	return strings.HasPrefix(canonical, prefix) && strings.HasSuffix(canonical, suffix)
}

// blobChunkSize is how many bytes CreateBlobFromReader pulls from the
// source per read, mirroring the engine's chunked stream protocol.
const blobChunkSize = 4096

// CreateBlobFromBuffer writes data to the object store as a loose blob
// and returns a handle to it.
func (r *Repository) CreateBlobFromBuffer(data []byte) (*Blob, error) {
	return r.CreateBlobFromReader(bytes.NewReader(data))
}

// CreateBlobFromWorkdir writes the file at the given path, relative to
// the working directory, to the object store as a blob.
func (r *Repository) CreateBlobFromWorkdir(relPath string) (*Blob, error) {
	workdir, ok := r.Workdir()
	if !ok {
		return nil, newGitError(ClassRepository, "cannot create blob from workdir in a bare repository")
	}
	return r.CreateBlobFromDisk(filepath.Join(workdir, relPath))
}

// CreateBlobFromDisk writes the file at an arbitrary filesystem path to
// the object store as a blob.
func (r *Repository) CreateBlobFromDisk(path string) (*Blob, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapEngineError(ClassOS, fmt.Sprintf("read %s", path), err)
	}
	defer f.Close()
	return r.CreateBlobFromReader(f)
}

// CreateBlobFromReader streams src into the object store as a blob,
// pulling up to blobChunkSize bytes per read until the source reports
// end of stream.
func (r *Repository) CreateBlobFromReader(src io.Reader) (*Blob, error) {
	obj := r.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	w, err := obj.Writer()
	if err != nil {
		return nil, wrapEngineError(ClassODB, "create blob", err)
	}

	buf := make([]byte, blobChunkSize)
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				w.Close()
				return nil, wrapEngineError(ClassODB, "write blob", err)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			w.Close()
			return nil, wrapEngineError(ClassOS, "read blob source", readErr)
		}
	}
	if err := w.Close(); err != nil {
		return nil, wrapEngineError(ClassODB, "write blob", err)
	}

	hash, err := r.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return nil, wrapEngineError(ClassODB, "store blob", err)
	}
	blob, err := r.LookupBlob(oidFromHash(hash))
	if err != nil || blob == nil {
		// A successful write followed by a failed lookup of the same
		// object means the object store is corrupt.
		panic(fmt.Sprintf("gitkit: blob %s written but not found: %v", hash, err))
	}
	return blob, nil
}

// CreateCommit writes a commit object with the given metadata, tree and
// parents, and returns its id. The tree and all parents must belong to
// this repository. When updateRef is non-empty it names the reference
// to advance, creating it if absent; "HEAD" advances the current
// branch. messageEncoding may be empty, implying UTF-8.
func (r *Repository) CreateCommit(updateRef string, author, committer *Signature,
	messageEncoding, message string, tree *Tree, parents ...*Commit) (OID, error) {

	if tree == nil || tree.owner != r {
		return OID{}, newGitError(ClassInvalid, "commit tree must belong to this repository")
	}
	parentHashes := make([]plumbing.Hash, len(parents))
	for i, parent := range parents {
		if parent == nil || parent.owner != r {
			return OID{}, newGitError(ClassInvalid, "commit parent %d must belong to this repository", i)
		}
		parentHashes[i] = parent.commit.Hash
	}

	commit := &object.Commit{
		Author:       author.engine(),
		Committer:    committer.engine(),
		Message:      message,
		TreeHash:     tree.tree.Hash,
		ParentHashes: parentHashes,
	}
	if messageEncoding != "" {
		commit.Encoding = object.MessageEncoding(messageEncoding)
	}

	obj := r.repo.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return OID{}, wrapEngineError(ClassObject, "encode commit", err)
	}
	hash, err := r.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return OID{}, wrapEngineError(ClassODB, "store commit", err)
	}

	if updateRef != "" {
		if err := r.advanceRef(updateRef, hash); err != nil {
			return OID{}, err
		}
	}
	return oidFromHash(hash), nil
}

// advanceRef moves (or creates) the named reference to point at hash.
// "HEAD" advances the branch HEAD points at, or HEAD itself when
// detached.
func (r *Repository) advanceRef(name string, hash plumbing.Hash) error {
	target := plumbing.ReferenceName(name)
	if target == plumbing.HEAD {
		head, err := r.repo.Storer.Reference(plumbing.HEAD)
		if err != nil {
			return wrapEngineError(ClassReference, "read HEAD", err)
		}
		if head.Type() == plumbing.SymbolicReference {
			target = head.Target()
		}
	}
	ref := plumbing.NewHashReference(target, hash)
	if err := r.repo.Storer.SetReference(ref); err != nil {
		return wrapEngineError(ClassReference, fmt.Sprintf("update %s", target), err)
	}
	return nil
}
