package gitkit

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
)

// Reference is a handle on a single reference (branch, tag or HEAD) of
// its owning Repository.
type Reference struct {
	ref   *plumbing.Reference
	owner *Repository
}

// Name returns the full reference name, for example "refs/heads/main".
func (r *Reference) Name() string {
	return string(r.ref.Name())
}

// BranchName returns the short branch name. ok is false when the
// reference is neither a local nor a remote-tracking branch.
func (r *Reference) BranchName() (string, bool) {
	name := r.ref.Name()
	if !name.IsBranch() && !name.IsRemote() {
		return "", false
	}
	return name.Short(), true
}

// IsHead reports whether HEAD currently points at this branch.
func (r *Reference) IsHead() (bool, error) {
	head, err := r.owner.repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, wrapEngineError(ClassReference, "read HEAD", err)
	}
	if head.Type() != plumbing.SymbolicReference {
		return false, nil
	}
	return head.Target() == r.ref.Name(), nil
}

// BranchMove renames the local branch to newName, carrying its
// configuration along and repointing HEAD if it referred to the old
// name. It returns nil without error when newName is not a valid branch
// name. Unless force is set, renaming over an existing branch fails.
func (r *Reference) BranchMove(newName string, force bool) (*Reference, error) {
	if !r.ref.Name().IsBranch() {
		return nil, newGitError(ClassReference, "%s is not a local branch", r.ref.Name())
	}
	newRefName := plumbing.NewBranchReferenceName(newName)
	if newRefName.Validate() != nil {
		return nil, nil
	}
	storer := r.owner.repo.Storer
	if !force {
		if _, err := storer.Reference(newRefName); err == nil {
			return nil, newGitError(ClassReference, "branch %q already exists", newName)
		}
	}

	newRef := plumbing.NewHashReference(newRefName, r.ref.Hash())
	if err := storer.SetReference(newRef); err != nil {
		return nil, wrapEngineError(ClassReference, fmt.Sprintf("create %s", newRefName), err)
	}
	if err := storer.RemoveReference(r.ref.Name()); err != nil {
		return nil, wrapEngineError(ClassReference, fmt.Sprintf("remove %s", r.ref.Name()), err)
	}

	// Carry the branch section of the configuration to the new name.
	oldShort := r.ref.Name().Short()
	cfg, err := r.owner.repo.Config()
	if err == nil {
		if branch, ok := cfg.Branches[oldShort]; ok {
			delete(cfg.Branches, oldShort)
			branch.Name = newName
			cfg.Branches[newName] = branch
			if err := storer.SetConfig(cfg); err != nil {
				return nil, wrapEngineError(ClassConfig, "update branch config", err)
			}
		}
	}

	// Repoint a symbolic HEAD that referred to the old name.
	if head, err := storer.Reference(plumbing.HEAD); err == nil &&
		head.Type() == plumbing.SymbolicReference && head.Target() == r.ref.Name() {
		if err := storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, newRefName)); err != nil {
			return nil, wrapEngineError(ClassReference, "update HEAD", err)
		}
	}

	return &Reference{ref: newRef, owner: r.owner}, nil
}

// Delete removes the branch reference from the repository.
func (r *Reference) Delete() error {
	if err := r.owner.repo.Storer.RemoveReference(r.ref.Name()); err != nil {
		return wrapEngineError(ClassReference, fmt.Sprintf("delete %s", r.ref.Name()), err)
	}
	return nil
}

// Upstream returns the remote-tracking (or local) reference configured
// as this branch's upstream. It returns nil without error when no
// upstream is configured or the upstream reference does not exist.
func (r *Reference) Upstream() (*Reference, error) {
	upstreamName, ok := r.owner.UpstreamName(string(r.ref.Name()))
	if !ok {
		return nil, nil
	}
	return r.owner.Lookup(upstreamName)
}

// SetUpstream configures the branch's upstream to the given short
// branch name, either "remote/branch" for a remote-tracking upstream or
// a plain local branch name. An empty name unsets the upstream.
func (r *Reference) SetUpstream(name string) error {
	if !r.ref.Name().IsBranch() {
		return newGitError(ClassReference, "%s is not a local branch", r.ref.Name())
	}
	short := r.ref.Name().Short()
	cfg, err := r.owner.repo.Config()
	if err != nil {
		return wrapEngineError(ClassConfig, "read config", err)
	}

	if name == "" {
		delete(cfg.Branches, short)
		if err := r.owner.repo.Storer.SetConfig(cfg); err != nil {
			return wrapEngineError(ClassConfig, "unset upstream", err)
		}
		return nil
	}

	remote, branch := ".", name
	if remoteName, branchName, ok := strings.Cut(name, "/"); ok {
		if _, configured := cfg.Remotes[remoteName]; configured {
			remote, branch = remoteName, branchName
		}
	}
	entry, ok := cfg.Branches[short]
	if !ok {
		entry = &config.Branch{Name: short}
		cfg.Branches[short] = entry
	}
	entry.Remote = remote
	entry.Merge = plumbing.NewBranchReferenceName(branch)
	if err := r.owner.repo.Storer.SetConfig(cfg); err != nil {
		return wrapEngineError(ClassConfig, "set upstream", err)
	}
	return nil
}

// Resolve follows symbolic indirection to the object id this reference
// ultimately points at.
func (r *Reference) Resolve() (OID, error) {
	if r.ref.Type() == plumbing.HashReference {
		return oidFromHash(r.ref.Hash()), nil
	}
	resolved, err := r.owner.repo.Reference(r.ref.Name(), true)
	if err != nil {
		return OID{}, wrapEngineError(ClassReference, fmt.Sprintf("resolve %s", r.ref.Name()), err)
	}
	return oidFromHash(resolved.Hash()), nil
}
