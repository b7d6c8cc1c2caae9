package gitkit

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// Commit is a handle on a commit object of its owning Repository.
type Commit struct {
	commit *object.Commit
	owner  *Repository
}

// ID returns the commit's object id.
func (c *Commit) ID() OID {
	return oidFromHash(c.commit.Hash)
}

// Message returns the full commit message.
func (c *Commit) Message() string {
	return c.commit.Message
}

// MessageEncoding returns the encoding name recorded for the commit
// message. ok is false when no encoding is recorded, in which case
// UTF-8 is assumed.
func (c *Commit) MessageEncoding() (string, bool) {
	enc := string(c.commit.Encoding)
	if enc == "" || enc == "UTF-8" {
		return "", false
	}
	return enc, true
}

// Author returns the author signature.
func (c *Commit) Author() Signature {
	return signatureFromEngine(c.commit.Author)
}

// Committer returns the committer signature.
func (c *Commit) Committer() Signature {
	return signatureFromEngine(c.commit.Committer)
}

// Tree returns the tree the commit points at.
func (c *Commit) Tree() (*Tree, error) {
	tree, err := c.owner.LookupTree(oidFromHash(c.commit.TreeHash))
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, newGitError(ClassObject, "commit %s references missing tree %s",
			c.commit.Hash, c.commit.TreeHash)
	}
	return tree, nil
}

// Parents loads every parent commit, in parent order.
func (c *Commit) Parents() ([]*Commit, error) {
	parents := make([]*Commit, 0, c.commit.NumParents())
	for i, hash := range c.commit.ParentHashes {
		parent, err := c.owner.LookupCommit(oidFromHash(hash))
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, newGitError(ClassObject, "commit %s references missing parent %d (%s)",
				c.commit.Hash, i, hash)
		}
		parents = append(parents, parent)
	}
	return parents, nil
}

// ParentsOID returns the parent commit ids in parent order, without
// loading the parent objects. This is cheaper than Parents.
func (c *Commit) ParentsOID() []OID {
	oids := make([]OID, len(c.commit.ParentHashes))
	for i, hash := range c.commit.ParentHashes {
		oids[i] = oidFromHash(hash)
	}
	return oids
}

// NthGenAncestor returns the commit's n-th generation ancestor,
// following first parents only. n of 0 returns an equivalent handle to
// the commit itself. It returns nil without error when the first-parent
// chain is shorter than n.
func (c *Commit) NthGenAncestor(n uint) (*Commit, error) {
	current := c.commit
	for ; n > 0; n-- {
		if current.NumParents() == 0 {
			return nil, nil
		}
		parent, err := current.Parent(0)
		if err != nil {
			if isNotFound(err) {
				return nil, nil
			}
			return nil, wrapEngineError(ClassObject, fmt.Sprintf("load parent of %s", current.Hash), err)
		}
		current = parent
	}
	return &Commit{commit: current, owner: c.owner}, nil
}
