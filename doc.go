// Package gitkit provides handle-oriented access to a Git object graph.
//
// It wraps the go-git engine and exposes:
//   - Repository: the owning handle (open, init, clone, discover)
//   - Object handles derived from it (Commit, Tree, Blob, Reference, Index)
//   - An in-memory TreeBuilder for composing tree objects
//   - Engine-driven enumeration (tree walks, status, branch listing)
//
// Every handle keeps a back-reference to the Repository that produced it
// and is only meaningful while that Repository is in use. Enumeration is
// inversion-of-control: the engine calls the supplied function once per
// item, synchronously, on the calling goroutine. There is no way to pause
// a walk and resume it later; the only cancellation mechanism is the
// callback's return value.
//
// A single Repository is not safe for concurrent mutating use. Programs
// that share handles across goroutines must bracket all library usage
// with ThreadsInit and ThreadsShutdown and synchronize mutating calls
// externally.
package gitkit
