// Package source provides the scheduling tree that decides what plays next.
//
// The standard composition, root to leaf, is Interrupt → Switch → Chain →
// {Playlist | Repeating}. The player pulls exactly one item from the root
// per track-completion event; everything below recursively pulls from its
// children.
package source

// Source produces playable items one at a time.
//
// Advance returns the next item URI, or ok=false once the source is
// exhausted. An exhausted source keeps returning ok=false on every
// subsequent call unless it is explicitly mutated. Sources are not safe
// for concurrent use; the owner serializes all traversal and mutation.
type Source interface {
	Advance() (item string, ok bool)
}
