// Package syntax implements the lossless syntax tree shared by the deb822 and
// dependency-relation grammars.
//
// # Design Philosophy
//
// The tree has two layers. The green layer (GreenNode, GreenToken) is an
// immutable, structurally shared tree holding only kind tags and raw text:
// concatenating the text of every token in order gives back the exact input
// that was parsed. Two green elements are equal when their kinds and text are
// equal, regardless of where they live in memory.
//
// The red layer (Node) is a positioned view over a green root. A Node is a
// shared tree handle plus the index path from the root, so it knows its
// parent, its siblings and its absolute offset without the green layer ever
// storing a parent pointer. Edits made through a Node rebuild the green path
// from the edited element up to the root (copy-on-write) and install the new
// root in the shared handle, so every Node of the same document observes the
// change.
//
// # Features
//
//   - Grammar-agnostic: each grammar declares its own Kind constants.
//   - Builder for recursive-descent parsers (StartNode, Token, FinishNode).
//   - Navigation: Parent, Children, siblings, ancestors, offsets.
//   - Mutation: Replace, Splice, Detach.
//   - Debug dumps of a tree with Dump.
package syntax
