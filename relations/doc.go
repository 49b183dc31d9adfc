// Package relations parses and edits the dependency expressions found in
// Depends, Build-Depends and the other relationship fields of Debian
// packages.
//
// Reference: https://www.debian.org/doc/debian-policy/ch-relationships.html
//
// A field is a comma separated list of entries. Each entry is a list of
// alternatives separated by "|", and each alternative is a Relation:
//
//	debhelper-compat (= 13), python3:any (>= 3.11) | python3-minimal, libc6 [amd64] <!nocheck>
//
// Like package deb822, the tree is lossless: String gives back the parsed
// text, and edits only rewrite what they touch, fixing up the separators
// around inserted and removed entries. WrapAndSort produces the canonical
// form instead.
//
// Versions are compared with the Debian ordering, epochs and "~" included.
package relations
