// Package deb gives typed access to the Debian files built on the deb822
// format: debian/control, the control file of .deb archives, Packages
// indices and Release files.
//
// # Design Philosophy
//
// Every type here is a thin view over a deb822 paragraph. Accessors decode
// the field they are asked for, and setters edit that field only, so a
// program can update one dependency in a hand-maintained debian/control and
// keep its comments and layout. A field whose value cannot be decoded is
// reported as a *FieldError when it is read, never while parsing.
//
// Relation fields (Depends, Build-Depends, ...) are returned as
// *relations.Relations, which can be edited and evaluated against a
// PackagesIndex.
//
// # Features
//
// Control files:
//   - Source and binary paragraphs of debian/control, with relation fields.
//   - A wrap-and-sort formatter that normalizes relation fields.
//   - Reading the control file of a .deb (control.tar, .gz, .xz or .zst),
//     and rewriting it in place.
//
// Repositories:
//   - Packages indices: lookup by name, newest version, adding a .deb.
//   - Release files: metadata and checksum lists.
//   - Clearsigning (InRelease), stripping and verifying signatures.
//
// Versioning:
//   - Bumping the Debian revision of a version.
package deb
