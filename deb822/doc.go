// Package deb822 parses and edits RFC 822 style Debian files, such as
// debian/control, Packages indices, Release files and .sources files,
// without losing a single byte of the input.
//
// Reference: https://manpages.debian.org/unstable/dpkg-dev/deb822.5.en.html
//
// # Design Philosophy
//
// A Document is a lossless syntax tree: comments, blank lines, unusual
// indentation and even malformed lines are kept, and String reproduces the
// input exactly. Edits through Paragraph and Entry only rewrite the field
// they touch, so a tool can change one value in a hand-written file and
// produce a minimal diff.
//
// Parsing never stops on bad input. ParseRelaxed returns a usable document
// together with diagnostics; Parse turns any diagnostic into a *ParseError.
//
// # Features
//
//   - Strict and relaxed parsing, from strings or io.Reader.
//   - Field access by case-insensitive name, with "." continuation lines
//     decoded.
//   - Field insertion, removal, renaming and reordering.
//   - Paragraph insertion and removal.
//   - A configurable "wrap and sort" formatter with pluggable field order
//     and value rewriting.
package deb822
