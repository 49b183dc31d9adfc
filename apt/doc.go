// Package apt reads and edits APT data sources in the deb822 format, the
// *.sources files of /etc/apt/sources.list.d, and fetches the Packages
// indices they point to.
//
// Edits go through the deb822 syntax tree: toggling Enabled, or adding an
// architecture, leaves comments, the layout and an embedded Signed-By key
// block byte for byte as they were.
//
// Reference: sources.list(5), "DEB822-STYLE FORMAT".
package apt
