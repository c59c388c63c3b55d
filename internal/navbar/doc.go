// Package navbar resolves the configured top navigation bar.
//
// Entries are bare paths, link items or groups. Bare paths go through the
// AutoLink resolver; link items keep their text and icon and only get their
// link rewritten; groups compose their prefix onto the children.
package navbar
