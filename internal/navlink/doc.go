// Package navlink holds the link helpers shared by the sidebar and navbar
// resolvers: prefix joining, external link detection, Markdown path to route
// normalisation and the AutoLink resolver that turns a bare path into a
// navigation item using page metadata.
package navlink
