// Package sidebar resolves a declarative sidebar configuration against the
// current route into a renderable tree.
//
// A configuration is one of four shapes (see Mode): disabled, auto (the
// current page's own heading outline), an ordered item list, or a map from
// route prefix to item list. Items are either bare paths, pages or groups.
// The shape is decided once when the configuration is decoded; the resolver
// only switches on the decoded tags.
//
// Resolution is pure: the current route and page are passed in explicitly
// and every call returns a fresh tree.
package sidebar
