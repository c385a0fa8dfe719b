// Package domain defines the core entities for the wiki client.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Page: A wiki page, optionally nested into a forest
//   - PageVersion: A full snapshot of a page at a point in time
//   - Collaborator: An access grant on a private page
//   - User / Session: The authenticated principal and its credential
//
// It also carries the pure logic with real invariants: the page-tree
// builder (BuildTree, FindInTree), the positional line diff (DiffLines),
// and the capability checks views use to decide what to render.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
