// Package file provides the TOML-backed configuration store.
//
// Configuration lives at ~/.wiki/config.toml and holds the server URL plus
// display options. Nested tables are flattened to dot-notation keys, so
// commands and views read "server.url" regardless of how the file nests it.
package file
