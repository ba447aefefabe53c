// Package registry provides key path handling for the six registry root
// classes and an in-memory implementation of the types.Store interface.
//
// The in-memory store follows Windows registry naming rules: key and
// value names compare case-insensitively but keep the spelling they were
// first created with, and values and subkeys enumerate in insertion
// order. It backs the regedit CLI (persisted as a JSON snapshot between
// invocations) and the codec tests.
package registry
