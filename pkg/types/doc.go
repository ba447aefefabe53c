// Package types defines the shared API types for the nswine registry
// tooling: the Windows registry value type codes, the abstract
// hierarchical key-value store the .reg codec runs against, and the
// diagnostic type used to report recoverable parse problems.
//
// The Store interface deliberately mirrors the small capability set the
// Windows registry API exposes to regedit: open-or-create, close,
// set-value, delete-value, delete-subtree, and ordered enumeration of
// values and subkeys. Anything that satisfies it (an in-memory tree, a
// real registry backend, a hive file adapter) can be driven by the
// import and export engines in pkg/reg.
package types
