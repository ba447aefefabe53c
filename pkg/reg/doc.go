// Package reg is the public API for importing and exporting Windows
// Registry text format (.reg) files against any types.Store.
//
// Import is lenient the way regedit is: a bad header fails the call,
// everything else degrades to per-value diagnostics. Export reproduces
// the reference tool's output byte for byte, in either the version 5.00
// (UTF-16LE) or legacy REGEDIT4 (ANSI) dialect.
package reg
