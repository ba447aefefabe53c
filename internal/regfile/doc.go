// Package regfile implements the Windows Registry text format (.reg)
// codec: a lenient state-machine importer for the 3.1, 4 (REGEDIT4/ANSI)
// and 5.00 (UTF-16LE) file versions, and the matching exporter.
//
// The importer reproduces the reference tool's recovery behavior: only an
// unrecognized header fails the call; malformed values, bad escapes, and
// unresolvable key paths abandon the affected value or key, surface as
// diagnostics, and parsing resynchronizes on the next line. A header that
// begins with "REGEDIT" but matches no full signature imports as a
// successful no-op.
//
// The exporter reproduces the reference output byte for byte: CRLF line
// endings, a leading FF FE byte order mark in 5.00 mode, quoted escaped
// strings for well-formed REG_SZ values, dword: with eight zero-padded
// digits, and comma-separated lowercase hex data wrapped with a
// backslash continuation at the 77-column budget.
//
// Both directions normalize text at the boundary: input is decoded to
// UTF-8 by the line reader regardless of source encoding, and the output
// encoding is applied by the line writer. All parser state is per-call;
// concurrent imports on separate readers are independent.
package regfile
