package regfile

const (
	// ============================================================================
	// .reg File Headers
	// ============================================================================

	// Header31 is the Windows 3.1 registry file signature. Headers that
	// begin with it but match none of the full signatures are "fuzzy":
	// accepted, but imported as a no-op.
	Header31 = "REGEDIT"

	// Header40 is the REGEDIT4 (ANSI) header line.
	Header40 = "REGEDIT4"

	// Header50 is the version 5.00 (UTF-16LE) header line.
	Header50 = "Windows Registry Editor Version 5.00"

	// ============================================================================
	// Structural Tokens
	// ============================================================================

	// CommentPrefix starts a line or trailing comment.
	CommentPrefix = ';'

	// DWORDPrefix identifies a DWORD value payload.
	DWORDPrefix = "dword:"

	// HexPrefix identifies a REG_BINARY hex payload.
	HexPrefix = "hex:"

	// HexTypedPrefix opens a type-tagged hex payload, hex(<type>):.
	HexTypedPrefix = "hex("

	// CRLF is the line terminator emitted by the exporter.
	CRLF = "\r\n"

	// ============================================================================
	// Export Formatting
	// ============================================================================

	// MaxHexChars is the column budget for a physical line of hex data.
	// Once a line reaches it, the exporter wraps with HexLineConcat.
	MaxHexChars = 77

	// HexLineConcat is the hex continuation marker: backslash, CRLF, and
	// the two-space indent of the continuation line.
	HexLineConcat = "\\\r\n  "

	// HexConcatIndent is the column position data resumes at after a wrap.
	HexConcatIndent = 2

	// DWORDSize is the byte size of a REG_DWORD payload.
	DWORDSize = 4

	// ============================================================================
	// Line Reader Buffering
	// ============================================================================

	// readerInitialBufferSize is the initial scanner buffer size.
	readerInitialBufferSize = 64 * 1024 // 64KB

	// readerMaxLineSize is the largest logical line the reader accepts.
	readerMaxLineSize = 16 * 1024 * 1024 // 16MB
)

// utf16LEBOM is the byte order mark that selects UTF-16LE input mode.
var utf16LEBOM = []byte{0xFF, 0xFE}
