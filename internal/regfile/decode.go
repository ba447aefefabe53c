package regfile

import (
	"strconv"
	"strings"

	"github.com/pg9182/nswine/pkg/types"
)

// parseFamily selects the decoding routine for a value payload. It can
// differ from the concrete registry type: hex(2): decodes as binary data
// but stores REG_EXPAND_SZ.
type parseFamily int

const (
	familyNone parseFamily = iota
	familyString
	familyDword
	familyBinary
)

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func skipBlanks(s string) string {
	return strings.TrimLeft(s, " \t")
}

// parseDataType recognizes the data type tag at the start of a value
// payload and returns the parse family, the concrete registry type, and
// the unconsumed remainder of the line.
//
// The tags, in match order: a double quote (REG_SZ), "hex:" (REG_BINARY),
// "dword:" (REG_DWORD), and "hex(<type>):" where <type> is the concrete
// type in hex and must fit an unsigned 32-bit integer.
func parseDataType(line string) (family parseFamily, typ types.RegType, rest string, ok bool) {
	switch {
	case strings.HasPrefix(line, `"`):
		return familyString, types.REG_SZ, line[1:], true

	case strings.HasPrefix(line, HexPrefix):
		return familyBinary, types.REG_BINARY, line[len(HexPrefix):], true

	case strings.HasPrefix(line, DWORDPrefix):
		return familyDword, types.REG_DWORD, line[len(DWORDPrefix):], true

	case strings.HasPrefix(line, HexTypedPrefix):
		rest = line[len(HexTypedPrefix):]
		// "hex(0x...):" is rejected, not parsed; quirk kept from the
		// reference tool
		if rest == "" || len(rest) > 1 && lowerByte(rest[1]) == 'x' {
			return familyNone, 0, rest, false
		}
		n := 0
		for n < len(rest) && isHexDigit(rest[n]) {
			n++
		}
		if n == 0 {
			return familyNone, 0, rest, false
		}
		v, err := strconv.ParseUint(rest[:n], 16, 32)
		if err != nil {
			return familyNone, 0, rest, false
		}
		if n+1 >= len(rest) || rest[n] != ')' || rest[n+1] != ':' {
			return familyNone, 0, rest, false
		}
		return familyBinary, types.RegType(v), rest[n+2:], true
	}
	return familyNone, 0, line, false
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

// convertHexToDword parses the textual payload of a dword: value. Leading
// whitespace is skipped, at most 8 hex digits are accepted, and the tail
// may only be whitespace or a comment.
func convertHexToDword(s string) (uint32, bool) {
	s = skipBlanks(s)
	if s == "" {
		return 0, false
	}
	n := 0
	for n < len(s) && isHexDigit(s[n]) {
		n++
	}
	if n > 8 {
		return 0, false
	}
	tail := skipBlanks(s[n:])
	if tail != "" && tail[0] != CommentPrefix {
		return 0, false
	}
	if n == 0 {
		// no digits parse as zero, like the reference tool
		return 0, true
	}
	v, err := strconv.ParseUint(s[:n], 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

// convertHexCSV decodes a comma-separated list of hex byte values,
// appending to buf. Bytes may be one or two digits; values above 0xFF are
// rejected. A lone backslash after the last comma marks a continuation
// onto the next physical line and is reported through cont rather than
// consumed as data. A ';' begins a trailing comment. rest is the
// unconsumed tail (after the backslash when cont is set).
func convertHexCSV(s string, buf []byte) (out []byte, cont bool, rest string, ok bool) {
	out = buf
	i := 0
	for i < len(s) {
		j := i
		for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
			j++
		}
		n := j
		var v uint32
		for n < len(s) && isHexDigit(s[n]) {
			v = v<<4 | uint32(hexNibble(s[n]))
			if v > 0xff {
				return out, false, s[n:], false
			}
			n++
		}

		if n == j {
			// no digits: only a continuation backslash or a comment may
			// follow
			if j < len(s) && s[j] == '\\' {
				return out, true, s[j+1:], true
			}
			if j < len(s) && s[j] == CommentPrefix {
				return out, false, s[j:], true
			}
			return out, false, s[j:], false
		}

		out = append(out, byte(v))

		if n == len(s) {
			return out, false, "", true
		}
		if s[n] != ',' {
			k := n
			for k < len(s) && (s[k] == ' ' || s[k] == '\t') {
				k++
			}
			if k == len(s) || s[k] == CommentPrefix {
				return out, false, s[k:], true
			}
			return out, false, s[k:], false
		}
		i = n + 1
	}
	return out, false, "", true
}
