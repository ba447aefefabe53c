package regfile

import "strings"

// unescapeString replaces escape sequences in s with their character
// equivalents, stopping at the first unescaped double quote. It returns
// the unescaped text and the unconsumed tail after the closing quote.
// ok is false when no closing quote is found before the end of the
// string; the caller treats that as a malformed line.
//
// Recognized sequences are \n, \r, \0, \\ and \". Any other escaped
// character passes through literally and is reported through warn.
func unescapeString(s string, warn func(c byte)) (val, rest string, ok bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			i++
			if i >= len(s) {
				// trailing backslash, nothing to escape
				if warn != nil {
					warn('\\')
				}
				return b.String(), "", false
			}
			switch e := s[i]; e {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case '0':
				b.WriteByte(0)
			case '\\', '"':
				b.WriteByte(e)
			default:
				if warn != nil {
					warn(e)
				}
				b.WriteByte(e)
			}
		case '"':
			return b.String(), s[i+1:], true
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), "", false
}

// escapeString is the inverse of unescapeString, expanding CR, LF,
// backslash, double quote, and embedded NUL into two-character escape
// sequences. Used only by the exporter.
func escapeString(s string) string {
	if !strings.ContainsAny(s, "\r\n\\\"\x00") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\r':
			b.WriteString(`\r`)
		case '\n':
			b.WriteString(`\n`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case 0:
			b.WriteString(`\0`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
