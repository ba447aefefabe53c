package regfile

import (
	"encoding/binary"
	"unicode/utf16"

	"golang.org/x/text/encoding"
)

// encodeUTF16LEZeroTerminated encodes a string to UTF-16LE with a null
// terminator. REG_SZ data is stored in this form.
func encodeUTF16LEZeroTerminated(s string) []byte {
	words := utf16.Encode([]rune(s))
	buf := make([]byte, (len(words)+1)*2)
	for i, w := range words {
		binary.LittleEndian.PutUint16(buf[i*2:], w)
	}
	// terminator is already zero from make()
	return buf
}

// encodeUTF16LE encodes a string to UTF-16LE without a terminator.
func encodeUTF16LE(s string) []byte {
	words := utf16.Encode([]rune(s))
	buf := make([]byte, len(words)*2)
	for i, w := range words {
		binary.LittleEndian.PutUint16(buf[i*2:], w)
	}
	return buf
}

// decodeUTF16LE converts UTF-16LE data to a string. A trailing odd byte
// is ignored.
func decodeUTF16LE(data []byte) string {
	if len(data)%2 == 1 {
		data = data[:len(data)-1]
	}
	if len(data) == 0 {
		return ""
	}
	words := make([]uint16, len(data)/2)
	for i := range words {
		words[i] = binary.LittleEndian.Uint16(data[i*2:])
	}
	return string(utf16.Decode(words))
}

// ansiToWide reinterprets raw bytes as ANSI text and widens them to
// UTF-16LE, byte for character, with no terminator added beyond what the
// input carries. Used when hex string data from an ANSI file is prepared
// for the store.
func ansiToWide(data []byte) []byte {
	decoded, err := ansiCodePage.NewDecoder().Bytes(data)
	if err != nil {
		// charmap decoders map every byte; only transform-internal
		// failures land here, in which case keep the raw bytes
		decoded = data
	}
	return encodeUTF16LE(string(decoded))
}

// wideToANSI narrows UTF-16LE data to the ANSI code page. Characters
// outside the code page are replaced rather than failing, matching the
// lossy conversion of the reference tool.
func wideToANSI(data []byte) []byte {
	enc := encoding.ReplaceUnsupported(ansiCodePage.NewEncoder())
	narrowed, err := enc.Bytes([]byte(decodeUTF16LE(data)))
	if err != nil {
		return data
	}
	return narrowed
}
