package regfile

import (
	"bufio"
	"bytes"
	"io"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ansiCodePage is the code page legacy (ANSI) .reg files are decoded from
// on import and narrowed to on REGEDIT4 export. Windows-1252 is the usual
// system code page on the platforms this tool targets.
var ansiCodePage = charmap.Windows1252

// lineReader turns a raw .reg byte stream into logical lines.
//
// The encoding is sniffed from the first two bytes: an FF FE byte order
// mark selects UTF-16LE, anything else is treated as ANSI text in
// ansiCodePage. Either way the text is normalized to UTF-8 here, so the
// parser never sees the source encoding. All buffering state lives in the
// reader itself; independent imports never share state.
type lineReader struct {
	sc      *bufio.Scanner
	unicode bool
	lineno  int
}

func newLineReader(r io.Reader) *lineReader {
	br := bufio.NewReader(r)
	lr := &lineReader{}
	if bom, err := br.Peek(len(utf16LEBOM)); err == nil && bytes.Equal(bom, utf16LEBOM) {
		lr.unicode = true
		br.Discard(len(utf16LEBOM))
		dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		lr.sc = bufio.NewScanner(transform.NewReader(br, dec))
	} else {
		lr.sc = bufio.NewScanner(transform.NewReader(br, ansiCodePage.NewDecoder()))
	}
	lr.sc.Buffer(make([]byte, 0, readerInitialBufferSize), readerMaxLineSize)
	lr.sc.Split(scanRegLines)
	return lr
}

// next returns the next logical line with its terminator stripped, or
// ok=false at end of stream.
func (lr *lineReader) next() (line string, ok bool) {
	if !lr.sc.Scan() {
		return "", false
	}
	lr.lineno++
	return lr.sc.Text(), true
}

func (lr *lineReader) err() error { return lr.sc.Err() }

// scanRegLines is a bufio.SplitFunc recognizing "\r\n", "\n", and a bare
// "\r" as line terminators.
func scanRegLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		advance = i + 1
		if data[i] == '\r' {
			if i+1 >= len(data) && !atEOF {
				// need one more byte to see if this is "\r\n"
				return 0, nil, nil
			}
			if i+1 < len(data) && data[i+1] == '\n' {
				advance++
			}
		}
		return advance, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
