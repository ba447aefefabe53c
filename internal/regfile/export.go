package regfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"

	"github.com/pg9182/nswine/pkg/registry"
	"github.com/pg9182/nswine/pkg/types"
)

// lineWriter encodes formatted lines to the output encoding: UTF-16LE
// for version 5.00 exports, the ANSI code page for REGEDIT4 exports.
type lineWriter struct {
	w       io.Writer
	unicode bool
	enc     *encoding.Encoder
}

func newLineWriter(w io.Writer, unicode bool) *lineWriter {
	lw := &lineWriter{w: w, unicode: unicode}
	if !unicode {
		lw.enc = encoding.ReplaceUnsupported(ansiCodePage.NewEncoder())
	}
	return lw
}

func (lw *lineWriter) writeString(s string) error {
	var b []byte
	if lw.unicode {
		b = encodeUTF16LE(s)
	} else {
		var err error
		if b, err = lw.enc.Bytes([]byte(s)); err != nil {
			return fmt.Errorf("regfile: encode output: %w", err)
		}
	}
	_, err := lw.w.Write(b)
	return err
}

// writeHeader emits the BOM and title line for 5.00 mode, or the
// REGEDIT4 line for legacy mode.
func (lw *lineWriter) writeHeader() error {
	if lw.unicode {
		if _, err := lw.w.Write(utf16LEBOM); err != nil {
			return err
		}
		return lw.writeString(Header50 + CRLF)
	}
	return lw.writeString(Header40 + CRLF)
}

type exporter struct {
	lw *lineWriter
	st types.Store
}

// ExportKey writes the subtree at path in .reg format. The path must
// resolve to an openable key; otherwise the export fails with no output
// written.
func ExportKey(w io.Writer, st types.Store, path string, unicode bool) error {
	key, err := st.OpenKey(path)
	if err != nil {
		return fmt.Errorf("regfile: open export key %q: %w", path, err)
	}
	defer key.Close()

	e := &exporter{lw: newLineWriter(w, unicode), st: st}
	if err := e.lw.writeHeader(); err != nil {
		return err
	}
	return e.exportKey(key, path)
}

// ExportAll writes the two machine-wide roots, HKEY_LOCAL_MACHINE and
// HKEY_USERS, in .reg format.
func ExportAll(w io.Writer, st types.Store, unicode bool) error {
	e := &exporter{lw: newLineWriter(w, unicode), st: st}
	if err := e.lw.writeHeader(); err != nil {
		return err
	}
	for _, root := range []string{registry.HKEYLocalMachine, registry.HKEYUsers} {
		key, err := e.st.OpenKey(root)
		if err != nil {
			return fmt.Errorf("regfile: open export key %q: %w", root, err)
		}
		err = e.exportKey(key, root)
		key.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// exportKey emits one key with its values, then recurses into subkeys in
// store enumeration order, building each child's path from the parent's.
func (e *exporter) exportKey(key types.Key, path string) error {
	if err := e.lw.writeString(CRLF + "[" + path + "]" + CRLF); err != nil {
		return err
	}

	values, err := key.Values()
	if err != nil {
		return err
	}
	for _, v := range values {
		if err := e.exportValue(v); err != nil {
			return err
		}
	}

	subkeys, err := key.Subkeys()
	if err != nil {
		return err
	}
	for _, name := range subkeys {
		childPath := path + registry.Separator + name
		child, err := e.st.OpenKey(childPath)
		if err != nil {
			continue
		}
		err = e.exportKey(child, childPath)
		child.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// exportValue formats one value line (possibly wrapped across physical
// lines for hex data) and writes it out.
func (e *exporter) exportValue(v types.Value) error {
	var b strings.Builder
	var lineLen int

	if v.Name == "" {
		b.WriteString("@=")
		lineLen = 2
	} else {
		name := escapeString(v.Name)
		b.WriteString(`"`)
		b.WriteString(name)
		b.WriteString(`"=`)
		lineLen = utf8.RuneCountInString(name) + 3
	}

	switch {
	case v.Type == types.REG_SZ && wellFormedSZ(v.Data):
		str := decodeUTF16LE(v.Data[:len(v.Data)-2])
		b.WriteString(`"`)
		b.WriteString(escapeString(str))
		b.WriteString(`"`)
		b.WriteString(CRLF)
	case v.Type == types.REG_DWORD && len(v.Data) == DWORDSize:
		fmt.Fprintf(&b, "dword:%08x", binary.LittleEndian.Uint32(v.Data))
		b.WriteString(CRLF)
	default:
		e.appendHexData(&b, v, lineLen)
	}

	return e.lw.writeString(b.String())
}

// wellFormedSZ reports whether raw REG_SZ bytes form a NUL-terminated
// UTF-16LE string with no embedded NUL except the terminator. Anything
// else is dumped as hex(1): data instead of a quoted string.
func wellFormedSZ(data []byte) bool {
	if len(data) < 2 || len(data)%2 != 0 {
		return false
	}
	if data[len(data)-2] != 0 || data[len(data)-1] != 0 {
		return false
	}
	for i := 0; i < len(data)-2; i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			return false
		}
	}
	return true
}

// appendHexData emits a hex: or hex(n): payload, wrapping once a line
// reaches the MaxHexChars column budget. String-family payloads are
// narrowed to the ANSI code page first in REGEDIT4 mode.
func (e *exporter) appendHexData(b *strings.Builder, v types.Value, lineLen int) {
	data := v.Data
	if v.Type == types.REG_BINARY {
		b.WriteString(HexPrefix)
		lineLen += len(HexPrefix)
	} else {
		prefix := fmt.Sprintf("hex(%x):", uint32(v.Type))
		b.WriteString(prefix)
		lineLen += len(prefix)
		if !e.lw.unicode &&
			(v.Type == types.REG_SZ || v.Type == types.REG_EXPAND_SZ || v.Type == types.REG_MULTI_SZ) {
			data = wideToANSI(data)
		}
	}

	for i := 0; i < len(data); i++ {
		fmt.Fprintf(b, "%02x", data[i])
		if i == len(data)-1 {
			break
		}
		b.WriteByte(',')
		lineLen += 3
		if lineLen >= MaxHexChars {
			b.WriteString(HexLineConcat)
			lineLen = HexConcatIndent
		}
	}
	b.WriteString(CRLF)
}
