package regfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/pg9182/nswine/pkg/types"
)

// Version classifies the header line of a .reg stream.
type Version int

const (
	Version31      Version = iota // bare "REGEDIT" (Windows 3.1)
	Version40                     // "REGEDIT4"
	Version50                     // "Windows Registry Editor Version 5.00"
	VersionFuzzy                  // starts with "REGEDIT" but matches nothing
	VersionInvalid                // no recognized signature
)

// String implements the Stringer interface for Version
func (v Version) String() string {
	switch v {
	case Version31:
		return "3.1"
	case Version40:
		return "4"
	case Version50:
		return "5.00"
	case VersionFuzzy:
		return "fuzzy"
	default:
		return "invalid"
	}
}

// parseFileHeader classifies a header line. Headers beginning with
// "REGEDIT" that match no full signature are "fuzzy": the import
// succeeds but performs no mutations, matching the reference tool.
func parseFileHeader(s string) Version {
	switch s = skipBlanks(s); s {
	case Header31:
		return Version31
	case Header40:
		return Version40
	case Header50:
		return Version50
	}
	if strings.HasPrefix(s, Header31) {
		return VersionFuzzy
	}
	return VersionInvalid
}

// parserState is the current state of the import state machine.
type parserState int

const (
	stateHeader           parserState = iota // parsing the registry file version header
	stateParseWin31Line                      // parsing a Windows 3.1 registry line
	stateLineStart                           // at the beginning of a registry line
	stateKeyName                             // parsing a key name
	stateDeleteKey                           // deleting a registry key
	stateDefaultValueName                    // parsing a default value name
	stateQuotedValueName                     // parsing a double-quoted value name
	stateDataStart                           // preparing for data parsing operations
	stateDeleteValue                         // deleting a registry value
	stateDataType                            // parsing the registry data type
	stateStringData                          // parsing REG_SZ data
	stateDwordData                           // parsing DWORD data
	stateHexData                             // parsing REG_BINARY, REG_NONE, REG_EXPAND_SZ or REG_MULTI_SZ data
	stateEOLBackslash                        // preparing to parse multiple lines of hex data
	stateHexMultiline                        // parsing multiple lines of hex data
	stateUnknownData                         // parsing an unhandled or invalid data type
	stateSetValue                            // adding a value to the registry
)

// parser is the live state of one in-progress import. It is created per
// call and never shared, so independent imports are fully isolated.
type parser struct {
	lines     *lineReader
	store     types.Store
	version   Version
	key       types.Key      // currently open key, at most one
	valueName string         // pending value name; "" is the default value
	family    parseFamily    // generic data type for parsing
	dataType  types.RegType  // concrete data type to store
	data      []byte         // pending value data
	state     parserState
	diags     []types.Diagnostic
}

// Result describes a completed import.
type Result struct {
	Version     Version
	Diagnostics []types.Diagnostic
}

// Import parses a .reg stream and applies its mutations to the store.
//
// Only an unrecognized header (or a read error) fails the call. Per-line
// problems abandon the affected value or key, surface as diagnostics in
// the Result, and parsing resynchronizes on the next line. A fuzzy
// header succeeds with zero mutations.
func Import(r io.Reader, st types.Store) (*Result, error) {
	p := &parser{
		lines:   newLineReader(r),
		store:   st,
		version: VersionInvalid,
		state:   stateHeader,
	}
	p.run()
	p.closeKey()

	res := &Result{Version: p.version, Diagnostics: p.diags}
	if err := p.lines.err(); err != nil {
		return res, fmt.Errorf("regfile: read: %w", err)
	}
	if p.version == VersionInvalid {
		return res, ErrInvalidHeader
	}
	return res, nil
}

// run drives the state machine until a handler signals end of input.
func (p *parser) run() {
	pos, ok := "", true
	for ok {
		switch p.state {
		case stateHeader:
			pos, ok = p.headerState(pos)
		case stateParseWin31Line:
			pos, ok = p.parseWin31LineState(pos)
		case stateLineStart:
			pos, ok = p.lineStartState(pos)
		case stateKeyName:
			pos, ok = p.keyNameState(pos)
		case stateDeleteKey:
			pos, ok = p.deleteKeyState(pos)
		case stateDefaultValueName:
			pos, ok = p.defaultValueNameState(pos)
		case stateQuotedValueName:
			pos, ok = p.quotedValueNameState(pos)
		case stateDataStart:
			pos, ok = p.dataStartState(pos)
		case stateDeleteValue:
			pos, ok = p.deleteValueState(pos)
		case stateDataType:
			pos, ok = p.dataTypeState(pos)
		case stateStringData:
			pos, ok = p.stringDataState(pos)
		case stateDwordData:
			pos, ok = p.dwordDataState(pos)
		case stateHexData:
			pos, ok = p.hexDataState(pos)
		case stateEOLBackslash:
			pos, ok = p.eolBackslashState(pos)
		case stateHexMultiline:
			pos, ok = p.hexMultilineState(pos)
		case stateUnknownData:
			pos, ok = p.unknownDataState(pos)
		case stateSetValue:
			pos, ok = p.setValueState(pos)
		}
	}
}

func (p *parser) warnf(format string, args ...any) {
	p.diags = append(p.diags, types.Diagnostic{
		Line:    p.lines.lineno,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *parser) warnEscape(c byte) {
	p.warnf("unrecognized escape sequence \\%c", c)
}

func (p *parser) openKey(path string) {
	p.closeKey()
	k, err := p.store.CreateKey(path)
	if err != nil {
		p.warnf("unable to open key %q: %v", path, err)
		return
	}
	p.key = k
}

func (p *parser) closeKey() {
	if p.key != nil {
		p.key.Close()
		p.key = nil
	}
}

func (p *parser) freeData() {
	p.data = nil
}

// prepareHexStringData finalizes hex-decoded string data before commit:
// REG_EXPAND_SZ and REG_MULTI_SZ buffers must end in a NUL terminator,
// and data read from an ANSI file is widened to UTF-16LE.
func (p *parser) prepareHexStringData() {
	if p.dataType != types.REG_EXPAND_SZ && p.dataType != types.REG_MULTI_SZ {
		return
	}
	if p.lines.unicode {
		// the terminator is a full wide character here
		if len(p.data) < 2 || p.data[len(p.data)-2] != 0 || p.data[len(p.data)-1] != 0 {
			p.data = append(p.data, 0, 0)
		}
		return
	}
	if len(p.data) == 0 || p.data[len(p.data)-1] != 0 {
		p.data = append(p.data, 0)
	}
	p.data = ansiToWide(p.data)
}

// handler for the HEADER state
func (p *parser) headerState(pos string) (string, bool) {
	line, ok := p.lines.next()
	if !ok {
		return "", false
	}

	p.version = parseFileHeader(line)
	switch p.version {
	case Version31:
		p.state = stateParseWin31Line
	case Version40, Version50:
		p.state = stateLineStart
	default:
		// fuzzy or invalid: stop immediately
		return "", false
	}
	return line, true
}

// handler for the PARSE_WIN31_LINE state
func (p *parser) parseWin31LineState(pos string) (string, bool) {
	line, ok := p.lines.next()
	if !ok {
		return "", false
	}

	// only HKEY_CLASSES_ROOT lines existed in 3.1 files; skip the rest
	if !strings.HasPrefix(line, "HKEY_CLASSES_ROOT") {
		return line, true
	}

	keyEnd := strings.IndexFunc(line, unicode.IsSpace)
	if keyEnd < 0 {
		keyEnd = len(line)
	}
	value := skipBlanks(line[keyEnd:])
	value = strings.TrimPrefix(value, "=")
	if strings.HasPrefix(value, " ") {
		value = value[1:] // at most one space is skipped
	}

	p.openKey(line[:keyEnd])
	if p.key == nil {
		return line, true
	}

	p.valueName = ""
	p.dataType = types.REG_SZ
	p.family = familyString
	p.data = encodeUTF16LEZeroTerminated(value)

	p.state = stateSetValue
	return value, true
}

// handler for the LINE_START state
func (p *parser) lineStartState(pos string) (string, bool) {
	line, ok := p.lines.next()
	if !ok {
		return "", false
	}

	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '[':
			p.state = stateKeyName
			return line[i+1:], true
		case '@':
			p.state = stateDefaultValueName
			return line[i:], true
		case '"':
			p.state = stateQuotedValueName
			return line[i+1:], true
		case ' ', '\t':
		default:
			return line[i:], true
		}
	}
	return "", true
}

// handler for the KEY_NAME state
func (p *parser) keyNameState(pos string) (string, bool) {
	s := pos

	// the last ']' ends the name, so unescaped ']' may appear inside it
	end := strings.LastIndexByte(s, ']')
	if end < 0 || strings.HasPrefix(s, " ") || strings.HasPrefix(s, "\t") {
		p.state = stateLineStart
		return s, true
	}
	name := s[:end]

	if strings.HasPrefix(name, "-") {
		p.state = stateDeleteKey
		return name[1:], true
	}
	p.openKey(name)

	p.state = stateLineStart
	return name, true
}

// handler for the DELETE_KEY state
func (p *parser) deleteKeyState(pos string) (string, bool) {
	if strings.HasPrefix(pos, "H") || strings.HasPrefix(pos, "h") {
		if err := p.store.DeleteTree(pos); err != nil {
			p.warnf("unable to delete key %q: %v", pos, err)
		}
	}
	p.state = stateLineStart
	return pos, true
}

// handler for the DEFAULT_VALUE_NAME state
func (p *parser) defaultValueNameState(pos string) (string, bool) {
	p.valueName = ""
	p.state = stateDataStart
	return pos[1:], true
}

// handler for the QUOTED_VALUE_NAME state
func (p *parser) quotedValueNameState(pos string) (string, bool) {
	name, rest, ok := unescapeString(pos, p.warnEscape)
	if !ok {
		p.state = stateLineStart
		return rest, true
	}
	p.valueName = name
	p.state = stateDataStart
	return rest, true
}

// handler for the DATA_START state
func (p *parser) dataStartState(pos string) (string, bool) {
	s := skipBlanks(pos)
	if !strings.HasPrefix(s, "=") {
		p.state = stateLineStart
		return s, true
	}
	s = skipBlanks(s[1:])
	s = strings.TrimRight(s, " \t")

	if strings.HasPrefix(s, "-") {
		p.state = stateDeleteValue
	} else {
		p.state = stateDataType
	}
	return s, true
}

// handler for the DELETE_VALUE state
func (p *parser) deleteValueState(pos string) (string, bool) {
	s := skipBlanks(pos[1:])
	if s == "" || s[0] == CommentPrefix {
		if p.key != nil {
			// a missing value is not an error here
			_ = p.key.DeleteValue(p.valueName)
		}
	}
	p.state = stateLineStart
	return s, true
}

// handler for the DATA_TYPE state
func (p *parser) dataTypeState(pos string) (string, bool) {
	family, typ, rest, ok := parseDataType(pos)
	if !ok {
		p.state = stateLineStart
		return rest, true
	}
	p.family = family
	p.dataType = typ

	switch family {
	case familyString:
		p.state = stateStringData
	case familyDword:
		p.state = stateDwordData
	case familyBinary:
		p.state = stateHexData
	default:
		p.state = stateUnknownData
	}
	return rest, true
}

// handler for the STRING_DATA state
func (p *parser) stringDataState(pos string) (string, bool) {
	val, rest, ok := unescapeString(pos, p.warnEscape)
	if ok {
		tail := skipBlanks(rest)
		if tail == "" || tail[0] == CommentPrefix {
			p.data = encodeUTF16LEZeroTerminated(val)
			p.state = stateSetValue
			return tail, true
		}
		rest = tail
	}
	p.freeData()
	p.state = stateLineStart
	return rest, true
}

// handler for the DWORD_DATA state
func (p *parser) dwordDataState(pos string) (string, bool) {
	dw, ok := convertHexToDword(pos)
	if !ok {
		p.freeData()
		p.state = stateLineStart
		return pos, true
	}
	p.data = make([]byte, DWORDSize)
	binary.LittleEndian.PutUint32(p.data, dw)

	p.state = stateSetValue
	return pos, true
}

// handler for the HEX_DATA state
func (p *parser) hexDataState(pos string) (string, bool) {
	data, cont, rest, ok := convertHexCSV(pos, p.data)
	if !ok {
		p.freeData()
		p.state = stateLineStart
		return rest, true
	}
	p.data = data

	if cont {
		// data so far is retained, not committed
		p.state = stateEOLBackslash
		return rest, true
	}

	p.prepareHexStringData()
	p.state = stateSetValue
	return rest, true
}

// handler for the EOL_BACKSLASH state
func (p *parser) eolBackslashState(pos string) (string, bool) {
	s := skipBlanks(pos)
	if s != "" && s[0] != CommentPrefix {
		p.freeData()
		p.state = stateLineStart
		return s, true
	}
	p.state = stateHexMultiline
	return pos, true
}

// handler for the HEX_MULTILINE state
func (p *parser) hexMultilineState(pos string) (string, bool) {
	line, ok := p.lines.next()
	if !ok {
		// end of input: commit what we have
		p.prepareHexStringData()
		p.state = stateSetValue
		return pos, true
	}

	line = skipBlanks(line)
	if line == "" || line[0] == CommentPrefix {
		return line, true
	}
	if !isHexDigit(line[0]) {
		p.freeData()
		p.state = stateLineStart
		return line, true
	}

	p.state = stateHexData
	return line, true
}

// handler for the UNKNOWN_DATA state. Unreachable while parseDataType's
// prefix set and the family dispatch stay in sync; kept as the backstop
// for a family with no data handler.
func (p *parser) unknownDataState(pos string) (string, bool) {
	p.warnf("unrecognized data format %d", uint32(p.dataType))
	p.freeData()
	p.state = stateLineStart
	return pos, true
}

// handler for the SET_VALUE state
func (p *parser) setValueState(pos string) (string, bool) {
	if p.key != nil {
		if err := p.key.SetValue(p.valueName, p.dataType, p.data); err != nil {
			p.warnf("unable to set value %q: %v", p.valueName, err)
		}
	}
	p.freeData()

	if p.version == Version31 {
		p.state = stateParseWin31Line
	} else {
		p.state = stateLineStart
	}
	return pos, true
}
