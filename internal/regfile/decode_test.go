package regfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pg9182/nswine/pkg/types"
)

func TestParseDataType(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantFamily parseFamily
		wantType   types.RegType
		wantRest   string
		wantOK     bool
	}{
		{
			name:       "quoted string",
			line:       `"hello"`,
			wantFamily: familyString,
			wantType:   types.REG_SZ,
			wantRest:   `hello"`,
			wantOK:     true,
		},
		{
			name:       "plain hex",
			line:       "hex:01,02",
			wantFamily: familyBinary,
			wantType:   types.REG_BINARY,
			wantRest:   "01,02",
			wantOK:     true,
		},
		{
			name:       "dword",
			line:       "dword:00000001",
			wantFamily: familyDword,
			wantType:   types.REG_DWORD,
			wantRest:   "00000001",
			wantOK:     true,
		},
		{
			name:       "typed hex expand_sz",
			line:       "hex(2):41,00",
			wantFamily: familyBinary,
			wantType:   types.REG_EXPAND_SZ,
			wantRest:   "41,00",
			wantOK:     true,
		},
		{
			name:       "typed hex multi_sz",
			line:       "hex(7):61,00,00,00,00,00",
			wantFamily: familyBinary,
			wantType:   types.REG_MULTI_SZ,
			wantRest:   "61,00,00,00,00,00",
			wantOK:     true,
		},
		{
			name:       "typed hex uppercase digits",
			line:       "hex(AB):01",
			wantFamily: familyBinary,
			wantType:   types.RegType(0xab),
			wantRest:   "01",
			wantOK:     true,
		},
		{
			name:       "typed hex high bit",
			line:       "hex(80000000):01",
			wantFamily: familyBinary,
			wantType:   types.RegType(0x80000000),
			wantRest:   "01",
			wantOK:     true,
		},
		{
			name:   "typed hex 0x prefix rejected",
			line:   "hex(0x2):41,00",
			wantOK: false,
		},
		{
			name:   "typed hex overflow rejected",
			line:   "hex(100000000):01",
			wantOK: false,
		},
		{
			name:   "typed hex empty type",
			line:   "hex():01",
			wantOK: false,
		},
		{
			name:   "typed hex missing close",
			line:   "hex(2:01",
			wantOK: false,
		},
		{
			name:   "typed hex missing colon",
			line:   "hex(2)01",
			wantOK: false,
		},
		{
			name:   "unrecognized tag",
			line:   "qword:0000000000000001",
			wantOK: false,
		},
		{
			name:   "empty line",
			line:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			family, typ, rest, ok := parseDataType(tt.line)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantFamily, family)
			assert.Equal(t, tt.wantType, typ)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestConvertHexToDword(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   uint32
		wantOK bool
	}{
		{"simple", "00000001", 1, true},
		{"deadbeef", "deadbeef", 0xdeadbeef, true},
		{"short form", "1f", 0x1f, true},
		{"leading blanks", "  \t2a", 0x2a, true},
		{"trailing blanks", "2a   ", 0x2a, true},
		{"trailing comment", "2a  ; note", 0x2a, true},
		{"no digits before comment", "; note", 0, true},
		{"only blanks then comment", "   ;x", 0, true},
		{"empty", "", 0, false},
		{"blanks only", "   ", 0, false},
		{"nine digits", "123456789", 0, false},
		{"garbage tail", "2a junk", 0, false},
		{"0x prefix", "0x2a", 0, false},
		{"non-hex", "zz", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := convertHexToDword(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestConvertHexCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantOut  []byte
		wantCont bool
		wantRest string
		wantOK   bool
	}{
		{
			name:    "simple bytes",
			input:   "01,02,ff",
			wantOut: []byte{0x01, 0x02, 0xff},
			wantOK:  true,
		},
		{
			name:    "single digit bytes",
			input:   "1,2,3",
			wantOut: []byte{1, 2, 3},
			wantOK:  true,
		},
		{
			name:    "blanks around bytes",
			input:   " 01, 02,  03",
			wantOut: []byte{1, 2, 3},
			wantOK:  true,
		},
		{
			name:    "trailing comma",
			input:   "01,02,",
			wantOut: []byte{1, 2},
			wantOK:  true,
		},
		{
			name:     "continuation after comma",
			input:    `01,02,\`,
			wantOut:  []byte{1, 2},
			wantCont: true,
			wantRest: "",
			wantOK:   true,
		},
		{
			name:     "continuation with blanks before backslash",
			input:    `01,  \`,
			wantOut:  []byte{1},
			wantCont: true,
			wantRest: "",
			wantOK:   true,
		},
		{
			name:     "trailing comment",
			input:    "01,02  ; comment",
			wantOut:  []byte{1, 2},
			wantRest: "; comment",
			wantOK:   true,
		},
		{
			name:     "comment after comma",
			input:    "01,;rest",
			wantOut:  []byte{1},
			wantRest: ";rest",
			wantOK:   true,
		},
		{
			name:    "empty input",
			input:   "",
			wantOut: nil,
			wantOK:  true,
		},
		{
			name:   "value above one byte",
			input:  "100",
			wantOK: false,
		},
		{
			name:   "trailing comma then blanks",
			input:  "01, ",
			wantOK: false,
		},
		{
			name:   "garbage between bytes",
			input:  "01,zz,02",
			wantOK: false,
		},
		{
			name:   "backslash without comma",
			input:  `01\`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, cont, rest, ok := convertHexCSV(tt.input, nil)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantOut, out)
			assert.Equal(t, tt.wantCont, cont)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestConvertHexCSVAppends(t *testing.T) {
	out, cont, _, ok := convertHexCSV("03,04", []byte{1, 2})
	require.True(t, ok)
	assert.False(t, cont)
	assert.Equal(t, []byte{1, 2, 3, 4}, out)
}
