package reg_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pg9182/nswine/pkg/reg"
	"github.com/pg9182/nswine/pkg/registry"
	"github.com/pg9182/nswine/pkg/types"
)

// importText applies a .reg body to a fresh store, failing on hard errors
// or unexpected diagnostics.
func importText(t *testing.T, body string) *registry.Store {
	t.Helper()
	st := registry.NewStore()
	report, err := reg.Import(strings.NewReader(body), st)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	for _, d := range report.Diagnostics {
		t.Errorf("unexpected diagnostic: %s", d)
	}
	return st
}

func TestImportExportRoundTrip(t *testing.T) {
	input := strings.Join([]string{
		"REGEDIT4",
		"",
		"[HKEY_LOCAL_MACHINE\\SOFTWARE\\Vendor]",
		"@=\"Default\"",
		"\"Path\"=\"C:\\\\Program Files\\\\Vendor\"",
		"\"Count\"=dword:0000002a",
		"\"Blob\"=hex:01,02,0a,ff",
		"\"Env\"=hex(2):25,50,41,54,48,25,00",
		"",
		"[HKEY_LOCAL_MACHINE\\SOFTWARE\\Vendor\\Sub]",
		"\"Nested\"=\"yes\"",
		"",
	}, "\r\n")

	st := importText(t, input)

	var buf bytes.Buffer
	if err := reg.ExportKey(&buf, st, "HKEY_LOCAL_MACHINE\\SOFTWARE\\Vendor", reg.Format4); err != nil {
		t.Fatalf("ExportKey: %v", err)
	}
	first := buf.String()

	// reimport the export into a second store and export again; a stable
	// format reproduces itself exactly
	st2 := registry.NewStore()
	report, err := reg.Import(strings.NewReader(first), st2)
	if err != nil {
		t.Fatalf("reimport: %v", err)
	}
	if len(report.Diagnostics) != 0 {
		t.Fatalf("reimport diagnostics: %v", report.Diagnostics)
	}

	buf.Reset()
	if err := reg.ExportKey(&buf, st2, "HKEY_LOCAL_MACHINE\\SOFTWARE\\Vendor", reg.Format4); err != nil {
		t.Fatalf("ExportKey: %v", err)
	}
	second := buf.String()

	if first != second {
		t.Errorf("round trip not stable:\nfirst:\n%s\nsecond:\n%s", first, second)
	}

	for _, want := range []string{
		"\"Path\"=\"C:\\\\Program Files\\\\Vendor\"\r\n",
		"\"Count\"=dword:0000002a\r\n",
		"\"Blob\"=hex:01,02,0a,ff\r\n",
		"\"Env\"=hex(2):25,50,41,54,48,25,00\r\n",
		"[HKEY_LOCAL_MACHINE\\SOFTWARE\\Vendor\\Sub]\r\n",
	} {
		if !strings.Contains(first, want) {
			t.Errorf("export missing %q in:\n%s", want, first)
		}
	}
}

func TestUnicodeRoundTrip(t *testing.T) {
	// build via the ANSI path, then bounce the tree through a 5.00 export
	input := strings.Join([]string{
		"REGEDIT4",
		"",
		"[HKEY_CURRENT_USER\\Environment]",
		"\"TEMP\"=\"C:\\\\Temp\"",
		"\"Flag\"=dword:00000001",
		"",
	}, "\r\n")
	st := importText(t, input)

	var buf bytes.Buffer
	if err := reg.ExportKey(&buf, st, "HKEY_CURRENT_USER\\Environment", reg.Format5); err != nil {
		t.Fatalf("ExportKey: %v", err)
	}
	raw := buf.Bytes()
	if len(raw) < 2 || raw[0] != 0xFF || raw[1] != 0xFE {
		t.Fatalf("5.00 export missing UTF-16LE BOM: % x", raw[:2])
	}

	st2 := registry.NewStore()
	report, err := reg.Import(bytes.NewReader(raw), st2)
	if err != nil {
		t.Fatalf("reimport: %v", err)
	}
	if got := report.Version.String(); got != "5.00" {
		t.Fatalf("expected 5.00 reimport, got %s", got)
	}

	k, err := st2.OpenKey("HKEY_CURRENT_USER\\Environment")
	if err != nil {
		t.Fatalf("OpenKey: %v", err)
	}
	defer k.Close()
	values, err := k.Values()
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(values))
	}
	if values[0].Name != "TEMP" || values[0].Type != types.REG_SZ {
		t.Errorf("unexpected first value: %+v", values[0])
	}
	if values[1].Name != "Flag" || values[1].Type != types.REG_DWORD {
		t.Errorf("unexpected second value: %+v", values[1])
	}
}

func TestHexStringTerminatorSynthesis(t *testing.T) {
	// hex(2) data without a terminator gains one on import; the export
	// then carries it explicitly and the second import is a fixed point
	input := strings.Join([]string{
		"REGEDIT4",
		"",
		"[HKEY_CURRENT_USER\\Software\\Term]",
		"\"E\"=hex(2):41,42",
		"",
	}, "\r\n")
	st := importText(t, input)

	k, err := st.OpenKey("HKEY_CURRENT_USER\\Software\\Term")
	if err != nil {
		t.Fatalf("OpenKey: %v", err)
	}
	values, err := k.Values()
	k.Close()
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	if len(values) != 1 {
		t.Fatalf("expected 1 value, got %d", len(values))
	}
	want := []byte{0x41, 0, 0x42, 0, 0, 0}
	if !bytes.Equal(values[0].Data, want) {
		t.Fatalf("expected widened terminated data % x, got % x", want, values[0].Data)
	}

	var buf bytes.Buffer
	if err := reg.ExportKey(&buf, st, "HKEY_CURRENT_USER\\Software\\Term", reg.Format4); err != nil {
		t.Fatalf("ExportKey: %v", err)
	}
	if !strings.Contains(buf.String(), "\"E\"=hex(2):41,42,00\r\n") {
		t.Fatalf("unexpected export:\n%s", buf.String())
	}

	st2 := registry.NewStore()
	if _, err := reg.Import(bytes.NewReader(buf.Bytes()), st2); err != nil {
		t.Fatalf("reimport: %v", err)
	}
	k2, err := st2.OpenKey("HKEY_CURRENT_USER\\Software\\Term")
	if err != nil {
		t.Fatalf("OpenKey: %v", err)
	}
	values2, err := k2.Values()
	k2.Close()
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	if !bytes.Equal(values2[0].Data, want) {
		t.Fatalf("terminator synthesis is not a fixed point: % x", values2[0].Data)
	}
}

func TestDeleteDirectivesRoundTrip(t *testing.T) {
	base := strings.Join([]string{
		"REGEDIT4",
		"",
		"[HKEY_CURRENT_USER\\Software\\App]",
		"\"Keep\"=dword:00000001",
		"\"Drop\"=dword:00000002",
		"",
		"[HKEY_CURRENT_USER\\Software\\App\\Stale]",
		"\"X\"=dword:00000003",
		"",
	}, "\r\n")
	st := importText(t, base)

	patch := strings.Join([]string{
		"REGEDIT4",
		"",
		"[HKEY_CURRENT_USER\\Software\\App]",
		"\"Drop\"=-",
		"",
		"[-HKEY_CURRENT_USER\\Software\\App\\Stale]",
		"",
	}, "\r\n")
	report, err := reg.Import(strings.NewReader(patch), st)
	if err != nil {
		t.Fatalf("Import patch: %v", err)
	}
	if len(report.Diagnostics) != 0 {
		t.Fatalf("patch diagnostics: %v", report.Diagnostics)
	}

	var buf bytes.Buffer
	if err := reg.ExportKey(&buf, st, "HKEY_CURRENT_USER\\Software\\App", reg.Format4); err != nil {
		t.Fatalf("ExportKey: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "Drop") || strings.Contains(out, "Stale") {
		t.Errorf("deleted entries survived:\n%s", out)
	}
	if !strings.Contains(out, "\"Keep\"=dword:00000001\r\n") {
		t.Errorf("kept value missing:\n%s", out)
	}
}
