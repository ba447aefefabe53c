package reg

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pg9182/nswine/internal/regfile"
	"github.com/pg9182/nswine/pkg/types"
)

// ErrInvalidHeader is returned by Import when the input starts with no
// recognized .reg signature.
var ErrInvalidHeader = regfile.ErrInvalidHeader

// Format selects the .reg output dialect.
type Format int

const (
	// Format5 is "Windows Registry Editor Version 5.00": UTF-16LE with a
	// leading byte order mark. This is the default.
	Format5 Format = iota

	// Format4 is the legacy "REGEDIT4" dialect: ANSI text.
	Format4
)

// Report describes a completed import: the detected file version and the
// non-fatal diagnostics collected while parsing.
type Report struct {
	Version     regfile.Version
	Diagnostics []types.Diagnostic
}

// Import applies the .reg stream r to the store.
//
// The input encoding (ANSI or UTF-16LE) is detected from the first two
// bytes. Matching the reference tool, the call fails only for an
// unrecognized header or a read error; per-line problems are reported in
// the Report and the rest of the file still applies.
func Import(r io.Reader, st types.Store) (*Report, error) {
	res, err := regfile.Import(r, st)
	return &Report{Version: res.Version, Diagnostics: res.Diagnostics}, err
}

// ImportFile applies the .reg file at path to the store.
func ImportFile(path string, st types.Store) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reg: %w", err)
	}
	defer f.Close()
	return Import(f, st)
}

// ExportKey writes the subtree at keyPath to w in .reg format.
func ExportKey(w io.Writer, st types.Store, keyPath string, format Format) error {
	return regfile.ExportKey(w, st, keyPath, format == Format5)
}

// ExportAll writes the two machine-wide roots (HKEY_LOCAL_MACHINE and
// HKEY_USERS) to w in .reg format.
func ExportAll(w io.Writer, st types.Store, format Format) error {
	return regfile.ExportAll(w, st, format == Format5)
}

// ExportFile exports to a file. An empty keyPath exports the machine-wide
// roots. The output is written through a temporary file and renamed into
// place, so on error the destination is never left partially written.
func ExportFile(path string, st types.Store, keyPath string, format Format) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("reg: %w", err)
	}
	defer os.Remove(tmp.Name())

	if keyPath != "" {
		err = ExportKey(tmp, st, keyPath, format)
	} else {
		err = ExportAll(tmp, st, format)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
