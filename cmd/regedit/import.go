package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pg9182/nswine/pkg/reg"
)

var importCmd = &cobra.Command{
	Use:   "import <file.reg>...",
	Short: "Apply .reg files to the registry store",
	Long: `Apply one or more Registry Editor files to the store, left to right.

All three file versions are accepted: Windows 3.1 ("REGEDIT"), version 4
("REGEDIT4", ANSI) and version 5.00 (UTF-16LE). Key creation, key and
value deletion, string, dword, and hex data (including typed hex(n):
forms with multi-line continuations) are supported.

Problems inside a file are reported on stderr and the affected value or
key skipped; only a file with an unrecognized header fails the command.

Examples:
  # Apply one file
  regedit import settings.reg

  # Apply several; later files win on conflicts
  regedit import base.reg patch.reg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	st, err := loadStore()
	if err != nil {
		return err
	}

	for _, path := range args {
		printVerbose("importing %s\n", path)
		report, err := reg.ImportFile(path, st)
		if report != nil {
			for _, d := range report.Diagnostics {
				fmt.Fprintf(os.Stderr, "%s: %s\n", path, d)
			}
		}
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", path, err)
		}
		printVerbose("  format version %s\n", report.Version)
	}

	if err := saveStore(st); err != nil {
		return err
	}
	printInfo("imported %d file(s)\n", len(args))
	return nil
}
