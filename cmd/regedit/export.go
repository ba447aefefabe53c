package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pg9182/nswine/pkg/reg"
)

var (
	exportFormat string
	exportStdout bool
)

var exportCmd = &cobra.Command{
	Use:   "export <output.reg> [key-path]",
	Short: "Export the registry store to .reg format",
	Long: `Export a key subtree, or the two machine-wide roots
(HKEY_LOCAL_MACHINE and HKEY_USERS) when no key path is given.

The output reproduces Windows regedit's format byte for byte: version
5.00 is UTF-16LE with a byte order mark, version 4 (REGEDIT4) is ANSI.

Examples:
  regedit export everything.reg
  regedit export vendor.reg "HKEY_LOCAL_MACHINE\SOFTWARE\Vendor"
  regedit export --format 4 legacy.reg
  regedit export --stdout - "HKEY_CURRENT_USER\Environment"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().
		StringVar(&exportFormat, "format", "", "Output format version (4 or 5, default from REGEDIT_FORMAT)")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "Write to stdout instead of a file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	outputPath := args[0]
	var keyPath string
	if len(args) > 1 {
		keyPath = args[1]
	}

	if exportFormat == "" {
		exportFormat = viper.GetString("format")
	}

	var format reg.Format
	switch exportFormat {
	case "5":
		format = reg.Format5
	case "4":
		format = reg.Format4
	default:
		return fmt.Errorf("unknown format %q (expected 4 or 5)", exportFormat)
	}

	st, err := loadStore()
	if err != nil {
		return err
	}

	if exportStdout {
		if keyPath != "" {
			return reg.ExportKey(os.Stdout, st, keyPath, format)
		}
		return reg.ExportAll(os.Stdout, st, format)
	}

	if err := reg.ExportFile(outputPath, st, keyPath, format); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	printInfo("exported to %s\n", outputPath)
	return nil
}
