package main

import (
	"os"

	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the registry store as JSON",
	Long: `Print the snapshot form of the store to stdout, in the same JSON
layout the store file uses. Key and value order is preserved.

Examples:
  regedit dump
  regedit --store other.json dump | jq .`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	st, err := loadStore()
	if err != nil {
		return err
	}
	return st.Save(os.Stdout)
}
