package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pg9182/nswine/pkg/registry"
)

var (
	// Global flags
	storePath string
	verbose   bool
	quiet     bool
)

var rootCmd = &cobra.Command{
	Use:   "regedit",
	Short: "Import and export Windows Registry text (.reg) files",
	Long: `regedit imports and exports Windows Registry Editor text files
(.reg, versions 3.1, 4, and 5.00) against a registry tree persisted as a
JSON snapshot. Imports are lenient the way the Windows tool is: malformed
lines are reported and skipped, and the rest of the file still applies.`,
	Version: version,
}

func init() {
	viper.SetEnvPrefix("REGEDIT")
	viper.AutomaticEnv()
	viper.SetDefault("store", "registry.json")
	viper.SetDefault("format", "5")

	rootCmd.PersistentFlags().
		StringVar(&storePath, "store", viper.GetString("store"), "Path to the registry snapshot file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadStore reads the snapshot file, or returns an empty store when the
// file does not exist yet.
func loadStore() (*registry.Store, error) {
	st := registry.NewStore()
	f, err := os.Open(storePath)
	if errors.Is(err, os.ErrNotExist) {
		return st, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	defer f.Close()
	if err := st.Load(f); err != nil {
		return nil, fmt.Errorf("failed to load store %s: %w", storePath, err)
	}
	return st, nil
}

func saveStore(st *registry.Store) error {
	f, err := os.Create(storePath)
	if err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := st.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}
