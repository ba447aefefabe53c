package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <key-path>",
	Short: "Delete a registry key and its subtree",
	Long: `Delete a key, all of its values, and all of its subkeys.

Deleting a key that does not exist is not an error; deleting a root key
(for example HKEY_LOCAL_MACHINE itself) is refused.

Examples:
  regedit delete "HKEY_CURRENT_USER\Software\Vendor"`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	st, err := loadStore()
	if err != nil {
		return err
	}

	if err := st.DeleteTree(args[0]); err != nil {
		return fmt.Errorf("failed to delete %s: %w", args[0], err)
	}

	if err := saveStore(st); err != nil {
		return err
	}
	printInfo("deleted %s\n", args[0])
	return nil
}
