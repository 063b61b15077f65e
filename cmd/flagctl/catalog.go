package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Aliases: []string{"c"},
	Short:   "Print the grouped flag catalog as JSON",
	Args:    cobra.NoArgs,
	RunE:    runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(reg.Catalog(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
