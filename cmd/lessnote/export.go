// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lessnote/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export <name-or-id>",
	Short: "Export a group's cloze items to a file",
	Long: `Export writes all of a group's cloze items to <group name>.<ext> in the
export directory. The CSV format is the canonical review-tool contract
(Text,Original,Priority); xlsx, yaml, and json carry the same rows.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	group, err := st.Resolve(args[0])
	if err != nil {
		return err
	}

	path, err := exportGroup(st, group.ID, format)
	if err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", path)
	return nil
}

// exportGroup dispatches on the export format. Shared with import's
// --export chaining.
func exportGroup(st *store.Store, groupID, format string) (string, error) {
	switch format {
	case "csv", "":
		return st.ExportCSV(groupID)
	case "xlsx":
		return st.ExportXLSX(groupID)
	case "yaml":
		return st.ExportYAML(groupID)
	case "json":
		return st.ExportJSON(groupID)
	default:
		return "", fmt.Errorf("unsupported format %q: use csv, xlsx, yaml, or json", format)
	}
}

func init() {
	exportCmd.Flags().String("format", "csv", "export format: csv, xlsx, yaml, or json")

	rootCmd.AddCommand(exportCmd)
}
