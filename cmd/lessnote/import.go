// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/spf13/cobra"

	"github.com/pdiddy/lessnote/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import study documents and generate cloze items",
	Long: `Import copies the given files into the library, classifies each by its
name, generates cloze items from readable text, and appends everything to
the target group as one batch. Files that cannot be read are reported and
skipped without aborting the rest.

Target either an existing group with --group or a new one with --name.
Because state is in-memory, --export chains an export into the same run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	groupRef, _ := cmd.Flags().GetString("group")
	newName, _ := cmd.Flags().GetString("name")
	exportFormat, _ := cmd.Flags().GetString("export")

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	msgs, err := st.Subscribe(ctx)
	if err != nil {
		return err
	}

	req := store.IngestRequest{Sources: args, NewGroupName: newName}
	if groupRef != "" {
		group, err := st.Resolve(groupRef)
		if err != nil {
			return err
		}
		req.GroupID = group.ID
	}

	summary, err := st.Ingest(ctx, req, os.Stdout)
	if err != nil {
		return err
	}

	drainEvents(msgs)

	if exportFormat != "" {
		path, err := exportGroup(st, summary.GroupID, exportFormat)
		if err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", path)
	}

	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed to import", len(summary.Failures))
	}
	return nil
}

// drainEvents prints the change notifications the run produced so far,
// the same stream a rendering layer would re-render from.
func drainEvents(msgs <-chan *message.Message) {
	for {
		select {
		case msg := <-msgs:
			var ev store.StoreEvent
			if err := json.Unmarshal(msg.Payload, &ev); err == nil {
				fmt.Fprintf(os.Stderr, "store updated: %s %q (+%d files, +%d items)\n",
					ev.Op, ev.GroupName, ev.Files, ev.Items)
			}
			msg.Ack()
		default:
			return
		}
	}
}

func init() {
	importCmd.Flags().String("group", "", "existing target group (name or id)")
	importCmd.Flags().String("name", "", "name for a new target group")
	importCmd.Flags().String("export", "", "export the group after import: csv, xlsx, yaml, or json")

	rootCmd.AddCommand(importCmd)
}
