// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lessnote/pkg/types"
)

// priorityColors maps each priority level to its display color. Pure
// presentation metadata; the store knows nothing about colors.
var priorityColors = map[types.Priority]*color.Color{
	types.PriorityHigh:   color.New(color.FgRed),
	types.PriorityMedium: color.New(color.FgYellow),
	types.PriorityLow:    color.New(color.FgGreen),
}

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage knowledge groups (create, list, show)",
}

var groupCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty knowledge group",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupCreate,
}

func runGroupCreate(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	group, err := st.CreateGroup(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Created group %q (%s)\n", group.Name, group.ID)
	return nil
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List knowledge groups",
	RunE:  runGroupList,
}

func runGroupList(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	groups := st.Groups()
	if len(groups) == 0 {
		fmt.Println("No groups.")
		return nil
	}

	fmt.Printf("%-20s  %-6s  %-6s  %s\n", "Name", "Files", "Items", "ID")
	for _, g := range groups {
		fmt.Printf("%-20s  %-6d  %-6d  %s\n", g.Name, len(g.Files), g.ItemCount(), g.ID)
	}
	return nil
}

var groupShowCmd = &cobra.Command{
	Use:   "show <name-or-id>",
	Short: "Show a group's files and a preview of its cloze items",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupShow,
}

func runGroupShow(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	group, err := st.Resolve(args[0])
	if err != nil {
		return err
	}

	maxPreview := viper.GetInt("max_preview")
	if maxPreview <= 0 {
		maxPreview = 3
	}

	fmt.Printf("%s (%s)\n", group.Name, group.ID)

	fmt.Printf("\nFiles (%d):\n", len(group.Files))
	for _, f := range group.Files {
		fmt.Printf("  %-20s  %s\n", f.Category, filepath.Base(f.Path))
	}

	fmt.Printf("\nCloze sets (%d):\n", len(group.Sets))
	for _, set := range group.Sets {
		fmt.Printf("  %s (%d items)\n", set.CreatedAt.Format(time.RFC3339), len(set.Items))
		for i, item := range set.Items {
			if i >= maxPreview {
				fmt.Printf("    ... %d more\n", len(set.Items)-maxPreview)
				break
			}
			c, ok := priorityColors[item.Priority]
			if !ok {
				c = color.New(color.Reset)
			}
			c.Fprintf(os.Stdout, "    [%s]", item.Priority)
			fmt.Printf(" %s\n", item.Text)
		}
	}
	return nil
}

func init() {
	groupCmd.AddCommand(groupCreateCmd)
	groupCmd.AddCommand(groupListCmd)
	groupCmd.AddCommand(groupShowCmd)

	rootCmd.AddCommand(groupCmd)
}
