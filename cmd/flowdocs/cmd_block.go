package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"flowdocs/internal/blocks"
	"flowdocs/internal/project"
)

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Manage stored configuration documents",
}

var blockLsCmd = &cobra.Command{
	Use:   "ls [type-slug]",
	Short: "List stored block documents",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openBlockStore()
		if err != nil {
			return err
		}
		defer store.Close()

		slug := ""
		if len(args) == 1 {
			slug = args[0]
		}
		docs, err := store.List(slug)
		if err != nil {
			return err
		}
		for _, d := range docs {
			fmt.Printf("%s/%s\t%s\n", d.TypeSlug, d.Name, d.ID)
		}
		return nil
	},
}

var blockGetCmd = &cobra.Command{
	Use:   "get <type-slug> <name>",
	Short: "Print one block document as JSON",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openBlockStore()
		if err != nil {
			return err
		}
		defer store.Close()

		doc, err := store.Load(args[0], args[1])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc.Data)
	},
}

var blockRmCmd = &cobra.Command{
	Use:   "rm <type-slug> <name>",
	Short: "Delete a block document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openBlockStore()
		if err != nil {
			return err
		}
		defer store.Close()
		return store.Delete(args[0], args[1])
	},
}

func init() {
	blockCmd.AddCommand(blockLsCmd)
	blockCmd.AddCommand(blockGetCmd)
	blockCmd.AddCommand(blockRmCmd)
}

func openBlockStore() (*blocks.Store, error) {
	root, _, err := loadWorkspace()
	if err != nil {
		return nil, err
	}
	return blocks.NewStore(filepath.Join(root, project.WorkspaceDirName))
}
