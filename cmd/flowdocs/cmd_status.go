package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"flowdocs/internal/blocks"
	"flowdocs/internal/docs"
	"flowdocs/internal/lint"
	"flowdocs/internal/project"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show workspace status",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	root, cfg, err := loadWorkspace()
	if err != nil {
		return err
	}

	fmt.Println("workspace:", root)
	fmt.Println("name:     ", cfg.Name)
	fmt.Println("docs root:", cfg.Docs.Root)

	stateDir := filepath.Join(root, project.WorkspaceDirName)
	if _, err := os.Stat(stateDir); err != nil {
		fmt.Println("state:     not initialized (run 'flowdocs init')")
		return nil
	}

	docsRoot := filepath.Join(root, cfg.Docs.Root)
	if corpus, err := docs.LoadCorpus(docsRoot); err == nil {
		runner := lint.NewRunner(lint.Options{
			ExtraFenceLanguages: cfg.Lint.FenceLanguages,
			Disabled:            cfg.Lint.DisabledRules,
		})
		if result, err := runner.Run(ctx, corpus); err == nil {
			fmt.Printf("pages:     %d (%d errors, %d warnings)\n",
				result.Pages, result.Errors, result.Warnings)
		}
	} else {
		fmt.Println("pages:     docs root missing:", err)
	}

	if store, err := blocks.NewStore(stateDir); err == nil {
		defer store.Close()
		if list, err := store.List(""); err == nil {
			fmt.Printf("blocks:    %d\n", len(list))
		}
	}
	return nil
}
