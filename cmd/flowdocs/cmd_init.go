package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"flowdocs/internal/project"
)

var (
	initName   string
	initRecipe string
	initFields []string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a docs workspace in the current directory",
	Long: `Creates flowdocs.yaml, .flowdocsignore, and the .flowdocs state
directory from a recipe. Existing files are never overwritten.

Example:
  flowdocs init --name my-docs --recipe git --field repository=org/repo`,
	RunE: runInit,
}

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Recipe commands",
}

var recipeLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List available workspace recipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range project.ListRecipes() {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "Workspace name (default: directory name)")
	initCmd.Flags().StringVar(&initRecipe, "recipe", "local", "Recipe to scaffold from")
	initCmd.Flags().StringArrayVar(&initFields, "field", nil, "Recipe field override, key=value (repeatable)")

	recipeCmd.AddCommand(recipeLsCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := workspace
	if dir == "" {
		dir, _ = os.Getwd()
	}

	overrides := map[string]string{}
	for _, f := range initFields {
		k, v, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("invalid --field %q (want key=value)", f)
		}
		overrides[k] = v
	}

	created, err := project.Initialize(dir, initName, initRecipe, overrides)
	if err != nil {
		return err
	}

	logger.Info("workspace initialized",
		zap.String("dir", dir),
		zap.String("recipe", initRecipe))
	for _, f := range created {
		fmt.Println("created", f)
	}
	if len(created) == 0 {
		fmt.Println("nothing to do; workspace files already present")
	}
	return nil
}
