package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"flowdocs/internal/docs"
	"flowdocs/internal/render"
)

var renderWidth int

var renderCmd = &cobra.Command{
	Use:   "render <page>",
	Short: "Render a page in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().IntVar(&renderWidth, "width", 80, "Wrap width in columns")
}

func runRender(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	page := docs.Parse(filepath.ToSlash(path), data)
	out, err := render.New(renderWidth).Page(page)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
