package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"flowdocs/internal/config"
	"flowdocs/internal/docs"
	"flowdocs/internal/lint"
)

var (
	lintStrict bool
	lintFormat string
)

var lintCmd = &cobra.Command{
	Use:   "lint [path]",
	Short: "Lint the documentation tree",
	Long: `Checks every markdown page under the docs root:
  - front matter is well-formed (description, sidebarDepth, tags)
  - internal links and anchors resolve
  - code fences are closed and tagged with a known language
  - heading structure is sane

Errors fail the run; warnings fail it only under --strict.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

func init() {
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "Treat warnings as failures")
	lintCmd.Flags().StringVar(&lintFormat, "format", "text", "Output format: text or json")
}

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

func runLint(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	result, cfg, err := lintOnce(ctx, args)
	if err != nil {
		return err
	}

	strict := lintStrict || cfg.Lint.Strict
	switch lintFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	case "text":
		printResult(result)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", lintFormat)
	}

	if !result.OK(strict) {
		return fmt.Errorf("lint failed: %d errors, %d warnings", result.Errors, result.Warnings)
	}
	return nil
}

// lintOnce loads the corpus for the requested path and runs the rule set.
func lintOnce(ctx context.Context, args []string) (*lint.Result, *config.Config, error) {
	root, cfg, err := loadWorkspace()
	if err != nil {
		return nil, nil, err
	}

	docsRoot := filepath.Join(root, cfg.Docs.Root)
	if len(args) == 1 {
		docsRoot = args[0]
	}
	logger.Debug("linting", zap.String("root", docsRoot))

	corpus, err := docs.LoadCorpus(docsRoot)
	if err != nil {
		return nil, nil, err
	}

	runner := lint.NewRunner(lint.Options{
		ExtraFenceLanguages: cfg.Lint.FenceLanguages,
		Disabled:            cfg.Lint.DisabledRules,
	})
	result, err := runner.Run(ctx, corpus)
	if err != nil {
		return nil, nil, err
	}
	return result, cfg, nil
}

func printResult(result *lint.Result) {
	for _, d := range result.Diagnostics {
		loc := fmt.Sprintf("%s:%d", d.Page, d.Line)
		sev := warnStyle.Render(d.Severity.String())
		if d.Severity == lint.Error {
			sev = errStyle.Render(d.Severity.String())
		}
		fmt.Printf("%s %s %s %s\n", loc, sev, d.Message, dimStyle.Render("("+d.Rule+")"))
	}
	fmt.Printf("%d pages, %d errors, %d warnings\n", result.Pages, result.Errors, result.Warnings)
}
