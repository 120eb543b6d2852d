package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"flowdocs/internal/config"
	"flowdocs/internal/logging"
	"flowdocs/internal/project"
)

var (
	// Global flags
	verbose   bool
	workspace string
	timeout   time.Duration

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "flowdocs",
	Short: "flowdocs - documentation workspace toolkit",
	Long: `flowdocs maintains a Markdown documentation workspace.

It lints pages (front matter, internal links, code fences, headings),
watches the tree for changes, renders pages in the terminal, scaffolds new
workspaces from recipes, and stores typed configuration documents.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout")

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(recipeCmd)
	rootCmd.AddCommand(blockCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// workspaceRoot resolves the directory flowdocs operates in: the enclosing
// workspace of --workspace (or the cwd), falling back to the start
// directory itself when no .flowdocs directory exists yet.
func workspaceRoot() string {
	start := workspace
	if start == "" {
		start, _ = os.Getwd()
	}
	stateDir, err := project.FindWorkspaceDir(start)
	if err != nil {
		return start
	}
	return filepath.Dir(stateDir)
}

// loadWorkspace loads configuration for the resolved workspace and points
// the category logger at its state directory.
func loadWorkspace() (root string, cfg *config.Config, err error) {
	root = workspaceRoot()
	cfg, err = config.Load(root)
	if err != nil {
		return "", nil, err
	}
	stateDir := filepath.Join(root, project.WorkspaceDirName)
	if err := logging.Initialize(stateDir, cfg.Logging.DebugMode, cfg.Logging.Level); err != nil {
		logger.Warn("workspace logging unavailable", zap.Error(err))
	}
	return root, cfg, nil
}
