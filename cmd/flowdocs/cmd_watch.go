package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"flowdocs/internal/lint"
	"flowdocs/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Lint continuously as the docs tree changes",
	Long: `Runs an initial lint pass, then watches the docs root and re-lints
after changes settle. Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("Received shutdown signal")
		cancel()
	}()

	root, cfg, err := loadWorkspace()
	if err != nil {
		return err
	}
	docsRoot := filepath.Join(root, cfg.Docs.Root)
	if len(args) == 1 {
		docsRoot = args[0]
	}

	runner := lint.NewRunner(lint.Options{
		ExtraFenceLanguages: cfg.Lint.FenceLanguages,
		Disabled:            cfg.Lint.DisabledRules,
	})
	w, err := watch.New(docsRoot, runner, func(result *lint.Result) {
		printResult(result)
		fmt.Println()
	})
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}

	logger.Info("watching", zap.String("root", docsRoot))
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	w.Stop()
	return nil
}
