package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func TestInitCmd(t *testing.T) {
	logger = zap.NewNop()

	ws := t.TempDir()
	workspace = ws
	defer func() { workspace = "" }()

	cmd := &cobra.Command{}
	if err := runInit(cmd, nil); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(ws, ".flowdocs")); os.IsNotExist(err) {
		t.Error(".flowdocs directory was not created")
	}
	if _, err := os.Stat(filepath.Join(ws, "flowdocs.yaml")); os.IsNotExist(err) {
		t.Error("flowdocs.yaml was not created")
	}

	// Running init again must not fail or clobber.
	if err := runInit(cmd, nil); err != nil {
		t.Errorf("runInit second run failed: %v", err)
	}
}

func TestLintCmd(t *testing.T) {
	logger = zap.NewNop()

	ws := t.TempDir()
	workspace = ws
	defer func() { workspace = "" }()

	docsDir := filepath.Join(ws, "docs")
	if err := os.MkdirAll(docsDir, 0o755); err != nil {
		t.Fatal(err)
	}

	good := "---\ndescription: fine\n---\n# Good\n"
	if err := os.WriteFile(filepath.Join(docsDir, "good.md"), []byte(good), 0o644); err != nil {
		t.Fatal(err)
	}

	lintCmd.SetContext(context.Background())
	if err := runLint(lintCmd, nil); err != nil {
		t.Fatalf("runLint failed on a clean tree: %v", err)
	}

	// A dead link must fail the run.
	bad := "# Bad\n\n[dead](missing.md)\n"
	if err := os.WriteFile(filepath.Join(docsDir, "bad.md"), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := runLint(lintCmd, nil); err == nil {
		t.Error("runLint passed with a dead link in the tree")
	}
}

func TestWorkspaceRootFallsBackToStart(t *testing.T) {
	ws := t.TempDir()
	workspace = ws
	defer func() { workspace = "" }()

	if got := workspaceRoot(); got != ws {
		t.Errorf("workspaceRoot() = %q, want %q", got, ws)
	}
}
