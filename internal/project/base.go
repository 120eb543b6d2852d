// Package project implements docs-workspace scaffolding: recipe-driven
// initialization and discovery of the hidden .flowdocs directory.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WorkspaceDirName is the hidden per-workspace state directory.
const WorkspaceDirName = ".flowdocs"

// ConfigFileName is the workspace configuration file written by Initialize.
const ConfigFileName = "flowdocs.yaml"

// ErrNoWorkspace is returned when no .flowdocs directory exists between the
// start path and the filesystem root.
var ErrNoWorkspace = errors.New("no .flowdocs directory found")

// FindWorkspaceDir walks up from start looking for a .flowdocs directory
// and returns its absolute path.
func FindWorkspaceDir(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, WorkspaceDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoWorkspace
		}
		dir = parent
	}
}

// defaultIgnore is the .flowdocsignore written on init.
const defaultIgnore = `# flowdocs ignore patterns: one per line.
# Trailing "/" matches a directory subtree; leading "/" anchors at the root.
node_modules/
.venv/
*.tmp.md
drafts/
`

// Initialize scaffolds a docs workspace in dir using the named recipe and
// returns the files it created. Existing files are left alone and not
// reported as created.
func Initialize(dir, name, recipe string, overrides map[string]string) ([]string, error) {
	if name == "" {
		name = filepath.Base(absOr(dir))
	}
	if recipe == "" {
		recipe = "local"
	}

	cfg, err := ConfigureByRecipe(recipe, name, overrides)
	if err != nil {
		return nil, err
	}
	cfgBytes, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", ConfigFileName, err)
	}

	stateDir := filepath.Join(dir, WorkspaceDirName)
	for _, sub := range []string{stateDir, filepath.Join(stateDir, "logs")} {
		if err := os.MkdirAll(sub, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", sub, err)
		}
	}

	var created []string
	write := func(rel string, data []byte) error {
		path := filepath.Join(dir, rel)
		if _, err := os.Stat(path); err == nil {
			return nil // never clobber author files
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", rel, err)
		}
		created = append(created, rel)
		return nil
	}

	if err := write(ConfigFileName, cfgBytes); err != nil {
		return nil, err
	}
	if err := write(".flowdocsignore", []byte(defaultIgnore)); err != nil {
		return nil, err
	}
	return created, nil
}

func absOr(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
