package project

import (
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"flowdocs/internal/config"
)

//go:embed recipes
var recipeFS embed.FS

var placeholderRe = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_-]+)\s*\}\}`)

// ListRecipes returns the names of all embedded recipes, sorted.
func ListRecipes() []string {
	entries, err := fs.ReadDir(recipeFS, "recipes")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	sort.Strings(names)
	return names
}

// ConfigureByRecipe renders the named recipe into a workspace config.
// Placeholders with no provided value stay in the document verbatim so the
// author can fill them in later.
func ConfigureByRecipe(recipe, name string, overrides map[string]string) (map[string]any, error) {
	raw, err := recipeFS.ReadFile("recipes/" + recipe + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown recipe %q; run 'flowdocs recipe ls' to list available recipes", recipe)
	}

	values := map[string]string{"name": name, "version": config.Version}
	for k, v := range overrides {
		values[k] = v
	}

	rendered := placeholderRe.ReplaceAllStringFunc(string(raw), func(m string) string {
		key := placeholderRe.FindStringSubmatch(m)[1]
		if v, ok := values[key]; ok {
			return v
		}
		return m
	})

	var cfg map[string]any
	if err := yaml.Unmarshal([]byte(rendered), &cfg); err != nil {
		return nil, fmt.Errorf("recipe %s: %w", recipe, err)
	}
	return cfg, nil
}
