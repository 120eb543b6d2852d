package docs

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Corpus is every parsed page under one docs root, indexed for cross-page
// link resolution.
type Corpus struct {
	Root  string
	pages map[string]*Page

	// Problems are pages that could not be read at all. They are surfaced
	// as diagnostics by the lint runner rather than aborting the walk.
	Problems []Problem
}

// Problem is a file-level failure encountered during the walk.
type Problem struct {
	Path string
	Err  error
}

// LoadCorpus walks root, parsing every markdown file not excluded by the
// workspace ignore file.
func LoadCorpus(root string) (*Corpus, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("docs root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("docs root %s is not a directory", root)
	}

	ignorer, err := LoadIgnorer(filepath.Join(root, IgnoreFile))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", IgnoreFile, err)
	}

	c := &Corpus{Root: root, pages: map[string]*Page{}}
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			c.Problems = append(c.Problems, Problem{Path: p, Err: err})
			return nil
		}
		rel, rerr := filepath.Rel(root, p)
		if rerr != nil {
			return rerr
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && (strings.HasPrefix(d.Name(), ".") || ignorer.Match(rel, true)) {
				return fs.SkipDir
			}
			return nil
		}
		if !isMarkdown(d.Name()) || ignorer.Match(rel, false) {
			return nil
		}
		data, rerr := os.ReadFile(p)
		if rerr != nil {
			c.Problems = append(c.Problems, Problem{Path: rel, Err: rerr})
			return nil
		}
		c.pages[rel] = Parse(rel, data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// Add inserts a parsed page, replacing any page at the same path.
func (c *Corpus) Add(p *Page) {
	if c.pages == nil {
		c.pages = map[string]*Page{}
	}
	c.pages[p.Path] = p
}

// Page returns the page at a workspace-relative path, or nil.
func (c *Corpus) Page(rel string) *Page {
	return c.pages[rel]
}

// Pages returns all pages sorted by path.
func (c *Corpus) Pages() []*Page {
	out := make([]*Page, 0, len(c.pages))
	for _, p := range c.pages {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Len reports the number of pages.
func (c *Corpus) Len() int { return len(c.pages) }

// Resolve resolves an internal link destination relative to the page it
// appears on, returning the target path and fragment. The target may not
// exist; callers check with Page.
func (c *Corpus) Resolve(from *Page, dest string) (target, fragment string) {
	dest, fragment, _ = strings.Cut(dest, "#")
	if dest == "" {
		return from.Path, fragment
	}
	if path.IsAbs(dest) {
		return path.Clean(strings.TrimPrefix(dest, "/")), fragment
	}
	return path.Clean(path.Join(path.Dir(from.Path), dest)), fragment
}
