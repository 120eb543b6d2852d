package docs

import (
	"bufio"
	"bytes"
	"os"
	"path"
	"strings"
)

// IgnoreFile is the per-workspace ignore list consulted while walking the
// docs tree.
const IgnoreFile = ".flowdocsignore"

// Ignorer matches workspace-relative slash paths against ignore patterns.
type Ignorer struct {
	patterns []ignorePattern
}

type ignorePattern struct {
	pattern string
	dirOnly bool // trailing "/": matches the whole subtree
	rooted  bool // leading "/": anchored at the workspace root
}

// LoadIgnorer reads an ignore file. A missing file yields an empty Ignorer.
func LoadIgnorer(filePath string) (*Ignorer, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Ignorer{}, nil
		}
		return nil, err
	}
	return ParseIgnorer(data), nil
}

// ParseIgnorer parses ignore patterns: one per line, "#" comments, blank
// lines skipped.
func ParseIgnorer(data []byte) *Ignorer {
	ig := &Ignorer{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p := ignorePattern{pattern: line}
		if strings.HasSuffix(p.pattern, "/") {
			p.dirOnly = true
			p.pattern = strings.TrimSuffix(p.pattern, "/")
		}
		if strings.HasPrefix(p.pattern, "/") {
			p.rooted = true
			p.pattern = strings.TrimPrefix(p.pattern, "/")
		}
		ig.patterns = append(ig.patterns, p)
	}
	return ig
}

// Match reports whether rel (slash-separated, relative to the workspace
// root) is ignored. isDir marks directories so subtree patterns apply.
func (ig *Ignorer) Match(rel string, isDir bool) bool {
	rel = path.Clean(rel)
	for _, p := range ig.patterns {
		if p.matches(rel, isDir) {
			return true
		}
	}
	return false
}

func (p ignorePattern) matches(rel string, isDir bool) bool {
	if p.rooted {
		if ok, _ := path.Match(p.pattern, rel); ok {
			return !p.dirOnly || isDir
		}
		// Rooted directory patterns cover everything beneath them.
		return strings.HasPrefix(rel, p.pattern+"/")
	}
	if ok, _ := path.Match(p.pattern, path.Base(rel)); ok {
		return !p.dirOnly || isDir
	}
	for _, seg := range strings.Split(path.Dir(rel), "/") {
		if ok, _ := path.Match(p.pattern, seg); ok {
			return true
		}
	}
	return false
}
