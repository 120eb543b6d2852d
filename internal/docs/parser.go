package docs

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

var frontMatterDelim = []byte("---")

// Parse parses one markdown file into a Page. Parsing never fails outright:
// malformed front matter is recorded on the page and the body is still
// analyzed, so lint rules can report it with a location.
func Parse(relPath string, source []byte) *Page {
	p := &Page{Path: relPath, Body: source, BodyLine: 1}

	body, fmRaw, fmLines := splitFrontMatter(source)
	p.Body = body
	if fmRaw != nil {
		p.HasFrontMatter = true
		p.BodyLine = fmLines + 1
		p.FrontMatterErr = parseFrontMatter(fmRaw, &p.FrontMatter)
	}

	offsets := lineOffsets(body)
	lineFor := func(off int) int {
		// 1-based within the body, shifted past the front matter.
		i := sort.Search(len(offsets), func(i int) bool { return offsets[i] > off })
		return i + p.BodyLine - 1
	}

	p.scanFences(lineFor)
	p.walkAST(lineFor)
	return p
}

// splitFrontMatter returns the body, the raw front matter (nil when absent),
// and the number of lines the front matter block spans including delimiters.
func splitFrontMatter(source []byte) (body, fm []byte, lines int) {
	nl := bytes.IndexByte(source, '\n')
	if nl < 0 || !isFrontMatterDelim(source[:nl]) {
		return source, nil, 0
	}
	lines = 1
	pos := nl + 1
	fmStart := pos
	for pos <= len(source) {
		lineEnd := len(source)
		next := len(source) + 1
		if i := bytes.IndexByte(source[pos:], '\n'); i >= 0 {
			lineEnd = pos + i
			next = lineEnd + 1
		}
		lines++
		if isFrontMatterDelim(source[pos:lineEnd]) {
			fm = source[fmStart:pos]
			if next <= len(source) {
				body = source[next:]
			}
			return body, fm, lines
		}
		pos = next
	}
	return source, nil, 0
}

func isFrontMatterDelim(line []byte) bool {
	return bytes.Equal(bytes.TrimRight(line, " \r"), frontMatterDelim)
}

func parseFrontMatter(raw []byte, fm *FrontMatter) error {
	if err := yaml.Unmarshal(raw, fm); err != nil {
		return fmt.Errorf("front matter: %w", err)
	}
	var all map[string]any
	if err := yaml.Unmarshal(raw, &all); err != nil {
		return fmt.Errorf("front matter: %w", err)
	}
	for _, known := range []string{"sidebarDepth", "description", "tags"} {
		delete(all, known)
	}
	if len(all) > 0 {
		fm.Extra = all
	}
	return nil
}

// scanFences walks raw body lines so that an unclosed trailing fence is
// detected, which the rendered AST cannot distinguish from a closed one.
func (p *Page) scanFences(lineFor func(int) int) {
	var open *Fence
	var openMarker byte
	var openCount int
	off := 0
	for _, line := range bytes.SplitAfter(p.Body, []byte("\n")) {
		trimmed := bytes.TrimLeft(line, " ")
		marker, count := fenceMarker(trimmed)
		switch {
		case open == nil && count >= 3:
			info := strings.TrimSpace(string(trimmed[count:]))
			lang, _, _ := strings.Cut(info, " ")
			open = &Fence{Language: lang, StartLine: lineFor(off)}
			openMarker, openCount = marker, count
		case open != nil && marker == openMarker && count >= openCount && len(bytes.TrimSpace(trimmed[count:])) == 0:
			open.EndLine = lineFor(off)
			open.Closed = true
			p.Fences = append(p.Fences, *open)
			open = nil
		}
		off += len(line)
	}
	if open != nil {
		open.EndLine = lineFor(max(off-1, 0))
		p.Fences = append(p.Fences, *open)
	}
}

func fenceMarker(line []byte) (byte, int) {
	if len(line) == 0 || (line[0] != '`' && line[0] != '~') {
		return 0, 0
	}
	m := line[0]
	n := 0
	for n < len(line) && line[n] == m {
		n++
	}
	// An info string on a backtick fence cannot contain backticks.
	if m == '`' && bytes.IndexByte(line[n:], '`') != -1 {
		return 0, 0
	}
	return m, n
}

func (p *Page) walkAST(lineFor func(int) int) {
	doc := goldmark.New().Parser().Parse(gmtext.NewReader(p.Body))
	slugs := map[string]int{}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Heading:
			text := nodeText(v, p.Body)
			p.Headings = append(p.Headings, Heading{
				Text:   text,
				Level:  v.Level,
				Anchor: uniqueSlug(slugs, Slugify(text)),
				Line:   blockLine(v, lineFor),
			})
		case *ast.Link:
			p.addLink(string(v.Destination), nodeLine(v, lineFor), false)
		case *ast.Image:
			p.addLink(string(v.Destination), nodeLine(v, lineFor), true)
		case *ast.AutoLink:
			p.Links = append(p.Links, Link{
				Destination: string(v.URL(p.Body)),
				Line:        nodeLine(v, lineFor),
				Kind:        LinkExternal,
			})
		case *ast.RawHTML:
			var buf bytes.Buffer
			for i := 0; i < v.Segments.Len(); i++ {
				seg := v.Segments.At(i)
				buf.Write(seg.Value(p.Body))
			}
			p.HTMLAnchors = append(p.HTMLAnchors, htmlAnchors(buf.Bytes())...)
		case *ast.HTMLBlock:
			var buf bytes.Buffer
			for i := 0; i < v.Lines().Len(); i++ {
				seg := v.Lines().At(i)
				buf.Write(seg.Value(p.Body))
			}
			p.HTMLAnchors = append(p.HTMLAnchors, htmlAnchors(buf.Bytes())...)
		}
		return ast.WalkContinue, nil
	})
}

func (p *Page) addLink(dest string, line int, image bool) {
	p.Links = append(p.Links, Link{
		Destination: dest,
		Line:        line,
		Kind:        ClassifyLink(dest),
		IsImage:     image,
	})
}

// ClassifyLink decides whether a destination is internal, external, or a
// same-page anchor. External links are never fetched during lint.
func ClassifyLink(dest string) LinkKind {
	switch {
	case dest == "" || strings.HasPrefix(dest, "#"):
		return LinkAnchor
	case strings.Contains(dest, "://"), strings.HasPrefix(dest, "mailto:"), strings.HasPrefix(dest, "tel:"):
		return LinkExternal
	default:
		return LinkInternal
	}
}

// Slugify produces a GitHub-style heading anchor: lowercased, punctuation
// dropped, spaces become hyphens.
func Slugify(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r > 127:
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	return b.String()
}

func uniqueSlug(seen map[string]int, slug string) string {
	n := seen[slug]
	seen[slug] = n + 1
	if n == 0 {
		return slug
	}
	return fmt.Sprintf("%s-%d", slug, n)
}

// htmlAnchors extracts id attributes (and name on <a>) from an HTML fragment.
func htmlAnchors(fragment []byte) []string {
	var out []string
	tz := html.NewTokenizer(bytes.NewReader(fragment))
	for {
		tt := tz.Next()
		if tt == html.ErrorToken {
			return out
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, hasAttr := tz.TagName()
		for hasAttr {
			var key, val []byte
			key, val, hasAttr = tz.TagAttr()
			if string(key) == "id" || (string(name) == "a" && string(key) == "name") {
				if len(val) > 0 {
					out = append(out, string(val))
				}
			}
		}
	}
}

func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// blockLine reports the source line of a block node.
func blockLine(n ast.Node, lineFor func(int) int) int {
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		return lineFor(lines.At(0).Start)
	}
	return 0
}

// nodeLine reports the line of an inline node via its first text descendant,
// falling back to the enclosing block.
func nodeLine(n ast.Node, lineFor func(int) int) int {
	var line int
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || line != 0 {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			line = lineFor(t.Segment.Start)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	if line != 0 {
		return line
	}
	for b := n.Parent(); b != nil; b = b.Parent() {
		if l := blockLine(b, lineFor); l != 0 {
			return l
		}
	}
	return 0
}

func lineOffsets(body []byte) []int {
	offsets := []int{0}
	for i, c := range body {
		if c == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}
