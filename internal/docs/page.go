// Package docs models a Markdown documentation workspace: pages with YAML
// front matter, their headings, links, code fences, and the corpus that ties
// them together for cross-page checks.
package docs

// FrontMatter holds the YAML block at the top of a page. The three keys the
// documentation convention defines are typed; everything else authors put
// there is preserved in Extra untouched.
type FrontMatter struct {
	SidebarDepth *int     `yaml:"sidebarDepth"`
	Description  string   `yaml:"description"`
	Tags         []string `yaml:"tags"`

	Extra map[string]any `yaml:"-"`
}

// LinkKind classifies a link destination.
type LinkKind int

const (
	LinkInternal LinkKind = iota // relative path to another page
	LinkExternal                 // http(s), mailto, etc.
	LinkAnchor                   // same-page #fragment
)

func (k LinkKind) String() string {
	switch k {
	case LinkInternal:
		return "internal"
	case LinkExternal:
		return "external"
	case LinkAnchor:
		return "anchor"
	}
	return "unknown"
}

// Link is a markdown link or image destination found in a page body.
type Link struct {
	Destination string
	Line        int
	Kind        LinkKind
	IsImage     bool
}

// Heading is a markdown heading with its GitHub-style anchor slug.
type Heading struct {
	Text   string
	Level  int
	Anchor string
	Line   int
}

// Fence is a fenced code block.
type Fence struct {
	Language  string
	StartLine int
	EndLine   int
	Closed    bool
}

// Page is one parsed markdown file.
type Page struct {
	// Path is workspace-relative and slash-separated.
	Path string

	FrontMatter    FrontMatter
	HasFrontMatter bool
	// FrontMatterErr records a YAML parse failure; the body is still parsed.
	FrontMatterErr error

	Body        []byte
	BodyLine    int // 1-based line the body starts on, after front matter
	Headings    []Heading
	Links       []Link
	Fences      []Fence
	HTMLAnchors []string
}

// Anchors returns every fragment target the page exposes: heading slugs plus
// explicit HTML anchors.
func (p *Page) Anchors() map[string]struct{} {
	out := make(map[string]struct{}, len(p.Headings)+len(p.HTMLAnchors))
	for _, h := range p.Headings {
		out[h.Anchor] = struct{}{}
	}
	for _, a := range p.HTMLAnchors {
		out[a] = struct{}{}
	}
	return out
}
