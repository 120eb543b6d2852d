package lint

import (
	"fmt"
	"strings"

	"flowdocs/internal/docs"
)

// LinkRule verifies that internal links point at pages in the corpus and
// that fragments resolve to a heading anchor or HTML anchor on the target.
// External URLs are never fetched.
type LinkRule struct{}

func (r *LinkRule) Name() string { return "links" }

func (r *LinkRule) Check(c *docs.Corpus, p *docs.Page) []Diagnostic {
	var out []Diagnostic
	for _, link := range p.Links {
		switch link.Kind {
		case docs.LinkExternal:
			continue
		case docs.LinkAnchor:
			frag := strings.TrimPrefix(link.Destination, "#")
			if frag == "" {
				continue
			}
			if _, ok := p.Anchors()[frag]; !ok {
				out = append(out, diag(r, p, link.Line, Error,
					"anchor #%s does not exist on this page", frag))
			}
		case docs.LinkInternal:
			target, frag := c.Resolve(p, link.Destination)
			tp := c.Page(target)
			if tp == nil {
				if link.IsImage || !isMarkdownDest(target) {
					// Asset links are out of corpus scope.
					continue
				}
				out = append(out, diag(r, p, link.Line, Error,
					"link target %s does not exist", target))
				continue
			}
			if frag != "" {
				if _, ok := tp.Anchors()[frag]; !ok {
					out = append(out, diag(r, p, link.Line, Error,
						"anchor #%s does not exist on %s", frag, target))
				}
			}
		}
	}
	return out
}

func isMarkdownDest(target string) bool {
	return strings.HasSuffix(target, ".md") || strings.HasSuffix(target, ".markdown")
}

func diag(r Rule, p *docs.Page, line int, sev Severity, format string, args ...any) Diagnostic {
	return Diagnostic{
		Rule:     r.Name(),
		Severity: sev,
		Page:     p.Path,
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
	}
}
