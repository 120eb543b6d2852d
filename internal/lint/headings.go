package lint

import "flowdocs/internal/docs"

// HeadingRule checks heading structure: exactly one H1, no duplicate
// anchors, no level jumps of more than one.
type HeadingRule struct{}

func (r *HeadingRule) Name() string { return "headings" }

func (r *HeadingRule) Check(_ *docs.Corpus, p *docs.Page) []Diagnostic {
	var out []Diagnostic

	h1s := 0
	prev := 0
	seen := map[string]int{} // base slug -> count
	for _, h := range p.Headings {
		if h.Level == 1 {
			h1s++
			if h1s > 1 {
				out = append(out, diag(r, p, h.Line, Warning, "more than one top-level heading"))
			}
		}
		if prev != 0 && h.Level > prev+1 {
			out = append(out, diag(r, p, h.Line, Warning,
				"heading level jumps from %d to %d", prev, h.Level))
		}
		prev = h.Level
		seen[docs.Slugify(h.Text)]++
	}
	if len(p.Headings) > 0 && h1s == 0 {
		out = append(out, diag(r, p, p.Headings[0].Line, Warning, "page has no top-level heading"))
	}
	for slug, n := range seen {
		if n > 1 {
			// Duplicate heading text means the rendered anchors get
			// numeric suffixes, which break when sections move.
			out = append(out, diag(r, p, 0, Warning,
				"heading text for anchor #%s appears %d times", slug, n))
		}
	}
	return out
}
