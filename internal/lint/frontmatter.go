package lint

import (
	"fmt"

	"flowdocs/internal/docs"
)

// FrontMatterRule checks the YAML front matter block: present, parseable,
// description filled in, sidebarDepth in range, tags sane.
type FrontMatterRule struct{}

func (r *FrontMatterRule) Name() string { return "frontmatter" }

func (r *FrontMatterRule) Check(_ *docs.Corpus, p *docs.Page) []Diagnostic {
	var out []Diagnostic
	report := func(sev Severity, line int, format string, args ...any) {
		out = append(out, Diagnostic{
			Rule:     r.Name(),
			Severity: sev,
			Page:     p.Path,
			Line:     line,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	if !p.HasFrontMatter {
		report(Warning, 1, "page has no front matter")
		return out
	}
	if p.FrontMatterErr != nil {
		report(Error, 1, "front matter is not valid YAML: %v", p.FrontMatterErr)
		return out
	}

	fm := p.FrontMatter
	if fm.Description == "" {
		report(Warning, 1, "front matter has no description")
	}
	if fm.SidebarDepth != nil && (*fm.SidebarDepth < 0 || *fm.SidebarDepth > 3) {
		report(Error, 1, "sidebarDepth %d is out of range [0,3]", *fm.SidebarDepth)
	}
	seen := map[string]struct{}{}
	for _, tag := range fm.Tags {
		if tag == "" {
			report(Error, 1, "empty tag in front matter")
			continue
		}
		if _, dup := seen[tag]; dup {
			report(Warning, 1, "duplicate tag %q", tag)
		}
		seen[tag] = struct{}{}
	}
	return out
}
