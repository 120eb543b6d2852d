package lint

import "flowdocs/internal/docs"

// knownFenceLanguages is the tag set the documented site generator
// highlights. Anything else still renders, so an unknown tag is a warning.
var knownFenceLanguages = map[string]struct{}{
	"python": {}, "py": {}, "go": {}, "bash": {}, "sh": {}, "shell": {},
	"yaml": {}, "yml": {}, "json": {}, "toml": {}, "ini": {},
	"dockerfile": {}, "sql": {}, "text": {}, "console": {}, "diff": {},
	"javascript": {}, "js": {}, "typescript": {}, "ts": {}, "html": {},
	"css": {}, "markdown": {}, "md": {}, "makefile": {},
}

// FenceRule checks that fenced code blocks are closed and tagged with a
// known language.
type FenceRule struct {
	ExtraLanguages []string
}

func (r *FenceRule) Name() string { return "fences" }

func (r *FenceRule) Check(_ *docs.Corpus, p *docs.Page) []Diagnostic {
	extra := make(map[string]struct{}, len(r.ExtraLanguages))
	for _, l := range r.ExtraLanguages {
		extra[l] = struct{}{}
	}

	var out []Diagnostic
	for _, f := range p.Fences {
		if !f.Closed {
			out = append(out, diag(r, p, f.StartLine, Error, "code fence is never closed"))
			continue
		}
		if f.Language == "" {
			out = append(out, diag(r, p, f.StartLine, Error, "code fence has no language tag"))
			continue
		}
		_, known := knownFenceLanguages[f.Language]
		if !known {
			_, known = extra[f.Language]
		}
		if !known {
			out = append(out, diag(r, p, f.StartLine, Warning,
				"unknown code fence language %q", f.Language))
		}
	}
	return out
}
