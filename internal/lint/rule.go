// Package lint checks a docs corpus for authoring defects: malformed front
// matter, dead internal links, broken code fences, heading problems.
package lint

import (
	"encoding/json"
	"fmt"
	"sort"

	"flowdocs/internal/docs"
)

// Severity of a diagnostic.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// MarshalJSON renders the severity as its name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Diagnostic is one finding on one page.
type Diagnostic struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Page     string   `json:"page"`
	Line     int      `json:"line"`
	Message  string   `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %s: %s (%s)", d.Page, d.Line, d.Severity, d.Message, d.Rule)
}

// Rule checks a single page against the corpus it belongs to.
type Rule interface {
	Name() string
	Check(c *docs.Corpus, p *docs.Page) []Diagnostic
}

// DefaultRules returns the standard rule set. opts tunes individual rules;
// the zero value is usable.
func DefaultRules(opts Options) []Rule {
	return []Rule{
		&FrontMatterRule{},
		&LinkRule{},
		&FenceRule{ExtraLanguages: opts.ExtraFenceLanguages},
		&HeadingRule{},
	}
}

// Options tunes the default rule set.
type Options struct {
	// ExtraFenceLanguages extends the known language tag set.
	ExtraFenceLanguages []string
	// Disabled rules by name.
	Disabled []string
}

// Filter drops disabled rules.
func Filter(rules []Rule, disabled []string) []Rule {
	if len(disabled) == 0 {
		return rules
	}
	drop := make(map[string]struct{}, len(disabled))
	for _, name := range disabled {
		drop[name] = struct{}{}
	}
	var kept []Rule
	for _, r := range rules {
		if _, ok := drop[r.Name()]; !ok {
			kept = append(kept, r)
		}
	}
	return kept
}

// Sort orders diagnostics by page, line, then rule for stable output.
func Sort(ds []Diagnostic) {
	sort.Slice(ds, func(i, j int) bool {
		a, b := ds[i], ds[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Message < b.Message
	})
}
