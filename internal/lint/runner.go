package lint

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"flowdocs/internal/docs"
)

// Result is the outcome of linting one corpus.
type Result struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
	Pages       int          `json:"pages"`
	Errors      int          `json:"errors"`
	Warnings    int          `json:"warnings"`
}

// OK reports whether the result should pass. Warnings fail only in strict
// mode.
func (r *Result) OK(strict bool) bool {
	if r.Errors > 0 {
		return false
	}
	return !strict || r.Warnings == 0
}

// Runner lints every page of a corpus concurrently.
type Runner struct {
	Rules   []Rule
	Workers int // defaults to GOMAXPROCS
}

// NewRunner builds a runner over the default rule set.
func NewRunner(opts Options) *Runner {
	return &Runner{Rules: Filter(DefaultRules(opts), opts.Disabled)}
}

// Run lints the corpus. Page order in the output is deterministic
// regardless of scheduling.
func (r *Runner) Run(ctx context.Context, c *docs.Corpus) (*Result, error) {
	res := &Result{Pages: c.Len()}

	// Unreadable files surface as diagnostics so one bad file does not
	// hide results for the rest of the tree.
	for _, prob := range c.Problems {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Rule:     "corpus",
			Severity: Error,
			Page:     prob.Path,
			Line:     0,
			Message:  prob.Err.Error(),
		})
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, page := range c.Pages() {
		page := page
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var found []Diagnostic
			for _, rule := range r.Rules {
				found = append(found, rule.Check(c, page)...)
			}
			if len(found) > 0 {
				mu.Lock()
				res.Diagnostics = append(res.Diagnostics, found...)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	Sort(res.Diagnostics)
	for _, d := range res.Diagnostics {
		if d.Severity == Error {
			res.Errors++
		} else {
			res.Warnings++
		}
	}
	return res, nil
}
