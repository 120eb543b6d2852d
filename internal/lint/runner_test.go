package lint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowdocs/internal/docs"
)

func TestRunnerRun(t *testing.T) {
	good := page("good.md", "---\ndescription: fine\n---\n# Good\n")
	bad := page("bad.md", "# Bad\n\n[dead](missing.md)\n\n```klingon\nx\n```\n")
	c := corpusOf(good, bad)

	runner := NewRunner(Options{})
	result, err := runner.Run(context.Background(), c)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, result.Errors+result.Warnings, len(result.Diagnostics))
	assert.Greater(t, result.Errors, 0)

	// Deterministic ordering: sorted by page, then line.
	for i := 1; i < len(result.Diagnostics); i++ {
		prev, cur := result.Diagnostics[i-1], result.Diagnostics[i]
		assert.LessOrEqual(t, prev.Page, cur.Page)
		if prev.Page == cur.Page {
			assert.LessOrEqual(t, prev.Line, cur.Line)
		}
	}
}

func TestRunnerDisabledRules(t *testing.T) {
	bad := page("bad.md", "# Bad\n\n[dead](missing.md)\n")
	c := corpusOf(bad)

	runner := NewRunner(Options{Disabled: []string{"links", "frontmatter"}})
	result, err := runner.Run(context.Background(), c)
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics)
}

func TestRunnerSurfacesCorpusProblems(t *testing.T) {
	c := corpusOf()
	c.Problems = append(c.Problems, docs.Problem{Path: "broken.md", Err: assert.AnError})

	runner := NewRunner(Options{Disabled: []string{"frontmatter", "links", "fences", "headings"}})
	result, err := runner.Run(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "corpus", result.Diagnostics[0].Rule)
	assert.Equal(t, 1, result.Errors)
}

func TestResultOK(t *testing.T) {
	assert.True(t, (&Result{}).OK(true))
	assert.True(t, (&Result{Warnings: 2}).OK(false))
	assert.False(t, (&Result{Warnings: 2}).OK(true))
	assert.False(t, (&Result{Errors: 1}).OK(false))
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := corpusOf(page("a.md", "# A\n"))
	_, err := NewRunner(Options{}).Run(ctx, c)
	assert.Error(t, err)
}
