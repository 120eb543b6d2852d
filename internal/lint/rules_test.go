package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowdocs/internal/docs"
)

func page(path, content string) *docs.Page {
	return docs.Parse(path, []byte(content))
}

func corpusOf(pages ...*docs.Page) *docs.Corpus {
	c := &docs.Corpus{}
	for _, p := range pages {
		c.Add(p)
	}
	return c
}

func messages(ds []Diagnostic) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Message
	}
	return out
}

func TestFrontMatterRule(t *testing.T) {
	rule := &FrontMatterRule{}

	t.Run("clean page", func(t *testing.T) {
		p := page("a.md", "---\ndescription: fine\nsidebarDepth: 1\ntags: [a, b]\n---\n# T\n")
		assert.Empty(t, rule.Check(corpusOf(p), p))
	})

	t.Run("missing front matter warns", func(t *testing.T) {
		p := page("a.md", "# T\n")
		ds := rule.Check(corpusOf(p), p)
		require.Len(t, ds, 1)
		assert.Equal(t, Warning, ds[0].Severity)
	})

	t.Run("broken YAML is an error", func(t *testing.T) {
		p := page("a.md", "---\ntags: [oops\n---\n# T\n")
		ds := rule.Check(corpusOf(p), p)
		require.Len(t, ds, 1)
		assert.Equal(t, Error, ds[0].Severity)
	})

	t.Run("sidebarDepth range", func(t *testing.T) {
		p := page("a.md", "---\ndescription: d\nsidebarDepth: 7\n---\n# T\n")
		ds := rule.Check(corpusOf(p), p)
		require.Len(t, ds, 1)
		assert.Equal(t, Error, ds[0].Severity)
		assert.Contains(t, ds[0].Message, "out of range")
	})

	t.Run("tag problems", func(t *testing.T) {
		p := page("a.md", "---\ndescription: d\ntags: [x, '', x]\n---\n# T\n")
		ds := rule.Check(corpusOf(p), p)
		assert.Len(t, ds, 2) // empty tag error, duplicate warning
	})

	t.Run("no description warns", func(t *testing.T) {
		p := page("a.md", "---\nsidebarDepth: 1\n---\n# T\n")
		ds := rule.Check(corpusOf(p), p)
		require.Len(t, ds, 1)
		assert.Contains(t, ds[0].Message, "description")
	})
}

func TestLinkRule(t *testing.T) {
	rule := &LinkRule{}

	target := page("concepts/flows.md", "# Flows\n\n## Retries\n")

	t.Run("resolving link passes", func(t *testing.T) {
		p := page("concepts/tasks.md", "# Tasks\n\nSee [flows](flows.md#retries).\n")
		assert.Empty(t, rule.Check(corpusOf(target, p), p))
	})

	t.Run("dead page link", func(t *testing.T) {
		p := page("concepts/tasks.md", "# Tasks\n\nSee [gone](missing.md).\n")
		ds := rule.Check(corpusOf(target, p), p)
		require.Len(t, ds, 1)
		assert.Equal(t, Error, ds[0].Severity)
		assert.Contains(t, ds[0].Message, "concepts/missing.md")
		assert.Equal(t, 3, ds[0].Line)
	})

	t.Run("dead anchor on target", func(t *testing.T) {
		p := page("concepts/tasks.md", "# Tasks\n\nSee [flows](flows.md#nope).\n")
		ds := rule.Check(corpusOf(target, p), p)
		require.Len(t, ds, 1)
		assert.Contains(t, ds[0].Message, "#nope")
	})

	t.Run("same page anchor", func(t *testing.T) {
		p := page("a.md", "# Title\n\nJump [up](#title) or [away](#gone).\n")
		ds := rule.Check(corpusOf(p), p)
		require.Len(t, ds, 1)
		assert.Contains(t, ds[0].Message, "#gone")
	})

	t.Run("external and asset links are skipped", func(t *testing.T) {
		p := page("a.md", "# T\n\n[x](https://example.com) ![i](img/d.png) [css](style.css)\n")
		assert.Empty(t, rule.Check(corpusOf(p), p))
	})

	t.Run("html anchor satisfies fragment", func(t *testing.T) {
		anchored := page("b.md", "# B\n\n<a id=\"pinned\"></a>\n")
		p := page("a.md", "# A\n\n[see](b.md#pinned)\n")
		assert.Empty(t, rule.Check(corpusOf(anchored, p), p))
	})
}

func TestFenceRule(t *testing.T) {
	rule := &FenceRule{}

	t.Run("clean fence", func(t *testing.T) {
		p := page("a.md", "# T\n\n```python\nx = 1\n```\n")
		assert.Empty(t, rule.Check(corpusOf(p), p))
	})

	t.Run("unclosed fence", func(t *testing.T) {
		p := page("a.md", "# T\n\n```python\nx = 1\n")
		ds := rule.Check(corpusOf(p), p)
		require.Len(t, ds, 1)
		assert.Equal(t, Error, ds[0].Severity)
		assert.Contains(t, ds[0].Message, "never closed")
	})

	t.Run("missing language", func(t *testing.T) {
		p := page("a.md", "```\nplain\n```\n")
		ds := rule.Check(corpusOf(p), p)
		require.Len(t, ds, 1)
		assert.Contains(t, ds[0].Message, "no language")
	})

	t.Run("unknown language warns", func(t *testing.T) {
		p := page("a.md", "```klingon\nqapla\n```\n")
		ds := rule.Check(corpusOf(p), p)
		require.Len(t, ds, 1)
		assert.Equal(t, Warning, ds[0].Severity)
	})

	t.Run("extra languages extend the set", func(t *testing.T) {
		r := &FenceRule{ExtraLanguages: []string{"klingon"}}
		p := page("a.md", "```klingon\nqapla\n```\n")
		assert.Empty(t, r.Check(corpusOf(p), p))
	})
}

func TestHeadingRule(t *testing.T) {
	rule := &HeadingRule{}

	t.Run("clean structure", func(t *testing.T) {
		p := page("a.md", "# T\n\n## A\n\n### B\n\n## C\n")
		assert.Empty(t, rule.Check(corpusOf(p), p))
	})

	t.Run("multiple h1", func(t *testing.T) {
		p := page("a.md", "# One\n\n# Two\n")
		ds := rule.Check(corpusOf(p), p)
		require.Len(t, ds, 1)
		assert.Contains(t, ds[0].Message, "top-level")
	})

	t.Run("level jump", func(t *testing.T) {
		p := page("a.md", "# T\n\n### Deep\n")
		ds := rule.Check(corpusOf(p), p)
		require.Len(t, ds, 1)
		assert.Contains(t, messages(ds)[0], "jumps")
	})

	t.Run("duplicate headings", func(t *testing.T) {
		p := page("a.md", "# T\n\n## Same\n\n## Same\n")
		ds := rule.Check(corpusOf(p), p)
		require.Len(t, ds, 1)
		assert.Contains(t, ds[0].Message, "#same")
	})

	t.Run("no h1", func(t *testing.T) {
		p := page("a.md", "## Only Section\n")
		ds := rule.Check(corpusOf(p), p)
		require.Len(t, ds, 1)
		assert.Contains(t, ds[0].Message, "no top-level")
	})
}
