package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowdocs/internal/docs"
)

func TestRenderPage(t *testing.T) {
	src := []byte("---\ndescription: Task runner docs\ntags: [tasks]\n---\n# Task Runners\n\nSome *styled* text.\n")
	p := docs.Parse("concepts/task-runners.md", src)

	out, err := New(80).Page(p)
	require.NoError(t, err)
	assert.Contains(t, out, "concepts/task-runners.md")
	assert.Contains(t, out, "Task runner docs")
	assert.Contains(t, out, "Task Runners")
}

func TestRenderWithoutFrontMatter(t *testing.T) {
	p := docs.Parse("plain.md", []byte("# Plain\n"))
	out, err := New(0).Page(p)
	require.NoError(t, err)
	assert.Contains(t, out, "plain.md")
	assert.Contains(t, out, "Plain")
}
