package docs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadCorpus(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.md", "# Home\n")
	writeFile(t, root, "concepts/flows.md", "# Flows\n")
	writeFile(t, root, "concepts/notes.txt", "not markdown\n")
	writeFile(t, root, "drafts/wip.md", "# WIP\n")
	writeFile(t, root, ".hidden/secret.md", "# Hidden\n")
	writeFile(t, root, IgnoreFile, "drafts/\n")

	c, err := LoadCorpus(root)
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
	assert.NotNil(t, c.Page("index.md"))
	assert.NotNil(t, c.Page("concepts/flows.md"))
	assert.Nil(t, c.Page("drafts/wip.md"), "ignored directory should be skipped")
	assert.Nil(t, c.Page(".hidden/secret.md"), "hidden directories should be skipped")
	assert.Nil(t, c.Page("concepts/notes.txt"))

	pages := c.Pages()
	require.Len(t, pages, 2)
	assert.Equal(t, "concepts/flows.md", pages[0].Path)
	assert.Equal(t, "index.md", pages[1].Path)
}

func TestLoadCorpusErrors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		_, err := LoadCorpus(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("root is a file", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "file.md", "x")
		_, err := LoadCorpus(filepath.Join(root, "file.md"))
		assert.Error(t, err)
	})
}

func TestCorpusResolve(t *testing.T) {
	c := &Corpus{pages: map[string]*Page{}}
	from := &Page{Path: "guide/advanced/tuning.md"}

	t.Run("sibling", func(t *testing.T) {
		target, frag := c.Resolve(from, "scaling.md")
		assert.Equal(t, "guide/advanced/scaling.md", target)
		assert.Equal(t, "", frag)
	})

	t.Run("parent with fragment", func(t *testing.T) {
		target, frag := c.Resolve(from, "../basics.md#setup")
		assert.Equal(t, "guide/basics.md", target)
		assert.Equal(t, "setup", frag)
	})

	t.Run("root absolute", func(t *testing.T) {
		target, _ := c.Resolve(from, "/concepts/flows.md")
		assert.Equal(t, "concepts/flows.md", target)
	})

	t.Run("fragment only", func(t *testing.T) {
		target, frag := c.Resolve(from, "#anchors")
		assert.Equal(t, from.Path, target)
		assert.Equal(t, "anchors", frag)
	})
}
