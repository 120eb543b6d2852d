package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"flowdocs/internal/lint"
)

func TestWatcherRelintsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	pagePath := filepath.Join(root, "index.md")
	require.NoError(t, os.WriteFile(pagePath, []byte("---\ndescription: d\n---\n# Home\n"), 0o644))

	results := make(chan *lint.Result, 16)
	w, err := New(root, lint.NewRunner(lint.Options{}), func(r *lint.Result) {
		results <- r
	})
	require.NoError(t, err)
	w.debounceDur = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	// Initial pass fires immediately.
	first := waitResult(t, results)
	assert.Equal(t, 1, first.Pages)
	assert.Equal(t, 0, first.Errors)

	// Break the page; the watcher should pick it up after the debounce.
	require.NoError(t, os.WriteFile(pagePath, []byte("# Home\n\n[dead](missing.md)\n"), 0o644))

	second := waitResult(t, results)
	assert.Greater(t, second.Errors, 0)
}

func TestWatcherStartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	w, err := New(root, lint.NewRunner(lint.Options{}), nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, w.Start(ctx))
	require.NoError(t, w.Start(ctx), "double start is a no-op")
	w.Stop()
	w.Stop() // double stop must not panic
}

func TestWatcherPicksUpNewDirectories(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	results := make(chan *lint.Result, 16)
	w, err := New(root, lint.NewRunner(lint.Options{}), func(r *lint.Result) {
		results <- r
	})
	require.NoError(t, err)
	w.debounceDur = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	waitResult(t, results) // initial empty pass

	sub := filepath.Join(root, "guide")
	require.NoError(t, os.Mkdir(sub, 0o755))
	// Give the watcher a beat to register the new directory.
	time.Sleep(250 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "new.md"), []byte("# New\n"), 0o644))

	res := waitResult(t, results)
	assert.Equal(t, 1, res.Pages)
}

func waitResult(t *testing.T, ch <-chan *lint.Result) *lint.Result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for lint result")
		return nil
	}
}
