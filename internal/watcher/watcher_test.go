package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	changed []string
	removed []string
}

func (r *recorder) onChange(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changed = append(r.changed, path)
}

func (r *recorder) onRemove(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, path)
}

func (r *recorder) snapshot() (changed, removed []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.changed...), append([]string(nil), r.removed...)
}

func startWatcher(t *testing.T, cfg Config, rec *recorder) *Watcher {
	t.Helper()
	w, err := New(cfg, rec.onChange, rec.onRemove)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		w.Close()
	})
	go w.Run(ctx)
	return w
}

func TestMatchExtension(t *testing.T) {
	assert.True(t, matchExtension("/a/b.json", []string{".json"}))
	assert.True(t, matchExtension("/a/b.JSON", []string{"json"}))
	assert.False(t, matchExtension("/a/b.txt", []string{".json"}))
	assert.True(t, matchExtension("/a/b.txt", nil))
}

func TestNew_CreatesMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "inbox")
	w, err := New(Config{Roots: []string{root}}, nil, nil)
	require.NoError(t, err)
	defer w.Close()

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, []string{root}, w.Roots())
}

func TestWatcher_DebouncedChangeAndFilter(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	startWatcher(t, Config{Roots: []string{dir}, Extensions: []string{".json"}, Debounce: 50 * time.Millisecond}, rec)

	path := filepath.Join(dir, "doc.json")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"fields":{}}`), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	assert.Eventually(t, func() bool {
		changed, _ := rec.snapshot()
		return len(changed) == 1
	}, 2*time.Second, 20*time.Millisecond)

	time.Sleep(150 * time.Millisecond)
	changed, _ := rec.snapshot()
	assert.Equal(t, []string{path}, changed)
}

func TestWatcher_Remove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gone.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	rec := &recorder{}
	startWatcher(t, Config{Roots: []string{dir}, Extensions: []string{".json"}, Debounce: 20 * time.Millisecond}, rec)
	require.NoError(t, os.Remove(path))

	assert.Eventually(t, func() bool {
		_, removed := rec.snapshot()
		return len(removed) == 1 && removed[0] == path
	}, 2*time.Second, 20*time.Millisecond)
}

func TestWatcher_RecursiveNewDirectory(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	startWatcher(t, Config{Roots: []string{dir}, Extensions: []string{".json"}, Recursive: true, Debounce: 20 * time.Millisecond}, rec)

	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	// give the watcher time to register the new directory
	time.Sleep(100 * time.Millisecond)
	path := filepath.Join(sub, "nested.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	assert.Eventually(t, func() bool {
		changed, _ := rec.snapshot()
		for _, c := range changed {
			if c == path {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)
}

func TestWatcher_Sync(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "deep"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deep", "b.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.txt"), []byte(`x`), 0o644))

	flat := &recorder{}
	w, err := New(Config{Roots: []string{dir}, Extensions: []string{".json"}}, flat.onChange, nil)
	require.NoError(t, err)
	defer w.Close()
	w.Sync()
	changed, _ := flat.snapshot()
	assert.Equal(t, []string{filepath.Join(dir, "a.json")}, changed)

	deep := &recorder{}
	w2, err := New(Config{Roots: []string{dir}, Extensions: []string{".json"}, Recursive: true}, deep.onChange, nil)
	require.NoError(t, err)
	defer w2.Close()
	w2.Sync()
	changed, _ = deep.snapshot()
	assert.ElementsMatch(t, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "deep", "b.json")}, changed)
}
