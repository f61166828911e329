package indexer

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/humansearch/internal/config"
	"github.com/hyperjump/humansearch/internal/fileid"
	"github.com/hyperjump/humansearch/internal/models"
	"github.com/hyperjump/humansearch/internal/search"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtensionAllowed(t *testing.T) {
	tests := []struct {
		ext     string
		allowed []string
		want    bool
	}{
		{".json", []string{".json", ".jsonl"}, true},
		{".JSON", []string{"json"}, true},
		{".txt", []string{".json"}, false},
		{"", []string{".json"}, false},
		{".txt", nil, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extensionAllowed(tt.ext, tt.allowed), "%q in %v", tt.ext, tt.allowed)
	}
}

func TestPreprocess(t *testing.T) {
	assert.Equal(t, "a b c", Preprocess("  a \n\t b   c  "))
	assert.Equal(t, "", Preprocess(" \n "))

	fields := map[string]interface{}{"t": " x   y ", "n": 3.0, "arr": []interface{}{" keep "}}
	PreprocessFields(fields)
	assert.Equal(t, "x y", fields["t"])
	assert.Equal(t, 3.0, fields["n"])
	assert.Equal(t, []interface{}{" keep "}, fields["arr"])
}

func TestLoadFile_SingleObject(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "one.json", `{"fields":{"title":"  Hello   World "},"metadata":{"lang":"en"}}`)

	docs, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, fileid.FileDocID(path), docs[0].ID)
	assert.Equal(t, "Hello World", docs[0].Fields["title"])
	assert.Equal(t, "en", docs[0].Metadata["lang"])
}

func TestLoadFile_BareFieldsAndArray(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "many.json", `[{"id":"a","fields":{"title":"alpha"}},{"title":"bare"}]`)

	docs, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, fileid.EntryDocID(path, 1), docs[1].ID)
	assert.Equal(t, "bare", docs[1].Fields["title"])
}

func TestLoadFile_JSONLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "docs.jsonl", "{\"id\":\"x\",\"fields\":{\"t\":\"one\"}}\n\n{\"fields\":{\"t\":\"two\"}}\n")

	docs, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "x", docs[0].ID)
	assert.Equal(t, fileid.EntryDocID(path, 1), docs[1].ID)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = LoadFile(writeFile(t, dir, "bad.json", `{"fields":`))
	assert.Error(t, err)

	_, err = LoadFile(writeFile(t, dir, "scalar.jsonl", "42\n"))
	assert.Error(t, err)
}

func newEngine(t *testing.T) *search.Engine {
	t.Helper()
	e, err := search.NewEngine(config.EngineConfig{ShardCount: 4})
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestIndexer_IndexFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.json", `{"id":"d1","fields":{"title":"mountain bike"}}`)
	engine := newEngine(t)
	idx := NewIndexer(engine)

	n, err := idx.IndexFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	resp, err := engine.Search(context.Background(), models.SearchQuery{Query: "bike", Semantic: models.Bool(false)})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "d1", resp.Results[0].ID)
}

func TestIndexer_IndexDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"id":"a","fields":{"title":"first"}}`)
	writeFile(t, dir, "nested/b.jsonl", "{\"id\":\"b\",\"fields\":{\"title\":\"second\"}}\n{\"id\":\"c\",\"fields\":{\"title\":\"third\"}}\n")
	writeFile(t, dir, "notes.txt", "ignored")
	writeFile(t, dir, "broken.json", `{`)
	engine := newEngine(t)

	n, err := NewIndexer(engine).IndexDirectory(context.Background(), dir)
	assert.Error(t, err)
	assert.Equal(t, 3, n)

	ids := make([]string, 0)
	for _, d := range engine.ListDocuments(0, 10) {
		ids = append(ids, d.ID)
	}
	sort.Strings(ids)
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}
