package indexer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/humansearch/internal/fileid"
	"github.com/hyperjump/humansearch/internal/models"
)

// maxLineSize bounds a single JSON Lines record.
const maxLineSize = 16 * 1024 * 1024

// LoadFile reads documents from a .json or .jsonl file.
//
// A .json file holds one document object or an array of them; a .jsonl file holds one
// document object per line. A document object is {"id", "fields", "metadata"}; an
// object without a "fields" key is taken as the fields themselves. Documents without
// an id get one derived from the file's absolute path.
func LoadFile(path string) ([]models.DocumentInput, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	single := false
	switch strings.ToLower(filepath.Ext(abs)) {
	case ".jsonl", ".ndjson":
		raw, err = splitLines(data)
	default:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			err = json.Unmarshal(trimmed, &raw)
		} else {
			raw = []json.RawMessage{trimmed}
			single = true
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	docs := make([]models.DocumentInput, 0, len(raw))
	for i, r := range raw {
		doc, err := decodeDocument(r)
		if err != nil {
			return nil, fmt.Errorf("%s: document %d: %w", path, i, err)
		}
		if doc.ID == "" {
			if single {
				doc.ID = fileid.FileDocID(abs)
			} else {
				doc.ID = fileid.EntryDocID(abs, i)
			}
		}
		PreprocessFields(doc.Fields)
		docs = append(docs, doc)
	}
	return docs, nil
}

func splitLines(data []byte) ([]json.RawMessage, error) {
	var out []json.RawMessage
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		out = append(out, json.RawMessage(append([]byte(nil), line...)))
	}
	return out, sc.Err()
}

func decodeDocument(raw json.RawMessage) (models.DocumentInput, error) {
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return models.DocumentInput{}, err
	}
	if obj == nil {
		return models.DocumentInput{}, fmt.Errorf("expected a JSON object")
	}
	fields, wrapped := obj["fields"].(map[string]interface{})
	if !wrapped {
		return models.DocumentInput{Fields: obj}, nil
	}

	doc := models.DocumentInput{Fields: fields}
	if id, ok := obj["id"].(string); ok {
		doc.ID = id
	}
	if md, ok := obj["metadata"].(map[string]interface{}); ok {
		doc.Metadata = md
	}
	return doc, nil
}
