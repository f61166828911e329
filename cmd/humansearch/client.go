package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hyperjump/humansearch/internal/models"
	"github.com/hyperjump/humansearch/internal/search"
)

// batchLimit matches the server's per-request batch bound.
const batchLimit = 1000

// apiClient talks to a running humansearch server. It satisfies indexer.DocumentSink.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *apiClient) Search(ctx context.Context, q models.SearchQuery) (*models.SearchResponse, error) {
	var resp models.SearchResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/search", q, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *apiClient) Stats(ctx context.Context) (*search.Stats, error) {
	var stats search.Stats
	if err := c.do(ctx, http.MethodGet, "/api/v1/stats", nil, &stats, http.StatusOK); err != nil {
		return nil, err
	}
	return &stats, nil
}

// IndexBatch posts docs in batches of at most batchLimit and returns how many the
// server indexed.
func (c *apiClient) IndexBatch(ctx context.Context, docs []models.DocumentInput) (int, error) {
	total := 0
	for start := 0; start < len(docs); start += batchLimit {
		end := min(start+batchLimit, len(docs))
		var out struct {
			Indexed int    `json:"indexed"`
			Error   string `json:"error"`
		}
		body := map[string]interface{}{"documents": docs[start:end]}
		err := c.do(ctx, http.MethodPost, "/api/v1/documents/batch", body, &out, http.StatusCreated, http.StatusMultiStatus)
		total += out.Indexed
		if err != nil {
			return total, err
		}
		if out.Error != "" {
			return total, fmt.Errorf("batch partially indexed: %s", out.Error)
		}
	}
	return total, nil
}

func (c *apiClient) do(ctx context.Context, method, path string, in, out interface{}, accept ...int) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	ok := false
	for _, code := range accept {
		if resp.StatusCode == code {
			ok = true
			break
		}
	}
	if !ok {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
