package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hyperjump/kue/internal/models"
)

// apiClient talks to a running Kue server.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(serverURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(serverURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Search posts a search query.
func (c *apiClient) Search(ctx context.Context, query *models.SearchQuery) (*models.SearchResponse, error) {
	var response models.SearchResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/search", query, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// WarmPaths fetches the warm paths to targetID.
func (c *apiClient) WarmPaths(ctx context.Context, targetID string) (*models.WarmPathResponse, error) {
	var response models.WarmPathResponse
	path := "/api/v1/people/" + url.PathEscape(targetID) + "/warm-paths"
	if err := c.do(ctx, http.MethodGet, path, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// IntroDraft asks the server for an intro message.
func (c *apiClient) IntroDraft(ctx context.Context, req *models.IntroDraftRequest) (*models.IntroDraftResponse, error) {
	var response models.IntroDraftResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/intro-draft", req, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Status fetches dataset and storage status.
func (c *apiClient) Status(ctx context.Context) (*statusResponse, error) {
	var response statusResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/status", nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *apiClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
