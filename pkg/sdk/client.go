package sdk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrAssetNotFound is returned by AssetClient.Get when the server answers 404.
var ErrAssetNotFound = errors.New("asset not found")

// AssetClient fetches assets from a player's file server.
type AssetClient struct {
	baseURL string
	client  *http.Client
}

// NewAssetClient creates a client for the server at base, which may omit
// the scheme.
func NewAssetClient(base string) *AssetClient {
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	return &AssetClient{
		baseURL: strings.TrimRight(base, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// URL returns the absolute URL of path.
func (c *AssetClient) URL(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// Get fetches path and returns the response body.
func (c *AssetClient) Get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "gamesdk/"+Version)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, path)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("get %s: unexpected status %d", path, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
