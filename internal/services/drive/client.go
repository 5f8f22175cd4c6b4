package drive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// File describes one entry in the asset store.
type File struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
	Folder   bool   `json:"folder"`
}

// Lister lists the children of a folder, optionally filtered by exact name.
type Lister interface {
	ListChildren(ctx context.Context, parentID, nameFilter string) ([]File, error)
}

// Downloader fetches a file's raw content by id.
type Downloader interface {
	Download(ctx context.Context, fileID string) ([]byte, error)
}

// Store combines the two operations the pipeline needs.
type Store interface {
	Lister
	Downloader
}

// Client talks to the asset store's REST API with a bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ Store = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates an asset store client.
func New(baseURL, token string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("drive base url required")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("drive token required")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	client := &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ListChildren returns the immediate children of parentID. A non-empty
// nameFilter restricts the listing to entries with that exact name.
func (c *Client) ListChildren(ctx context.Context, parentID, nameFilter string) ([]File, error) {
	parentID = strings.TrimSpace(parentID)
	if parentID == "" {
		return nil, errors.New("parent id must not be empty")
	}
	endpoint, err := url.Parse(fmt.Sprintf("%s/folders/%s/children", c.baseURL, url.PathEscape(parentID)))
	if err != nil {
		return nil, fmt.Errorf("parse drive url: %w", err)
	}
	if nameFilter != "" {
		params := url.Values{}
		params.Set("name", nameFilter)
		endpoint.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list folder %s: %w", parentID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list folder %s returned %d", parentID, resp.StatusCode)
	}

	var payload struct {
		Files []File `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode folder listing: %w", err)
	}
	return payload.Files, nil
}

// Download fetches the raw content of fileID.
func (c *Client) Download(ctx context.Context, fileID string) ([]byte, error) {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return nil, errors.New("file id must not be empty")
	}
	target := fmt.Sprintf("%s/files/%s/content", c.baseURL, url.PathEscape(fileID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file %s returned %d", fileID, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file %s content: %w", fileID, err)
	}
	return data, nil
}
