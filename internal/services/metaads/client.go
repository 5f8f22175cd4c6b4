package metaads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"adsync/internal/cache"
	"adsync/internal/logging"
	"adsync/internal/services"
)

const defaultRequestTimeout = 30 * time.Second

// Config captures the runtime settings required to talk to the platform.
type Config struct {
	BaseURL        string
	APIVersion     string
	AccessToken    string
	AdAccountID    string
	PageID         string
	TimeoutSeconds int
}

// Client executes requests against the Meta Marketing API.
type Client struct {
	cfg        Config
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
	cache      *cache.Cache
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithCache attaches a TTL cache used by the read endpoints. Without one,
// reads always hit the network.
func WithCache(store *cache.Cache) Option {
	return func(c *Client) {
		c.cache = store
	}
}

// New constructs a platform client.
func New(cfg Config, logger *slog.Logger, opts ...Option) (*Client, error) {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.AccessToken = strings.TrimSpace(cfg.AccessToken)
	cfg.AdAccountID = strings.TrimPrefix(strings.TrimSpace(cfg.AdAccountID), "act_")
	if cfg.BaseURL == "" {
		return nil, errors.New("platform base url required")
	}
	if cfg.AccessToken == "" {
		return nil, errors.New("platform access token required")
	}
	if cfg.AdAccountID == "" {
		return nil, errors.New("platform ad account id required")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "v21.0"
	}
	timeout := defaultRequestTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg:        cfg,
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     logging.NewComponentLogger(logger, "metaads"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// AccountPath returns the act_-prefixed account path segment.
func (c *Client) AccountPath() string {
	return "act_" + c.cfg.AdAccountID
}

// PageID returns the configured page for call-to-action payloads.
func (c *Client) PageID() string {
	return c.cfg.PageID
}

func (c *Client) buildURL(path string, params url.Values) (string, error) {
	endpoint, err := url.Parse(fmt.Sprintf("%s/%s/%s", c.cfg.BaseURL, c.cfg.APIVersion, strings.TrimLeft(path, "/")))
	if err != nil {
		return "", fmt.Errorf("parse platform url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("access_token", c.cfg.AccessToken)
	endpoint.RawQuery = params.Encode()
	return endpoint.String(), nil
}

// GetJSON performs a GET against path and decodes the response into out.
func (c *Client) GetJSON(ctx context.Context, path string, params url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, params, nil, out)
}

// PostJSON performs a POST with a JSON body against path and decodes the
// response into out. A nil body sends form parameters only.
func (c *Client) PostJSON(ctx context.Context, path string, params url.Values, body any, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, params, body, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, params url.Values, body any, out any) error {
	target, err := c.buildURL(path, params)
	if err != nil {
		return err
	}

	var reader io.Reader
	contentType := ""
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	return c.execute(ctx, method, path, target, reader, contentType, out)
}

// PostForm submits params as a form-encoded request body, keeping only the
// credential in the query string. Large payloads (encoded image bytes) must
// travel in the body; intermediaries cap request-line length.
func (c *Client) PostForm(ctx context.Context, path string, params url.Values, out any) error {
	target, err := c.buildURL(path, nil)
	if err != nil {
		return err
	}
	if params == nil {
		params = url.Values{}
	}
	body := strings.NewReader(params.Encode())
	return c.execute(ctx, http.MethodPost, path, target, body, "application/x-www-form-urlencoded", out)
}

// PostMultipart submits a multipart form with the supplied string fields and a
// single file part, decoding the response into out.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, fileField, fileName string, file []byte, out any) error {
	target, err := c.buildURL(path, nil)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("write form field %q: %w", key, err)
		}
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := part.Write(file); err != nil {
			return fmt.Errorf("write form file: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize multipart body: %w", err)
	}

	return c.execute(ctx, http.MethodPost, path, target, &buf, writer.FormDataContentType(), out)
}

func (c *Client) execute(ctx context.Context, method, path, target string, body io.Reader, contentType string, out any) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return services.Wrap(services.ErrTimeout, "metaads", path,
				fmt.Sprintf("request exceeded %s", c.timeout), err)
		}
		return services.Wrap(services.ErrTransport, "metaads", path,
			fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return services.Wrap(services.ErrTransport, "metaads", path, "read response", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := parseErrorBody(resp.StatusCode, payload)
		c.logger.Debug("platform rejected request",
			logging.String(logging.FieldEndpoint, path),
			logging.Int("status", resp.StatusCode),
			logging.Int("code", apiErr.Code),
			logging.Duration("latency", latency))
		return fmt.Errorf("%w: %s: %w", services.ErrPlatform, path, apiErr)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode platform response for %s: %w", path, err)
	}
	return nil
}
