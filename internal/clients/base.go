package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/acrsolucoedig-spec/cellparts/internal/middleware"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

type Client struct {
	Name    string
	BaseURL *url.URL
	HTTP    *http.Client
}

func NewClient(name string, baseURL string, httpClient *http.Client) *Client {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		// Fail fast: config error
		panic(fmt.Sprintf("invalid %s base url %q: %v", name, baseURL, err))
	}
	u.Path = strings.TrimRight(u.Path, "/")
	return &Client{Name: name, BaseURL: u, HTTP: httpClient}
}

// Do issues a request. path must already be escaped (see escape).
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Response, error) {
	unescaped, err := url.PathUnescape(path)
	if err != nil {
		return nil, fmt.Errorf("%s: bad path %q: %w", c.Name, path, err)
	}
	u := *c.BaseURL
	u.Path = c.BaseURL.Path + unescaped
	u.RawPath = c.BaseURL.EscapedPath() + path
	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if tok := middleware.GetBearerToken(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	// Ensure correlation id propagated downstream
	if cid := middleware.GetCorrelationID(ctx); cid != "" {
		req.Header.Set(middleware.HeaderCorrelationID, cid)
	}

	return c.HTTP.Do(req)
}

// doJSON sends in (when non-nil) as JSON and decodes a 2xx body into out (when non-nil).
// Non-2xx responses become *APIError.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", c.Name, err)
		}
		body = bytes.NewReader(buf)
	}

	resp, err := c.Do(ctx, method, path, query, body)
	if err != nil {
		return fmt.Errorf("%s %s %s: %w", c.Name, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(c.Name, method, path, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("%s %s %s: decode response: %w", c.Name, method, path, err)
	}
	return nil
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
