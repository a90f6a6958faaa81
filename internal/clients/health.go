package clients

import (
	"context"
	"io"
	"net/http"
	"time"
)

type HealthCheck struct {
	Name   string
	Client *Client
	Path   string
}

type HealthResult struct {
	Name       string `json:"name"`
	OK         bool   `json:"ok"`
	StatusCode int    `json:"statusCode,omitempty"`
	Error      string `json:"error,omitempty"`
}

func CheckHealth(ctx context.Context, check HealthCheck) HealthResult {
	// Short check timeout
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	resp, err := check.Client.Do(ctx, http.MethodGet, check.Path, nil, nil)
	if err != nil {
		return HealthResult{Name: check.Name, OK: false, Error: err.Error()}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	return HealthResult{Name: check.Name, OK: ok, StatusCode: resp.StatusCode}
}
