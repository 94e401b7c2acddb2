// Package download fetches remote descriptors over HTTP.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultUserAgent = "building-editor/1.0"

// MaxBytes bounds a single response body.
const MaxBytes = 64 << 20

// Client is shared by every Fetch.
var Client = &http.Client{Timeout: 60 * time.Second}

// Fetch GETs url and returns the body. Non-200 responses are errors.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json")
	resp, err := Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: %s: HTTP %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	if len(data) > MaxBytes {
		return nil, fmt.Errorf("download: %s: body exceeds %d bytes", url, MaxBytes)
	}
	return data, nil
}
