// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultURL is the ECS flat fields CSV published by Elastic.
const DefaultURL = "https://raw.githubusercontent.com/elastic/ecs/main/generated/csv/fields.csv"

const (
	defaultTTL          = 24 * time.Hour
	defaultFetchTimeout = 30 * time.Second
	cacheFileName       = "fields.csv"
)

// Fetcher downloads the reference CSV and caches the raw bytes on disk.
// A cached copy younger than TTL is reused without a network round trip.
type Fetcher struct {
	// URL of the CSV; DefaultURL when empty.
	URL string
	// CacheDir for the downloaded copy; the user cache dir when empty.
	CacheDir string
	// TTL before a cached copy is considered stale; 24h when zero.
	TTL time.Duration
	// Offline forbids network access: any cached copy is used regardless of
	// age, and a missing cache is an error.
	Offline bool
	Client  *http.Client
}

// Fetch returns the raw CSV text.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	cachePath, err := f.cachePath()
	if err != nil {
		return "", err
	}

	ttl := f.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}
	if data, ok := readCache(cachePath, ttl); ok {
		return string(data), nil
	}

	if f.Offline {
		// Stale is acceptable offline; absent is not.
		data, err := os.ReadFile(cachePath)
		if err != nil {
			return "", fmt.Errorf("offline mode with no cached schema at %s", cachePath)
		}
		return string(data), nil
	}

	data, err := f.download(ctx)
	if err != nil {
		// A stale cache beats a failed run.
		if stale, readErr := os.ReadFile(cachePath); readErr == nil {
			return string(stale), nil
		}
		return "", err
	}

	if mkErr := os.MkdirAll(filepath.Dir(cachePath), 0o755); mkErr == nil {
		_ = os.WriteFile(cachePath, data, 0o644)
	}
	return string(data), nil
}

func (f *Fetcher) download(ctx context.Context) ([]byte, error) {
	url := f.URL
	if url == "" {
		url = DefaultURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building schema request: %w", err)
	}

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching schema CSV: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching schema CSV: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading schema CSV body: %w", err)
	}
	return data, nil
}

func (f *Fetcher) cachePath() (string, error) {
	dir := f.CacheDir
	if dir == "" {
		userCache, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("resolving cache dir: %w", err)
		}
		dir = filepath.Join(userCache, "ecs-detective")
	}
	return filepath.Join(dir, cacheFileName), nil
}

func readCache(path string, ttl time.Duration) ([]byte, bool) {
	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) > ttl {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}
