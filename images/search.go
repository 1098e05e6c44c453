// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package images

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SearchFinder queries an image-search HTTP endpoint for candidate
// URLs and downloads them into the local cache, returning file paths
// ready for upload. Individual download failures are skipped; the
// product just gets fewer images.
type SearchFinder struct {
	endpoint string
	http     *http.Client
	down     *Downloader
	logger   *slog.Logger
}

// NewSearchFinder creates a finder against endpoint, caching downloads
// under cacheDir. The endpoint receives the search query as a `text`
// parameter and must answer with `{"images": [{"url": "..."}]}`.
func NewSearchFinder(endpoint, cacheDir string, client *http.Client) *SearchFinder {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &SearchFinder{
		endpoint: endpoint,
		http:     client,
		down:     NewDownloader(cacheDir, client),
		logger:   slog.Default().With("component", "images"),
	}
}

type searchResponse struct {
	Images []struct {
		URL   string `json:"url"`
		Title string `json:"title"`
	} `json:"images"`
}

// FindImages searches for product images and returns up to max local
// paths. Brand and product name are combined into one query, which
// matches real catalog titles better than the name alone.
func (f *SearchFinder) FindImages(ctx context.Context, productName, brand string, max int) ([]string, error) {
	query := strings.TrimSpace(brand + " " + productName)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		f.endpoint+"?text="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image search: status %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("image search: %w", err)
	}

	var paths []string
	for _, img := range result.Images {
		if len(paths) >= max {
			break
		}
		if img.URL == "" {
			continue
		}
		local, err := f.down.Fetch(ctx, img.URL)
		if err != nil {
			f.logger.Warn("image download failed", "url", img.URL, "err", err)
			continue
		}
		paths = append(paths, local)
	}
	return paths, nil
}
