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
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// Downloader fetches remote image URLs into a local cache directory.
// Cache filenames derive from a content hash of the URL, so the same
// image is downloaded once across products and jobs.
type Downloader struct {
	dir    string
	http   *http.Client
	logger *slog.Logger
}

// NewDownloader creates a downloader caching into dir.
func NewDownloader(dir string, client *http.Client) *Downloader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Downloader{
		dir:    dir,
		http:   client,
		logger: slog.Default().With("component", "images"),
	}
}

// Fetch downloads url into the cache and returns the local path.
// An already-cached URL is returned without a network call.
func (d *Downloader) Fetch(ctx context.Context, url string) (string, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", err
	}

	local := filepath.Join(d.dir, cacheName(url))
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := d.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	tmp, err := os.CreateTemp(d.dir, "download-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), local); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	d.logger.Debug("image cached", "url", url, "path", local)
	return local, nil
}

// cacheName derives a stable filename from the URL content hash,
// keeping the original extension when it looks like an image extension.
func cacheName(url string) string {
	h, _ := blake2b.New(16, nil)
	h.Write([]byte(url))
	name := hex.EncodeToString(h.Sum(nil))

	ext := strings.ToLower(path.Ext(strings.SplitN(path.Base(url), "?", 2)[0]))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return name + ext
	default:
		return name + ".jpg"
	}
}
