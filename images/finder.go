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
	"log/slog"
	"os"
	"path/filepath"
)

// Finder locates product images and returns local file paths, ready for
// upload. Implementations wrap image search backends; the pipeline only
// depends on this interface and falls back to a placeholder when a
// finder returns nothing.
type Finder interface {
	FindImages(ctx context.Context, productName, brand string, max int) ([]string, error)
}

// FinderFunc adapts a function to the Finder interface.
type FinderFunc func(ctx context.Context, productName, brand string, max int) ([]string, error)

// FindImages calls f.
func (f FinderFunc) FindImages(ctx context.Context, productName, brand string, max int) ([]string, error) {
	return f(ctx, productName, brand, max)
}

// NoFinder is a Finder that never finds anything, for deployments
// without an image search backend. The pipeline then uses the
// placeholder for every product.
func NoFinder() Finder {
	return FinderFunc(func(ctx context.Context, productName, brand string, max int) ([]string, error) {
		return nil, nil
	})
}

// placeholderPNG is a 1x1 transparent PNG.
var placeholderPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

// DefaultImagePath returns the placeholder image used when no real
// product images are found, creating the media directory and the file
// on first use.
func DefaultImagePath(mediaDir string) (string, error) {
	if err := os.MkdirAll(mediaDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(mediaDir, "default_product.png")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, placeholderPNG, 0o644); err != nil {
			return "", err
		}
		slog.Default().Info("created placeholder image", "path", path)
	}
	return path, nil
}
