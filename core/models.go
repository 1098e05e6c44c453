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


package core

import (
	"strings"
	"time"
)

// DefaultCategoryID is the sentinel used when no category could be
// determined. It is not a real catalog id.
const DefaultCategoryID = "0"

// DefaultStock is applied when a generated draft omits the stock field.
const DefaultStock = 5

// MaxTags caps the number of tags kept on a draft after normalization.
const MaxTags = 10

// ProductDraft is the AI-generated listing content for one product.
// Price and Stock are advisory in the generated output; the pipeline
// overwrites both with the caller-supplied values before submission.
type ProductDraft struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
	Tags            []string `json:"tags"`
	Price           int64    `json:"price"`
	Stock           int      `json:"stock"`
}

// CategorySelection is the resolved placement of a product in the
// marketplace catalog. A populated SubCategoryID implies a populated
// CategoryID that is its parent in the catalog tree; likewise for
// SubSubCategoryID. Selections are created once by the resolver and
// never mutated.
type CategorySelection struct {
	CategoryID         string
	CategoryName       string
	SubCategoryID      string
	SubCategoryName    string
	SubSubCategoryID   string
	SubSubCategoryName string
	BrandID            int
}

// Category is one node of the marketplace catalog tree.
// The tree is a read-only snapshot fetched once per job.
type Category struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Children []Category `json:"childes"`
}

// Brand is one entry of the marketplace brand list.
type Brand struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Option is an (id, name) pair presented to the generative service
// during staged category selection.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RawRow is one input record of a bulk job: the bare product facts that
// drive one pass through the ingestion sub-pipeline.
type RawRow struct {
	Index int
	Name  string
	Brand string
	Price int64
	Stock int
}

// Credentials are the seller account credentials for one job.
type Credentials struct {
	Email    string
	Password string
}

// Dimensions is the estimated physical size of a product.
// Weight is in grams, the sides in millimeters.
type Dimensions struct {
	Weight     int     `json:"weight"`
	Height     int     `json:"height"`
	Width      int     `json:"width"`
	Length     int     `json:"length"`
	Confidence float64 `json:"confidence"`
	Method     string  `json:"method"`
}

// DefaultDimensions is used when estimation fails. The seller API
// rejects zero or negative values, so every field defaults to 1.
func DefaultDimensions() Dimensions {
	return Dimensions{Weight: 1, Height: 1, Width: 1, Length: 1, Method: "default"}
}

// RowOutcome records how one row of a bulk job finished.
type RowOutcome struct {
	Row        int
	Name       string
	Submitted  bool
	Error      string
	FinishedAt time.Time
}

// NormalizeTags lowercases and trims tags, drops empties and duplicates
// (keeping first-occurrence order), and caps the result at max entries.
// Applying it to an already-normalized set returns an identical set.
func NormalizeTags(tags []string, max int) []string {
	cleaned := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		tt := strings.ToLower(strings.TrimSpace(t))
		if tt == "" {
			continue
		}
		if _, ok := seen[tt]; ok {
			continue
		}
		seen[tt] = struct{}{}
		cleaned = append(cleaned, tt)
		if len(cleaned) >= max {
			break
		}
	}
	return cleaned
}
