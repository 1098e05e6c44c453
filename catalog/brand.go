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


package catalog

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/poiesic/listera/core"
)

// brandSimilarityFloor is the minimum similarity ratio for a fuzzy brand
// match. Below it the first catalog brand is used as the fallback.
const brandSimilarityFloor = 0.6

// MatchBrand resolves a free-text brand name to a catalog brand id.
// It is fully deterministic: exact case-insensitive trimmed match wins;
// otherwise the closest fuzzy match at or above the similarity floor;
// otherwise the first brand in the list. With a non-empty list it always
// returns some id: catalogs conventionally keep an "Unknown" brand at a
// fixed position, and callers rely on this never failing.
func MatchBrand(name string, brands []core.Brand) int {
	if len(brands) == 0 {
		return 0
	}

	search := strings.ToLower(strings.TrimSpace(name))
	for _, b := range brands {
		if strings.ToLower(strings.TrimSpace(b.Name)) == search {
			return b.ID
		}
	}

	best := -1
	bestRatio := 0.0
	for i, b := range brands {
		ratio := similarity(name, b.Name)
		if ratio >= brandSimilarityFloor && ratio > bestRatio {
			best = i
			bestRatio = ratio
		}
	}
	if best >= 0 {
		return brands[best].ID
	}

	return brands[0].ID
}

// similarity is the normalized edit-distance ratio between two strings,
// computed character-wise with difflib's SequenceMatcher (2*M/T).
func similarity(a, b string) float64 {
	return difflib.NewMatcher(chars(a), chars(b)).Ratio()
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
