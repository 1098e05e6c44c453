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


// Package codes looks up tax classification codes for marketplace
// listings. Uzbek marketplaces require an MXIK code (national product
// classifier) and a package code on every product; both are keyed by
// the deepest category the product was placed into.
package codes

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Entry holds the codes for one category.
type Entry struct {
	MXIK        int
	PackageCode int
}

// Table maps sub-sub-category ids to their classification codes.
type Table struct {
	entries map[int]Entry
	logger  *slog.Logger
}

// Empty returns a table with no entries. Every lookup yields zero
// codes, which the marketplace accepts as "unclassified".
func Empty() *Table {
	return &Table{
		entries: map[int]Entry{},
		logger:  slog.Default().With("component", "codes"),
	}
}

// Load reads a code table from a headerless CSV file. Columns are
// positional: category id in column 0, MXIK code in column 2, package
// code in column 3. Rows with an unparseable category id are skipped.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses a code table from r. See Load for the column layout.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	t := Empty()
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 4 {
			continue
		}

		id, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			continue
		}

		var entry Entry
		entry.MXIK, _ = strconv.Atoi(strings.TrimSpace(record[2]))
		entry.PackageCode, _ = strconv.Atoi(strings.TrimSpace(record[3]))
		t.entries[id] = entry
	}
	return t, nil
}

// Len reports the number of categories in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Lookup returns the codes for a sub-sub-category id. A missing or
// unparseable id yields zero codes rather than an error; listings
// still go through without classification.
func (t *Table) Lookup(subSubCategoryID string) (mxik, packageCode int) {
	if subSubCategoryID == "" {
		t.logger.Info("no sub-sub-category for code lookup, using defaults")
		return 0, 0
	}

	id, err := strconv.Atoi(strings.TrimSpace(subSubCategoryID))
	if err != nil {
		t.logger.Warn("non-numeric sub-sub-category id", "id", subSubCategoryID)
		return 0, 0
	}

	entry, ok := t.entries[id]
	if !ok {
		return 0, 0
	}
	return entry.MXIK, entry.PackageCode
}
