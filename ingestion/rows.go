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


package ingestion

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/poiesic/listera/core"
)

// BulkRowStock is the stock level applied to every bulk row. Bulk
// input carries only name, brand and price; sellers adjust stock in
// the marketplace UI afterwards.
const BulkRowStock = 100

// ParseRows reads bulk product rows from CSV input. The first three
// columns are interpreted positionally as name, brand and price. When
// the first record is a header row (its price column is not numeric)
// it is skipped, and a "stock" header, if present, overrides the
// default stock for rows that fill that column.
//
// Only fully-blank records are dropped. A record with a missing name
// or an unparseable price is kept with zero values so the pipeline
// reports it as a failed row instead of it vanishing from the batch.
func ParseRows(r io.Reader) ([]core.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	stockCol := -1
	if len(records) > 0 && isHeader(records[0]) {
		for i, h := range records[0] {
			if strings.EqualFold(strings.TrimSpace(h), "stock") {
				stockCol = i
			}
		}
		records = records[1:]
	}

	var rows []core.RawRow
	for _, record := range records {
		if isBlank(record) {
			continue
		}

		row := core.RawRow{
			Index: len(rows),
			Name:  strings.TrimSpace(record[0]),
			Stock: BulkRowStock,
		}
		if len(record) > 1 {
			row.Brand = strings.TrimSpace(record[1])
		}
		if len(record) > 2 {
			if price, err := parsePrice(record[2]); err == nil {
				row.Price = price
			}
		}
		if stockCol >= 0 && stockCol < len(record) {
			if stock, err := strconv.Atoi(strings.TrimSpace(record[stockCol])); err == nil && stock >= 0 {
				row.Stock = stock
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}

// rowProblem reports structural defects kept from parse time. The
// pipeline fails such rows up front so they show up in the outcome log
// and the progress feed like any other row failure.
func rowProblem(row core.RawRow) error {
	if row.Name == "" {
		return errors.New("row has no product name")
	}
	if row.Price <= 0 {
		return errors.New("row price is missing or not numeric")
	}
	return nil
}

// isBlank reports whether every cell of the record is empty.
func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// isHeader reports whether a record looks like a header row: three or
// more columns with a non-numeric price column.
func isHeader(record []string) bool {
	if len(record) < 3 {
		return false
	}
	_, err := parsePrice(record[2])
	return err != nil
}

// parsePrice accepts integer or decimal price cells, truncating any
// fractional part.
func parsePrice(cell string) (int64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}
