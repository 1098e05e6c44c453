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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRowsPositional(t *testing.T) {
	rows, err := ParseRows(strings.NewReader("Galaxy S24,Samsung,4500000\nAirPods Pro,Apple,2300000.50\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 0, rows[0].Index)
	assert.Equal(t, "Galaxy S24", rows[0].Name)
	assert.Equal(t, "Samsung", rows[0].Brand)
	assert.Equal(t, int64(4500000), rows[0].Price)
	assert.Equal(t, BulkRowStock, rows[0].Stock)

	// Decimal prices are truncated.
	assert.Equal(t, int64(2300000), rows[1].Price)
}

func TestParseRowsHeaderSkipped(t *testing.T) {
	rows, err := ParseRows(strings.NewReader("Name,Brand,Price\nGalaxy S24,Samsung,4500000\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Galaxy S24", rows[0].Name)
}

func TestParseRowsStockColumn(t *testing.T) {
	input := "Name,Brand,Price,Stock\nGalaxy S24,Samsung,4500000,25\nAirPods Pro,Apple,2300000,\n"
	rows, err := ParseRows(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 25, rows[0].Stock)
	// Empty stock cell falls back to the bulk default.
	assert.Equal(t, BulkRowStock, rows[1].Stock)
}

func TestParseRowsKeepsMalformedRows(t *testing.T) {
	input := "Galaxy S24,Samsung,4500000\n,Apple,100\nShort,row\nNo Price,Apple,free\nAirPods,Apple,2300000\n"
	rows, err := ParseRows(strings.NewReader(input))
	require.NoError(t, err)

	// Malformed rows stay in the batch so they get reported, not
	// silently dropped.
	require.Len(t, rows, 5)
	assert.NoError(t, rowProblem(rows[0]))
	assert.Error(t, rowProblem(rows[1]), "missing name")
	assert.Error(t, rowProblem(rows[2]), "missing price column")
	assert.Error(t, rowProblem(rows[3]), "non-numeric price")
	assert.NoError(t, rowProblem(rows[4]))

	assert.Equal(t, "AirPods", rows[4].Name)
	assert.Equal(t, 4, rows[4].Index)
}

func TestParseRowsDropsBlankRows(t *testing.T) {
	input := "Galaxy S24,Samsung,4500000\n,,\n ,  ,\nAirPods,Apple,2300000\n"
	rows, err := ParseRows(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Galaxy S24", rows[0].Name)
	assert.Equal(t, "AirPods", rows[1].Name)
}

func TestParseRowsEmptyInput(t *testing.T) {
	_, err := ParseRows(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoRows)

	_, err = ParseRows(strings.NewReader("Name,Brand,Price\n"))
	assert.ErrorIs(t, err, ErrNoRows)
}
