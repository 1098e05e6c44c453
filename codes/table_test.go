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


package codes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `601,Smartphones,10599001001,796
602,Laptops,10599002002,778
notanid,Broken,123,456
700,Short row
`

func TestReadTable(t *testing.T) {
	table, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	// Rows with bad ids or too few columns are skipped.
	assert.Equal(t, 2, table.Len())
}

func TestLookup(t *testing.T) {
	table, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	mxik, pkg := table.Lookup("601")
	assert.Equal(t, 10599001001, mxik)
	assert.Equal(t, 796, pkg)

	mxik, pkg = table.Lookup(" 602 ")
	assert.Equal(t, 10599002002, mxik)
	assert.Equal(t, 778, pkg)
}

func TestLookupDefaults(t *testing.T) {
	table, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	tests := []struct {
		name string
		id   string
	}{
		{"empty id", ""},
		{"unknown id", "999"},
		{"non-numeric id", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mxik, pkg := table.Lookup(tt.id)
			assert.Zero(t, mxik)
			assert.Zero(t, pkg)
		})
	}
}

func TestEmptyTable(t *testing.T) {
	mxik, pkg := Empty().Lookup("601")
	assert.Zero(t, mxik)
	assert.Zero(t, pkg)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codes.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
