package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	t.Run("lowercases and trims", func(t *testing.T) {
		got := NormalizeTags([]string{" Smartphone ", "APPLE"}, MaxTags)
		assert.Equal(t, []string{"smartphone", "apple"}, got)
	})

	t.Run("drops duplicates keeping first occurrence", func(t *testing.T) {
		got := NormalizeTags([]string{"phone", "Phone", "case", "phone"}, MaxTags)
		assert.Equal(t, []string{"phone", "case"}, got)
	})

	t.Run("drops empty entries", func(t *testing.T) {
		got := NormalizeTags([]string{"", "  ", "phone"}, MaxTags)
		assert.Equal(t, []string{"phone"}, got)
	})

	t.Run("caps at max", func(t *testing.T) {
		in := []string{"a", "b", "c", "d", "e"}
		got := NormalizeTags(in, 3)
		assert.Equal(t, []string{"a", "b", "c"}, got)
	})

	t.Run("idempotent on normalized input", func(t *testing.T) {
		once := NormalizeTags([]string{" Phone", "Case", "PHONE", "charger"}, MaxTags)
		twice := NormalizeTags(once, MaxTags)
		assert.Equal(t, once, twice)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, NormalizeTags(nil, MaxTags))
	})
}

func TestDefaultDimensions(t *testing.T) {
	d := DefaultDimensions()
	assert.Equal(t, 1, d.Weight)
	assert.Equal(t, 1, d.Height)
	assert.Equal(t, 1, d.Width)
	assert.Equal(t, 1, d.Length)
	assert.Equal(t, "default", d.Method)
}
