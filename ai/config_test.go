package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 0.3, cfg.Temperature)
	assert.Equal(t, 2, cfg.MaxRetries)
	require.NoError(t, cfg.Validate())
}

func TestConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://localhost:11434"),
		WithToken("secret"),
		WithModel("qwen2.5:3b"),
		WithTemperature(0.0),
		WithMaxRetries(5),
	)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, "qwen2.5:3b", cfg.Model)
	assert.Equal(t, 0.0, cfg.Temperature)
	assert.Equal(t, 5, cfg.MaxRetries)
}

func TestConfigNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"http://localhost:11434", "http://localhost:11434/v1"},
		{"http://localhost:11434/", "http://localhost:11434/v1"},
		{"http://localhost:11434/v1", "http://localhost:11434/v1"},
		{"", ""},
	}
	for _, tc := range cases {
		cfg := &Config{Host: tc.in}
		cfg.Normalize()
		assert.Equal(t, tc.want, cfg.Host)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("missing host", func(t *testing.T) {
		cfg := NewConfig(WithHost(""))
		cfg.Host = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := NewConfig(WithModel(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("temperature out of range", func(t *testing.T) {
		cfg := NewConfig(WithTemperature(3.5))
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative retries", func(t *testing.T) {
		cfg := NewConfig(WithMaxRetries(-1))
		assert.Error(t, cfg.Validate())
	})
}
