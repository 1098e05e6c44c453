package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripFences(tc.in))
		})
	}
}

func TestRepairJSON(t *testing.T) {
	t.Run("removes trailing comma in object", func(t *testing.T) {
		assert.Equal(t, `{"a":1}`, RepairJSON(`{"a":1,}`))
	})

	t.Run("removes trailing comma in array", func(t *testing.T) {
		assert.Equal(t, `["a","b"]`, RepairJSON(`["a","b",]`))
	})

	t.Run("removes trailing comma across newline", func(t *testing.T) {
		assert.Equal(t, "{\"a\":1\n}", RepairJSON("{\"a\":1,\n}"))
	})

	t.Run("keeps commas inside strings", func(t *testing.T) {
		in := `{"a":"x, }","b":1}`
		assert.Equal(t, in, RepairJSON(in))
	})

	t.Run("keeps escaped quotes intact", func(t *testing.T) {
		in := `{"a":"say \",\" loud"}`
		assert.Equal(t, in, RepairJSON(in))
	})

	t.Run("valid json untouched", func(t *testing.T) {
		in := `{"tags":["a","b"],"price":10}`
		assert.Equal(t, in, RepairJSON(in))
	})
}
