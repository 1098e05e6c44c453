package openai

import "strings"

// StripFences removes a surrounding markdown code fence from a model
// response, if present, and trims whitespace. Models occasionally wrap
// JSON output in ```json fences despite instructions not to.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// RepairJSON fixes trailing commas before a closing brace or bracket,
// the most common structural defect in model-produced JSON. It does not
// touch commas inside string literals.
func RepairJSON(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	inString := false
	escaped := false
	runes := []rune(s)

	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if inString {
			out.WriteRune(ch)
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}

		if ch == '"' {
			inString = true
			out.WriteRune(ch)
			continue
		}

		if ch == ',' {
			// Look ahead past whitespace for a closer.
			j := i + 1
			for j < len(runes) && (runes[j] == ' ' || runes[j] == '\n' || runes[j] == '\t' || runes[j] == '\r') {
				j++
			}
			if j < len(runes) && (runes[j] == '}' || runes[j] == ']') {
				continue // drop the trailing comma
			}
		}

		out.WriteRune(ch)
	}

	return out.String()
}
