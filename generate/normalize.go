package generate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/poiesic/listera/core"
)

// draftPayload is the wire shape of a generated draft. Tags stay raw
// because models return them in several shapes; Stock is a pointer so a
// missing field can be defaulted.
type draftPayload struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	MetaTitle       string          `json:"meta_title"`
	MetaDescription string          `json:"meta_description"`
	Tags            json.RawMessage `json:"tags"`
	Price           int64           `json:"price"`
	Stock           *int            `json:"stock"`
}

// normalizeDraft converts the wire payload into a domain draft:
// tags are coerced to a flat normalized set and a missing stock is
// defaulted.
func (c *Client) normalizeDraft(p *draftPayload) (*core.ProductDraft, error) {
	tags, err := coerceTags(p.Tags)
	if err != nil {
		return nil, err
	}

	stock := core.DefaultStock
	if p.Stock != nil {
		stock = *p.Stock
	}

	return &core.ProductDraft{
		Name:            p.Name,
		Description:     p.Description,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		Tags:            core.NormalizeTags(tags, c.maxTags),
		Price:           p.Price,
		Stock:           stock,
	}, nil
}

// coerceTags accepts the tag shapes models actually produce:
//
//   - ["a","b"]
//   - "a, b, c"
//   - {"ru": [...], "uz": [...]}  (legacy per-language mapping)
//   - {"ru": "a,b", "uz": "c,d"}  (legacy)
func coerceTags(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var asList []any
	if err := json.Unmarshal(raw, &asList); err == nil {
		return flattenTagValues(asList), nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return splitTagString(asString), nil
	}

	var asMap map[string]json.RawMessage
	if err := json.Unmarshal(raw, &asMap); err == nil {
		var merged []string
		for _, lang := range []string{"ru", "uz"} {
			v, ok := asMap[lang]
			if !ok {
				continue
			}
			tags, err := coerceTags(v)
			if err != nil {
				return nil, err
			}
			merged = append(merged, tags...)
		}
		return merged, nil
	}

	return nil, fmt.Errorf("unsupported tags shape: %s", truncate(string(raw), 120))
}

func flattenTagValues(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		s := strings.TrimSpace(fmt.Sprint(v))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func splitTagString(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// warnIfNoCyrillic is a soft guardrail: generated content is expected in
// Russian, but a miss is logged rather than failing the draft.
func (c *Client) warnIfNoCyrillic(draft *core.ProductDraft, product string) {
	for _, field := range []string{draft.Name, draft.Description, draft.MetaTitle, draft.MetaDescription} {
		if containsCyrillic(field) {
			return
		}
	}
	c.logger.Warn("generated text may not contain Cyrillic characters", "product", product)
}

func containsCyrillic(s string) bool {
	for _, r := range s {
		if r >= 0x0400 && r <= 0x04FF {
			return true
		}
	}
	return false
}
