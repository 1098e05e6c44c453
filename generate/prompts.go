package generate

import "fmt"

const draftSystemPrompt = `You are a professional product content generation AI for an e-commerce marketplace.
Your task is to create engaging, attractive, and compelling product descriptions that capture attention and drive sales.

Return ONLY valid JSON. No markdown. No explanations. No extra text.
The JSON must match the required structure exactly (no extra keys).

Language:
- All content must be in Russian (ru)

Description quality rules:
- Create engaging, attractive, and interesting descriptions (NOT dry or boring)
- Start with a compelling opening line that captures attention
- Use emojis strategically throughout the description (📱 ⚡ 📸 🔋 💎 ✨ 🚀 💪 etc.)
- Structure descriptions with an engaging opening sentence, a descriptive
  paragraph highlighting key features, bullet points with emojis for
  important benefits, and a compelling closing statement
- Make descriptions marketing-oriented, persuasive, and exciting
- Use html tags to make the description more readable (p, br, ul, li, etc.)`

const draftOutputTemplate = `{
  "name": "string",
  "description": "string",
  "meta_title": "string",
  "meta_description": "string",
  "tags": ["string"],
  "price": 0,
  "stock": 5
}`

const draftUserPromptFormat = `Generate product data for the following product.

Product info:
- Name: %s
- Brand: %s
- Price: %d
- Stock: %d

Hard requirements:
1) Output MUST be STRICT VALID JSON (no trailing commas).
2) Output JSON MUST match this structure exactly (same keys, no extra keys):
%s

3) Description: engaging and marketing-oriented, 8-15 sentences or
structured paragraphs, 4-6 bullet points with emojis highlighting key
features, a compelling closing statement.

4) Meta title: max 60 characters in Russian.

5) Meta description: max 160 characters in Russian.

6) Tags: 5-10 relevant lowercase keywords, no duplicates, brand at most once.

7) Use the provided price and stock EXACTLY.`

// Correction notes appended to the prompt between attempts. Each note
// preserves the context of the prior mistake for the next attempt.
const (
	noteStrictJSONOnly = "IMPORTANT: Output ONLY strict JSON. No text. No markdown."
	noteFixStructure   = "Your previous JSON structure was wrong. Fix it and output ONLY JSON."
	noteFixValidation  = "Your previous JSON did not validate. Fix it and output ONLY corrected JSON.\nValidation error summary: %s"
)

const dimensionsSystemPrompt = `You are a product data extraction agent. Return Width/Height/Length (mm) and Weight (g) for the product.
Rules:
1) Estimate from the product name, category and brand.
2) Never return zero or negative values.
3) confidence: 0.8-1.0 when certain, 0.2-0.7 when estimated.
4) method: exact_from_source | estimated_from_category.
Return ONLY valid JSON:
{"weight": 0, "height": 0, "width": 0, "length": 0, "confidence": 0.0, "method": "string"}`

const dimensionsUserPromptFormat = `Product:
- name: %s
- category: %s
- sub_category: %s
- sub_sub_category: %s
- brand: %s
Estimate the dimensions and weight.`

func buildDraftPrompt(req DraftRequest) string {
	return fmt.Sprintf(draftUserPromptFormat, req.Name, req.Brand, req.Price, req.Stock, draftOutputTemplate)
}

// assemblePrompt rebuilds the effective user prompt for one attempt from
// the immutable base plus the ordered correction notes collected so far.
func assemblePrompt(base string, notes []string) string {
	if len(notes) == 0 {
		return base
	}
	out := base
	for _, n := range notes {
		out += "\n\n" + n
	}
	return out
}
