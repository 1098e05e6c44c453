package generate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/poiesic/listera/ai/openai"
	"github.com/poiesic/listera/core"
)

// EstimateDimensions asks the generative service for a weight/size
// estimate used by the marketplace shipping fields. The data is advisory:
// any failure (transport, parse, nonsense values) falls back to
// core.DefaultDimensions with a warning and never fails the caller.
func (c *Client) EstimateDimensions(ctx context.Context, name, brand string, sel *core.CategorySelection) core.Dimensions {
	var category, sub, subSub string
	if sel != nil {
		category = sel.CategoryName
		sub = sel.SubCategoryName
		subSub = sel.SubSubCategoryName
	}

	user := fmt.Sprintf(dimensionsUserPromptFormat, name, category, sub, subSub, brand)

	text, err := c.gen.Complete(ctx, dimensionsSystemPrompt, user)
	if err != nil {
		c.logger.Warn("dimension estimate unavailable", "product", name, "err", err)
		return core.DefaultDimensions()
	}

	var dims core.Dimensions
	if err := json.Unmarshal([]byte(openai.RepairJSON(text)), &dims); err != nil {
		c.logger.Warn("dimension estimate unparseable", "product", name, "err", err)
		return core.DefaultDimensions()
	}

	if dims.Weight <= 0 || dims.Height <= 0 || dims.Width <= 0 || dims.Length <= 0 {
		c.logger.Warn("dimension estimate out of range", "product", name,
			"weight", dims.Weight, "height", dims.Height, "width", dims.Width, "length", dims.Length)
		return core.DefaultDimensions()
	}

	return dims
}
