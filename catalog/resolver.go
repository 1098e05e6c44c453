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


package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/poiesic/listera/ai"
	"github.com/poiesic/listera/core"
)

// Resolver places a product in the marketplace category hierarchy and
// maps its brand name to a catalog brand id.
//
// Category placement runs as three staged selection calls, each
// presenting only the children of the previous choice so the option set
// (and token volume) stays small. Brand matching is deterministic and
// never calls the generative service.
type Resolver struct {
	gen    ai.Generator
	logger *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a resolver around the given generator.
func NewResolver(gen ai.Generator, opts ...ResolverOption) (*Resolver, error) {
	if gen == nil {
		return nil, ErrGeneratorRequired
	}
	r := &Resolver{
		gen:    gen,
		logger: slog.Default().With("component", "catalog"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Resolve produces a CategorySelection for the product. It fails only on
// precondition violations (empty catalog or brand list); selection
// failures at any stage halt further narrowing and leave the deeper
// levels unset. Partial hierarchies are valid outcomes.
func (r *Resolver) Resolve(ctx context.Context, productName, brandName string, categories []core.Category, brands []core.Brand) (*core.CategorySelection, error) {
	if len(categories) == 0 {
		return nil, ErrEmptyCatalog
	}
	if len(brands) == 0 {
		return nil, ErrEmptyBrandList
	}

	brandID := MatchBrand(brandName, brands)
	r.logger.Info("matched brand", "brand", brandName, "brand_id", brandID)

	sel := &core.CategorySelection{
		CategoryID: core.DefaultCategoryID,
		BrandID:    brandID,
	}

	// Stage A: top-level categories.
	main := r.selectOption(ctx, "category", productName, brandName, topOptions(categories))
	if main == nil {
		return sel, nil
	}
	sel.CategoryID = main.ID
	sel.CategoryName = main.Name

	// Stage B: children of the chosen category, when it has any.
	subOptions := childOptions(categories, main.ID)
	if len(subOptions) == 0 {
		return sel, nil
	}
	sub := r.selectOption(ctx, "sub category", productName, brandName, subOptions)
	if sub == nil {
		return sel, nil
	}
	sel.SubCategoryID = sub.ID
	sel.SubCategoryName = sub.Name

	// Stage C: children of the chosen sub-category, when it has any.
	subSubOptions := grandchildOptions(categories, sub.ID)
	if len(subSubOptions) == 0 {
		return sel, nil
	}
	subSub := r.selectOption(ctx, "sub sub category", productName, brandName, subSubOptions)
	if subSub == nil {
		return sel, nil
	}
	sel.SubSubCategoryID = subSub.ID
	sel.SubSubCategoryName = subSub.Name

	r.logger.Info("resolved category hierarchy", "product", productName,
		"category", sel.CategoryName, "sub_category", sel.SubCategoryName,
		"sub_sub_category", sel.SubSubCategoryName)

	return sel, nil
}

const selectSystemPromptFormat = `You are a category selection assistant.
Select the most appropriate %s ID based on the product name and brand.

Return ONLY valid JSON:
{
  "id": "string",
  "name": "string"
}`

const selectUserPromptFormat = `Product: %s
Brand: %s

Available %ss:
%s

Select the ID. Return ONLY JSON.`

// selectOption performs a single AI selection step over the given
// options. Any failure (transport, unparseable output, missing id)
// returns nil: selection stages degrade, they never propagate errors.
func (r *Resolver) selectOption(ctx context.Context, level, productName, brandName string, options []core.Option) *core.Option {
	if len(options) == 0 {
		return nil
	}

	encoded, err := json.Marshal(options)
	if err != nil {
		r.logger.Warn("failed to encode options", "level", level, "err", err)
		return nil
	}

	system := fmt.Sprintf(selectSystemPromptFormat, level)
	user := fmt.Sprintf(selectUserPromptFormat, productName, brandName, level, encoded)

	text, err := r.gen.Complete(ctx, system, user)
	if err != nil {
		r.logger.Warn("selection call failed", "level", level, "err", err)
		return nil
	}

	var choice core.Option
	if err := json.Unmarshal([]byte(text), &choice); err != nil {
		r.logger.Warn("selection response unparseable", "level", level, "err", err)
		return nil
	}
	if choice.ID == "" {
		r.logger.Warn("selection returned no id", "level", level)
		return nil
	}
	return &choice
}

// topOptions lists the top-level categories as selection options.
func topOptions(categories []core.Category) []core.Option {
	out := make([]core.Option, 0, len(categories))
	for _, c := range categories {
		out = append(out, core.Option{ID: c.ID, Name: c.Name})
	}
	return out
}

// childOptions lists the direct children of the top-level category with
// the given id.
func childOptions(categories []core.Category, parentID string) []core.Option {
	for _, c := range categories {
		if c.ID != parentID {
			continue
		}
		out := make([]core.Option, 0, len(c.Children))
		for _, sub := range c.Children {
			out = append(out, core.Option{ID: sub.ID, Name: sub.Name})
		}
		return out
	}
	return nil
}

// grandchildOptions lists the direct children of the sub-category with
// the given id, searching across all top-level categories.
func grandchildOptions(categories []core.Category, subID string) []core.Option {
	for _, c := range categories {
		for _, sub := range c.Children {
			if sub.ID != subID {
				continue
			}
			out := make([]core.Option, 0, len(sub.Children))
			for _, ss := range sub.Children {
				out = append(out, core.Option{ID: ss.ID, Name: ss.Name})
			}
			return out
		}
	}
	return nil
}
