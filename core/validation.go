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


package core

import "fmt"

// ValidateDraft validates a ProductDraft according to domain rules.
//
// Validation rules:
//   - Name, Description, MetaTitle and MetaDescription must not be empty
//   - Stock must not be negative
//
// NOT validated:
//   - Price (the pipeline overwrites it with the caller's value)
//   - Tags (normalized separately; an empty set is allowed)
func ValidateDraft(draft *ProductDraft) error {
	if draft == nil {
		return fmt.Errorf("%w: draft is nil", ErrInvalidDraft)
	}

	if draft.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDraft, ErrEmptyName)
	}
	if draft.Description == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDraft, ErrEmptyDescription)
	}
	if draft.MetaTitle == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDraft, ErrEmptyMetaTitle)
	}
	if draft.MetaDescription == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDraft, ErrEmptyMetaDescription)
	}
	if draft.Stock < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDraft, ErrNegativeStock)
	}

	return nil
}

// ValidateSelection checks the hierarchy invariant: a sub-category id
// requires a non-sentinel category id, and a sub-sub-category id requires
// a sub-category id.
func ValidateSelection(sel *CategorySelection) error {
	if sel == nil {
		return fmt.Errorf("%w: selection is nil", ErrInvalidSelection)
	}

	if sel.SubCategoryID != "" && (sel.CategoryID == "" || sel.CategoryID == DefaultCategoryID) {
		return fmt.Errorf("%w: sub-category %q without a category", ErrInvalidSelection, sel.SubCategoryID)
	}
	if sel.SubSubCategoryID != "" && sel.SubCategoryID == "" {
		return fmt.Errorf("%w: sub-sub-category %q without a sub-category", ErrInvalidSelection, sel.SubSubCategoryID)
	}

	return nil
}
