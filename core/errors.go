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

import "errors"

// Domain validation errors
var (
	// ErrInvalidDraft indicates a ProductDraft failed validation.
	ErrInvalidDraft = errors.New("invalid product draft")

	// ErrInvalidSelection indicates a CategorySelection violates the
	// parent-before-child rule of the catalog hierarchy.
	ErrInvalidSelection = errors.New("invalid category selection")

	// ErrEmptyName indicates the draft Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyDescription indicates the draft Description field is empty.
	ErrEmptyDescription = errors.New("description cannot be empty")

	// ErrEmptyMetaTitle indicates the draft MetaTitle field is empty.
	ErrEmptyMetaTitle = errors.New("meta title cannot be empty")

	// ErrEmptyMetaDescription indicates the draft MetaDescription field is empty.
	ErrEmptyMetaDescription = errors.New("meta description cannot be empty")

	// ErrNegativeStock indicates a negative stock quantity.
	ErrNegativeStock = errors.New("stock cannot be negative")

	// ErrMissingCredentials indicates a job was submitted without
	// seller credentials.
	ErrMissingCredentials = errors.New("seller credentials required")
)
