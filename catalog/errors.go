package catalog

import "errors"

var (
	// ErrGeneratorRequired is returned when a generator is not provided.
	ErrGeneratorRequired = errors.New("generator required")

	// ErrEmptyCatalog indicates the category tree is empty or was not
	// supplied. This is a precondition failure, never defaulted.
	ErrEmptyCatalog = errors.New("category list is empty or unavailable")

	// ErrEmptyBrandList indicates the brand list is empty or was not
	// supplied. This is a precondition failure, never defaulted.
	ErrEmptyBrandList = errors.New("brand list is empty or unavailable")
)
