package generate

import (
	"errors"
	"fmt"
)

var (
	// ErrGeneratorRequired is returned when a generator is not provided.
	ErrGeneratorRequired = errors.New("generator required")

	// ErrMalformedOutput indicates the service response was not
	// parseable as JSON.
	ErrMalformedOutput = errors.New("response is not valid JSON")

	// ErrSchemaViolation indicates the response parsed but did not
	// match the required structure.
	ErrSchemaViolation = errors.New("response violates the required structure")
)

// GenerationError reports that structured generation was abandoned after
// exhausting every attempt. Attempts is the total attempt count
// (the initial call plus all retries).
type GenerationError struct {
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate valid JSON after %d attempts: %v", e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
