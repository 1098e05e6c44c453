package ai

import "context"

// Generator produces one completion from the generative text service.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Complete sends a system/user prompt pair to the generative service
	// and returns the raw text of the single response payload.
	// Returns an error if the service is unreachable or rejects the call;
	// such errors are transport failures, not content failures.
	Complete(ctx context.Context, system, user string) (string, error)
}
