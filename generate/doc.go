// Package generate produces structurally valid marketplace listing
// content from a bare product name, brand and price.
//
// The generative service returns free text; this package enforces the
// contract around it. Each call runs a bounded attempt loop: the outcome
// of every attempt is classified as success, transport failure, or
// retryable content failure, and retryable failures append a correction
// note to the prompt so the next attempt carries the context of prior
// mistakes. The prompt itself is rebuilt each attempt from an immutable
// base plus the ordered note list; nothing mutates in place.
//
// On success the draft is deterministically post-processed: tags are
// coerced from whichever shape the model chose into a flat normalized
// set, a missing stock is defaulted, and the caller's price and stock
// overwrite the generated values.
package generate
