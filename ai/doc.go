// Package ai defines the interface to the generative text service and
// its configuration.
//
// The service is an opaque collaborator reached over an OpenAI-compatible
// chat API. Package ai/openai provides the production implementation and
// ai/mock provides test doubles. Consumers depend only on the Generator
// interface, injected at construction, so tests can substitute scripted
// responses.
package ai
