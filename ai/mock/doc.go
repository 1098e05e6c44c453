// Package mock provides a test double implementation of ai.Generator.
//
// The mock replays a scripted sequence of responses and records the
// prompt pairs it receives, so tests can assert on retry behavior and
// prompt construction without a live generative service.
//
// # Usage in Tests
//
//	gen := mock.NewGenerator().
//	    Respond(`{"bad": true}`).
//	    Respond(`{"name":"ok", ...}`)
//
//	// Custom behavior injection
//	gen.CompleteFunc = func(ctx context.Context, system, user string) (string, error) {
//	    return "", errors.New("unreachable")
//	}
//
//	// Assertions
//	count := gen.CallCount()
//	calls := gen.Calls()
package mock
