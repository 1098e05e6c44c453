package progress

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingObserver collects messages and optionally fails.
type recordingObserver struct {
	mu       sync.Mutex
	messages []string
	fail     bool
}

func (o *recordingObserver) Notify(ev Event) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fail {
		return errors.New("disconnected")
	}
	o.messages = append(o.messages, ev.Message)
	return nil
}

func (o *recordingObserver) received() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.messages))
	copy(out, o.messages)
	return out
}

func TestPublishDeliversInOrder(t *testing.T) {
	b := NewBroadcaster()
	obs := &recordingObserver{}
	b.Register(obs)

	b.Publish("job-1", "first")
	b.Publish("job-1", "second")
	b.Publish("job-1", "third")

	assert.Equal(t, []string{"first", "second", "third"}, obs.received())
}

func TestLateJoinerMissesPriorEvents(t *testing.T) {
	b := NewBroadcaster()
	early := &recordingObserver{}
	b.Register(early)
	b.Publish("job-1", "before")

	late := &recordingObserver{}
	b.Register(late)
	b.Publish("job-1", "after")

	assert.Equal(t, []string{"before", "after"}, early.received())
	assert.Equal(t, []string{"after"}, late.received())
}

func TestUnregisterIsIdempotent(t *testing.T) {
	b := NewBroadcaster()
	obs := &recordingObserver{}
	b.Register(obs)
	b.Unregister(obs)
	b.Unregister(obs) // second call is a no-op

	b.Publish("job-1", "msg")
	assert.Empty(t, obs.received())
	assert.Equal(t, 0, b.Count())
}

func TestFailingObserverDoesNotBlockOthers(t *testing.T) {
	b := NewBroadcaster()
	broken := &recordingObserver{fail: true}
	healthy := &recordingObserver{}
	b.Register(broken)
	b.Register(healthy)

	b.Publish("job-1", "one")
	assert.Equal(t, []string{"one"}, healthy.received())

	// The broken observer was dropped; further publishes reach only the
	// healthy one and nothing panics.
	b.Publish("job-1", "two")
	assert.Equal(t, []string{"one", "two"}, healthy.received())
	assert.Equal(t, 1, b.Count())
}

func TestConcurrentPublishAndRegister(t *testing.T) {
	b := NewBroadcaster()
	stable := &recordingObserver{}
	b.Register(stable)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				b.Publish("job", "msg")
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				o := &recordingObserver{}
				b.Register(o)
				b.Unregister(o)
			}
		}()
	}
	wg.Wait()

	assert.Len(t, stable.received(), 8*50)
	assert.Equal(t, 1, b.Count())
}

func TestWriterObserver(t *testing.T) {
	var sb strings.Builder
	o := NewWriterObserver(&sb)
	b := NewBroadcaster()
	b.Register(o)

	b.Publish("job-1", "🚀 starting")
	assert.Contains(t, sb.String(), "🚀 starting")
}

func TestChannelObserver(t *testing.T) {
	o := NewChannelObserver(2)
	require.NoError(t, o.Notify(Event{Message: "a"}))
	require.NoError(t, o.Notify(Event{Message: "b"}))
	assert.ErrorIs(t, o.Notify(Event{Message: "c"}), ErrChannelFull)

	ev := <-o.Events()
	assert.Equal(t, "a", ev.Message)
}
