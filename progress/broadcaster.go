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


package progress

import (
	"log/slog"
	"sync"
	"time"
)

// Event is one immutable progress message. Events are delivered once to
// every observer registered at publish time and then discarded; there is
// no replay buffer, so late joiners miss prior events.
type Event struct {
	JobID   string
	Time    time.Time
	Message string
}

// Observer consumes progress events, e.g. a live dashboard connection.
// Notify returning an error marks the observer broken; the broadcaster
// removes it and keeps delivering to the rest.
type Observer interface {
	Notify(Event) error
}

// Broadcaster fans textual progress events out to all registered
// observers. It is safe for concurrent use by multiple jobs and
// observers.
type Broadcaster struct {
	regMu     sync.RWMutex
	observers map[Observer]struct{}

	// publishMu serializes deliveries so every observer sees events in
	// publish order.
	publishMu sync.Mutex

	logger *slog.Logger
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		observers: make(map[Observer]struct{}),
		logger:    slog.Default().With("component", "progress"),
	}
}

// Register adds an observer. It receives every event published after
// this call returns, none published before.
func (b *Broadcaster) Register(o Observer) {
	if o == nil {
		return
	}
	b.regMu.Lock()
	b.observers[o] = struct{}{}
	b.regMu.Unlock()
}

// Unregister removes an observer. Removing an absent observer is a
// no-op, so a second call for the same observer is safe, as is calling
// concurrently with delivery.
func (b *Broadcaster) Unregister(o Observer) {
	b.regMu.Lock()
	delete(b.observers, o)
	b.regMu.Unlock()
}

// Count returns the number of registered observers.
func (b *Broadcaster) Count() int {
	b.regMu.RLock()
	defer b.regMu.RUnlock()
	return len(b.observers)
}

// Publish delivers a message to every registered observer. A failing
// observer is logged and dropped; the failure never reaches the caller
// and never blocks delivery to the others.
func (b *Broadcaster) Publish(jobID, message string) {
	ev := Event{JobID: jobID, Time: time.Now().UTC(), Message: message}

	b.publishMu.Lock()
	defer b.publishMu.Unlock()

	b.regMu.RLock()
	targets := make([]Observer, 0, len(b.observers))
	for o := range b.observers {
		targets = append(targets, o)
	}
	b.regMu.RUnlock()

	for _, o := range targets {
		if err := o.Notify(ev); err != nil {
			b.logger.Warn("dropping broken observer", "job_id", jobID, "err", err)
			b.Unregister(o)
		}
	}
}
