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


package ingestion

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/poiesic/listera/core"
)

// State is a bulk job's position in its lifecycle. Transitions only
// move forward: Starting → Authenticating → Processing → Completed,
// with Aborted reachable from Authenticating when login or the catalog
// fetch fails.
type State int

const (
	StateStarting State = iota
	StateAuthenticating
	StateProcessing
	StateCompleted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateAuthenticating:
		return "authenticating"
	case StateProcessing:
		return "processing"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Job is one accepted bulk submission. The pipeline mutates it as rows
// complete; callers poll it through Status. All state is in memory
// only and is gone when the process exits.
type Job struct {
	ID          string
	Rows        []core.RawRow
	Credentials core.Credentials

	mu       sync.Mutex
	state    State
	row      int
	outcomes []core.RowOutcome
	started  time.Time
}

// NewJob creates a job in the Starting state with a fresh id.
func NewJob(rows []core.RawRow, creds core.Credentials) *Job {
	return &Job{
		ID:          uuid.NewString(),
		Rows:        rows,
		Credentials: creds,
		state:       StateStarting,
		started:     time.Now(),
	}
}

func (j *Job) setState(s State) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.state = s
}

// setProcessing moves the job to Processing at row index i.
func (j *Job) setProcessing(i int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.state = StateProcessing
	j.row = i
}

func (j *Job) record(o core.RowOutcome) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.outcomes = append(j.outcomes, o)
}

// Status is a point-in-time snapshot of a job for polling callers.
type Status struct {
	ID        string            `json:"id"`
	State     string            `json:"state"`
	Row       int               `json:"row"`
	Total     int               `json:"total"`
	Submitted int               `json:"submitted"`
	Failed    int               `json:"failed"`
	Outcomes  []core.RowOutcome `json:"outcomes"`
	StartedAt time.Time         `json:"started_at"`
}

// Status returns a consistent snapshot. The outcome slice is copied so
// callers can hold it across further pipeline progress.
func (j *Job) Status() Status {
	j.mu.Lock()
	defer j.mu.Unlock()

	s := Status{
		ID:        j.ID,
		State:     j.state.String(),
		Row:       j.row,
		Total:     len(j.Rows),
		Outcomes:  make([]core.RowOutcome, len(j.outcomes)),
		StartedAt: j.started,
	}
	copy(s.Outcomes, j.outcomes)
	for _, o := range j.outcomes {
		if o.Submitted {
			s.Submitted++
		} else {
			s.Failed++
		}
	}
	return s
}
