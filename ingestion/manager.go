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
	"context"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/listera/core"
)

const defaultConcurrentJobs = 4

// Manager accepts bulk jobs and runs them on a background worker pool.
// Submit returns as soon as the job is queued; all further outcomes
// arrive through the progress broadcaster or by polling Job.
type Manager struct {
	pipeline *Pipeline
	pool     *ants.Pool
	logger   *slog.Logger

	mu   sync.RWMutex
	jobs map[string]*Job
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager) error

// WithConcurrentJobs sets how many jobs may run at once. Rows within a
// job are always sequential; this only bounds jobs across submissions.
func WithConcurrentJobs(n int) ManagerOption {
	return func(m *Manager) error {
		if n < 1 {
			n = 1
		}
		if m.pool != nil {
			m.pool.Release()
		}
		pool, err := ants.NewPool(n)
		if err != nil {
			return err
		}
		m.pool = pool
		return nil
	}
}

// WithManagerLogger sets a custom logger.
// Default is slog.Default().
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) error {
		if logger != nil {
			m.logger = logger
		}
		return nil
	}
}

// NewManager creates a job manager around pipeline.
func NewManager(pipeline *Pipeline, opts ...ManagerOption) (*Manager, error) {
	if pipeline == nil {
		return nil, ErrPipelineRequired
	}

	pool, err := ants.NewPool(defaultConcurrentJobs)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		pipeline: pipeline,
		pool:     pool,
		logger:   slog.Default().With("component", "jobs"),
		jobs:     map[string]*Job{},
	}
	for _, opt := range opts {
		if optErr := opt(m); optErr != nil {
			m.Release()
			return nil, optErr
		}
	}
	return m, nil
}

// Submit queues a bulk job and returns it immediately. The job runs in
// the background; per-row outcomes and the final summary are delivered
// only through progress events and Job polling, never here. When every
// worker is busy the job waits in the Starting state for a free slot;
// acceptance itself never blocks on pool capacity.
func (m *Manager) Submit(rows []core.RawRow, creds core.Credentials) (*Job, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	if creds.Email == "" || creds.Password == "" {
		return nil, core.ErrMissingCredentials
	}

	job := NewJob(rows, creds)

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()

	// Hand off to the pool asynchronously: pool.Submit parks until a
	// worker frees up, and that wait must not stall the caller.
	go func() {
		err := m.pool.Submit(func() {
			if runErr := m.pipeline.Run(context.Background(), job); runErr != nil {
				m.logger.Error("job aborted", "job", job.ID, "err", runErr)
			}
		})
		if err != nil {
			job.setState(StateAborted)
			m.logger.Error("job never started", "job", job.ID, "err", err)
		}
	}()

	m.logger.Info("job submitted", "job", job.ID, "rows", len(rows))
	return job, nil
}

// Job looks up a submitted job by id.
func (m *Manager) Job(id string) (*Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	return job, ok
}

// Release shuts down the worker pool. Queued jobs that have not
// started are dropped.
func (m *Manager) Release() {
	if m.pool != nil {
		m.pool.Release()
	}
}
