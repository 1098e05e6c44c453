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


package httpapi

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/poiesic/listera/progress"
)

// JobStatus returns a point-in-time snapshot of one job.
func (a *App) JobStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, ok := a.manager.Job(id)
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "job not found")
		return
	}
	a.json(w, http.StatusOK, job.Status())
}

// progressBuffer is how many events a streaming client can fall behind
// before the broadcaster drops it.
const progressBuffer = 64

// Progress streams progress events as plain text lines until the
// client disconnects. Events from all running jobs share the feed;
// each line carries its job id. Events go through a buffered channel
// so a slow client socket never stalls the jobs publishing to it.
func (a *App) Progress(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		a.error(w, http.StatusInternalServerError, "internal", "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintln(w, "connected")
	flusher.Flush()

	obs := progress.NewChannelObserver(progressBuffer)
	a.broadcaster.Register(obs)
	defer a.broadcaster.Unregister(obs)

	for {
		select {
		case ev := <-obs.Events():
			writeProgressLine(w, ev)
			flusher.Flush()
		case <-r.Context().Done():
			// Drain what was already queued before the disconnect.
			for {
				select {
				case ev := <-obs.Events():
					writeProgressLine(w, ev)
					flusher.Flush()
				default:
					return
				}
			}
		}
	}
}

func writeProgressLine(w io.Writer, ev progress.Event) {
	if ev.JobID != "" {
		fmt.Fprintf(w, "[%s] [%s] %s\n", ev.Time.Format("15:04:05"), ev.JobID, ev.Message)
	} else {
		fmt.Fprintf(w, "[%s] %s\n", ev.Time.Format("15:04:05"), ev.Message)
	}
}
