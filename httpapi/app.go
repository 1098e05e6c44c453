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


// Package httpapi exposes the listing service over HTTP: single and
// bulk product submission, job polling, and a streaming progress feed.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/poiesic/listera/ingestion"
	"github.com/poiesic/listera/progress"
)

// App holds the handlers' collaborators.
type App struct {
	manager     *ingestion.Manager
	broadcaster *progress.Broadcaster
	logger      *slog.Logger
}

// NewApp creates the handler set.
func NewApp(manager *ingestion.Manager, broadcaster *progress.Broadcaster, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		manager:     manager,
		broadcaster: broadcaster,
		logger:      logger.With("component", "httpapi"),
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, errorResponse{Error: code, Message: message})
}

// Health reports liveness.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
