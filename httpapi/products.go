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
	"encoding/json"
	"errors"
	"net/http"

	"github.com/poiesic/listera/core"
	"github.com/poiesic/listera/ingestion"
)

// maxUploadBytes bounds bulk upload size. Bulk files are small CSVs;
// anything larger is a mistake.
const maxUploadBytes = 10 << 20

type productRequest struct {
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Price    int64  `json:"price"`
	Stock    int    `json:"stock"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type jobAccepted struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
	Rows   int    `json:"rows"`
}

// CreateProduct accepts a single product and queues it as a one-row
// job. The response acknowledges acceptance; the outcome arrives via
// the progress feed and job polling.
func (a *App) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Name == "" || req.Brand == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name and brand are required")
		return
	}
	if req.Price <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "price must be positive")
		return
	}
	if req.Stock <= 0 {
		req.Stock = core.DefaultStock
	}

	row := core.RawRow{
		Name:  req.Name,
		Brand: req.Brand,
		Price: req.Price,
		Stock: req.Stock,
	}
	a.submit(w, []core.RawRow{row}, core.Credentials{Email: req.Email, Password: req.Password})
}

// CreateBulk accepts a multipart CSV upload plus seller credentials and
// queues a bulk job.
func (a *App) CreateBulk(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "missing file field")
		return
	}
	defer file.Close()

	rows, err := ingestion.ParseRows(file)
	if err != nil {
		if errors.Is(err, ingestion.ErrNoRows) {
			a.error(w, http.StatusBadRequest, "bad_request", "no product rows found in file")
			return
		}
		a.error(w, http.StatusBadRequest, "bad_request", "unreadable CSV file")
		return
	}

	creds := core.Credentials{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	a.submit(w, rows, creds)
}

func (a *App) submit(w http.ResponseWriter, rows []core.RawRow, creds core.Credentials) {
	job, err := a.manager.Submit(rows, creds)
	if err != nil {
		if errors.Is(err, core.ErrMissingCredentials) {
			a.error(w, http.StatusBadRequest, "bad_request", "email and password are required")
			return
		}
		a.logger.Error("job submission failed", "err", err)
		a.error(w, http.StatusInternalServerError, "internal", "failed to queue job")
		return
	}

	a.json(w, http.StatusAccepted, jobAccepted{
		JobID:  job.ID,
		Status: "queued",
		Rows:   len(rows),
	})
}
