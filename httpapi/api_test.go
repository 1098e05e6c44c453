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
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/listera/ai/mock"
	"github.com/poiesic/listera/catalog"
	"github.com/poiesic/listera/core"
	"github.com/poiesic/listera/generate"
	"github.com/poiesic/listera/ingestion"
	"github.com/poiesic/listera/marketplace"
	"github.com/poiesic/listera/progress"
)

const testDraftJSON = `{
	"name": "Galaxy S24 смартфон",
	"description": "Замонавий смартфон",
	"meta_title": "Galaxy S24",
	"meta_description": "Galaxy S24 сотиб олинг",
	"tags": ["смартфон"],
	"price": 100,
	"stock": 5
}`

type stubMarketplace struct{}

func (stubMarketplace) Login(ctx context.Context) error { return nil }

func (stubMarketplace) Categories(ctx context.Context) ([]core.Category, error) {
	return []core.Category{{ID: "1", Name: "Electronics"}}, nil
}

func (stubMarketplace) Brands(ctx context.Context) ([]core.Brand, error) {
	return []core.Brand{{ID: 7, Name: "Samsung"}}, nil
}

func (stubMarketplace) UploadImage(ctx context.Context, path, imageType string) (string, error) {
	return "uploaded.png", nil
}

func (stubMarketplace) AddProduct(ctx context.Context, req marketplace.AddProductRequest) (*marketplace.AddProductResult, error) {
	return &marketplace.AddProductResult{ID: 42, Message: "saved"}, nil
}

func newTestApp(t *testing.T) (*App, *ingestion.Manager, *progress.Broadcaster) {
	t.Helper()

	gen, err := generate.NewClient(mock.NewGenerator().Respond(testDraftJSON))
	require.NoError(t, err)

	selectGen := mock.NewGenerator().Respond(`{"id": "1", "name": "Electronics"}`)
	resolver, err := catalog.NewResolver(selectGen)
	require.NoError(t, err)

	broadcaster := progress.NewBroadcaster()
	dial := func(creds core.Credentials) marketplace.Client { return stubMarketplace{} }

	pipeline, err := ingestion.NewPipeline(dial, gen, resolver, broadcaster,
		ingestion.WithRowDelay(0),
		ingestion.WithMediaDir(t.TempDir()),
	)
	require.NoError(t, err)

	manager, err := ingestion.NewManager(pipeline)
	require.NoError(t, err)
	t.Cleanup(manager.Release)

	return NewApp(manager, broadcaster, nil), manager, broadcaster
}

func TestHealth(t *testing.T) {
	app, _, _ := newTestApp(t)
	srv := httptest.NewServer(NewRouter(app))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateProductAccepted(t *testing.T) {
	app, manager, _ := newTestApp(t)
	srv := httptest.NewServer(NewRouter(app))
	defer srv.Close()

	body := `{"name":"Galaxy S24","brand":"Samsung","price":4500000,"email":"a@b.c","password":"pw"}`
	resp, err := http.Post(srv.URL+"/api/products", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var ack jobAccepted
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	assert.NotEmpty(t, ack.JobID)
	assert.Equal(t, "queued", ack.Status)
	assert.Equal(t, 1, ack.Rows)

	job, ok := manager.Job(ack.JobID)
	require.True(t, ok)
	require.Eventually(t, func() bool {
		return job.Status().State == "completed"
	}, 5*time.Second, 10*time.Millisecond)
}

func TestCreateProductValidation(t *testing.T) {
	app, _, _ := newTestApp(t)
	srv := httptest.NewServer(NewRouter(app))
	defer srv.Close()

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"missing name", `{"brand":"Samsung","price":100,"email":"a@b.c","password":"pw"}`},
		{"zero price", `{"name":"X","brand":"Samsung","price":0,"email":"a@b.c","password":"pw"}`},
		{"missing credentials", `{"name":"X","brand":"Samsung","price":100}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/products", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestCreateBulkAccepted(t *testing.T) {
	app, _, _ := newTestApp(t)
	srv := httptest.NewServer(NewRouter(app))
	defer srv.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "products.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Name,Brand,Price\nGalaxy S24,Samsung,4500000\nAirPods,Apple,2300000\n"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("email", "a@b.c"))
	require.NoError(t, mw.WriteField("password", "pw"))
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/api/products/bulk", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var ack jobAccepted
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	assert.Equal(t, 2, ack.Rows)
}

func TestCreateBulkMissingFile(t *testing.T) {
	app, _, _ := newTestApp(t)
	srv := httptest.NewServer(NewRouter(app))
	defer srv.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("email", "a@b.c"))
	require.NoError(t, mw.WriteField("password", "pw"))
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/api/products/bulk", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestJobStatusNotFound(t *testing.T) {
	app, _, _ := newTestApp(t)
	srv := httptest.NewServer(NewRouter(app))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/jobs/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProgressStreams(t *testing.T) {
	app, _, broadcaster := newTestApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/progress", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		app.Progress(rec, req)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return broadcaster.Count() == 1
	}, time.Second, 5*time.Millisecond)

	broadcaster.Publish("job-1", "Uploading to shop...")
	cancel()
	<-done

	body := rec.Body.String()
	assert.Contains(t, body, "connected")
	assert.Contains(t, body, "job-1")
	assert.Contains(t, body, "Uploading to shop...")

	// The observer is removed once the client goes away.
	assert.Zero(t, broadcaster.Count())
}
