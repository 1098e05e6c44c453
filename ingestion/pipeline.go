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
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/listera/catalog"
	"github.com/poiesic/listera/codes"
	"github.com/poiesic/listera/core"
	"github.com/poiesic/listera/generate"
	"github.com/poiesic/listera/images"
	"github.com/poiesic/listera/marketplace"
	"github.com/poiesic/listera/progress"
)

const (
	defaultRowDelay  = time.Second
	defaultMaxImages = 3
	defaultMediaDir  = "media"
)

// Pipeline runs bulk jobs: it authenticates the seller account, fetches
// the catalog once, then pushes each row through generation, image
// lookup, category resolution and submission. Row failures are absorbed
// so one bad product never sinks the batch.
type Pipeline struct {
	dial        marketplace.Dialer
	generator   *generate.Client
	resolver    *catalog.Resolver
	broadcaster *progress.Broadcaster
	finder      images.Finder
	codes       *codes.Table
	mediaDir    string
	rowDelay    time.Duration
	maxImages   int
	logger      *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithRowDelay sets the pause inserted between rows. The seller
// backend rate-limits writes; the default is one second.
func WithRowDelay(d time.Duration) PipelineOption {
	return func(p *Pipeline) {
		if d >= 0 {
			p.rowDelay = d
		}
	}
}

// WithImageFinder sets the image search backend.
// Default is images.NoFinder().
func WithImageFinder(f images.Finder) PipelineOption {
	return func(p *Pipeline) {
		if f != nil {
			p.finder = f
		}
	}
}

// WithCodeTable sets the classification code table.
// Default is an empty table.
func WithCodeTable(t *codes.Table) PipelineOption {
	return func(p *Pipeline) {
		if t != nil {
			p.codes = t
		}
	}
}

// WithMediaDir sets the directory holding the placeholder image and
// any downloaded product images.
func WithMediaDir(dir string) PipelineOption {
	return func(p *Pipeline) {
		if dir != "" {
			p.mediaDir = dir
		}
	}
}

// WithPipelineLogger sets a custom logger.
// Default is slog.Default().
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline creates a bulk ingestion pipeline.
func NewPipeline(
	dial marketplace.Dialer,
	generator *generate.Client,
	resolver *catalog.Resolver,
	broadcaster *progress.Broadcaster,
	opts ...PipelineOption,
) (*Pipeline, error) {
	if dial == nil {
		return nil, ErrDialerRequired
	}
	if generator == nil {
		return nil, ErrGenerateClientRequired
	}
	if resolver == nil {
		return nil, ErrResolverRequired
	}
	if broadcaster == nil {
		return nil, ErrBroadcasterRequired
	}

	p := &Pipeline{
		dial:        dial,
		generator:   generator,
		resolver:    resolver,
		broadcaster: broadcaster,
		finder:      images.NoFinder(),
		codes:       codes.Empty(),
		mediaDir:    defaultMediaDir,
		rowDelay:    defaultRowDelay,
		maxImages:   defaultMaxImages,
		logger:      slog.Default().With("component", "ingestion"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run executes one job to completion. Only authentication and catalog
// preconditions abort the job; any other failure is recorded against
// its row and the remaining rows still run. Exactly one terminal
// summary event is published, whether the job completed or aborted.
func (p *Pipeline) Run(ctx context.Context, job *Job) error {
	logger := p.logger.With("job", job.ID)
	logger.Info("bulk job starting", "rows", len(job.Rows))
	p.publish(job, fmt.Sprintf("Job accepted: %d products queued", len(job.Rows)))

	job.setState(StateAuthenticating)
	p.publish(job, fmt.Sprintf("Logging in as %s...", job.Credentials.Email))

	client := p.dial(job.Credentials)
	if err := client.Login(ctx); err != nil {
		logger.Error("login failed", "err", err)
		job.setState(StateAborted)
		p.publish(job, "Job aborted: login failed, check the email and password")
		return fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}
	p.publish(job, "Login successful")

	categories, brands, err := p.fetchCatalog(ctx, client)
	if err != nil {
		logger.Error("catalog fetch failed", "err", err)
		job.setState(StateAborted)
		p.publish(job, fmt.Sprintf("Job aborted: %v", err))
		return err
	}

	submitted := 0
	for i, row := range job.Rows {
		job.setProcessing(i)
		p.publish(job, fmt.Sprintf("--- %d/%d: %s ---", i+1, len(job.Rows), row.Name))

		outcome := core.RowOutcome{Row: i + 1, Name: row.Name}
		if err := p.processRow(ctx, job, client, row, categories, brands); err != nil {
			logger.Error("row failed", "row", i+1, "name", row.Name, "err", err)
			outcome.Error = err.Error()
			p.publish(job, fmt.Sprintf("Failed: %s (%v)", row.Name, err))
		} else {
			outcome.Submitted = true
			submitted++
		}
		outcome.FinishedAt = time.Now()
		job.record(outcome)

		if p.rowDelay > 0 && i < len(job.Rows)-1 {
			time.Sleep(p.rowDelay)
		}
	}

	job.setState(StateCompleted)
	failed := len(job.Rows) - submitted
	logger.Info("bulk job complete", "submitted", submitted, "failed", failed)
	p.publish(job, fmt.Sprintf("All products processed: %d uploaded, %d failed", submitted, failed))
	return nil
}

// fetchCatalog loads the category tree and brand list shared by all
// rows of a job. An empty result is a job-level precondition failure.
func (p *Pipeline) fetchCatalog(ctx context.Context, client marketplace.Client) ([]core.Category, []core.Brand, error) {
	categories, err := client.Categories(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, nil, catalog.ErrEmptyCatalog
	}

	brands, err := client.Brands(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching brands: %w", err)
	}
	if len(brands) == 0 {
		return nil, nil, catalog.ErrEmptyBrandList
	}
	return categories, brands, nil
}

// processRow runs the per-row sub-pipeline. A panic anywhere inside is
// converted into a row error so the job keeps going.
func (p *Pipeline) processRow(
	ctx context.Context,
	job *Job,
	client marketplace.Client,
	row core.RawRow,
	categories []core.Category,
	brands []core.Brand,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("row panicked: %v", r)
		}
	}()

	if err := rowProblem(row); err != nil {
		return err
	}

	p.publish(job, "Generating content...")
	draft, err := p.generator.Draft(ctx, generate.DraftRequest{
		Name:  row.Name,
		Brand: row.Brand,
		Price: row.Price,
		Stock: row.Stock,
	})
	if err != nil {
		return fmt.Errorf("content generation: %w", err)
	}

	p.publish(job, "Searching for images...")
	paths := p.findImages(ctx, row)
	if len(paths) == 0 {
		placeholder, perr := images.DefaultImagePath(p.mediaDir)
		if perr != nil {
			return fmt.Errorf("placeholder image: %w", perr)
		}
		paths = []string{placeholder}
	}

	p.publish(job, "Selecting category...")
	selection, err := p.resolver.Resolve(ctx, row.Name, row.Brand, categories, brands)
	if err != nil {
		return fmt.Errorf("category resolution: %w", err)
	}

	dims := p.generator.EstimateDimensions(ctx, row.Name, row.Brand, selection)
	mxik, packageCode := p.codes.Lookup(selection.SubSubCategoryID)

	p.publish(job, "Uploading to shop...")
	result, err := client.AddProduct(ctx, marketplace.AddProductRequest{
		Draft:                draft,
		Selection:            selection,
		MainImagePath:        paths[0],
		AdditionalImagePaths: paths,
		Dimensions:           dims,
		MXIKCode:             mxik,
		PackageCode:          packageCode,
		Price:                row.Price,
		Stock:                row.Stock,
	})
	if err != nil {
		return fmt.Errorf("marketplace submission: %w", err)
	}

	p.publish(job, fmt.Sprintf("Uploaded: %s (id %d)", row.Name, result.ID))
	return nil
}

// findImages queries the image backend; search failures degrade to the
// placeholder rather than failing the row.
func (p *Pipeline) findImages(ctx context.Context, row core.RawRow) []string {
	paths, err := p.finder.FindImages(ctx, row.Name, row.Brand, p.maxImages)
	if err != nil {
		p.logger.Warn("image search failed", "name", row.Name, "err", err)
		return nil
	}
	return paths
}

func (p *Pipeline) publish(job *Job, message string) {
	p.broadcaster.Publish(job.ID, message)
}
