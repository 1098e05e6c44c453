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


package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/listera/ai"
	"github.com/poiesic/listera/ai/openai"
	"github.com/poiesic/listera/catalog"
	"github.com/poiesic/listera/codes"
	"github.com/poiesic/listera/config"
	"github.com/poiesic/listera/core"
	"github.com/poiesic/listera/generate"
	"github.com/poiesic/listera/httpapi"
	"github.com/poiesic/listera/images"
	"github.com/poiesic/listera/ingestion"
	"github.com/poiesic/listera/marketplace"
	"github.com/poiesic/listera/progress"
)

func main() {
	cfg := config.Load()

	app := &cli.App{
		Name:  "listera",
		Usage: "AI-powered marketplace listing generator",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   cfg.LogLevel,
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the listing HTTP service",
				Action: serveCommand(cfg),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "HTTP listen address",
						Value: cfg.HTTPAddr,
					},
				},
			},
			{
				Name:   "upload",
				Usage:  "Upload a CSV of products to the marketplace and wait for completion",
				Action: uploadCommand(cfg),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the CSV file (name, brand, price columns)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Seller account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Seller account password",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// buildStack assembles the generation, resolution and ingestion
// components shared by both commands.
func buildStack(cfg config.Config, broadcaster *progress.Broadcaster) (*ingestion.Pipeline, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(cfg.AIHost),
		ai.WithToken(cfg.AIToken),
		ai.WithModel(cfg.AIModel),
		ai.WithTemperature(cfg.AITemperature),
		ai.WithMaxRetries(cfg.AIMaxRetries),
	)

	generator, err := openai.NewGenerator(aiConfig)
	if err != nil {
		return nil, fmt.Errorf("creating generator: %w", err)
	}

	client, err := generate.NewClient(generator, generate.WithMaxRetries(cfg.AIMaxRetries))
	if err != nil {
		return nil, err
	}

	resolver, err := catalog.NewResolver(generator)
	if err != nil {
		return nil, err
	}

	dialer := marketplace.NewVenuDialer(marketplace.VenuOptions{
		BaseURL:   cfg.MarketplaceURL,
		TempToken: cfg.MarketplaceToken,
	})

	opts := []ingestion.PipelineOption{
		ingestion.WithMediaDir(cfg.MediaDir),
		ingestion.WithRowDelay(cfg.RowDelay),
	}
	if cfg.CodesFile != "" {
		table, err := codes.Load(cfg.CodesFile)
		if err != nil {
			return nil, fmt.Errorf("loading code table: %w", err)
		}
		slog.Info("loaded classification codes", "file", cfg.CodesFile, "entries", table.Len())
		opts = append(opts, ingestion.WithCodeTable(table))
	}
	if cfg.ImageSearchURL != "" {
		finder := images.NewSearchFinder(cfg.ImageSearchURL, cfg.MediaDir, nil)
		opts = append(opts, ingestion.WithImageFinder(finder))
	}

	return ingestion.NewPipeline(dialer, client, resolver, broadcaster, opts...)
}

func serveCommand(cfg config.Config) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg.HTTPAddr = c.String("addr")

		broadcaster := progress.NewBroadcaster()
		pipeline, err := buildStack(cfg, broadcaster)
		if err != nil {
			return err
		}

		manager, err := ingestion.NewManager(pipeline,
			ingestion.WithConcurrentJobs(cfg.ConcurrentJobs))
		if err != nil {
			return err
		}
		defer manager.Release()

		server := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: httpapi.NewRouter(httpapi.NewApp(manager, broadcaster, slog.Default())),
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			slog.Info("http server listening", "addr", cfg.HTTPAddr)
			errCh <- server.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

func uploadCommand(cfg config.Config) cli.ActionFunc {
	return func(c *cli.Context) error {
		file, err := os.Open(c.String("file"))
		if err != nil {
			return err
		}
		defer file.Close()

		rows, err := ingestion.ParseRows(file)
		if err != nil {
			return err
		}

		broadcaster := progress.NewBroadcaster()
		broadcaster.Register(progress.NewWriterObserver(os.Stdout))

		pipeline, err := buildStack(cfg, broadcaster)
		if err != nil {
			return err
		}

		creds := core.Credentials{
			Email:    c.String("email"),
			Password: c.String("password"),
		}
		job := ingestion.NewJob(rows, creds)
		if err := pipeline.Run(c.Context, job); err != nil {
			return err
		}

		status := job.Status()
		fmt.Printf("done: %d uploaded, %d failed\n", status.Submitted, status.Failed)
		return nil
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
