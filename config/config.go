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


// Package config provides runtime configuration for the listing service.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds configuration knobs for the service.
type Config struct {
	HTTPAddr string

	AIHost        string
	AIToken       string
	AIModel       string
	AITemperature float64
	AIMaxRetries  int

	MarketplaceURL   string
	MarketplaceToken string

	MediaDir       string
	CodesFile      string
	ImageSearchURL string
	RowDelay       time.Duration
	ConcurrentJobs int

	LogLevel string
}

// Load collects configuration from the environment with defaults. A
// .env file, when present, seeds the environment first.
func Load() Config {
	_ = godotenv.Load(".env")

	return Config{
		HTTPAddr: getenv("HTTP_ADDR", ":8000"),

		AIHost:        getenv("AI_HOST", "https://api.openai.com/v1"),
		AIToken:       getenv("AI_TOKEN", "none"),
		AIModel:       getenv("AI_MODEL", "gpt-4o-mini"),
		AITemperature: floatenv("AI_TEMPERATURE", 0.3),
		AIMaxRetries:  atoienv("AI_MAX_RETRIES", 2),

		MarketplaceURL:   getenv("MARKETPLACE_URL", "https://venu.uz"),
		MarketplaceToken: getenv("MARKETPLACE_TEMP_TOKEN", ""),

		MediaDir:       getenv("MEDIA_DIR", "media"),
		CodesFile:      getenv("CODES_FILE", ""),
		ImageSearchURL: getenv("IMAGE_SEARCH_URL", ""),
		RowDelay:       durenvms("ROW_DELAY_MS", 1000),
		ConcurrentJobs: atoienv("CONCURRENT_JOBS", 4),

		LogLevel: getenv("LOG_LEVEL", "info"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func floatenv(key string, def float64) float64 {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func durenvms(key string, defMs int) time.Duration {
	return time.Duration(atoienv(key, defMs)) * time.Millisecond
}
