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

import "errors"

var (
	// ErrDialerRequired is returned when a marketplace dialer is not provided.
	ErrDialerRequired = errors.New("marketplace dialer required")

	// ErrGenerateClientRequired is returned when a generation client is not provided.
	ErrGenerateClientRequired = errors.New("generation client required")

	// ErrResolverRequired is returned when a category resolver is not provided.
	ErrResolverRequired = errors.New("category resolver required")

	// ErrBroadcasterRequired is returned when a progress broadcaster is not provided.
	ErrBroadcasterRequired = errors.New("progress broadcaster required")

	// ErrPipelineRequired is returned when a pipeline is not provided.
	ErrPipelineRequired = errors.New("pipeline required")

	// ErrNoRows indicates the submitted input contained no usable rows.
	ErrNoRows = errors.New("no product rows found in input")

	// ErrLoginFailed indicates the seller account could not be
	// authenticated; the job aborts without attempting any row.
	ErrLoginFailed = errors.New("marketplace login failed")
)
