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


package marketplace

import (
	"context"
	"errors"

	"github.com/poiesic/listera/core"
)

var (
	// ErrLoginFailed indicates authentication was rejected or returned
	// no session token.
	ErrLoginFailed = errors.New("marketplace login failed")

	// ErrNotAuthenticated indicates a call before a successful Login.
	ErrNotAuthenticated = errors.New("not authenticated, login first")

	// ErrUploadFailed indicates an image upload returned no image name.
	ErrUploadFailed = errors.New("image upload failed")

	// ErrAddProductFailed indicates the add-product call was rejected.
	ErrAddProductFailed = errors.New("add product failed")
)

// AddProductRequest carries everything the seller backend needs for one
// listing submission.
type AddProductRequest struct {
	Draft                *core.ProductDraft
	Selection            *core.CategorySelection
	MainImagePath        string
	AdditionalImagePaths []string
	Dimensions           core.Dimensions
	MXIKCode             int
	PackageCode          int
	Price                int64
	Stock                int
}

// AddProductResult is the backend's acknowledgement of a submission.
type AddProductResult struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

// Client is the seller-platform collaborator. The pipeline treats any
// absent success indicator from these calls as a row-level failure; it
// never inspects backend responses further.
type Client interface {
	// Login authenticates with the seller credentials and establishes
	// the session used by all other calls.
	Login(ctx context.Context) error

	// Categories fetches the full catalog tree snapshot.
	Categories(ctx context.Context) ([]core.Category, error)

	// Brands fetches the brand list.
	Brands(ctx context.Context) ([]core.Brand, error)

	// UploadImage uploads a local image file and returns the name the
	// backend assigned to it. imageType is "thumbnail" or "product".
	UploadImage(ctx context.Context, path, imageType string) (string, error)

	// AddProduct submits one complete listing.
	AddProduct(ctx context.Context, req AddProductRequest) (*AddProductResult, error)
}

// Dialer builds a Client bound to one seller account. The pipeline
// creates one client per job from the job's credentials.
type Dialer func(creds core.Credentials) Client
