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
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/poiesic/listera/core"
)

// Seller API defaults. The backend rejects listings without these
// fields, so unresolved levels fall back to fixed catalog ids.
const (
	defaultUnit             = "pc"
	defaultDiscountType     = "flat"
	defaultSubCategoryID    = "600"
	defaultSubSubCategoryID = "601"
)

// VenuOptions configures the Venu seller API client.
type VenuOptions struct {
	BaseURL string
	// TempToken is the fixed bearer token the login endpoint itself
	// requires.
	TempToken      string
	HTTPClient     *http.Client
	Logger         *slog.Logger
	RequestTimeout time.Duration
}

// VenuClient performs HTTP calls to the Venu seller API. One client
// serves one seller account; Login must succeed before any other call.
type VenuClient struct {
	email     string
	password  string
	baseURL   string
	tempToken string
	http      *http.Client
	token     string
	logger    *slog.Logger
}

// NewVenuClient creates a client for one seller account.
func NewVenuClient(creds core.Credentials, opts VenuOptions) *VenuClient {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout == 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "venu")
	}
	return &VenuClient{
		email:     creds.Email,
		password:  creds.Password,
		baseURL:   strings.TrimSuffix(opts.BaseURL, "/"),
		tempToken: opts.TempToken,
		http:      httpClient,
		logger:    logger,
	}
}

// NewVenuDialer returns a Dialer producing VenuClients with shared
// options.
func NewVenuDialer(opts VenuOptions) Dialer {
	return func(creds core.Credentials) Client {
		return NewVenuClient(creds, opts)
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login authenticates and stores the session token.
func (c *VenuClient) Login(ctx context.Context) error {
	body, err := json.Marshal(loginRequest{Email: c.email, Password: c.password})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v3/seller/auth/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	// The login endpoint itself wants a temporary bearer token.
	req.Header.Set("Authorization", "Bearer "+c.tempToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrLoginFailed, resp.StatusCode)
	}

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
	if out.Token == "" {
		return fmt.Errorf("%w: no token in response", ErrLoginFailed)
	}

	c.token = out.Token
	c.logger.Info("logged in to seller API", "email", c.email)
	return nil
}

// Categories fetches the catalog tree snapshot.
func (c *VenuClient) Categories(ctx context.Context) ([]core.Category, error) {
	var categories []core.Category
	if err := c.getJSON(ctx, "/api/v3/seller/categories", &categories); err != nil {
		return nil, err
	}
	c.logger.Info("fetched categories", "count", len(categories))
	return categories, nil
}

// Brands fetches the brand list.
func (c *VenuClient) Brands(ctx context.Context) ([]core.Brand, error) {
	var brands []core.Brand
	if err := c.getJSON(ctx, "/api/v3/seller/brands", &brands); err != nil {
		return nil, err
	}
	c.logger.Info("fetched brands", "count", len(brands))
	return brands, nil
}

func (c *VenuClient) getJSON(ctx context.Context, path string, out any) error {
	if c.token == "" {
		return ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type uploadResponse struct {
	ImageName string `json:"image_name"`
}

// UploadImage uploads one local image file. imageType is "thumbnail" or
// "product". Returns the server-assigned image name.
func (c *VenuClient) UploadImage(ctx context.Context, path, imageType string) (string, error) {
	if c.token == "" {
		return "", ErrNotAuthenticated
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	_ = writer.WriteField("type", imageType)
	_ = writer.WriteField("colors_active", "false")
	_ = writer.WriteField("color", "")
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v3/seller/products/upload-images", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUploadFailed, resp.StatusCode)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	if out.ImageName == "" {
		return "", fmt.Errorf("%w: no image_name in response", ErrUploadFailed)
	}

	c.logger.Debug("image uploaded", "name", out.ImageName, "type", imageType)
	return out.ImageName, nil
}

type galleryImage struct {
	ImageName string `json:"image_name"`
	Storage   string `json:"storage"`
}

// AddProduct uploads the images and submits the listing form.
func (c *VenuClient) AddProduct(ctx context.Context, req AddProductRequest) (*AddProductResult, error) {
	if c.token == "" {
		return nil, ErrNotAuthenticated
	}

	thumbName, err := c.UploadImage(ctx, req.MainImagePath, "thumbnail")
	if err != nil {
		return nil, err
	}

	// The API wants the thumbnail repeated as the first gallery entry.
	gallery := []galleryImage{{ImageName: thumbName, Storage: "public"}}
	for _, imgPath := range req.AdditionalImagePaths {
		name, err := c.UploadImage(ctx, imgPath, "product")
		if err != nil {
			c.logger.Warn("gallery image skipped", "path", imgPath, "err", err)
			continue
		}
		gallery = append(gallery, galleryImage{ImageName: name, Storage: "public"})
	}

	payload, err := c.buildAddPayload(req, thumbName, gallery)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v3/seller/products/add", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAddProductFailed, err)
	}
	defer resp.Body.Close()

	var result AddProductResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAddProductFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrAddProductFailed, resp.StatusCode, result.Message)
	}

	c.logger.Info("product added", "name", req.Draft.Name, "id", result.ID)
	return &result, nil
}

func (c *VenuClient) buildAddPayload(req AddProductRequest, thumbName string, gallery []galleryImage) ([]byte, error) {
	draft := req.Draft
	sel := req.Selection

	nameJSON, _ := json.Marshal([]string{draft.Name})
	descJSON, _ := json.Marshal([]string{draft.Description})
	langJSON, _ := json.Marshal([]string{"ru"})
	tagsJSON, _ := json.Marshal(draft.Tags)
	imagesJSON, _ := json.Marshal(gallery)

	subID := sel.SubCategoryID
	if subID == "" {
		subID = defaultSubCategoryID
	}
	subSubID := sel.SubSubCategoryID
	if subSubID == "" {
		subSubID = defaultSubSubCategoryID
	}

	payload := map[string]any{
		"name":                 string(nameJSON),
		"description":          string(descJSON),
		"unit_price":           req.Price,
		"discount":             0,
		"discount_type":        defaultDiscountType,
		"tax_ids":              "[]",
		"tax_model":            "exclude",
		"tax":                  "0",
		"category_id":          sel.CategoryID,
		"sub_category_id":      subID,
		"sub_sub_category_id":  subSubID,
		"unit":                 defaultUnit,
		"brand_id":             sel.BrandID,
		"meta_title":           draft.MetaTitle,
		"meta_description":     draft.MetaDescription,
		"meta_image":           thumbName,
		"lang":                 string(langJSON),
		"colors":               "[]",
		"colors_active":        false,
		"color_image":          "[]",
		"images":               string(imagesJSON),
		"thumbnail":            thumbName,
		"video_url":            "",
		"current_stock":        req.Stock,
		"shipping_cost":        0.0,
		"multiply_qty":         0,
		"minimum_order_qty":    1,
		"code":                 productCode(),
		"product_type":         "physical",
		"digital_product_type": "ready_after_sell",
		"digital_file_ready":   "",
		"tags":                 string(tagsJSON),
		"publishing_house":     "[]",
		"authors":              "[]",
		"weight":               req.Dimensions.Weight,
		"height":               req.Dimensions.Height,
		"width":                req.Dimensions.Width,
		"length":               req.Dimensions.Length,
		"mxik":                 req.MXIKCode,
		"package_code":         req.PackageCode,
		"meta_index":           "1",
	}

	return json.Marshal(payload)
}

// productCode generates the random SKU code the listing form requires.
func productCode() string {
	b := make([]byte, 3)
	_, _ = rand.Read(b)
	return strings.ToUpper(hex.EncodeToString(b))
}
