// Package upload talks to the external asset host that stores answer images.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Image is a raw image payload pulled out of a multipart request.
type Image struct {
	Data     []byte
	Filename string
}

// Client uploads image bytes to the asset host and returns the public URL.
type Client interface {
	Upload(ctx context.Context, data []byte, filename, folder string) (string, error)
}

// HTTPClient posts images to the asset host's upload endpoint.
type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)

// New creates an asset host client. baseURL empty means uploads are not
// configured; every Upload call will fail with a distinguishable error.
func New(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
}

// Upload stores the image under a fresh uuid-based public id inside folder
// and returns the hosted URL.
func (c *HTTPClient) Upload(ctx context.Context, data []byte, filename, folder string) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("asset host not configured")
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	publicID := uuid.New().String() + ext

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("folder", folder); err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	if err := writer.WriteField("public_id", publicID); err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	part, err := writer.CreateFormFile("file", publicID)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("asset host returned %d: %s", resp.StatusCode, snippet)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if parsed.SecureURL != "" {
		return parsed.SecureURL, nil
	}
	if parsed.URL != "" {
		return parsed.URL, nil
	}
	return "", fmt.Errorf("asset host response missing url")
}
