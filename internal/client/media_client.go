package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// MediaClient handles communication with the media service that stores
// profile photos
type MediaClient struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     *zap.Logger
}

// MediaUploadResponse represents a response from the media service
type MediaUploadResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Media   MediaFile `json:"media"`
}

// MediaFile represents metadata about a stored media file
type MediaFile struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	Width       int       `json:"width,omitempty"`
	Height      int       `json:"height,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewMediaClient creates a new media client
func NewMediaClient(baseURL, serviceKey string, logger *zap.Logger) *MediaClient {
	return &MediaClient{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// UploadProfilePhoto uploads a profile photo for a user. Transient upload
// failures are retried with exponential backoff.
func (c *MediaClient) UploadProfilePhoto(ctx context.Context, userID int, fileContent []byte, filename, contentType string) (*MediaFile, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(fileContent)); err != nil {
		return nil, fmt.Errorf("failed to copy file content: %w", err)
	}

	if err := writer.WriteField("purpose", "profile"); err != nil {
		return nil, fmt.Errorf("failed to write purpose field: %w", err)
	}
	if err := writer.WriteField("entity_id", fmt.Sprintf("%d", userID)); err != nil {
		return nil, fmt.Errorf("failed to write entity_id field: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	payload := body.Bytes()
	formContentType := writer.FormDataContentType()

	var media *MediaFile
	operation := func() error {
		result, err := c.doUpload(ctx, payload, formContentType)
		if err != nil {
			return err
		}
		media = result
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		c.logger.Error("profile photo upload failed",
			zap.Error(err),
			zap.Int("user_id", userID))
		return nil, err
	}

	return media, nil
}

// doUpload performs a single upload attempt
func (c *MediaClient) doUpload(ctx context.Context, payload []byte, formContentType string) (*MediaFile, error) {
	url := fmt.Sprintf("%s/api/v1/media/upload", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Content-Type", formContentType)
	req.Header.Set("X-Service-Key", c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var uploadResp MediaUploadResponse
		if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
			return nil, backoff.Permanent(fmt.Errorf("failed to decode upload response: %w", err))
		}
		return &uploadResp.Media, nil
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("media service returned status code %d", resp.StatusCode)
	default:
		return nil, backoff.Permanent(fmt.Errorf("media service returned status code %d", resp.StatusCode))
	}
}

// DeleteProfilePhoto removes a user's profile photo from the media service
func (c *MediaClient) DeleteProfilePhoto(ctx context.Context, userID int) error {
	url := fmt.Sprintf("%s/api/v1/media/profile/%d", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Service-Key", c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to delete profile photo", zap.Error(err), zap.Int("user_id", userID))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("media service returned status code %d", resp.StatusCode)
	}

	return nil
}
