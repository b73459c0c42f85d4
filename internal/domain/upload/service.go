// internal/domain/upload/service.go
package upload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/config"
)

// ErrNotConfigured is returned when the media collaborator credentials are
// absent. The dependent admin feature is disabled with a visible message
// instead of crashing the form.
var ErrNotConfigured = errors.New("media upload is not configured")

// ErrFileTooLarge is returned for payloads over the configured limit
var ErrFileTooLarge = errors.New("image exceeds the maximum upload size")

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Service uploads images to the hosted media CDN and returns publicly
// resolvable URLs
type Service struct {
	config     *config.Config
	httpClient *http.Client
}

// NewService creates a new upload service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Result represents a completed upload
type Result struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Size     int64  `json:"size"`
}

// providerResponse is the subset of the CDN response the service reads
type providerResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// UploadImage sends an image to the media collaborator as an unsigned
// upload and returns its public URL
func (s *Service) UploadImage(file multipart.File, header *multipart.FileHeader) (*Result, error) {
	if !s.config.MediaUploadEnabled() {
		return nil, ErrNotConfigured
	}

	if header.Size > s.config.Media.MaxSize {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, header.Size, s.config.Media.MaxSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("unsupported image type: %s", ext)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", header.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload payload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if err := writer.WriteField("upload_preset", s.config.Media.UploadPreset); err != nil {
		return nil, fmt.Errorf("failed to build upload payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload",
		strings.TrimRight(s.config.Media.BaseURL, "/"), s.config.Media.CloudName)

	httpReq, err := http.NewRequest(http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("media upload failed: %w", err)
	}
	defer resp.Body.Close()

	var provider providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&provider); err != nil {
		return nil, fmt.Errorf("unreadable media upload response (status %d): %w", resp.StatusCode, err)
	}

	if provider.Error != nil {
		return nil, fmt.Errorf("media upload rejected: %s", provider.Error.Message)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("media upload failed with status %d", resp.StatusCode)
	}
	if provider.SecureURL == "" {
		return nil, fmt.Errorf("media upload response missing URL")
	}

	publicID := provider.PublicID
	if publicID == "" {
		publicID = uuid.NewString()
	}

	return &Result{
		URL:      provider.SecureURL,
		PublicID: publicID,
		Size:     header.Size,
	}, nil
}
