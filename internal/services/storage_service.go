package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidDataURL = errors.New("invalid data url")

type StorageService interface {
	UploadDataURL(ctx context.Context, dataURL string, folder string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}

type SupabaseStorageService struct {
	baseURL    string
	bucket     string
	serviceKey string
	httpClient *http.Client
}

func NewSupabaseStorageService(baseURL, bucket, serviceKey string) *SupabaseStorageService {
	return &SupabaseStorageService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		bucket:     bucket,
		serviceKey: serviceKey,
		httpClient: http.DefaultClient,
	}
}

// UploadDataURL decodes a base64 data URL and stores it under folder with a
// generated name. The returned URL is the public object URL.
func (s *SupabaseStorageService) UploadDataURL(ctx context.Context, dataURL string, folder string) (string, error) {
	contentType, content, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}
	filename := uuid.NewString() + extensionFor(contentType)
	return s.upload(ctx, content, contentType, path.Join(strings.Trim(folder, "/"), filename))
}

func (s *SupabaseStorageService) upload(ctx context.Context, content []byte, contentType, objectPath string) (string, error) {
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, objectPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("x-upsert", "true")
	req.Header.Set("Content-Type", contentType)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: upload file: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("%w: upload file: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, objectPath), nil
}

func (s *SupabaseStorageService) DeleteFile(ctx context.Context, fileURL string) error {
	objectPath, err := s.objectPathFromURL(fileURL)
	if err != nil {
		return err
	}

	deleteURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, objectPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, deleteURL, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: delete file: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("%w: delete file: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}

// OwnsURL reports whether fileURL points into the configured bucket.
func (s *SupabaseStorageService) OwnsURL(fileURL string) bool {
	_, err := s.objectPathFromURL(fileURL)
	return err == nil
}

func (s *SupabaseStorageService) objectPathFromURL(fileURL string) (string, error) {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("parse file url: %w", err)
	}
	if s.baseURL != "" && !strings.HasPrefix(fileURL, s.baseURL+"/") {
		return "", fmt.Errorf("file url does not belong to configured storage")
	}

	publicPrefix := "/storage/v1/object/public/" + s.bucket + "/"
	objectPrefix := "/storage/v1/object/" + s.bucket + "/"

	switch {
	case strings.HasPrefix(parsed.Path, publicPrefix):
		return strings.TrimPrefix(parsed.Path, publicPrefix), nil
	case strings.HasPrefix(parsed.Path, objectPrefix):
		return strings.TrimPrefix(parsed.Path, objectPrefix), nil
	default:
		return "", fmt.Errorf("file url does not belong to configured bucket")
	}
}

// UnconfiguredStorage stands in when no image host is set up. Any upload
// fails with ErrUpstream; deletes are no-ops.
type UnconfiguredStorage struct{}

func (UnconfiguredStorage) UploadDataURL(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("%w: image host not configured", ErrUpstream)
}

func (UnconfiguredStorage) DeleteFile(context.Context, string) error {
	return nil
}

func IsDataURL(value string) bool {
	return strings.HasPrefix(strings.TrimSpace(value), "data:")
}

func decodeDataURL(dataURL string) (string, []byte, error) {
	raw := strings.TrimSpace(dataURL)
	if !strings.HasPrefix(raw, "data:") {
		return "", nil, ErrInvalidDataURL
	}
	header, payload, found := strings.Cut(strings.TrimPrefix(raw, "data:"), ",")
	if !found || payload == "" {
		return "", nil, ErrInvalidDataURL
	}
	mediaType, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return "", nil, ErrInvalidDataURL
	}
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}

	content, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	if len(content) == 0 {
		return "", nil, ErrInvalidDataURL
	}
	return mediaType, content, nil
}

var extensionsByType = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

func extensionFor(contentType string) string {
	if ext, ok := extensionsByType[strings.ToLower(contentType)]; ok {
		return ext
	}
	return ""
}
