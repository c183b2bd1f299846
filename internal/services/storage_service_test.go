package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeDataURL(t *testing.T) {
	contentType, content, err := decodeDataURL("data:image/png;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("decodeDataURL: %v", err)
	}
	if contentType != "image/png" || string(content) != "hello" {
		t.Fatalf("unexpected decode: %q %q", contentType, content)
	}

	for _, bad := range []string{
		"https://example.com/a.png",
		"data:image/png,aGVsbG8=",
		"data:image/png;base64,",
		"data:image/png;base64,%%%",
	} {
		if _, _, err := decodeDataURL(bad); !errors.Is(err, ErrInvalidDataURL) {
			t.Errorf("decodeDataURL(%q): expected ErrInvalidDataURL, got %v", bad, err)
		}
	}
}

func TestSupabaseUploadDataURL(t *testing.T) {
	var (
		gotPath        string
		gotContentType string
		gotBody        string
		gotAuth        string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	storage := NewSupabaseStorageService(server.URL+"/", "avatars", "service-key")
	url, err := storage.UploadDataURL(context.Background(), "data:image/png;base64,aGVsbG8=", "/trainees/u1/")
	if err != nil {
		t.Fatalf("UploadDataURL: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/storage/v1/object/avatars/trainees/u1/") || !strings.HasSuffix(gotPath, ".png") {
		t.Fatalf("unexpected upload path %q", gotPath)
	}
	if gotContentType != "image/png" || gotBody != "hello" || gotAuth != "Bearer service-key" {
		t.Fatalf("unexpected upload request: %q %q %q", gotContentType, gotBody, gotAuth)
	}
	if !strings.HasPrefix(url, server.URL+"/storage/v1/object/public/avatars/trainees/u1/") {
		t.Fatalf("unexpected public url %q", url)
	}
	if !storage.OwnsURL(url) || storage.OwnsURL("https://elsewhere.example.com/a.png") {
		t.Fatalf("unexpected ownership check")
	}
}

func TestSupabaseUploadFailureIsUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bucket not found", http.StatusBadRequest)
	}))
	defer server.Close()

	storage := NewSupabaseStorageService(server.URL, "avatars", "service-key")
	_, err := storage.UploadDataURL(context.Background(), "data:image/png;base64,aGVsbG8=", "trainees")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestSupabaseDeleteFile(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	storage := NewSupabaseStorageService(server.URL, "avatars", "service-key")
	err := storage.DeleteFile(context.Background(), server.URL+"/storage/v1/object/public/avatars/trainees/u1/a.png")
	if err != nil {
		t.Fatalf("expected missing object to be ignored, got %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/storage/v1/object/avatars/trainees/u1/a.png" {
		t.Fatalf("unexpected delete request %s %s", gotMethod, gotPath)
	}

	if err := storage.DeleteFile(context.Background(), "https://elsewhere.example.com/a.png"); err == nil {
		t.Fatalf("expected foreign url to be rejected")
	}
}
