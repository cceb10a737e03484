// ABOUTME: Image upload and lookup against the backend file store
// ABOUTME: Uploads are sent as multipart form data with a single "file" part

package portfolio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/markalston/portfolio-admin/internal/client"
	"github.com/markalston/portfolio-admin/internal/models"
)

// MaxUploadSize mirrors the backend's 5MB image limit
const MaxUploadSize = 5 << 20

// Files uploads and manages images
type Files struct {
	api *client.Client
}

// Upload sends the content of r as fileName. The body is buffered so it can
// be replayed after a token refresh.
func (f *Files) Upload(ctx context.Context, fileName string, r io.Reader) (*models.FileUpload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(fileName))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	n, err := io.Copy(part, io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fileName, err)
	}
	if n > MaxUploadSize {
		return nil, fmt.Errorf("%s exceeds the %dMB upload limit", fileName, MaxUploadSize>>20)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	req := client.NewRequest(http.MethodPost, "/files/upload", nil).WithRaw(w.FormDataContentType(), buf.Bytes())
	var out models.FileUpload
	if err := f.api.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Info returns metadata for an uploaded file
func (f *Files) Info(ctx context.Context, fileName string) (*models.FileInfo, error) {
	var out models.FileInfo
	if err := f.api.Get(ctx, filePath(fileName), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// URL returns the public URL of an uploaded file
func (f *Files) URL(ctx context.Context, fileName string) (string, error) {
	var out string
	if err := f.api.Get(ctx, filePath(fileName)+"/url", &out); err != nil {
		return "", err
	}
	return out, nil
}

// Exists reports whether the file is stored
func (f *Files) Exists(ctx context.Context, fileName string) (bool, error) {
	var out bool
	if err := f.api.Get(ctx, filePath(fileName)+"/exists", &out); err != nil {
		return false, err
	}
	return out, nil
}

// Delete removes an uploaded file
func (f *Files) Delete(ctx context.Context, fileName string) error {
	return f.api.Delete(ctx, filePath(fileName))
}

func filePath(fileName string) string {
	return "/files/" + url.PathEscape(fileName)
}
