package services

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tranduykhanh2004/storely/internal/response"
	"github.com/tranduykhanh2004/storely/internal/supabase"
)

// UploadFile is an in-memory file extracted from a multipart request.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// StorageService uploads and deletes objects in the Supabase bucket and
// maps public URLs back to object paths.
type StorageService struct {
	client *supabase.Client
	bucket string
}

// NewStorageService creates a new storage service.
func NewStorageService(client *supabase.Client, bucket string) *StorageService {
	return &StorageService{client: client, bucket: bucket}
}

// Upload stores a file under a random object name, keeping the original
// extension, and returns its public URL.
func (s *StorageService) Upload(ctx context.Context, file *UploadFile) (string, error) {
	name := uuid.NewString() + filepath.Ext(file.Name)
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return s.client.Upload(ctx, s.bucket, name, file.Data, contentType)
}

// UploadEnvelope wraps Upload for the storage passthrough route.
func (s *StorageService) UploadEnvelope(ctx context.Context, file *UploadFile) *response.Envelope {
	if file == nil || len(file.Data) == 0 {
		return response.BadRequest("Chưa chọn tệp để tải lên")
	}

	url, err := s.Upload(ctx, file)
	if err != nil {
		logrus.WithError(err).WithField("file", file.Name).Error("storage upload")
		return response.Internal()
	}
	return response.Created(map[string]string{"url": url}, "Tải tệp lên thành công")
}

// DeleteByURL removes the object behind a public URL.
func (s *StorageService) DeleteByURL(ctx context.Context, url string) *response.Envelope {
	path, ok := s.client.ObjectPath(s.bucket, url)
	if !ok {
		return response.BadRequest("Đường dẫn tệp không hợp lệ")
	}

	if err := s.client.Delete(ctx, s.bucket, []string{path}); err != nil {
		logrus.WithError(err).WithField("url", url).Error("storage delete")
		return response.Internal()
	}
	return response.Ok(map[string]string{"url": url}, "Xóa tệp thành công")
}

// Cleanup best-effort deletes superseded objects. Failures are logged and
// never propagated: replacing an image must not fail because the old file
// could not be removed.
func (s *StorageService) Cleanup(ctx context.Context, urls ...string) {
	var paths []string
	for _, url := range urls {
		if url == "" {
			continue
		}
		if path, ok := s.client.ObjectPath(s.bucket, url); ok {
			paths = append(paths, path)
		}
	}
	if len(paths) == 0 {
		return
	}

	if err := s.client.Delete(ctx, s.bucket, paths); err != nil {
		logrus.WithError(err).WithField("paths", paths).Warn("storage cleanup")
	}
}
