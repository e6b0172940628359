package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leavehq/leave-backend-go/internal/pkg/storage"
)

type FileService interface {
	// UploadLeaveDocument stores a supporting document for a leave request.
	UploadLeaveDocument(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	// UploadAvatar stores an employee avatar image.
	UploadAvatar(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{storage: storage}
}

var (
	documentExts = []string{".pdf", ".jpg", ".jpeg", ".png", ".doc", ".docx"}
	imageExts    = []string{".jpg", ".jpeg", ".png"}
)

func validateExt(filename string, allowed []string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == a {
			return ext, nil
		}
	}
	return "", fmt.Errorf("file type %s is not allowed", ext)
}

// UploadLeaveDocument implements FileService.
func (s *fileServiceImpl) UploadLeaveDocument(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext, err := validateExt(filename, documentExts)
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("leave-documents/%s/%s%s", employeeID, uuid.NewString(), ext)
	return s.storage.Upload(ctx, file, path, contentTypeFor(ext))
}

// UploadAvatar implements FileService.
func (s *fileServiceImpl) UploadAvatar(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext, err := validateExt(filename, imageExts)
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("avatars/%s%s", employeeID, ext)
	return s.storage.Upload(ctx, file, path, contentTypeFor(ext))
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
