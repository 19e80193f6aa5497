package storage

import (
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/spec-kit/complaint-service/internal/config"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// PhotoStore persists uploaded complaint photos.
type PhotoStore interface {
	Save(file *multipart.FileHeader) (string, error)
}

// LocalPhotoStore writes uploads to a directory served as a static route.
type LocalPhotoStore struct {
	dir        string
	publicPath string
	maxBytes   int64
}

// NewLocalPhotoStore builds the store and ensures the directory exists.
func NewLocalPhotoStore(cfg config.UploadConfig) (*LocalPhotoStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalPhotoStore{
		dir:        cfg.Dir,
		publicPath: strings.TrimSuffix(cfg.PublicPath, "/"),
		maxBytes:   cfg.MaxSizeBytes(),
	}, nil
}

// Save validates size and MIME type, writes the file under a unique name,
// and returns the public URL path.
func (s *LocalPhotoStore) Save(file *multipart.FileHeader) (string, error) {
	if file.Size > s.maxBytes {
		return "", apperrors.NewValidationError("photo too large",
			map[string]any{"photo": "must not exceed upload size limit"})
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", apperrors.NewValidationError("only image files are allowed",
			map[string]any{"photo": "must be an image"})
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := "photo-" + uuid.NewString() + sanitizeExt(file.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return s.publicPath + "/" + name, nil
}

// sanitizeExt keeps only a plain extension so uploaded filenames cannot
// influence the stored path.
func sanitizeExt(filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(filename)))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	}
	return ""
}
