package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const uploadPrefix = "uploads"

// Service stores complaint attachments and hands back opaque URLs. With an
// S3 client it uploads there; otherwise files land on the local disk under
// uploadDir, matching the single-node setup.
type Service struct {
	s3        *S3Client
	uploadDir string
	log       *logrus.Logger
}

// NewService creates a new media service. s3Client may be nil.
func NewService(s3Client *S3Client, log *logrus.Logger) *Service {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return &Service{s3: s3Client, uploadDir: dir, log: log}
}

// Upload stores one attachment and returns its URL. The stored name is a
// fresh uuid plus the original extension, so filenames never collide and
// reveal nothing.
func (s *Service) Upload(ctx context.Context, originalName, contentType string, body io.Reader) (string, error) {
	name := uuid.New().String() + sanitizeExt(originalName)
	key := uploadPrefix + "/" + name

	if s.s3 != nil {
		url, err := s.s3.PutObject(ctx, key, body, contentType)
		if err != nil {
			return "", err
		}
		s.log.WithFields(logrus.Fields{"key": key, "backend": "s3"}).Info("attachment stored")
		return url, nil
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	path := filepath.Join(s.uploadDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	s.log.WithFields(logrus.Fields{"path": path, "backend": "local"}).Info("attachment stored")
	return "/" + uploadPrefix + "/" + name, nil
}

// sanitizeExt keeps a short, safe extension from the client filename.
func sanitizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}
