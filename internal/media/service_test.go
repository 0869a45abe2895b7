package media

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeExt(t *testing.T) {
	assert.Equal(t, ".jpg", sanitizeExt("photo.jpg"))
	assert.Equal(t, ".png", sanitizeExt("Broken Light.PNG"))
	assert.Equal(t, "", sanitizeExt("noextension"))
	assert.Equal(t, "", sanitizeExt("weird.superlongextension"))
}

// TestUploadLocalFallback checks the disk path used when S3 is unconfigured.
func TestUploadLocalFallback(t *testing.T) {
	dir := t.TempDir()
	s := &Service{uploadDir: dir, log: logrus.New()}

	url, err := s.Upload(context.Background(), "pothole.jpg", "image/jpeg", bytes.NewReader([]byte("fake-image")))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(url, "/uploads/"), "got %q", url)
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "fake-image", string(stored))
}

// TestUploadNamesNeverCollide checks two uploads of the same file get distinct URLs.
func TestUploadNamesNeverCollide(t *testing.T) {
	s := &Service{uploadDir: t.TempDir(), log: logrus.New()}

	first, err := s.Upload(context.Background(), "a.png", "image/png", bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	second, err := s.Upload(context.Background(), "a.png", "image/png", bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
