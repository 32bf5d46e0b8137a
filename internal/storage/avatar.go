package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxAvatarSize caps avatar uploads at 5 Megabyte.
const MaxAvatarSize int64 = 5 << 20

const avatarURLPrefix = "/uploads/avatars/"

// AvatarStore persists avatar images on local disk and hands back the URL
// path they are served under.
type AvatarStore struct {
	dir string
}

// NewAvatarStore creates the upload directory if needed.
func NewAvatarStore(dir string) (*AvatarStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create avatar directory: %w", err)
	}
	return &AvatarStore{dir: dir}, nil
}

// Save validates and stores an uploaded avatar, returning its URL path.
// Only image content is accepted; the content type is sniffed from the file
// bytes rather than trusted from the request.
func (s *AvatarStore) Save(userID uint, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > MaxAvatarSize {
		return "", fmt.Errorf("avatar exceeds upload size limit of %dMB", MaxAvatarSize/(1<<20))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return "", err
	}
	if contentType := http.DetectContentType(head[:n]); !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("only image uploads are allowed, got %s", contentType)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	filename := fmt.Sprintf("avatar-%d-%s%s", userID, uuid.NewString(), ext)

	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return avatarURLPrefix + filename, nil
}

// Remove deletes a previously stored avatar by its URL path. URLs outside
// the avatar prefix are ignored so a seeded external avatar is never touched.
func (s *AvatarStore) Remove(avatarURL string) error {
	if !strings.HasPrefix(avatarURL, avatarURLPrefix) {
		return nil
	}
	path := filepath.Join(s.dir, filepath.Base(avatarURL))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
