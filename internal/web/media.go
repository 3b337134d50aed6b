package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"plume/internal/config"
)

// maxImageSize caps uploads at 10 MiB.
const maxImageSize = 10 << 20

var (
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image too large")

	imageExtensions = map[string]bool{
		".gif":  true,
		".jpeg": true,
		".jpg":  true,
		".png":  true,
	}
)

// MediaStore writes uploaded post images into the media directory under
// random names and hands back the stored filename.
type MediaStore struct {
	Logger *slog.Logger
	Config *config.Config
}

func (s *MediaStore) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "web.MediaStore")
	return os.MkdirAll(s.Config.MediaDir, 0o755)
}

func (s *MediaStore) Dir() string {
	return s.Config.MediaDir
}

func (s *MediaStore) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !imageExtensions[ext] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, ext)
	}
	if header.Size > maxImageSize {
		return "", ErrImageTooLarge
	}

	name := uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(s.Config.MediaDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, maxImageSize)); err != nil {
		return "", err
	}

	s.Logger.Debug("image stored", "name", name, "size", header.Size)
	return name, nil
}
