// Package storage persists post image attachments.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxImageSize caps accepted uploads.
const MaxImageSize = 10 << 20

// ImagePrefix is the key prefix of post images.
const ImagePrefix = "posts/"

var (
	ErrNotImage = errors.New("uploaded file is not an image")
	ErrTooLarge = errors.New("uploaded file is too large")
)

// Store saves objects under keys and resolves their public URLs.
type Store interface {
	Save(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// Image is a sniffed, size-checked upload ready to be saved.
type Image struct {
	Key         string
	ContentType string
	Data        []byte
}

// ReadImage reads an upload and rejects anything that is not an image.
func ReadImage(filename string, r io.Reader) (*Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxImageSize {
		return nil, ErrTooLarge
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, ErrNotImage
	}
	return &Image{Key: ImageKey(filename, mt.Extension()), ContentType: mt.String(), Data: data}, nil
}

// ImageKey maps an upload name to a fresh storage key: a random uuid
// followed by the sanitized base name.
func ImageKey(filename, ext string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "image"
	}
	if path.Ext(base) == "" {
		base += ext
	}
	return ImagePrefix + uuid.NewString() + "-" + base
}

// SaveImage writes img to s.
func SaveImage(ctx context.Context, s Store, img *Image) error {
	return s.Save(ctx, img.Key, bytes.NewReader(img.Data), int64(len(img.Data)), img.ContentType)
}
