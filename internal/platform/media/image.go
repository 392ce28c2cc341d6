// Package media decodes uploaded images and stores them in a Storage backend.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidImage is returned for payloads that are not a supported base64 image data URI.
var ErrInvalidImage = errors.New("upload a valid image")

// allowedSubtypes maps the declared MIME subtype to the formats image.DecodeConfig reports.
var allowedSubtypes = map[string]string{
	"png":  "png",
	"jpeg": "jpeg",
	"jpg":  "jpeg",
	"gif":  "gif",
}

// Image is a decoded upload.
type Image struct {
	Data        []byte
	Ext         string
	ContentType string
}

// DecodeDataURI parses "data:image/<subtype>;base64,<payload>".
// The payload must decode to an image of a supported format.
func DecodeDataURI(s string) (*Image, error) {
	header, payload, ok := strings.Cut(s, ";base64,")
	if !ok || !strings.HasPrefix(header, "data:image/") {
		return nil, ErrInvalidImage
	}
	ext := strings.ToLower(strings.TrimPrefix(header, "data:image/"))
	if _, ok := allowedSubtypes[ext]; !ok {
		return nil, ErrInvalidImage
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return nil, ErrInvalidImage
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, ErrInvalidImage
	}

	return &Image{Data: data, Ext: ext, ContentType: "image/" + ext}, nil
}

// Key returns a fresh storage key under dir, e.g. "avatars/<uuid>.png".
func (img *Image) Key(dir string) string {
	return path.Join(dir, uuid.NewString()+"."+img.Ext)
}
