// Package filex reads local poster images for upload.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxPosterSize bounds the files ReadPoster accepts.
const MaxPosterSize = 10 << 20

var ErrUnsupportedImage = errors.New("unsupported image type, use .jpg, .png or .webp")

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ImageContentType maps a file extension to its image MIME type.
func ImageContentType(path string) (string, error) {
	ct, ok := imageTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", ErrUnsupportedImage
	}
	return ct, nil
}

// ReadPoster returns the content and MIME type of the image at path.
func ReadPoster(path string) ([]byte, string, error) {
	ct, err := ImageContentType(path)
	if err != nil {
		return nil, "", err
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return nil, "", fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > MaxPosterSize {
		return nil, "", fmt.Errorf("%s is larger than %d bytes", path, MaxPosterSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return data, ct, nil
}
