package imageproc

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
)

var ErrInvalidImage = errors.New("invalid image data")

const (
	DefaultTargetWidth = 300
	DefaultQuality     = 60

	dataURIPrefix = "data:image/jpeg;base64,"
)

// Compressor downscales a raster image to a fixed width and re-encodes
// it as a lossy JPEG data URI, the format the portfolio record stores
// inline as the profile picture.
type Compressor struct {
	TargetWidth int
	Quality     int
	MaxBytes    int64
}

func NewCompressor() *Compressor {
	return &Compressor{
		TargetWidth: DefaultTargetWidth,
		Quality:     DefaultQuality,
		MaxBytes:    5 * 1024 * 1024,
	}
}

// Compress decodes raw image bytes (jpeg/png/gif), resizes them to
// TargetWidth with proportional height, and returns a JPEG data URI.
// A malformed payload returns ErrInvalidImage rather than failing
// silently.
func (c *Compressor) Compress(data []byte) (string, error) {
	if c.MaxBytes > 0 && int64(len(data)) > c.MaxBytes {
		return "", fmt.Errorf("image exceeds %d bytes: %w", c.MaxBytes, ErrInvalidImage)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	// Height 0 keeps the source aspect ratio.
	resized := imaging.Resize(img, c.TargetWidth, 0, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: c.Quality}); err != nil {
		return "", fmt.Errorf("cannot encode jpeg: %w", err)
	}

	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// CompressDataURI accepts a base64 data URI instead of raw bytes.
func (c *Compressor) CompressDataURI(uri string) (string, error) {
	data, err := DecodeDataURI(uri)
	if err != nil {
		return "", err
	}
	return c.Compress(data)
}

// DecodeDataURI strips the "data:<mime>;base64," header and decodes the
// payload.
func DecodeDataURI(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, fmt.Errorf("%w: missing data URI header", ErrInvalidImage)
	}
	idx := strings.Index(uri, ",")
	if idx < 0 {
		return nil, fmt.Errorf("%w: malformed data URI", ErrInvalidImage)
	}
	data, err := base64.StdEncoding.DecodeString(uri[idx+1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return data, nil
}
