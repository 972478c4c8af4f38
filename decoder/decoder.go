// Package decoder turns encoded images into pixel grids histograms are built
// from.
package decoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"imghist/histogram"
)

var (
	ErrNoData      = errors.New("no image data")
	ErrUnsupported = errors.New("unsupported image type")
	ErrTooLarge    = errors.New("image is too large")
)

// supported lists image types (as named by filetype) we have decoders for.
var supported = map[string]bool{
	"jpg":  true,
	"png":  true,
	"gif":  true,
	"bmp":  true,
	"tif":  true,
	"webp": true,
}

// Image is decoded raster together with what is known about its encoding.
type Image struct {
	Format string
	MIME   string
	Grid   *histogram.Grid
	// Source is decoded image itself, kept for checks which want to see
	// pixels in their original color model.
	Source image.Image
}

// Options control decoding.
type Options struct {
	// MaxPixels rejects images with more pixels, 0 means no limit.
	MaxPixels int
}

// Sniff detects image type by its signature. It returns type extension and
// MIME, or ErrUnsupported.
func Sniff(data []byte) (string, string, error) {
	if len(data) == 0 {
		return "", "", ErrNoData
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return "", "", fmt.Errorf("unable to detect image type: %w", err)
	}
	if kind == filetype.Unknown || !supported[kind.Extension] {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupported, kind.MIME.Value)
	}
	return kind.Extension, kind.MIME.Value, nil
}

// Decode rasterizes encoded image into non-premultiplied RGBA grid.
func Decode(data []byte, opts Options) (*Image, error) {
	_, mime, err := Sniff(data)
	if err != nil {
		return nil, err
	}

	if opts.MaxPixels > 0 {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("unable to read image header: %w", err)
		}
		if cfg.Width*cfg.Height > opts.MaxPixels {
			return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrTooLarge, cfg.Width, cfg.Height, opts.MaxPixels)
		}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to decode image: %w", err)
	}

	return &Image{
		Format: format,
		MIME:   mime,
		Grid:   GridFromImage(img),
		Source: img,
	}, nil
}

// GridFromImage converts any image into a grid with bounds rebased to origin.
func GridFromImage(img image.Image) *histogram.Grid {
	// imaging.Clone always produces tightly packed NRGBA starting at 0,0
	n := imaging.Clone(img)
	return &histogram.Grid{
		Width:  n.Bounds().Dx(),
		Height: n.Bounds().Dy(),
		Pix:    n.Pix,
	}
}

// Load reads and decodes image file.
func Load(path string, opts Options) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read image: %w", err)
	}
	return Decode(data, opts)
}
