package chart

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/disintegration/imaging"

	"imghist/common"
	"imghist/histogram"
	"imghist/utils/images"
)

// chartDPI is density stamped into JPEG charts.
const chartDPI = 96

// Render draws snapshot in requested format.
func Render(snap *histogram.Snapshot, opts Options) ([]byte, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", opts.Width, opts.Height)
	}
	series := BuildSeries(snap)

	if opts.Format == common.ChartFmtSvg {
		doc := SVG(series, opts)
		doc.Indent(2)
		out, err := doc.WriteToBytes()
		if err != nil {
			return nil, fmt.Errorf("unable to serialize chart: %w", err)
		}
		return out, nil
	}

	src, err := build(series, opts, false).WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("unable to serialize chart: %w", err)
	}
	img, err := images.RasterizeSVGToImage(src, opts.Width, opts.Height, paletteFor(opts.Theme).background)
	if err != nil {
		return nil, fmt.Errorf("unable to rasterize chart: %w", err)
	}

	switch opts.Format {
	case common.ChartFmtPng:
		buf := new(bytes.Buffer)
		if err := imaging.Encode(buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
			return nil, fmt.Errorf("unable to encode chart: %w", err)
		}
		return buf.Bytes(), nil
	case common.ChartFmtJpeg:
		out, err := images.EncodeJPEG(img, opts.JPEGQuality, chartDPI)
		if err != nil {
			return nil, fmt.Errorf("unable to encode chart: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported chart format %q", opts.Format)
	}
}
