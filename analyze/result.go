package analyze

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/amazon-ion/ion-go/ion"
	yaml "gopkg.in/yaml.v3"

	"imghist/common"
	"imghist/histogram"
	"imghist/utils/debug"
)

// Result is external representation of analyzed image.
type Result struct {
	ID            string `json:"id" yaml:"id" ion:"id"`
	Source        string `json:"source" yaml:"source" ion:"source"`
	Format        string `json:"format" yaml:"format" ion:"format"`
	Width         int    `json:"width" yaml:"width" ion:"width"`
	Height        int    `json:"height" yaml:"height" ion:"height"`
	Pixels        int    `json:"pixels" yaml:"pixels" ion:"pixels"`
	BlackAndWhite bool   `json:"black_and_white" yaml:"black_and_white" ion:"black_and_white"`
	Detected      bool   `json:"detected" yaml:"detected" ion:"detected"`
	// PixelGray is result of exact per pixel check, only present when
	// requested.
	PixelGray *bool `json:"pixel_gray,omitempty" yaml:"pixel_gray,omitempty" ion:"pixel_gray,omitempty"`
	// JPEGQuality is estimated encoder quality, JPEG sources only.
	JPEGQuality int       `json:"jpeg_quality,omitempty" yaml:"jpeg_quality,omitempty" ion:"jpeg_quality,omitempty"`
	Red         []int     `json:"red" yaml:"red,flow" ion:"red"`
	Green       []int     `json:"green" yaml:"green,flow" ion:"green"`
	Blue        []int     `json:"blue" yaml:"blue,flow" ion:"blue"`
	Gray        []float64 `json:"gray,omitempty" yaml:"gray,flow,omitempty" ion:"gray,omitempty"`
}

// NewResult converts snapshot. Derived gray series is included only for
// black and white results, that is what gets charted.
func NewResult(snap *histogram.Snapshot) *Result {
	r := &Result{
		ID:            snap.ID.String(),
		Source:        snap.Source,
		Format:        snap.Format,
		Width:         snap.Width,
		Height:        snap.Height,
		Pixels:        snap.Pixels(),
		BlackAndWhite: snap.BlackAndWhite,
		Detected:      snap.Detected,
		Red:           slices.Clone(snap.Histograms.Red[:]),
		Green:         slices.Clone(snap.Histograms.Green[:]),
		Blue:          slices.Clone(snap.Histograms.Blue[:]),
	}
	if snap.BlackAndWhite {
		gray := snap.Gray()
		r.Gray = gray[:]
	}
	return r
}

// WithPixelCheck records exact per pixel check outcome.
func (r *Result) WithPixelCheck(gray bool) *Result {
	r.PixelGray = &gray
	return r
}

// WithJPEGQuality records estimated JPEG quality.
func (r *Result) WithJPEGQuality(q int) *Result {
	r.JPEGQuality = q
	return r
}

// Encode writes result to w in requested format.
func (r *Result) Encode(w io.Writer, format common.OutputFmt) error {
	switch format {
	case common.OutputFmtJson:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case common.OutputFmtYaml:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case common.OutputFmtIon:
		data, err := ion.MarshalText(r)
		if err != nil {
			return err
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return err
		}
		return nil
	case common.OutputFmtText:
		_, err := io.WriteString(w, r.tree())
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func (r *Result) tree() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Result %s", r.ID)
	tw.TextBlock(1, "source", r.Source)
	tw.Line(1, "format: %s", r.Format)
	tw.Line(1, "size: %dx%d (%d pixels)", r.Width, r.Height, r.Pixels)
	tw.Line(1, "black and white: %t (detected %t)", r.BlackAndWhite, r.Detected)
	if r.PixelGray != nil {
		tw.Line(1, "pixel gray: %t", *r.PixelGray)
	}
	if r.JPEGQuality > 0 {
		tw.Line(1, "jpeg quality: %d", r.JPEGQuality)
	}
	debug.Counts(*tw, 1, "red", r.Red)
	debug.Counts(*tw, 1, "green", r.Green)
	debug.Counts(*tw, 1, "blue", r.Blue)
	if len(r.Gray) > 0 {
		debug.Counts(*tw, 1, "gray", r.Gray)
	}
	return tw.String()
}
