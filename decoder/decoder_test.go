package decoder

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"imghist/histogram"
)

// pattern returns 4x3 image with distinct pixel values.
func pattern() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := range 3 {
		for x := range 4 {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 60), G: uint8(y * 100), B: uint8(x + y), A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecode_Formats(t *testing.T) {
	img := pattern()

	encoders := []struct {
		name     string
		format   string
		mime     string
		lossless bool
		encode   func(*bytes.Buffer) error
	}{
		{"png", "png", "image/png", true, func(b *bytes.Buffer) error { return png.Encode(b, img) }},
		{"jpeg", "jpeg", "image/jpeg", false, func(b *bytes.Buffer) error { return jpeg.Encode(b, img, &jpeg.Options{Quality: 95}) }},
		{"gif", "gif", "image/gif", false, func(b *bytes.Buffer) error { return gif.Encode(b, img, nil) }},
		{"bmp", "bmp", "image/bmp", true, func(b *bytes.Buffer) error { return bmp.Encode(b, img) }},
		{"tiff", "tiff", "image/tiff", true, func(b *bytes.Buffer) error { return tiff.Encode(b, img, nil) }},
	}

	for _, tt := range encoders {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.encode(&buf); err != nil {
				t.Fatalf("encode: %v", err)
			}

			res, err := Decode(buf.Bytes(), Options{})
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if res.Format != tt.format {
				t.Errorf("Format = %q, want %q", res.Format, tt.format)
			}
			if res.MIME != tt.mime {
				t.Errorf("MIME = %q, want %q", res.MIME, tt.mime)
			}
			if res.Grid.Width != 4 || res.Grid.Height != 3 {
				t.Errorf("grid size = %dx%d, want 4x3", res.Grid.Width, res.Grid.Height)
			}
			if res.Grid.Len() != 12 {
				t.Errorf("grid Len() = %d, want 12", res.Grid.Len())
			}
			if !tt.lossless {
				return
			}
			for i := range res.Grid.Len() {
				x, y := i%4, i/4
				want := img.NRGBAAt(x, y)
				got := res.Grid.At(i)
				if got.R != want.R || got.G != want.G || got.B != want.B {
					t.Errorf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
				}
			}
		})
	}
}

func TestDecode_GrayscaleIsBlackAndWhite(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 4)
	}
	res, err := Decode(encodePNG(t, img), Options{})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if _, bw := histogram.Analyze(res.Grid); !bw {
		t.Error("grayscale image should be classified black and white")
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrNoData},
		{"text", []byte("definitely not an image"), ErrUnsupported},
		{"pdf", []byte("%PDF-1.7\n"), ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data, Options{})
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecode_Truncated(t *testing.T) {
	data := encodePNG(t, pattern())
	if _, err := Decode(data[:len(data)/2], Options{}); err == nil {
		t.Error("expected error for truncated image")
	}
}

func TestDecode_MaxPixels(t *testing.T) {
	data := encodePNG(t, pattern())

	if _, err := Decode(data, Options{MaxPixels: 11}); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Decode() error = %v, want ErrTooLarge", err)
	}
	if _, err := Decode(data, Options{MaxPixels: 12}); err != nil {
		t.Errorf("Decode() at the limit error = %v", err)
	}
}

func TestSniff(t *testing.T) {
	ext, mime, err := Sniff(encodePNG(t, pattern()))
	if err != nil {
		t.Fatalf("Sniff() error = %v", err)
	}
	if ext != "png" || mime != "image/png" {
		t.Errorf("Sniff() = %q, %q", ext, mime)
	}
}

func TestGridFromImage_OffsetBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 20, 12, 21))
	img.SetNRGBA(10, 20, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	img.SetNRGBA(11, 20, color.NRGBA{R: 4, G: 5, B: 6, A: 255})

	g := GridFromImage(img)
	if g.Width != 2 || g.Height != 1 {
		t.Fatalf("grid size = %dx%d, want 2x1", g.Width, g.Height)
	}
	if p := g.At(1); p.R != 4 || p.G != 5 || p.B != 6 {
		t.Errorf("At(1) = %+v", p)
	}
}

func TestGridFromImage_Unpremultiplies(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	// premultiplied half transparent red
	img.SetRGBA(0, 0, color.RGBA{R: 100, A: 128})

	g := GridFromImage(img)
	p := g.At(0)
	if p.A != 128 {
		t.Errorf("alpha = %d, want 128", p.A)
	}
	if p.R < 198 || p.R > 200 {
		t.Errorf("red = %d, expected unpremultiplied value near 199", p.R)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.png")
	if err := os.WriteFile(path, encodePNG(t, pattern()), 0644); err != nil {
		t.Fatal(err)
	}
	res, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if res.Grid.Len() != 12 {
		t.Errorf("Len() = %d, want 12", res.Grid.Len())
	}
	if _, err := Load(filepath.Join(t.TempDir(), "absent.png"), Options{}); err == nil {
		t.Error("expected error for absent file")
	}
}

func TestParseDataURI(t *testing.T) {
	tests := []struct {
		name      string
		uri       string
		mediaType string
		data      string
		wantErr   bool
	}{
		{"base64", "data:image/png;base64,aGVsbG8=", "image/png", "hello", false},
		{"base64 no padding", "data:image/png;base64,aGVsbG8", "image/png", "hello", false},
		{"base64 with spaces", "data:image/png;base64,aGVs\n bG8=", "image/png", "hello", false},
		{"percent", "data:,hello%20world", "text/plain", "hello world", false},
		{"upper scheme", "DATA:text/plain;charset=utf-8,x", "text/plain", "x", false},
		{"no comma", "data:image/png;base64", "", "", true},
		{"not data", "http://example.com/a.png", "", "", true},
		{"bad base64", "data:image/png;base64,!!!", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mt, data, err := ParseDataURI(tt.uri)
			if tt.wantErr {
				if !errors.Is(err, ErrDataURI) {
					t.Errorf("ParseDataURI() error = %v, want ErrDataURI", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDataURI() error = %v", err)
			}
			if mt != tt.mediaType || string(data) != tt.data {
				t.Errorf("ParseDataURI() = %q, %q", mt, data)
			}
		})
	}
}

func TestDecodeDataURI(t *testing.T) {
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(encodePNG(t, pattern()))
	res, err := DecodeDataURI(uri, Options{})
	if err != nil {
		t.Fatalf("DecodeDataURI() error = %v", err)
	}
	if res.Grid.Width != 4 || res.Grid.Height != 3 {
		t.Errorf("grid size = %dx%d", res.Grid.Width, res.Grid.Height)
	}
	if !IsDataURI(uri) || IsDataURI("image.png") {
		t.Error("IsDataURI misdetects")
	}
}
