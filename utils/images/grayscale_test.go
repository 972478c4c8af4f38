package images

import (
	"image"
	"image/color"
	"testing"
)

func TestIsGrayscale(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	if !IsGrayscale(gray) {
		t.Error("image.Gray is always grayscale")
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := range 2 {
		for x := range 3 {
			v := uint8(x * 40)
			nrgba.SetNRGBA(x, y, color.NRGBA{v, v, v, 255})
		}
	}
	if !IsGrayscale(nrgba) {
		t.Error("expected NRGBA with equal channels to be grayscale")
	}
	// sub image keeps offsets, make sure rows are sliced properly
	if !IsGrayscale(nrgba.SubImage(image.Rect(1, 1, 3, 2))) {
		t.Error("expected sub image to be grayscale")
	}
	nrgba.SetNRGBA(2, 1, color.NRGBA{10, 20, 30, 255})
	if IsGrayscale(nrgba) {
		t.Error("expected colored pixel to be detected")
	}

	rgba := image.NewRGBA(image.Rect(0, 0, 2, 1))
	rgba.Set(0, 0, color.RGBA{255, 0, 0, 255})
	if IsGrayscale(rgba) {
		t.Error("expected red RGBA pixel to be detected")
	}
}

func TestIsGrayscale_PermutedChannels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{10, 20, 30, 255})
	img.SetNRGBA(1, 0, color.NRGBA{30, 20, 10, 255})
	if IsGrayscale(img) {
		t.Error("pixel level check must not be fooled by identical distributions")
	}
}
