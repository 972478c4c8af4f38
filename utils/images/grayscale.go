package images

import (
	"image"
	"image/color"
)

// IsGrayscale reports whether every pixel of img has R==G==B. Unlike
// histogram comparison this looks at individual pixels, so it is exact but
// has to visit the whole image.
func IsGrayscale(img image.Image) bool {
	switch im := img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	case *image.NRGBA:
		return nrgbaIsGrayscale(im)
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.R != c.G || c.G != c.B {
				return false
			}
		}
	}
	return true
}

func nrgbaIsGrayscale(img *image.NRGBA) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			if row[i] != row[i+1] || row[i+1] != row[i+2] {
				return false
			}
		}
	}
	return true
}
