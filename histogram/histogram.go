// Package histogram counts per-channel pixel intensities and decides whether
// image should be presented as black-and-white.
package histogram

// Levels is the number of distinct 8-bit intensity values.
const Levels = 256

// Histogram holds number of pixels for every intensity value of a single
// channel.
type Histogram [Levels]int

// Sum returns total number of pixels counted.
func (h *Histogram) Sum() int {
	var n int
	for _, v := range h {
		n += v
	}
	return n
}

// Histograms is a complete set of channel histograms for an image.
type Histograms struct {
	Red   Histogram
	Green Histogram
	Blue  Histogram
}

// Count accumulates channel histograms over the grid in a single pass. Grid
// which is malformed is counted as having no pixels.
func Count(g *Grid) Histograms {
	var h Histograms
	n := g.Len()
	if n == 0 {
		return h
	}
	pix := g.Pix[:4*n]
	for i := 0; i < len(pix); i += 4 {
		h.Red[pix[i]]++
		h.Green[pix[i+1]]++
		h.Blue[pix[i+2]]++
	}
	return h
}

// CountPixels is Count for pixels which are not packed into a grid.
func CountPixels(pixels []Pixel) Histograms {
	var h Histograms
	for _, p := range pixels {
		h.Red[p.R]++
		h.Green[p.G]++
		h.Blue[p.B]++
	}
	return h
}

// IsBlackAndWhite reports whether all three channel histograms are pointwise
// identical.
//
// NOTE: this compares distributions, not pixels. Image with pixels (10,20,30)
// and (30,20,10) has identical histograms and is reported as black-and-white.
func IsBlackAndWhite(h *Histograms) bool {
	for i := range Levels {
		if h.Red[i] != h.Green[i] || h.Red[i] != h.Blue[i] {
			return false
		}
	}
	return true
}

// Gray derives single display series: mean of three channel counts at every
// intensity value.
func Gray(h *Histograms) [Levels]float64 {
	var out [Levels]float64
	for i := range Levels {
		out[i] = float64(h.Red[i]+h.Green[i]+h.Blue[i]) / 3
	}
	return out
}

// Analyze counts and classifies grid in one go.
func Analyze(g *Grid) (Histograms, bool) {
	h := Count(g)
	return h, IsBlackAndWhite(&h)
}
