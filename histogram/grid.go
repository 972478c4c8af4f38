package histogram

// Pixel is a single RGBA sample. Alpha is carried for completeness and is never
// looked at when counting.
type Pixel struct {
	R, G, B, A uint8
}

// Grid is a decoded raster: Width*Height pixels stored as interleaved RGBA
// quadruples in row-major order, the same layout canvas getImageData and
// image.NRGBA use.
type Grid struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewGrid allocates zeroed grid of requested size.
func NewGrid(w, h int) *Grid {
	w, h = max(w, 0), max(h, 0)
	return &Grid{Width: w, Height: h, Pix: make([]uint8, 4*w*h)}
}

// GridFromPixels packs pixels into a single row grid.
func GridFromPixels(pixels ...Pixel) *Grid {
	g := NewGrid(len(pixels), 1)
	for i, p := range pixels {
		g.Pix[4*i], g.Pix[4*i+1], g.Pix[4*i+2], g.Pix[4*i+3] = p.R, p.G, p.B, p.A
	}
	return g
}

// Len returns number of pixels in the grid, malformed grids (nil, negative
// dimensions or buffer not matching dimensions) have no pixels.
func (g *Grid) Len() int {
	if !g.Valid() {
		return 0
	}
	return g.Width * g.Height
}

// Valid reports whether pixel buffer agrees with grid dimensions.
func (g *Grid) Valid() bool {
	if g == nil || g.Width < 0 || g.Height < 0 {
		return false
	}
	return len(g.Pix) == 4*g.Width*g.Height
}

// At returns i-th pixel in scan order.
func (g *Grid) At(i int) Pixel {
	p := g.Pix[4*i : 4*i+4 : 4*i+4]
	return Pixel{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Set stores pixel at (x, y).
func (g *Grid) Set(x, y int, p Pixel) {
	i := 4 * (y*g.Width + x)
	g.Pix[i], g.Pix[i+1], g.Pix[i+2], g.Pix[i+3] = p.R, p.G, p.B, p.A
}
