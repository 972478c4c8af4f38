package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"imghist/common"
	"imghist/histogram"
)

const (
	marginLeft   = 56
	marginRight  = 16
	marginTop    = 28
	marginBottom = 28

	xTicks = 4
	yTicks = 4
)

// Options describe chart appearance.
type Options struct {
	Format      common.ChartFmt
	Width       int
	Height      int
	Theme       common.Theme
	Labels      bool
	Title       string
	JPEGQuality int
}

type palette struct {
	background color.NRGBA
	axis       string
	grid       string
	text       string
}

var palettes = map[common.Theme]palette{
	common.ThemeLight: {
		background: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		axis:       "#404040",
		grid:       "#e0e0e0",
		text:       "#202020",
	},
	common.ThemeDark: {
		background: color.NRGBA{R: 0x1a, G: 0x1d, B: 0x23, A: 0xff},
		axis:       "#b0b0b0",
		grid:       "#30343c",
		text:       "#e8e8e8",
	},
}

func paletteFor(t common.Theme) palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[common.ThemeLight]
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// SVG builds chart document for series.
func SVG(series []Series, opts Options) *etree.Document {
	return build(series, opts, opts.Labels)
}

// build assembles document. Text is optional since rasterizer does
// not draw it.
func build(series []Series, opts Options, withText bool) *etree.Document {
	w, h := float64(opts.Width), float64(opts.Height)
	pal := paletteFor(opts.Theme)

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("version", "1.1")
	svg.CreateAttr("width", strconv.Itoa(opts.Width))
	svg.CreateAttr("height", strconv.Itoa(opts.Height))
	svg.CreateAttr("viewBox", fmt.Sprintf("0 0 %d %d", opts.Width, opts.Height))

	bg := svg.CreateElement("rect")
	bg.CreateAttr("x", "0")
	bg.CreateAttr("y", "0")
	bg.CreateAttr("width", strconv.Itoa(opts.Width))
	bg.CreateAttr("height", strconv.Itoa(opts.Height))
	bg.CreateAttr("fill", hexColor(pal.background))

	left, right := float64(marginLeft), w-marginRight
	top, bottom := float64(marginTop), h-marginBottom
	plotW, plotH := max(right-left, 1), max(bottom-top, 1)

	yMax := 0.0
	for _, s := range series {
		yMax = max(yMax, s.Max())
	}
	yMax = niceCeil(yMax)

	x := func(v int) float64 {
		return left + plotW*float64(v)/float64(histogram.Levels-1)
	}
	y := func(v float64) float64 {
		return bottom - plotH*v/yMax
	}

	grid := svg.CreateElement("g")
	grid.CreateAttr("id", "grid")
	grid.CreateAttr("stroke", pal.grid)
	grid.CreateAttr("stroke-width", "1")
	for i := 1; i <= yTicks; i++ {
		gy := bottom - plotH*float64(i)/yTicks
		line(grid, left, gy, right, gy)
	}

	axes := svg.CreateElement("g")
	axes.CreateAttr("id", "axes")
	axes.CreateAttr("stroke", pal.axis)
	axes.CreateAttr("stroke-width", "1")
	line(axes, left, bottom, right, bottom)
	line(axes, left, top, left, bottom)
	for i := 0; i <= xTicks; i++ {
		tx := left + plotW*float64(i)/xTicks
		line(axes, tx, bottom, tx, bottom+4)
	}

	lines := svg.CreateElement("g")
	lines.CreateAttr("id", "series")
	lines.CreateAttr("fill", "none")
	lines.CreateAttr("stroke-width", "1.5")
	lines.CreateAttr("stroke-linejoin", "round")
	for _, s := range series {
		if len(s.Data) == 0 {
			continue
		}
		var d strings.Builder
		for i, p := range s.Data {
			cmd := "L"
			if i == 0 {
				cmd = "M"
			}
			fmt.Fprintf(&d, "%s%s %s ", cmd, num(x(p.Value)), num(y(p.Pixels)))
		}
		path := lines.CreateElement("path")
		path.CreateAttr("id", "series-"+strings.ToLower(s.Label))
		path.CreateAttr("stroke", s.Color)
		path.CreateAttr("d", strings.TrimSpace(d.String()))
	}

	if !withText {
		return doc
	}

	text := svg.CreateElement("g")
	text.CreateAttr("id", "labels")
	text.CreateAttr("fill", pal.text)
	text.CreateAttr("font-family", "sans-serif")
	text.CreateAttr("font-size", "11")

	if opts.Title != "" {
		label(text, w/2, float64(marginTop)/2+4, "middle", opts.Title).CreateAttr("font-size", "13")
	}
	for i := 0; i <= xTicks; i++ {
		v := (histogram.Levels - 1) * i / xTicks
		label(text, x(v), bottom+16, "middle", strconv.Itoa(v))
	}
	for i := 0; i <= yTicks; i++ {
		v := yMax * float64(i) / yTicks
		label(text, left-6, y(v)+4, "end", strconv.FormatFloat(v, 'f', -1, 64))
	}
	lx := right
	for i := len(series) - 1; i >= 0; i-- {
		s := series[i]
		label(text, lx, float64(marginTop)-8, "end", s.Label).CreateAttr("fill", s.Color)
		lx -= float64(8*len(s.Label) + 12)
	}
	return doc
}

func line(parent *etree.Element, x1, y1, x2, y2 float64) {
	l := parent.CreateElement("line")
	l.CreateAttr("x1", num(x1))
	l.CreateAttr("y1", num(y1))
	l.CreateAttr("x2", num(x2))
	l.CreateAttr("y2", num(y2))
}

func label(parent *etree.Element, x, y float64, anchor, s string) *etree.Element {
	t := parent.CreateElement("text")
	t.CreateAttr("x", num(x))
	t.CreateAttr("y", num(y))
	t.CreateAttr("text-anchor", anchor)
	t.SetText(s)
	return t
}

// niceCeil rounds axis maximum up to 1, 2 or 5 times power of ten, never
// returning 0 so empty histograms still get a scale.
func niceCeil(v float64) float64 {
	if v <= 1 {
		return 1
	}
	exp := 1.0
	for exp*10 < v {
		exp *= 10
	}
	for _, m := range []float64{1, 2, 5, 10} {
		if v <= m*exp {
			return m * exp
		}
	}
	return 10 * exp
}
