// Package chart draws histogram snapshots.
package chart

import (
	"imghist/histogram"
)

// Point is a single chart datum: how many pixels have channel value Value.
type Point struct {
	Value  int
	Pixels float64
}

// Series is one line of the chart.
type Series struct {
	Label string
	Color string
	Data  []Point
}

// Max returns largest pixel count in the series.
func (s Series) Max() float64 {
	var m float64
	for _, p := range s.Data {
		m = max(m, p.Pixels)
	}
	return m
}

// BuildSeries selects what to draw for the snapshot: single "Gray" series for
// black and white images, "Red", "Green" and "Blue" otherwise. nil snapshot
// has nothing to draw.
func BuildSeries(snap *histogram.Snapshot) []Series {
	if snap == nil {
		return nil
	}
	if snap.BlackAndWhite {
		gray := snap.Gray()
		return []Series{newSeries("Gray", "gray", gray[:])}
	}
	return []Series{
		newSeries("Red", "red", toFloat(&snap.Histograms.Red)),
		newSeries("Green", "green", toFloat(&snap.Histograms.Green)),
		newSeries("Blue", "blue", toFloat(&snap.Histograms.Blue)),
	}
}

func newSeries(label, color string, values []float64) Series {
	s := Series{Label: label, Color: color, Data: make([]Point, len(values))}
	for i, v := range values {
		s.Data[i] = Point{Value: i, Pixels: v}
	}
	return s
}

func toFloat(h *histogram.Histogram) []float64 {
	out := make([]float64, len(h))
	for i, v := range h {
		out[i] = float64(v)
	}
	return out
}
