// Package common keeps enumerations shared between configuration and
// processing so neither has to import the other.
package common

//go:generate go tool go-enum --marshal --names --values --nocase --mustparse

// Requested result output type.
// ENUM(json, yaml, ion, text)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtJson:
		return ".json"
	case OutputFmtYaml:
		return ".yaml"
	case OutputFmtIon:
		return ".ion"
	case OutputFmtText:
		return ".txt"
	default:
		// this should never happen
		panic("unsupported output format requested")
	}
}

// Requested chart image type.
// ENUM(svg, png, jpeg)
type ChartFmt int

func (c ChartFmt) Ext() string {
	switch c {
	case ChartFmtSvg:
		return ".svg"
	case ChartFmtPng:
		return ".png"
	case ChartFmtJpeg:
		return ".jpg"
	default:
		// this should never happen
		panic("unsupported chart format requested")
	}
}

// Chart color theme.
// ENUM(light, dark)
type Theme int
