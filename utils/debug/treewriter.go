// Package debug has helpers producing human readable dumps.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// countsPerRow is how many histogram bins Counts prints on a single line.
const countsPerRow = 16

type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Counts writes label followed by values, countsPerRow values per line, each
// line prefixed by index of its first value. Zero rows are skipped.
func Counts[T int | float64](tw TreeWriter, depth int, label string, values []T) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(":\n")
	for start := 0; start < len(values); start += countsPerRow {
		row := values[start:min(start+countsPerRow, len(values))]
		if allZero(row) {
			continue
		}
		tw.indent(depth + 1)
		fmt.Fprintf(tw.w, "%3d:", start)
		for _, v := range row {
			tw.w.WriteByte(' ')
			tw.w.WriteString(formatValue(v))
		}
		tw.w.WriteByte('\n')
	}
}

func allZero[T int | float64](row []T) bool {
	for _, v := range row {
		if v != 0 {
			return false
		}
	}
	return true
}

func formatValue[T int | float64](v T) string {
	switch x := any(v).(type) {
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return ""
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
