package analyze

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"imghist/chart"
	"imghist/common"
	"imghist/config"
	"imghist/histogram"
	"imghist/state"
)

// sink decides where and how results are written.
type sink struct {
	// dst is destination directory, empty means results go to stdout.
	dst    string
	format common.OutputFmt
	chart  bool
	// replace silently replaces existing outputs, watch keeps rewriting the
	// same files.
	replace bool
	stdout  io.Writer
	count   int
}

type writeMode int

const (
	keepExisting writeMode = iota
	overwriteExisting
	replaceExisting
)

func (s *sink) mode(env *state.LocalEnv) writeMode {
	switch {
	case s.replace:
		return replaceExisting
	case env.Overwrite:
		return overwriteExisting
	default:
		return keepExisting
	}
}

func (s *sink) toStdout() bool {
	return s.dst == ""
}

// emit writes result and optionally chart for snapshot. "src" is source path
// relative to what was requested on command line.
func (s *sink) emit(env *state.LocalEnv, snap *histogram.Snapshot, res *Result, src string, log *zap.Logger) error {
	buf := new(bytes.Buffer)
	if err := res.Encode(buf, s.format); err != nil {
		return fmt.Errorf("unable to encode result: %w", err)
	}

	if s.toStdout() {
		if s.count > 0 {
			writeSeparator(s.stdout, s.format)
		}
		s.count++
		if _, err := s.stdout.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("unable to write result: %w", err)
		}
		if s.chart {
			log.Warn("Charts are not produced when writing results to STDOUT", zap.String("source", src))
		}
		return nil
	}

	base := buildOutputPath(snap, src, s.dst, env)
	outputName := base + s.format.Ext()
	if err := writeOutput(outputName, buf.Bytes(), s.mode(env), log); err != nil {
		return err
	}
	s.count++
	log.Debug("Result written", zap.String("file", outputName))
	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("result-%s%s", snap.ID, s.format.Ext()), outputName)
	}

	if !s.chart || env.Cfg == nil {
		return nil
	}
	data, err := renderChart(snap, &env.Cfg.Chart, log)
	if err != nil {
		return err
	}
	chartName := base + env.Cfg.Chart.Format.Ext()
	if err := writeOutput(chartName, data, s.mode(env), log); err != nil {
		return err
	}
	log.Debug("Chart written", zap.String("file", chartName))
	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("chart-%s%s", snap.ID, env.Cfg.Chart.Format.Ext()), chartName)
	}
	return nil
}

// writeSeparator puts document separator between results written to the
// same stream.
func writeSeparator(w io.Writer, format common.OutputFmt) {
	switch format {
	case common.OutputFmtYaml:
		_, _ = io.WriteString(w, "---\n")
	case common.OutputFmtText:
		_, _ = io.WriteString(w, "\n")
	}
}

// writeOutput creates file with data, refusing to replace existing file unless
// asked to.
func writeOutput(name string, data []byte, mode writeMode, log *zap.Logger) error {
	if _, err := os.Stat(name); err == nil {
		switch mode {
		case keepExisting:
			return fmt.Errorf("output file already exists: %s", name)
		case overwriteExisting:
			log.Warn("Overwriting existing file", zap.String("file", name))
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	return nil
}

// chartOptions builds chart options from configuration, expanding title
// template for the snapshot.
func chartOptions(snap *histogram.Snapshot, cfg *config.ChartConfig, log *zap.Logger) chart.Options {
	opts := chart.Options{
		Format:      cfg.Format,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Theme:       cfg.Theme,
		Labels:      cfg.Labels,
		JPEGQuality: cfg.JPEGQuality,
	}
	if cfg.Labels && cfg.TitleTemplate != "" {
		title, err := expandTemplate(snap, config.ChartTitleTemplateFieldName, cfg.TitleTemplate)
		if err != nil {
			log.Warn("Unable to prepare chart title", zap.Error(err))
		} else {
			opts.Title = strings.TrimSpace(title)
		}
	}
	return opts
}

func renderChart(snap *histogram.Snapshot, cfg *config.ChartConfig, log *zap.Logger) ([]byte, error) {
	data, err := chart.Render(snap, chartOptions(snap, cfg, log))
	if err != nil {
		return nil, fmt.Errorf("unable to render chart: %w", err)
	}
	return data, nil
}
