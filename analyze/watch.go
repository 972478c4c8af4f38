package analyze

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"imghist/decoder"
	"imghist/histogram"
	"imghist/session"
	"imghist/state"
)

// currentName is base name of the file watch keeps most recent result in.
const currentName = "current"

// maxLineSize limits single input line, data URIs of large images are long.
const maxLineSize = 64 << 20

// Watch reads image paths and data URIs from STDIN, one per line, and keeps
// result of the most recently started load in the destination.
func Watch(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("watch")

	out, err := newSink(cmd, env, cmd.Args().Get(0), log)
	if err != nil {
		return err
	}
	out.replace = true
	if cmd.Args().Len() > 1 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	var in io.Reader = os.Stdin
	if r := cmd.Root().Reader; r != nil {
		in = r
	}

	log.Info("Watching for input", zap.String("destination", out.describe()), zap.Stringer("format", out.format))
	defer func(start time.Time) {
		log.Info("Watching completed", zap.Duration("elapsed", time.Since(start)), zap.Int("results", out.count))
	}(time.Now())

	return watch(ctx, in, out, log)
}

// watchStats summarizes what happened to loads.
type watchStats struct {
	published, superseded, failed int
}

func watch(ctx context.Context, in io.Reader, out *sink, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	s := session.New(log.Named("session"), session.WithDecoderOptions(env.DecoderOptions()))
	s.OnPublish(func(snap *histogram.Snapshot) {
		if err := writeCurrent(env, out, snap, log); err != nil {
			log.Error("Unable to write current result", zap.Uint64("seq", snap.Seq), zap.Error(err))
		}
	})

	var requests []*session.Request

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if cmd, arg, ok := strings.Cut(line, " "); ok && cmd == "bw" {
			override(s, strings.TrimSpace(arg), log)
			continue
		}

		name, data, err := readInput(line)
		if err != nil {
			log.Warn("Unable to read input", zap.String("input", shorten(line)), zap.Error(err))
			continue
		}
		if r := s.Load(ctx, name, data); r != nil {
			requests = append(requests, r)
		}
	}
	scanErr := scanner.Err()

	// let in flight decodes finish, their results are final
	s.Wait()

	var stats watchStats
	for _, r := range requests {
		res, err := r.Wait(ctx)
		switch {
		case err != nil || res.Err != nil:
			stats.failed++
		case res.Superseded:
			stats.superseded++
		default:
			stats.published++
		}
	}
	log.Debug("Loads finished",
		zap.Int("published", stats.published), zap.Int("superseded", stats.superseded), zap.Int("failed", stats.failed))

	if scanErr != nil {
		return fmt.Errorf("unable to read input: %w", scanErr)
	}
	return ctx.Err()
}

func override(s *session.Session, arg string, log *zap.Logger) {
	var snap *histogram.Snapshot
	switch strings.ToLower(arg) {
	case "on", "true", "1":
		snap = s.SetBlackAndWhite(true)
	case "off", "false", "0":
		snap = s.SetBlackAndWhite(false)
	case "auto":
		if cur := s.Current(); cur != nil {
			snap = s.SetBlackAndWhite(cur.Detected)
		}
	default:
		log.Warn("Unknown black and white override, expected on, off or auto", zap.String("value", arg))
		return
	}
	if snap == nil {
		log.Warn("Nothing to override yet")
	}
}

// readInput turns input line into load name and encoded image.
func readInput(line string) (string, []byte, error) {
	if decoder.IsDataURI(line) {
		_, data, err := decoder.ParseDataURI(line)
		return dataURISource, data, err
	}
	path, err := filepath.Abs(line)
	if err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	return filepath.Base(path), data, nil
}

// writeCurrent replaces current result (and chart) in the destination. Exact
// per pixel check is not done here, decoded pixels are not kept by session.
func writeCurrent(env *state.LocalEnv, out *sink, snap *histogram.Snapshot, log *zap.Logger) error {
	log.Info("Current result", zap.Uint64("seq", snap.Seq), zap.String("source", snap.Source),
		zap.Bool("bw", snap.BlackAndWhite), zap.Bool("overridden", snap.Overridden()))

	// current file keeps no source structure
	local := *env
	local.NoDirs = true
	if env.Cfg != nil {
		cfg := *env.Cfg
		cfg.Analysis.OutputNameTemplate = ""
		local.Cfg = &cfg
	}
	return out.emit(&local, snap, NewResult(snap), currentName, log)
}
