// Package analyze implements commands computing histograms for images.
package analyze

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"imghist/archive"
	"imghist/common"
	"imghist/decoder"
	"imghist/histogram"
	"imghist/jpegquality"
	"imghist/state"
	"imghist/utils/images"
)

// dataURISource is a name results of data URI inputs are known under.
const dataURISource = "data-uri"

// stdoutDestination requests results to be written to STDOUT.
const stdoutDestination = "-"

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("analyze")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if !decoder.IsDataURI(src) {
		if src, err = filepath.Abs(src); err != nil {
			return err
		}
	}

	out, err := newSink(cmd, env, cmd.Args().Get(1), log)
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	cp := cmd.String("force-zip-cp")
	if len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	log.Info("Processing starting", zap.String("source", shorten(src)), zap.String("destination", out.describe()), zap.Stringer("format", out.format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)), zap.Int("results", out.count))
	}(time.Now())

	return process(ctx, src, out, log)
}

// newSink prepares output destination from command line.
func newSink(cmd *cli.Command, env *state.LocalEnv, dst string, log *zap.Logger) (*sink, error) {
	format, err := common.ParseOutputFmt(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to json", zap.Error(err))
		format = common.OutputFmtJson
	}

	out := &sink{
		format: format,
		chart:  cmd.Bool("chart") || (env.Cfg != nil && env.Cfg.Chart.Enable),
		stdout: os.Stdout,
	}
	if w := cmd.Root().Writer; w != nil {
		out.stdout = w
	}

	switch dst {
	case stdoutDestination:
		return out, nil
	case "":
		if dst, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if out.dst, err = filepath.Abs(dst); err != nil {
		return nil, err
	}
	if out.chart && env.Cfg == nil {
		log.Warn("No chart configuration available, charts will not be produced")
	}
	return out, nil
}

func (s *sink) describe() string {
	if s.toStdout() {
		return "STDOUT"
	}
	return s.dst
}

// shorten keeps data URIs readable in logs.
func shorten(src string) string {
	if decoder.IsDataURI(src) && len(src) > 64 {
		return src[:64] + "..."
	}
	return src
}

// process handles the core analysis logic independently of CLI framework. It
// determines the input type (data URI, directory, archive, or single file)
// and processes accordingly.
func process(ctx context.Context, src string, out *sink, log *zap.Logger) error {
	if decoder.IsDataURI(src) {
		_, data, err := decoder.ParseDataURI(src)
		if err != nil {
			return fmt.Errorf("unable to process data URI: %w", err)
		}
		if err := processImage(ctx, bytes.NewReader(data), dataURISource, out, log); err != nil {
			log.Error("Unable to process data URI", zap.Error(err))
		}
		return nil
	}

	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, out, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := processArchive(ctx, head, tail, "", out, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		isImg, err := isImageFile(head)
		if err != nil {
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if isImg && len(tail) == 0 {
			// we have image, it cannot have tail
			if err := processFile(ctx, head, filepath.Base(head), out, log); err != nil {
				log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
			}
			break
		}
		return fmt.Errorf("input was not recognized as supported image (%s)", head)
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree finding image files and archives and
// processes them in natural order of their paths.
func processDir(ctx context.Context, dir string, out *sink, log *zap.Logger) (err error) {
	var (
		imgs []string
		arcs []string
	)
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		isArchive, err := isArchiveFile(path)
		if err != nil {
			// checking format - but cannot open target file
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isArchive {
			arcs = append(arcs, path)
			return nil
		}

		isImg, err := isImageFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !isImg {
			log.Debug("Skipping file, not recognized as image or archive", zap.String("file", path))
			return nil
		}
		imgs = append(imgs, path)
		return nil
	})
	if err != nil {
		return err
	}
	if len(imgs) == 0 && len(arcs) == 0 {
		log.Debug("Nothing to process", zap.String("dir", dir))
		return nil
	}

	sort.Sort(natural.StringSlice(imgs))
	sort.Sort(natural.StringSlice(arcs))

	for _, path := range imgs {
		if err := ctx.Err(); err != nil {
			return err
		}
		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := processFile(ctx, path, src, out, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
	}
	for _, path := range arcs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := processArchive(ctx, path, "", filepath.Dir(strings.TrimPrefix(path, dir)), out, log); err != nil {
			log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
		}
	}
	return nil
}

// processArchive walks all files inside archive, finds images under "pathIn"
// and processes them.
func processArchive(ctx context.Context, path, pathIn, pathOut string, out *sink, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	err = archive.Walk(path, filepath.ToSlash(pathIn), func(archive string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		isImg, err := isImageInArchive(f)
		if err != nil {
			log.Warn("Skipping file in archive",
				zap.String("archive", archive), zap.String("path", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		if !isImg {
			log.Debug("Skipping file, not recognized as image", zap.String("archive", archive), zap.String("file", f.FileHeader.Name))
			return nil
		}

		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		cp := state.EnvFromContext(ctx).CodePage

		pathInArchive := f.FileHeader.Name
		if cp != nil && f.FileHeader.NonUTF8 {
			// forcing zip file name encoding
			if n, err := cp.NewDecoder().String(pathInArchive); err == nil {
				pathInArchive = n
			} else {
				n, _ = ianaindex.IANA.Name(cp)
				log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", n), zap.String("path", pathInArchive), zap.Error(err))
			}
		}
		if err := processImage(ctx, r, filepath.Join(pathOut, filepath.FromSlash(pathInArchive)), out, log); err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.FileHeader.Name), zap.Error(err))
		}
		return nil
	})
	return err
}

func processFile(ctx context.Context, path, src string, out *sink, log *zap.Logger) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return processImage(ctx, file, src, out, log)
}

// processImage analyzes single image. "src" is part of the source path
// (always including file name) relative to the original path. When actual
// file was specified it will be just base file name without a path. When
// looking inside archive or directory it will be relative path inside archive
// or directory (including base file name).
func processImage(ctx context.Context, r io.Reader, src string, out *sink, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var snap *histogram.Snapshot

	log.Debug("Analysis starting", zap.String("from", src))
	defer func(start time.Time) {
		// NOTE: some of golang graphic processing libraries are not mature
		// enough, if multiple images are being processed we do not want to stop.
		if r := recover(); r != nil {
			log.Error("Analysis ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("from", src), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("analysis panic: %v", r)
		} else if snap != nil {
			log.Info("Analysis completed", zap.Duration("elapsed", time.Since(start)), zap.String("from", src),
				zap.Bool("bw", snap.BlackAndWhite), zap.Int("pixels", snap.Pixels()))
		}
	}(time.Now())

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("unable to read image (%s): %w", src, err)
	}
	if len(data) == 0 {
		log.Debug("Empty input, nothing to analyze", zap.String("from", src))
		return nil
	}

	img, err := decoder.Decode(data, env.DecoderOptions())
	if err != nil {
		return fmt.Errorf("unable to decode image (%s): %w", src, err)
	}
	if !img.Grid.Valid() {
		log.Warn("Malformed pixel grid, treating as empty", zap.String("from", src))
	}

	snap, err = histogram.NewSnapshot(uint64(out.count+1), src, img.Format, img.Grid)
	if err != nil {
		return err
	}

	res := NewResult(snap)
	if env.Analysis().PixelCheck {
		res.WithPixelCheck(images.IsGrayscale(img.Source))
	}
	if img.Format == "jpeg" {
		if jr, err := jpegquality.NewWithBytes(data); err != nil {
			log.Debug("Unable to estimate JPEG quality", zap.String("from", src), zap.Error(err))
		} else {
			res.WithJPEGQuality(jr.Quality())
		}
	}
	return out.emit(env, snap, res, src, log)
}
