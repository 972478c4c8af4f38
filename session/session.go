// Package session runs image loads asynchronously and publishes their
// results so that the most recently started load always wins.
package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"imghist/decoder"
	"imghist/histogram"
)

// DecodeFunc turns encoded bytes into pixels.
type DecodeFunc func(data []byte) (*decoder.Image, error)

// Result is the outcome of a single load.
type Result struct {
	Snapshot *histogram.Snapshot
	// Superseded is set when a newer load was published before this one
	// finished, Snapshot is still valid but was never published.
	Superseded bool
	Err        error
}

// Request is a single-shot handle for a started load. nil Request
// represents load which was never started and is safe to use.
type Request struct {
	seq    uint64
	source string
	done   chan struct{}
	res    Result
}

var closed = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Seq returns load sequence number, 0 for nil request.
func (r *Request) Seq() uint64 {
	if r == nil {
		return 0
	}
	return r.seq
}

// Source returns name load was started with.
func (r *Request) Source() string {
	if r == nil {
		return ""
	}
	return r.source
}

// Done is closed when load is finished.
func (r *Request) Done() <-chan struct{} {
	if r == nil {
		return closed
	}
	return r.done
}

// Wait blocks until load is finished or ctx is done. Only ctx errors are
// returned as error, load failures are in Result.Err.
func (r *Request) Wait(ctx context.Context) (Result, error) {
	if r == nil {
		return Result{}, nil
	}
	select {
	case <-r.done:
		return r.res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Session keeps currently published snapshot.
type Session struct {
	log    *zap.Logger
	decode DecodeFunc

	seq     atomic.Uint64
	current atomic.Pointer[histogram.Snapshot]

	mu          sync.Mutex
	subscribers []func(*histogram.Snapshot)

	inflight sync.WaitGroup
}

// Option configures Session.
type Option func(*Session)

// WithDecoder replaces default decoder.
func WithDecoder(fn DecodeFunc) Option {
	return func(s *Session) {
		s.decode = fn
	}
}

// WithDecoderOptions configures default decoder.
func WithDecoderOptions(opts decoder.Options) Option {
	return func(s *Session) {
		s.decode = func(data []byte) (*decoder.Image, error) {
			return decoder.Decode(data, opts)
		}
	}
}

// New creates empty session.
func New(log *zap.Logger, opts ...Option) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		log: log,
		decode: func(data []byte) (*decoder.Image, error) {
			return decoder.Decode(data, decoder.Options{})
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnPublish registers callback receiving every snapshot which becomes
// current, including overrides. Callbacks are called sequentially and must
// not call back into session publishing methods.
func (s *Session) OnPublish(fn func(*histogram.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Current returns published snapshot or nil.
func (s *Session) Current() *histogram.Snapshot {
	return s.current.Load()
}

// Load starts decoding data in background. Empty data starts nothing and
// returns nil request.
func (s *Session) Load(ctx context.Context, source string, data []byte) *Request {
	if len(data) == 0 {
		s.log.Debug("Nothing to load", zap.String("source", source))
		return nil
	}

	r := &Request{
		seq:    s.seq.Add(1),
		source: source,
		done:   make(chan struct{}),
	}

	if err := ctx.Err(); err != nil {
		r.res.Err = err
		close(r.done)
		return r
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer close(r.done)
		r.res = s.run(r, data)
	}()
	return r
}

// Wait blocks until all started loads are finished.
func (s *Session) Wait() {
	s.inflight.Wait()
}

func (s *Session) run(r *Request, data []byte) (res Result) {
	log := s.log.With(zap.Uint64("seq", r.seq), zap.String("source", r.source))

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("Load panicked", zap.Any("panic", rec))
			res = Result{Err: fmt.Errorf("load %d panicked: %v", r.seq, rec)}
		}
	}()

	img, err := s.decode(data)
	if err != nil {
		log.Warn("Unable to decode image, keeping previous result", zap.Error(err))
		return Result{Err: fmt.Errorf("unable to load %s: %w", r.source, err)}
	}
	if !img.Grid.Valid() {
		log.Warn("Malformed pixel grid, treating as empty", zap.Int("width", img.Grid.Width), zap.Int("height", img.Grid.Height), zap.Int("len", len(img.Grid.Pix)))
	}

	snap, err := histogram.NewSnapshot(r.seq, r.source, img.Format, img.Grid)
	if err != nil {
		return Result{Err: err}
	}

	if !s.publish(snap) {
		log.Debug("Result superseded by newer load", zap.Uint64("current", s.current.Load().Seq))
		return Result{Snapshot: snap, Superseded: true}
	}
	log.Debug("Result published", zap.Bool("bw", snap.BlackAndWhite), zap.Int("pixels", snap.Pixels()))
	return Result{Snapshot: snap}
}

// publish makes snap current unless newer load is already published.
func (s *Session) publish(snap *histogram.Snapshot) bool {
	for {
		cur := s.current.Load()
		if cur != nil && cur.Seq >= snap.Seq {
			return false
		}
		if s.current.CompareAndSwap(cur, snap) {
			s.notify(snap)
			return true
		}
	}
}

// SetBlackAndWhite overrides presentation flag of the current snapshot and
// returns new current snapshot. It does nothing when nothing was published.
func (s *Session) SetBlackAndWhite(bw bool) *histogram.Snapshot {
	for {
		cur := s.current.Load()
		if cur == nil {
			return nil
		}
		if cur.BlackAndWhite == bw {
			return cur
		}
		next := cur.WithBlackAndWhite(bw)
		if s.current.CompareAndSwap(cur, next) {
			s.log.Debug("Black and white override", zap.Uint64("seq", next.Seq), zap.Bool("bw", bw), zap.Bool("detected", next.Detected))
			s.notify(next)
			return next
		}
	}
}

// notify delivers snap to subscribers if it is still current, so callbacks
// never observe older snapshot after newer one.
func (s *Session) notify(snap *histogram.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Load() != snap {
		return
	}
	for _, fn := range s.subscribers {
		fn(snap)
	}
}
