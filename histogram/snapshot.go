package histogram

import (
	"fmt"

	"github.com/google/uuid"
)

// Snapshot is the published result of a single image load. It is never
// modified after creation, overrides produce new copies.
type Snapshot struct {
	ID     uuid.UUID
	Seq    uint64
	Source string
	Format string
	Width  int
	Height int

	Histograms Histograms
	// BlackAndWhite is what should be presented, it starts equal to Detected
	// and may be overridden by the user.
	BlackAndWhite bool
	// Detected is classifier decision for the histograms.
	Detected bool
}

// NewSnapshot counts and classifies grid and wraps results together with
// load identity.
func NewSnapshot(seq uint64, source, format string, g *Grid) (*Snapshot, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("unable to generate snapshot id: %w", err)
	}
	h, bw := Analyze(g)
	s := &Snapshot{
		ID:            id,
		Seq:           seq,
		Source:        source,
		Format:        format,
		Histograms:    h,
		BlackAndWhite: bw,
		Detected:      bw,
	}
	if g.Valid() {
		s.Width, s.Height = g.Width, g.Height
	}
	return s, nil
}

// Pixels returns number of pixels histograms were built from.
func (s *Snapshot) Pixels() int {
	return s.Histograms.Red.Sum()
}

// Overridden reports whether presented flag differs from detected one.
func (s *Snapshot) Overridden() bool {
	return s.BlackAndWhite != s.Detected
}

// Gray returns derived grayscale series for the snapshot histograms.
func (s *Snapshot) Gray() [Levels]float64 {
	return Gray(&s.Histograms)
}

// WithBlackAndWhite returns copy of the snapshot with presentation flag
// replaced.
func (s *Snapshot) WithBlackAndWhite(bw bool) *Snapshot {
	c := *s
	c.BlackAndWhite = bw
	return &c
}
