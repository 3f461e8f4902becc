// Package terrain generates wall layouts from a seeded noise field sampled
// over a fixed arrangement of chunks.
package terrain

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tilequest/internal/core"
)

// ErrInvalidLevel is returned for a level index outside [0, MaxLevels).
var ErrInvalidLevel = errors.New("terrain: level index out of range")

// TileKind classifies a generated tile.
type TileKind uint8

const (
	TileWall TileKind = iota + 1
)

// String returns the tile kind name.
func (k TileKind) String() string {
	switch k {
	case TileWall:
		return "Wall"
	default:
		return "Unknown"
	}
}

// Placement is one generated tile.
type Placement struct {
	Coord core.Coord
	Kind  TileKind
}

// Params configures the chunk layout and the wall rule.
type Params struct {
	ChunkSize int // Tiles per chunk side
	ChunkMin  int // First chunk index on each axis (inclusive)
	ChunkMax  int // Last chunk index on each axis (exclusive)

	NoiseScale float64 // Tile coordinates are divided by this before sampling
	Amplitude  float64 // score = noise*Amplitude + Offset
	Offset     float64
	Threshold  float64 // A tile is a wall when score > Threshold

	Spawn     core.Coord // Never a wall
	MaxLevels int        // Valid level indices are [0, MaxLevels)
}

// DefaultParams returns the design values: a 4x4 arrangement of 16x16 chunks.
func DefaultParams() Params {
	return Params{
		ChunkSize:  16,
		ChunkMin:   -2,
		ChunkMax:   2,
		NoiseScale: 16,
		Amplitude:  16,
		Offset:     8,
		Threshold:  4.8,
		Spawn:      core.C(0, 0),
		MaxLevels:  16,
	}
}

// Validate checks that the parameters describe a non-empty area.
func (p Params) Validate() error {
	if p.ChunkSize <= 0 {
		return fmt.Errorf("terrain: chunk size must be positive, got %d", p.ChunkSize)
	}
	if p.ChunkMax <= p.ChunkMin {
		return fmt.Errorf("terrain: empty chunk range [%d, %d)", p.ChunkMin, p.ChunkMax)
	}
	if p.NoiseScale == 0 {
		return errors.New("terrain: noise scale must be non-zero")
	}
	if p.MaxLevels <= 0 {
		return fmt.Errorf("terrain: max levels must be positive, got %d", p.MaxLevels)
	}
	return nil
}

// Bounds returns the inclusive-exclusive tile rectangle covered by the chunks.
func (p Params) Bounds() (lo, hi core.Coord) {
	half := p.ChunkSize / 2
	first := p.ChunkMin*p.ChunkSize - half
	last := p.ChunkMax*p.ChunkSize - half
	return core.C(first, first), core.C(last, last)
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed assigns the seed up front instead of drawing one on first use.
func WithSeed(seed uint32) Option {
	return func(g *Generator) {
		g.seed = seed
		g.seeded = true
	}
}

// WithSeedSource replaces ProcessSeed as the source of the lazy seed.
func WithSeedSource(src func() (uint32, error)) Option {
	return func(g *Generator) {
		g.seedSource = src
	}
}

// WithField replaces the noise field derived from the seed.
func WithField(f Field) Option {
	return func(g *Generator) {
		g.field = f
	}
}

// Generator produces wall placements. The seed is fixed the first time it is
// needed and shared by every level afterwards, so distinct level indices
// currently produce the same field.
type Generator struct {
	params     Params
	seed       uint32
	seeded     bool
	seedSource func() (uint32, error)
	field      Field
}

// NewGenerator creates a generator with the given parameters.
func NewGenerator(p Params, opts ...Option) *Generator {
	g := &Generator{
		params:     p,
		seedSource: ProcessSeed,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Params returns the generator parameters.
func (g *Generator) Params() Params {
	return g.params
}

// Seed returns the seed, drawing it on first call.
func (g *Generator) Seed() (uint32, error) {
	if g.seeded {
		return g.seed, nil
	}
	s, err := g.seedSource()
	if err != nil {
		return 0, fmt.Errorf("terrain: drawing seed: %w", err)
	}
	g.seed = s
	g.seeded = true
	return s, nil
}

// Seeded reports whether the seed has been assigned.
func (g *Generator) Seeded() bool {
	return g.seeded
}

// Generate returns every wall for the level, sorted by row then column.
// Chunks are sampled concurrently; output does not depend on scheduling.
func (g *Generator) Generate(ctx context.Context, level int) ([]Placement, error) {
	if err := g.params.Validate(); err != nil {
		return nil, err
	}
	if level < 0 || level >= g.params.MaxLevels {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidLevel, level, g.params.MaxLevels)
	}

	seed, err := g.Seed()
	if err != nil {
		return nil, err
	}
	if g.field == nil {
		g.field = NewField(seed)
	}

	p := g.params
	span := p.ChunkMax - p.ChunkMin
	results := make([][]Placement, span*span)

	eg, ctx := errgroup.WithContext(ctx)
	for cy := p.ChunkMin; cy < p.ChunkMax; cy++ {
		for cx := p.ChunkMin; cx < p.ChunkMax; cx++ {
			slot := (cy-p.ChunkMin)*span + (cx - p.ChunkMin)
			chunk := core.C(cx, cy)
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[slot] = sampleChunk(g.field, p, chunk)
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("terrain: generating level %d: %w", level, err)
	}

	var walls []Placement
	for _, chunk := range results {
		walls = append(walls, chunk...)
	}
	sort.Slice(walls, func(i, j int) bool {
		return walls[i].Coord.Less(walls[j].Coord)
	})
	return walls, nil
}

// sampleChunk evaluates the wall rule for every tile of one chunk.
func sampleChunk(f Field, p Params, chunk core.Coord) []Placement {
	half := p.ChunkSize / 2
	var out []Placement
	for ly := -half; ly < p.ChunkSize-half; ly++ {
		for lx := -half; lx < p.ChunkSize-half; lx++ {
			c := core.C(chunk.X*p.ChunkSize+lx, chunk.Y*p.ChunkSize+ly)
			if c == p.Spawn {
				continue
			}
			if Score(f, p, c) > p.Threshold {
				out = append(out, Placement{Coord: c, Kind: TileWall})
			}
		}
	}
	return out
}

// Score is the rescaled noise value the wall rule compares against Threshold.
func Score(f Field, p Params, c core.Coord) float64 {
	n := f.Eval2(float64(c.X)/p.NoiseScale, float64(c.Y)/p.NoiseScale)
	return n*p.Amplitude + p.Offset
}

var processSeed struct {
	sync.Mutex
	seed   uint32
	seeded bool
}

// ProcessSeed returns the seed shared by every generator in this process that
// was not given one. It is drawn on the first call; a failed draw is retried
// on the next call.
func ProcessSeed() (uint32, error) {
	processSeed.Lock()
	defer processSeed.Unlock()
	if processSeed.seeded {
		return processSeed.seed, nil
	}
	s, err := randomSeed()
	if err != nil {
		return 0, err
	}
	processSeed.seed = s
	processSeed.seeded = true
	return s, nil
}

// randomSeed draws a seed from the operating system's secure source.
func randomSeed() (uint32, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}
