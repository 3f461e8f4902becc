package terrain

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/tilequest/internal/core"
)

type constField float64

func (f constField) Eval2(_, _ float64) float64 { return float64(f) }

func TestGenerateIsDeterministic(t *testing.T) {
	ctx := context.Background()

	g1 := NewGenerator(DefaultParams(), WithSeed(1234))
	first, err := g1.Generate(ctx, 0)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	second, err := g1.Generate(ctx, 0)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("regenerating the same level should reproduce the same walls")
	}

	// A fresh generator with the same seed reproduces it too.
	g2 := NewGenerator(DefaultParams(), WithSeed(1234))
	third, err := g2.Generate(ctx, 0)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !reflect.DeepEqual(first, third) {
		t.Error("same seed on a new generator should reproduce the same walls")
	}

	if len(first) == 0 {
		t.Error("seed 1234 should produce at least one wall")
	}
}

func TestLevelsShareOneField(t *testing.T) {
	ctx := context.Background()
	g := NewGenerator(DefaultParams(), WithSeed(1234))

	level0, err := g.Generate(ctx, 0)
	if err != nil {
		t.Fatalf("Generate(0) failed: %v", err)
	}
	level3, err := g.Generate(ctx, 3)
	if err != nil {
		t.Fatalf("Generate(3) failed: %v", err)
	}
	if !reflect.DeepEqual(level0, level3) {
		t.Error("distinct levels with one seed currently share the same walls")
	}
}

func TestSpawnNeverWall(t *testing.T) {
	ctx := context.Background()
	p := DefaultParams()

	for seed := uint32(0); seed < 64; seed++ {
		g := NewGenerator(p, WithSeed(seed))
		walls, err := g.Generate(ctx, 0)
		if err != nil {
			t.Fatalf("seed %d: Generate failed: %v", seed, err)
		}
		for _, w := range walls {
			if w.Coord == p.Spawn {
				t.Fatalf("seed %d: spawn %v generated as a wall", seed, p.Spawn)
			}
		}
	}

	// Even a field that walls everything leaves the spawn open.
	g := NewGenerator(p, WithSeed(1), WithField(constField(1)))
	walls, err := g.Generate(ctx, 0)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, w := range walls {
		if w.Coord == p.Spawn {
			t.Fatal("spawn generated as a wall under a saturated field")
		}
	}
}

func TestGenerateCoversExactRange(t *testing.T) {
	ctx := context.Background()
	p := DefaultParams()

	g := NewGenerator(p, WithSeed(7), WithField(constField(1)))
	walls, err := g.Generate(ctx, 0)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	side := (p.ChunkMax - p.ChunkMin) * p.ChunkSize
	if len(walls) != side*side-1 {
		t.Fatalf("got %d walls, expected %d (every tile but spawn)", len(walls), side*side-1)
	}

	lo, hi := p.Bounds()
	if lo != core.C(-40, -40) || hi != core.C(24, 24) {
		t.Fatalf("Bounds() = %v..%v, expected (-40,-40)..(24,24)", lo, hi)
	}
	seen := make(map[core.Coord]bool, len(walls))
	for i, w := range walls {
		if w.Kind != TileWall {
			t.Errorf("placement %v has kind %v, expected Wall", w.Coord, w.Kind)
		}
		if w.Coord.X < lo.X || w.Coord.X >= hi.X || w.Coord.Y < lo.Y || w.Coord.Y >= hi.Y {
			t.Errorf("placement %v outside %v..%v", w.Coord, lo, hi)
		}
		if seen[w.Coord] {
			t.Errorf("duplicate placement %v", w.Coord)
		}
		seen[w.Coord] = true
		if i > 0 && !walls[i-1].Coord.Less(w.Coord) {
			t.Errorf("placements not sorted at %d: %v then %v", i, walls[i-1].Coord, w.Coord)
		}
	}

	g.field = constField(-1)
	walls, err = g.Generate(ctx, 0)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(walls) != 0 {
		t.Errorf("got %d walls from an empty field, expected 0", len(walls))
	}
}

func TestThresholdIsStrict(t *testing.T) {
	p := DefaultParams()
	// noise*16 + 8 == 4.8 exactly when noise == -0.2.
	g := NewGenerator(p, WithSeed(1))
	g.field = constField(-0.2)
	walls, err := g.Generate(context.Background(), 0)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, w := range walls {
		if s := Score(g.field, p, w.Coord); s <= p.Threshold {
			t.Errorf("wall at %v has score %v <= threshold", w.Coord, s)
		}
	}
}

func TestWallRuleMatchesScore(t *testing.T) {
	p := DefaultParams()
	g := NewGenerator(p, WithSeed(1234))
	walls, err := g.Generate(context.Background(), 0)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	isWall := make(map[core.Coord]bool, len(walls))
	for _, w := range walls {
		isWall[w.Coord] = true
	}

	field := NewField(1234)
	lo, hi := p.Bounds()
	for y := lo.Y; y < hi.Y; y++ {
		for x := lo.X; x < hi.X; x++ {
			c := core.C(x, y)
			want := c != p.Spawn && Score(field, p, c) > p.Threshold
			if isWall[c] != want {
				t.Fatalf("tile %v: wall = %v, expected %v", c, isWall[c], want)
			}
		}
	}
}

func TestInvalidLevel(t *testing.T) {
	g := NewGenerator(DefaultParams(), WithSeed(1))
	for _, level := range []int{-1, DefaultParams().MaxLevels} {
		_, err := g.Generate(context.Background(), level)
		if !errors.Is(err, ErrInvalidLevel) {
			t.Errorf("Generate(%d) error = %v, expected ErrInvalidLevel", level, err)
		}
	}
}

func TestSeedAssignedOnce(t *testing.T) {
	calls := 0
	src := func() (uint32, error) {
		calls++
		return uint32(100 + calls), nil
	}
	g := NewGenerator(DefaultParams(), WithSeedSource(src))
	if g.Seeded() {
		t.Fatal("seed should not be drawn before first use")
	}

	for level := 0; level < 3; level++ {
		if _, err := g.Generate(context.Background(), level); err != nil {
			t.Fatalf("Generate(%d) failed: %v", level, err)
		}
	}
	if calls != 1 {
		t.Errorf("seed source called %d times, expected 1", calls)
	}
	if seed, _ := g.Seed(); seed != 101 {
		t.Errorf("Seed() = %d, expected 101", seed)
	}
}

func TestSeedSourceError(t *testing.T) {
	boom := errors.New("entropy unavailable")
	g := NewGenerator(DefaultParams(), WithSeedSource(func() (uint32, error) { return 0, boom }))
	if _, err := g.Generate(context.Background(), 0); !errors.Is(err, boom) {
		t.Errorf("Generate error = %v, expected wrapped source error", err)
	}
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewGenerator(DefaultParams(), WithSeed(1))
	if _, err := g.Generate(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("Generate error = %v, expected context.Canceled", err)
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero chunk size", func(p *Params) { p.ChunkSize = 0 }},
		{"empty range", func(p *Params) { p.ChunkMax = p.ChunkMin }},
		{"zero scale", func(p *Params) { p.NoiseScale = 0 }},
		{"no levels", func(p *Params) { p.MaxLevels = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			tc.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
	if err := DefaultParams().Validate(); err != nil {
		t.Errorf("default params invalid: %v", err)
	}
}

func TestUnseededGeneratorsShareProcessSeed(t *testing.T) {
	ctx := context.Background()
	g1 := NewGenerator(DefaultParams())
	g2 := NewGenerator(DefaultParams())

	first, err := g1.Generate(ctx, 0)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	second, err := g2.Generate(ctx, 1)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	s1, _ := g1.Seed()
	s2, _ := g2.Seed()
	want, err := ProcessSeed()
	if err != nil {
		t.Fatalf("ProcessSeed failed: %v", err)
	}
	if s1 != want || s2 != want {
		t.Errorf("seeds = %d, %d, expected the process seed %d for both", s1, s2, want)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("generators sharing the process seed should produce the same walls")
	}
}
