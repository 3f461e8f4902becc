// Package camera smooths a rendered position toward a grid coordinate.
package camera

import (
	"math"

	"github.com/vovakirdan/tilequest/internal/core"
)

// Design values.
const (
	DefaultK        = 5.0
	DefaultTileSize = 1.0
)

// Vec2 is a continuous render-space position.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Follower eases a rendered position toward a followed entity's tile.
//
// Each update applies per axis:
//
//	rendered = rendered*(1 - k*dt) + target*k*dt
//
// where target = tileSize * coord. k*dt is clamped to [0, 1] so a long frame
// lands on the target instead of overshooting it.
type Follower struct {
	k        float64
	tileSize float64
	pos      Vec2
}

// NewFollower creates a follower. Non-positive arguments select the defaults.
func NewFollower(k, tileSize float64) *Follower {
	if k <= 0 {
		k = DefaultK
	}
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	return &Follower{k: k, tileSize: tileSize}
}

// Target returns the render-space position of a grid coordinate.
func (f *Follower) Target(c core.Coord) Vec2 {
	return Vec2{X: float64(c.X) * f.tileSize, Y: float64(c.Y) * f.tileSize}
}

// Snap places the rendered position exactly on c.
func (f *Follower) Snap(c core.Coord) {
	f.pos = f.Target(c)
}

// Update advances the rendered position toward c after dt seconds.
func (f *Follower) Update(c core.Coord, dt float64) Vec2 {
	alpha := min(max(f.k*dt, 0), 1)
	t := f.Target(c)
	f.pos.X = f.pos.X*(1-alpha) + t.X*alpha
	f.pos.Y = f.pos.Y*(1-alpha) + t.Y*alpha
	return f.pos
}

// Position returns the current rendered position.
func (f *Follower) Position() Vec2 {
	return f.pos
}

// Distance returns how far the rendered position is from c.
func (f *Follower) Distance(c core.Coord) float64 {
	return f.pos.Sub(f.Target(c)).Len()
}

// K returns the decay constant.
func (f *Follower) K() float64 {
	return f.k
}
