package camera

import (
	"math"
	"testing"

	"github.com/vovakirdan/tilequest/internal/core"
)

func TestFollowerConvergesMonotonically(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
	}{
		{"60fps", 1.0 / 60},
		{"30fps", 1.0 / 30},
		{"slow", 0.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFollower(DefaultK, 16)
			target := core.C(3, -2)

			prev := f.Distance(target)
			for i := 0; i < 200; i++ {
				f.Update(target, tt.dt)
				d := f.Distance(target)
				if d >= prev && prev > 1e-9 {
					t.Fatalf("tick %d: distance %v did not decrease from %v", i, d, prev)
				}
				prev = d
			}
			if prev > 1e-3 {
				t.Errorf("distance after 200 ticks = %v, expected near zero", prev)
			}
		})
	}
}

func TestFollowerSmoothingStep(t *testing.T) {
	f := NewFollower(5, 10)
	got := f.Update(core.C(1, 0), 0.1)

	// alpha = 0.5, target = (10, 0)
	if math.Abs(got.X-5) > 1e-9 || got.Y != 0 {
		t.Errorf("Update = %+v, expected (5, 0)", got)
	}
}

func TestFollowerLongFrameSnaps(t *testing.T) {
	f := NewFollower(5, 1)
	got := f.Update(core.C(4, 7), 2)
	if got != (Vec2{X: 4, Y: 7}) {
		t.Errorf("Update with k*dt > 1 = %+v, expected target", got)
	}

	f.Update(core.C(0, 0), -1)
	if f.Position() != (Vec2{X: 4, Y: 7}) {
		t.Errorf("negative dt moved the camera to %+v", f.Position())
	}
}

func TestFollowerDefaults(t *testing.T) {
	f := NewFollower(0, 0)
	if f.K() != DefaultK {
		t.Errorf("K = %v, expected %v", f.K(), DefaultK)
	}
	f.Snap(core.C(2, 3))
	if f.Position() != (Vec2{X: 2, Y: 3}) {
		t.Errorf("Snap = %+v", f.Position())
	}
}
