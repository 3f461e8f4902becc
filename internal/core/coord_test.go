package core

import "testing"

func TestCoordAdd(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Coord
		expected Coord
	}{
		{"zero", C(0, 0), C(0, 0), C(0, 0)},
		{"positive", C(1, 2), C(3, 4), C(4, 6)},
		{"negative", C(-5, 3), C(2, -7), C(-3, -4)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Add(tc.b); got != tc.expected {
				t.Errorf("Add() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCoordAsMapKey(t *testing.T) {
	m := map[Coord]int{C(1, -1): 7}
	if m[C(1, -1)] != 7 {
		t.Error("equal coordinates should hash to the same key")
	}
	if _, ok := m[C(-1, 1)]; ok {
		t.Error("distinct coordinates should not collide")
	}
}

func TestDirDelta(t *testing.T) {
	tests := []struct {
		dir      Dir
		expected Coord
	}{
		{DirLeft, C(-1, 0)},
		{DirRight, C(1, 0)},
		{DirDown, C(0, -1)},
		{DirUp, C(0, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			if got := tc.dir.Delta(); got != tc.expected {
				t.Errorf("Delta() = %v, expected %v", got, tc.expected)
			}
			back := C(3, 3).Step(tc.dir).Step(tc.dir.Opposite())
			if back != C(3, 3) {
				t.Errorf("Step then opposite step = %v, expected (3,3)", back)
			}
		})
	}
}

func TestCoordScaleAndLess(t *testing.T) {
	if got := C(2, -3).Scale(4); got != C(8, -12) {
		t.Errorf("Scale() = %v, expected (8,-12)", got)
	}
	if !C(5, 0).Less(C(0, 1)) {
		t.Error("row ordering should dominate column ordering")
	}
	if !C(0, 1).Less(C(1, 1)) {
		t.Error("columns should order within a row")
	}
	if C(1, 1).Less(C(1, 1)) {
		t.Error("Less should be strict")
	}
}
