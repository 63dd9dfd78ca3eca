package core

import "testing"

func TestBoxIntersects(t *testing.T) {
	unit := Vec3{1, 1, 1}
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        NewBox(Vec3{0, 0, 0}, unit),
			b:        NewBox(Vec3{0.5, 0.5, 0.5}, unit),
			expected: true,
		},
		{
			name:     "separated laterally",
			a:        NewBox(Vec3{0, 0, 0}, unit),
			b:        NewBox(Vec3{3, 0, 0}, unit),
			expected: false,
		},
		{
			name:     "separated vertically",
			a:        NewBox(Vec3{0, 0, 0}, unit),
			b:        NewBox(Vec3{0, 2, 0}, unit),
			expected: false,
		},
		{
			name:     "touching faces (no overlap)",
			a:        NewBox(Vec3{0, 0, 0}, unit),
			b:        NewBox(Vec3{0, 0, 1}, unit),
			expected: false,
		},
		{
			name:     "contained box",
			a:        NewBox(Vec3{0, 0, 0}, Vec3{10, 10, 10}),
			b:        NewBox(Vec3{1, 1, 1}, unit),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			// Also test symmetry
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestMoveTowards(t *testing.T) {
	tests := []struct {
		current, target, step, expected float64
	}{
		{0, 3, 1, 1},
		{0, -3, 1, -1},
		{2.5, 3, 1, 3}, // snaps when within one step
		{3, 3, 1, 3},
	}
	for _, tc := range tests {
		if got := MoveTowards(tc.current, tc.target, tc.step); got != tc.expected {
			t.Errorf("MoveTowards(%v, %v, %v) = %v, expected %v", tc.current, tc.target, tc.step, got, tc.expected)
		}
	}
}

func TestPingPong(t *testing.T) {
	tests := []struct {
		t, length, expected float64
	}{
		{0, 4, 0},
		{2, 4, 2},
		{4, 4, 4},
		{6, 4, 2},
		{8, 4, 0},
		{1, 0, 0},
	}
	for _, tc := range tests {
		if got := PingPong(tc.t, tc.length); got != tc.expected {
			t.Errorf("PingPong(%v, %v) = %v, expected %v", tc.t, tc.length, got, tc.expected)
		}
	}
}

func TestClampAndLerp(t *testing.T) {
	if ClampF(-1, 0, 1) != 0 || ClampF(2, 0, 1) != 1 || ClampF(0.5, 0, 1) != 0.5 {
		t.Error("ClampF bounds")
	}
	if Clamp(15, 0, 10) != 10 || Clamp(-5, 0, 10) != 0 {
		t.Error("Clamp bounds")
	}
	if Lerp(0.3, 0.7, 2) != 0.7 {
		t.Error("Lerp should clamp t to 1")
	}
	if Lerp(1, 3, 0.5) != 2 {
		t.Error("Lerp midpoint")
	}
}

func TestVec3(t *testing.T) {
	v := Vec3{3, 4, 0}
	if v.Len() != 5 {
		t.Errorf("Len() = %v, expected 5", v.Len())
	}
	if got := v.Add(Vec3{1, 1, 1}).Sub(Vec3{1, 1, 1}); got != v {
		t.Errorf("Add/Sub roundtrip = %v", got)
	}
}
