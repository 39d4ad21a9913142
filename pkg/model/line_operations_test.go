package model

import (
	"errors"
	"math"
	"testing"
)

func TestAddLine(t *testing.T) {
	m := newTestModel()
	n1, _ := m.AddNode([]float64{0, 0, 0})
	n2, _ := m.AddNode([]float64{10, 0, 0})

	line, err := m.AddLine(n1, n2)
	if err != nil {
		t.Fatalf("AddLine() error = %v", err)
	}
	if line.ID != 1 {
		t.Errorf("line ID = %d, want 1", line.ID)
	}
	if line.Node1 != n1 || line.Node2 != n2 {
		t.Error("line endpoints do not keep the caller's order")
	}
}

func TestAddLineSymmetric(t *testing.T) {
	m := newTestModel()
	n1, _ := m.AddNode([]float64{0, 0, 0})
	n2, _ := m.AddNode([]float64{10, 0, 0})

	first, err := m.AddLine(n1, n2)
	if err != nil {
		t.Fatalf("AddLine() error = %v", err)
	}
	second, err := m.AddLine(n2, n1)
	if err != nil {
		t.Fatalf("AddLine() error = %v", err)
	}

	if first != second {
		t.Error("AddLine(a,b) and AddLine(b,a) returned different lines")
	}
	if m.LineCount() != 1 {
		t.Errorf("LineCount() = %d, want 1", m.LineCount())
	}
}

func TestAddLineSelfLoop(t *testing.T) {
	m := newTestModel()
	n1, _ := m.AddNode([]float64{0, 0, 0})

	_, err := m.AddLine(n1, n1)
	if !errors.Is(err, ErrDegenerateLine) {
		t.Errorf("AddLine(n,n) error = %v, want ErrDegenerateLine", err)
	}
	if m.LineCount() != 0 {
		t.Errorf("self-loop request mutated the line table: LineCount() = %d", m.LineCount())
	}
}

func TestAddLineMissingEndpoint(t *testing.T) {
	m := newTestModel()
	n1, _ := m.AddNode([]float64{0, 0, 0})

	tests := []struct {
		name   string
		n1, n2 *Node
	}{
		{"nil first", nil, n1},
		{"nil second", n1, nil},
		{"both nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.AddLine(tt.n1, tt.n2)
			if !errors.Is(err, ErrMissingEndpoint) {
				t.Errorf("AddLine() error = %v, want ErrMissingEndpoint", err)
			}
		})
	}
	if m.LineCount() != 0 {
		t.Errorf("failed AddLine mutated the line table: LineCount() = %d", m.LineCount())
	}
}

func TestAddLineFailureConsumesNoID(t *testing.T) {
	m := newTestModel()
	n1, _ := m.AddNode([]float64{0, 0, 0})
	n2, _ := m.AddNode([]float64{10, 0, 0})

	if _, err := m.AddLine(n1, n1); err == nil {
		t.Fatal("self-loop AddLine should fail")
	}

	line, err := m.AddLine(n1, n2)
	if err != nil {
		t.Fatalf("AddLine() error = %v", err)
	}
	if line.ID != 1 {
		t.Errorf("line ID after failed call = %d, want 1", line.ID)
	}
}

func TestLineBetween(t *testing.T) {
	m := newTestModel()
	n1, _ := m.AddNode([]float64{0, 0, 0})
	n2, _ := m.AddNode([]float64{10, 0, 0})
	line, _ := m.AddLine(n1, n2)

	if got := m.LineBetween(n2.ID, n1.ID); got != line {
		t.Errorf("LineBetween() = %v, want the created line in either ID order", got)
	}
	if got := m.LineBetween(n1.ID, 99); got != nil {
		t.Errorf("LineBetween() for unknown pair = %v, want nil", got)
	}
}

func vecApproxEqual(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

func TestLocalFrameGeneral(t *testing.T) {
	m := newTestModel()
	n1, _ := m.AddNode([]float64{0, 0, 5})
	n2, _ := m.AddNode([]float64{10, 0, 5})

	line, _ := m.AddLine(n1, n2)

	const tol = 1e-9
	if !vecApproxEqual(line.Frame.Vx, Vec3{X: 1}, tol) {
		t.Errorf("Vx = %+v, want (1,0,0)", line.Frame.Vx)
	}
	if !vecApproxEqual(line.Frame.Vz, Vec3{Z: 1}, tol) {
		t.Errorf("Vz = %+v, want (0,0,1)", line.Frame.Vz)
	}
	if !vecApproxEqual(line.Frame.Centroid, Vec3{X: 5, Z: 5}, tol) {
		t.Errorf("Centroid = %+v, want (5,0,5)", line.Frame.Centroid)
	}
}

func TestLocalFrameVertical(t *testing.T) {
	m := newTestModel()
	n1, _ := m.AddNode([]float64{0, 0, 0})
	n2, _ := m.AddNode([]float64{0, 0, 5})

	line, _ := m.AddLine(n1, n2)

	const tol = 1e-9
	if !vecApproxEqual(line.Frame.Vx, Vec3{Z: 1}, tol) {
		t.Errorf("Vx = %+v, want (0,0,1)", line.Frame.Vx)
	}
	assertOrthonormal(t, line.Frame)
}

func TestLocalFrameReversedVertical(t *testing.T) {
	// vx follows the caller's endpoint order, so the reversed call
	// points down even though the canonical pair is the same.
	m := newTestModel()
	n1, _ := m.AddNode([]float64{0, 0, 0})
	n2, _ := m.AddNode([]float64{0, 0, 5})

	line, _ := m.AddLine(n2, n1)

	const tol = 1e-9
	if !vecApproxEqual(line.Frame.Vx, Vec3{Z: -1}, tol) {
		t.Errorf("Vx = %+v, want (0,0,-1)", line.Frame.Vx)
	}
	assertOrthonormal(t, line.Frame)
}

func TestLocalFrameSkewed(t *testing.T) {
	m := newTestModel()
	n1, _ := m.AddNode([]float64{0, 0, 0})
	n2, _ := m.AddNode([]float64{3, 4, 5})

	line, _ := m.AddLine(n1, n2)
	assertOrthonormal(t, line.Frame)
}

// assertOrthonormal verifies the frame is a right-handed orthonormal triad
func assertOrthonormal(t *testing.T, f LocalFrame) {
	t.Helper()
	const tol = 1e-9

	for _, v := range []struct {
		name string
		vec  Vec3
	}{{"vx", f.Vx}, {"vy", f.Vy}, {"vz", f.Vz}} {
		if math.Abs(v.vec.Norm()-1) > tol {
			t.Errorf("%s norm = %v, want 1", v.name, v.vec.Norm())
		}
	}
	if d := f.Vx.Dot(f.Vy); math.Abs(d) > tol {
		t.Errorf("vx·vy = %v, want 0", d)
	}
	if d := f.Vy.Dot(f.Vz); math.Abs(d) > tol {
		t.Errorf("vy·vz = %v, want 0", d)
	}
	if d := f.Vx.Dot(f.Vz); math.Abs(d) > tol {
		t.Errorf("vx·vz = %v, want 0", d)
	}
	if cross := f.Vx.Cross(f.Vy); !vecApproxEqual(cross, f.Vz, tol) {
		t.Errorf("vx × vy = %+v, want vz = %+v (right-handed)", cross, f.Vz)
	}
}
