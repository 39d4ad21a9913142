package model

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestModelInvariants uses property-based testing to verify the
// canonicalization and classification invariants. These properties
// should ALWAYS hold for any valid input.
func TestModelInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	// Property 1: adding the same coordinate twice returns the same node
	properties.Property("node creation is idempotent", prop.ForAll(
		func(x, y, z float64) bool {
			m := newTestModel()

			first, err := m.AddNode([]float64{x, y, z})
			if err != nil {
				return false
			}
			second, err := m.AddNode([]float64{x, y, z})
			if err != nil {
				return false
			}
			return first == second && m.NodeCount() == 1
		},
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(-1e6, 1e6),
	))

	// Property 2: jitter below half the rounding step maps to the same node
	properties.Property("sub-precision jitter deduplicates", prop.ForAll(
		func(xi, yi, zi int64, jitter float64) bool {
			m := newTestModel()

			// Coordinates on the exact rounding grid
			x := float64(xi) * 1e-6
			y := float64(yi) * 1e-6
			z := float64(zi) * 1e-6

			first, err := m.AddNode([]float64{x, y, z})
			if err != nil {
				return false
			}
			second, err := m.AddNode([]float64{x + jitter, y - jitter, z + jitter})
			if err != nil {
				return false
			}
			return first == second && m.NodeCount() == 1
		},
		gen.Int64Range(-1e9, 1e9),
		gen.Int64Range(-1e9, 1e9),
		gen.Int64Range(-1e9, 1e9),
		gen.Float64Range(0, 4e-7),
	))

	// Property 3: line identity is independent of endpoint order
	properties.Property("line creation is symmetric", prop.ForAll(
		func(x1, y1, z1, x2, y2, z2 float64) bool {
			m := newTestModel()

			n1, err := m.AddNode([]float64{x1, y1, z1})
			if err != nil {
				return false
			}
			n2, err := m.AddNode([]float64{x2, y2, z2})
			if err != nil {
				return false
			}
			if n1 == n2 {
				return true // Coordinates collapsed to one node, no line to test
			}

			forward, err := m.AddLine(n1, n2)
			if err != nil {
				return false
			}
			backward, err := m.AddLine(n2, n1)
			if err != nil {
				return false
			}
			return forward == backward && m.LineCount() == 1
		},
		gen.Float64Range(-1e3, 1e3),
		gen.Float64Range(-1e3, 1e3),
		gen.Float64Range(-1e3, 1e3),
		gen.Float64Range(-1e3, 1e3),
		gen.Float64Range(-1e3, 1e3),
		gen.Float64Range(-1e3, 1e3),
	))

	// Property 4: a rejected self-loop leaves the model untouched
	properties.Property("self-loop rejection has no side effects", prop.ForAll(
		func(x, y, z float64) bool {
			m := newTestModel()

			n, err := m.AddNode([]float64{x, y, z})
			if err != nil {
				return false
			}
			before := m.Statistics()

			if _, err := m.AddLine(n, n); err == nil {
				return false
			}
			return m.Statistics() == before && m.LineCount() == 0
		},
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(-1e6, 1e6),
	))

	// Property 5: every line frame is a right-handed orthonormal triad
	properties.Property("line frames are orthonormal", prop.ForAll(
		func(x1, y1, z1, x2, y2, z2 float64) bool {
			m := newTestModel()

			n1, err := m.AddNode([]float64{x1, y1, z1})
			if err != nil {
				return false
			}
			n2, err := m.AddNode([]float64{x2, y2, z2})
			if err != nil {
				return false
			}
			if n1 == n2 {
				return true
			}

			line, err := m.AddLine(n1, n2)
			if err != nil {
				return false
			}

			f := line.Frame
			const tol = 1e-9
			if math.Abs(f.Vx.Norm()-1) > tol ||
				math.Abs(f.Vy.Norm()-1) > tol ||
				math.Abs(f.Vz.Norm()-1) > tol {
				return false
			}
			if math.Abs(f.Vx.Dot(f.Vy)) > tol ||
				math.Abs(f.Vy.Dot(f.Vz)) > tol ||
				math.Abs(f.Vz.Dot(f.Vx)) > tol {
				return false
			}
			// Right-handed: vx x vy aligns with vz
			cross := f.Vx.Cross(f.Vy)
			return cross.Sub(f.Vz).Norm() < tol
		},
		gen.Float64Range(-100, 100),
		gen.Float64Range(-100, 100),
		gen.Float64Range(-100, 100),
		gen.Float64Range(-100, 100),
		gen.Float64Range(-100, 100),
		gen.Float64Range(-100, 100),
	))

	// Property 6: stiffness classification is total and consistent at the bounds
	properties.Property("stiffness classification covers every value", prop.ForAll(
		func(k float64) bool {
			state := classifyStiffness(k, true)
			switch {
			case k <= TranslationalFree:
				return state == StateFree
			case k >= TranslationalRigid:
				return state == StateRigid
			default:
				return state == StatePartial
			}
		},
		gen.Float64Range(0, 1e16),
	))

	properties.TestingRun(t)
}
