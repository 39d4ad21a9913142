package model

import (
	"errors"
	"math"
	"testing"

	"github.com/Shubham-550/strfem/pkg/logging"
)

func newTestModel() *Model {
	return NewWithConfig(Config{Logger: logging.NopLogger{}})
}

func TestAddNode(t *testing.T) {
	m := newTestModel()

	node, err := m.AddNode([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	if node.ID != 1 {
		t.Errorf("first node ID = %d, want 1", node.ID)
	}
	if node.Coord != (Vec3{1, 2, 3}) {
		t.Errorf("node coord = %+v, want {1 2 3}", node.Coord)
	}

	node2, err := m.AddNode([]float64{4, 5, 6})
	if err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	if node2.ID != 2 {
		t.Errorf("second node ID = %d, want 2", node2.ID)
	}
	if m.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", m.NodeCount())
	}
}

func TestAddNodeIdempotent(t *testing.T) {
	m := newTestModel()

	first, err := m.AddNode([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}

	// Differs only beyond the configured precision (default 6)
	second, err := m.AddNode([]float64{1.0000000004, 2, 3})
	if err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("deduplicated node IDs differ: %d vs %d", first.ID, second.ID)
	}
	if first != second {
		t.Error("deduplicated AddNode returned a different node instance")
	}
	if m.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", m.NodeCount())
	}
}

func TestAddNodeRounding(t *testing.T) {
	m := newTestModel()

	node, err := m.AddNode([]float64{0.12345649, 0, 0})
	if err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	if node.Coord.X != 0.123456 {
		t.Errorf("coord X = %v, want 0.123456 (rounded, original discarded)", node.Coord.X)
	}
}

func TestAddNodeInvalidGeometry(t *testing.T) {
	tests := []struct {
		name  string
		coord []float64
	}{
		{"empty", []float64{}},
		{"two components", []float64{1, 2}},
		{"four components", []float64{1, 2, 3, 4}},
		{"NaN component", []float64{1, math.NaN(), 3}},
		{"Inf component", []float64{math.Inf(1), 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel()
			_, err := m.AddNode(tt.coord)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("AddNode(%v) error = %v, want ErrInvalidGeometry", tt.coord, err)
			}
			if m.NodeCount() != 0 {
				t.Errorf("failed AddNode mutated the registry: NodeCount() = %d", m.NodeCount())
			}
		})
	}
}

func TestAddNodeFailureConsumesNoID(t *testing.T) {
	m := newTestModel()

	if _, err := m.AddNode([]float64{1, 2}); err == nil {
		t.Fatal("AddNode() with wrong arity should fail")
	}

	node, err := m.AddNode([]float64{0, 0, 0})
	if err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	if node.ID != 1 {
		t.Errorf("node ID after failed call = %d, want 1 (failure must not consume an ID)", node.ID)
	}
}

func TestNodeAt(t *testing.T) {
	m := newTestModel()

	created, _ := m.AddNode([]float64{1, 2, 3})

	if got := m.NodeAt([]float64{1.0000000001, 2, 3}); got != created {
		t.Errorf("NodeAt() = %v, want the created node", got)
	}
	if got := m.NodeAt([]float64{9, 9, 9}); got != nil {
		t.Errorf("NodeAt() for unknown coord = %v, want nil", got)
	}
	if got := m.NodeAt([]float64{1, 2}); got != nil {
		t.Errorf("NodeAt() with wrong arity = %v, want nil", got)
	}
}

func TestAddNodeCustomPrecision(t *testing.T) {
	m := NewWithConfig(Config{Precision: 2})

	first, _ := m.AddNode([]float64{1.111, 0, 0})
	second, _ := m.AddNode([]float64{1.112, 0, 0})

	if first != second {
		t.Error("precision 2 should collapse 1.111 and 1.112 into the same node")
	}
	if first.Coord.X != 1.11 {
		t.Errorf("coord X = %v, want 1.11", first.Coord.X)
	}
	if m.Epsilon() != 0.01 {
		t.Errorf("Epsilon() = %v, want 0.01", m.Epsilon())
	}
}
