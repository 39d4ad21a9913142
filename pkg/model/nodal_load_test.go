package model

import (
	"errors"
	"strings"
	"testing"
)

func TestAddNodalLoad(t *testing.T) {
	m := newTestModel()
	lc := m.AddLoadCase("dead")

	load := m.AddNodalLoad(lc, LoadComponents{Fz: -1000})
	if load.ID != 1 {
		t.Errorf("load ID = %d, want 1", load.ID)
	}
	if load.LoadCaseID != lc.ID {
		t.Errorf("load case ID = %d, want %d", load.LoadCaseID, lc.ID)
	}
	if len(load.AppliedTo()) != 0 {
		t.Error("new load should start unassigned")
	}
}

func TestNodalLoadApplyIdempotent(t *testing.T) {
	m := newTestModel()
	lc := m.AddLoadCase("dead")
	load := m.AddNodalLoad(lc, LoadComponents{Fz: -1000})
	node, _ := m.AddNode([]float64{0, 0, 0})

	m.ApplyNodalLoad(load, node)
	m.ApplyNodalLoad(load, node)

	if got := load.AppliedTo(); len(got) != 1 || got[0] != node.ID {
		t.Errorf("AppliedTo() = %v, want [%d]", got, node.ID)
	}
}

func TestNodalLoadRoundTrip(t *testing.T) {
	m := newTestModel()
	lc := m.AddLoadCase("dead")
	load := m.AddNodalLoad(lc, LoadComponents{Fz: -1000})
	node, _ := m.AddNode([]float64{0, 0, 0})

	m.ApplyNodalLoad(load, node)
	if !load.IsAppliedTo(node.ID) {
		t.Fatal("load should be attached after apply")
	}

	if err := m.RemoveNodalLoad(load, node); err != nil {
		t.Fatalf("RemoveNodalLoad() error = %v", err)
	}
	if load.IsAppliedTo(node.ID) {
		t.Error("load still attached after remove")
	}

	// Second remove must fail
	if err := m.RemoveNodalLoad(load, node); !errors.Is(err, ErrNotAttached) {
		t.Errorf("second RemoveNodalLoad() error = %v, want ErrNotAttached", err)
	}
}

func TestNodalLoadRemoveNeverAttached(t *testing.T) {
	m := newTestModel()
	lc := m.AddLoadCase("dead")
	load := m.AddNodalLoad(lc, LoadComponents{})
	node, _ := m.AddNode([]float64{0, 0, 0})

	if err := m.RemoveNodalLoad(load, node); !errors.Is(err, ErrNotAttached) {
		t.Errorf("RemoveNodalLoad() error = %v, want ErrNotAttached", err)
	}
}

func TestNodalLoadMultipleNodes(t *testing.T) {
	m := newTestModel()
	lc := m.AddLoadCase("dead")
	load := m.AddNodalLoad(lc, LoadComponents{Fx: 500})

	n1, _ := m.AddNode([]float64{0, 0, 0})
	n2, _ := m.AddNode([]float64{1, 0, 0})
	n3, _ := m.AddNode([]float64{2, 0, 0})

	m.ApplyNodalLoad(load, n3)
	m.ApplyNodalLoad(load, n1)
	m.ApplyNodalLoad(load, n2)

	got := load.AppliedTo()
	if len(got) != 3 {
		t.Fatalf("AppliedTo() has %d entries, want 3", len(got))
	}
	for i, want := range []uint64{n1.ID, n2.ID, n3.ID} {
		if got[i] != want {
			t.Errorf("AppliedTo()[%d] = %d, want %d (sorted ascending)", i, got[i], want)
		}
	}
}

func TestNodalLoadString(t *testing.T) {
	m := newTestModel()
	lc := m.AddLoadCase("dead")
	load := m.AddNodalLoad(lc, LoadComponents{Fz: -1000})

	if got := load.String(); !strings.Contains(got, "Unassigned") {
		t.Errorf("String() = %q, want Unassigned marker before any apply", got)
	}

	node, _ := m.AddNode([]float64{0, 0, 0})
	m.ApplyNodalLoad(load, node)
	if got := load.String(); !strings.Contains(got, "#1") {
		t.Errorf("String() = %q, want attached node listed", got)
	}
}
