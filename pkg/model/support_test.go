package model

import (
	"strings"
	"testing"
)

func TestAddSupport(t *testing.T) {
	m := newTestModel()

	support := m.AddSupport("custom", 1e15, 1e15, 1e15, 0, 1e6, 0)
	if support.ID != 1 {
		t.Errorf("support ID = %d, want 1", support.ID)
	}
	if got := support.StatusString(); got != "xxx,f_f" {
		t.Errorf("StatusString() = %q, want %q", got, "xxx,f_f")
	}
	// Supplied zeros are stored as the free sentinel, not literal zero
	if support.Stiffness[3] != RotationalFree {
		t.Errorf("Stiffness[3] = %v, want rotational free sentinel", support.Stiffness[3])
	}
}

func TestSupportPresets(t *testing.T) {
	tests := []struct {
		name string
		add  func(*Model) *Support
		want string
	}{
		{"fixed", func(m *Model) *Support { return m.AddSupportFixed("fix") }, "xxx,xxx"},
		{"pinned", func(m *Model) *Support { return m.AddSupportPinned("pin") }, "xxx,fff"},
		{"roller", func(m *Model) *Support { return m.AddSupportRoller("rol") }, "ffx,fff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel()
			s := tt.add(m)
			if got := s.StatusString(); got != tt.want {
				t.Errorf("StatusString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyAndRemoveSupport(t *testing.T) {
	m := newTestModel()
	node, _ := m.AddNode([]float64{0, 0, 0})
	fixed := m.AddSupportFixed("fix")
	pinned := m.AddSupportPinned("pin")

	m.ApplySupport(node, fixed)
	if node.Support != fixed {
		t.Error("ApplySupport did not assign the support")
	}

	// Last write wins
	m.ApplySupport(node, pinned)
	if node.Support != pinned {
		t.Error("second ApplySupport did not replace the assignment")
	}

	m.RemoveSupport(node)
	if node.Support != nil {
		t.Error("RemoveSupport did not clear the assignment")
	}
	// The support entity itself stays in the model
	if len(m.Supports()) != 2 {
		t.Errorf("supports in model = %d, want 2", len(m.Supports()))
	}
}

func TestSupportString(t *testing.T) {
	m := newTestModel()
	s := m.AddSupportFixed("base")

	got := s.String()
	if !strings.Contains(got, "Support #1") || !strings.Contains(got, "[xxx,xxx]") {
		t.Errorf("String() = %q, want support ID and status", got)
	}
}
