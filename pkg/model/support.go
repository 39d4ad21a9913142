package model

import (
	"fmt"
	"time"

	"github.com/Shubham-550/strfem/pkg/audit"
	"github.com/Shubham-550/strfem/pkg/logging"
)

// Support is a boundary condition constraining a node's six degrees
// of freedom. Stiffness magnitudes are normalized (zero becomes the
// free sentinel) and classified at construction; the value is
// immutable afterwards.
type Support struct {
	ID        uint64             `json:"id"`
	Name      string             `json:"name"`
	Stiffness [dofCount]float64  `json:"stiffness"`
	Status    [dofCount]DOFState `json:"status"`
}

func newSupport(id uint64, name string, kux, kuy, kuz, krx, kry, krz float64) *Support {
	k := normalizeStiffness([dofCount]float64{kux, kuy, kuz, krx, kry, krz})
	return &Support{
		ID:        id,
		Name:      name,
		Stiffness: k,
		Status:    classifyAll(k),
	}
}

// StatusString renders the per-DOF states as "uuu,rrr"
func (s *Support) StatusString() string {
	return statusString(s.Status)
}

func (s *Support) String() string {
	return fmt.Sprintf("Support #%d %-10s [%s]", s.ID, s.Name, s.StatusString())
}

// AddSupport creates a support from six raw stiffness magnitudes,
// translational (kux, kuy, kuz) then rotational (krx, kry, krz).
func (m *Model) AddSupport(name string, kux, kuy, kuz, krx, kry, krz float64) *Support {
	start := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextSupportID++
	support := newSupport(m.nextSupportID, name, kux, kuy, kuz, krx, kry, krz)
	m.supports = append(m.supports, support)

	m.logger.Info("created new support",
		logging.SupportID(support.ID),
		logging.String("name", name),
		logging.String("status", support.StatusString()))
	m.auditor.Record(&audit.Event{
		Action:   audit.ActionCreate,
		Entity:   audit.EntitySupport,
		EntityID: support.ID,
		Detail:   map[string]any{"name": name, "status": support.StatusString()},
	})
	m.metrics.SetEntityCount("support", len(m.supports))
	m.metrics.RecordOperation("add_support", "created", time.Since(start))

	return support
}

// AddSupportFixed creates a support rigid in all six DOFs
func (m *Model) AddSupportFixed(name string) *Support {
	return m.AddSupport(name,
		TranslationalRigid, TranslationalRigid, TranslationalRigid,
		RotationalRigid, RotationalRigid, RotationalRigid)
}

// AddSupportPinned creates a support rigid in translation, free in rotation
func (m *Model) AddSupportPinned(name string) *Support {
	return m.AddSupport(name,
		TranslationalRigid, TranslationalRigid, TranslationalRigid,
		RotationalFree, RotationalFree, RotationalFree)
}

// AddSupportRoller creates a support rigid only against vertical translation
func (m *Model) AddSupportRoller(name string) *Support {
	return m.AddSupport(name,
		TranslationalFree, TranslationalFree, TranslationalRigid,
		RotationalFree, RotationalFree, RotationalFree)
}

// ApplySupport assigns a support to a node, replacing any previous
// assignment.
func (m *Model) ApplySupport(node *Node, support *Support) {
	m.mu.Lock()
	defer m.mu.Unlock()
	node.Support = support
}

// RemoveSupport clears a node's support assignment. The support
// entity itself stays in the model.
func (m *Model) RemoveSupport(node *Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	node.Support = nil
}
