package model

import (
	"fmt"
	"time"

	"github.com/Shubham-550/strfem/pkg/audit"
	"github.com/Shubham-550/strfem/pkg/logging"
)

// LoadCase is a named grouping of loads analyzed together. It carries
// no computed state and name uniqueness is deliberately not enforced.
type LoadCase struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func (lc *LoadCase) String() string {
	return fmt.Sprintf("Load Case #%d (%s)", lc.ID, lc.Name)
}

// LoadComponents are the six load components: three forces (N) and
// three moments (Nm) along the global axes.
type LoadComponents struct {
	Fx float64 `json:"fx"`
	Fy float64 `json:"fy"`
	Fz float64 `json:"fz"`
	Mx float64 `json:"mx"`
	My float64 `json:"my"`
	Mz float64 `json:"mz"`
}

// AddLoadCase creates a load case label
func (m *Model) AddLoadCase(name string) *LoadCase {
	start := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextLoadCaseID++
	lc := &LoadCase{ID: m.nextLoadCaseID, Name: name}
	m.loadCases = append(m.loadCases, lc)

	m.logger.Info("created new load case",
		logging.LoadCaseID(lc.ID),
		logging.String("name", name))
	m.auditor.Record(&audit.Event{
		Action:   audit.ActionCreate,
		Entity:   audit.EntityLoadCase,
		EntityID: lc.ID,
		Detail:   map[string]any{"name": name},
	})
	m.metrics.SetEntityCount("load_case", len(m.loadCases))
	m.metrics.RecordOperation("add_load_case", "created", time.Since(start))

	return lc
}
