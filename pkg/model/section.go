package model

import (
	"fmt"
	"math"
	"time"

	"github.com/Shubham-550/strfem/pkg/audit"
	"github.com/Shubham-550/strfem/pkg/logging"
	"github.com/Shubham-550/strfem/pkg/validation"
)

// Section holds the cross-sectional properties of a line: the area
// normal to the local x axis, the polar moment of inertia about x and
// the bending inertias about the local y and z axes.
type Section struct {
	ID   uint64  `json:"id"`
	Name string  `json:"name"`
	Ax   float64 `json:"ax"`
	Ix   float64 `json:"ix"`
	Iy   float64 `json:"iy"`
	Iz   float64 `json:"iz"`
}

func (s *Section) String() string {
	return fmt.Sprintf("Section #%d (%s)", s.ID, s.Name)
}

func (m *Model) appendSection(name string, ax, ix, iy, iz float64, shape string, start time.Time) *Section {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextSectionID++
	section := &Section{ID: m.nextSectionID, Name: name, Ax: ax, Ix: ix, Iy: iy, Iz: iz}
	m.sections = append(m.sections, section)

	m.logger.Info("created new section",
		logging.SectionID(section.ID),
		logging.String("name", name),
		logging.String("shape", shape))
	m.auditor.Record(&audit.Event{
		Action:   audit.ActionCreate,
		Entity:   audit.EntitySection,
		EntityID: section.ID,
		Detail:   map[string]any{"name": name, "shape": shape},
	})
	m.metrics.SetEntityCount("section", len(m.sections))
	m.metrics.RecordOperation("add_section", "created", time.Since(start))

	return section
}

// AddSection creates a section from directly supplied properties.
// No validation beyond type: callers supplying properties directly
// are trusted to know their cross section.
func (m *Model) AddSection(name string, ax, ix, iy, iz float64) *Section {
	return m.appendSection(name, ax, ix, iy, iz, "direct", time.Now())
}

// AddSectionRect creates a rectangular section from its dimensions.
// dy is the width (parallel to local y), dz the height (parallel to
// local z):
//
//	Ax = dy*dz
//	Iy = dy*dz^3/12
//	Iz = dz*dy^3/12
//	Ix = Iy + Iz
func (m *Model) AddSectionRect(name string, dy, dz float64) (*Section, error) {
	start := time.Now()
	if err := validation.ValidateRectSection(&validation.RectSectionRequest{Name: name, Dy: dy, Dz: dz}); err != nil {
		m.metrics.RecordOperation("add_section", "error", time.Since(start))
		return nil, &ModelError{Op: "AddSectionRect", Entity: "section", Cause: ErrInvalidSection, Context: err.Error()}
	}

	ax := dy * dz
	iy := dy * math.Pow(dz, 3) / 12
	iz := dz * math.Pow(dy, 3) / 12
	ix := iy + iz

	return m.appendSection(name, ax, ix, iy, iz, "rect", start), nil
}

// AddSectionCirc creates a circular section from its diameter:
//
//	Ax = pi*d^2/4
//	Iy = Iz = d^4/64
//	Ix = 2*Iy
func (m *Model) AddSectionCirc(name string, dia float64) (*Section, error) {
	start := time.Now()
	if err := validation.ValidateCircSection(&validation.CircSectionRequest{Name: name, Dia: dia}); err != nil {
		m.metrics.RecordOperation("add_section", "error", time.Since(start))
		return nil, &ModelError{Op: "AddSectionCirc", Entity: "section", Cause: ErrInvalidSection, Context: err.Error()}
	}

	ax := math.Pi * dia * dia / 4
	iy := math.Pow(dia, 4) / 64
	iz := iy
	ix := 2 * iy

	return m.appendSection(name, ax, ix, iy, iz, "circ", start), nil
}

// AddSectionTri creates a triangular section from its base dy and
// height dz:
//
//	Ax = dy*dz/2
//	Iy = dz*dy^3/36
//	Iz = dy*dz*(dy^2 - dy*dz + dz^2)/12
//	Ix = Iy + Iz
func (m *Model) AddSectionTri(name string, dy, dz float64) (*Section, error) {
	start := time.Now()
	if err := validation.ValidateTriSection(&validation.TriSectionRequest{Name: name, Dy: dy, Dz: dz}); err != nil {
		m.metrics.RecordOperation("add_section", "error", time.Since(start))
		return nil, &ModelError{Op: "AddSectionTri", Entity: "section", Cause: ErrInvalidSection, Context: err.Error()}
	}

	ax := dy * dz / 2
	iy := dz * math.Pow(dy, 3) / 36
	iz := dy * dz * (dy*dy - dy*dz + dz*dz) / 12
	ix := iy + iz

	return m.appendSection(name, ax, ix, iy, iz, "tri", start), nil
}

// ApplySection assigns a section to a line, replacing any previous
// assignment.
func (m *Model) ApplySection(line *Line, section *Section) {
	m.mu.Lock()
	defer m.mu.Unlock()
	line.Section = section
}

// RemoveSection clears a line's section assignment
func (m *Model) RemoveSection(line *Line) {
	m.mu.Lock()
	defer m.mu.Unlock()
	line.Section = nil
}
