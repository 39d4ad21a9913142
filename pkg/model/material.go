package model

import (
	"fmt"
	"time"

	"github.com/Shubham-550/strfem/pkg/audit"
	"github.com/Shubham-550/strfem/pkg/logging"
	"github.com/Shubham-550/strfem/pkg/validation"
)

// Default material constants: structural steel
const (
	DefaultE  = 200e9
	DefaultG  = 75e9
	DefaultNu = 0.3
)

// Material holds a line's elastic constants: Young's modulus E,
// shear modulus G and Poisson's ratio Nu.
type Material struct {
	ID   uint64  `json:"id"`
	Name string  `json:"name"`
	E    float64 `json:"e"`
	G    float64 `json:"g"`
	Nu   float64 `json:"nu"`
}

func (mt *Material) String() string {
	return fmt.Sprintf("Material #%-3d (%-10s) E = %5.2e Pa", mt.ID, mt.Name, mt.E)
}

// AddMaterial creates a validated material. E and G must be positive
// and Poisson's ratio inside (-1, 0.5].
func (m *Model) AddMaterial(name string, e, g, nu float64) (*Material, error) {
	start := time.Now()
	if err := validation.ValidateMaterial(&validation.MaterialRequest{Name: name, E: e, G: g, Nu: nu}); err != nil {
		m.metrics.RecordOperation("add_material", "error", time.Since(start))
		return nil, &ModelError{Op: "AddMaterial", Entity: "material", Cause: ErrInvalidMaterial, Context: err.Error()}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextMaterialID++
	material := &Material{ID: m.nextMaterialID, Name: name, E: e, G: g, Nu: nu}
	m.materials = append(m.materials, material)

	m.logger.Info("created new material",
		logging.MaterialID(material.ID),
		logging.String("name", name))
	m.auditor.Record(&audit.Event{
		Action:   audit.ActionCreate,
		Entity:   audit.EntityMaterial,
		EntityID: material.ID,
		Detail:   map[string]any{"name": name, "E": e, "G": g, "nu": nu},
	})
	m.metrics.SetEntityCount("material", len(m.materials))
	m.metrics.RecordOperation("add_material", "created", time.Since(start))

	return material, nil
}

// AddMaterialSteel creates a material with the default steel constants
func (m *Model) AddMaterialSteel(name string) (*Material, error) {
	return m.AddMaterial(name, DefaultE, DefaultG, DefaultNu)
}

// ApplyMaterial assigns a material to a line, replacing any previous
// assignment.
func (m *Model) ApplyMaterial(line *Line, material *Material) {
	m.mu.Lock()
	defer m.mu.Unlock()
	line.Material = material
}

// RemoveMaterial clears a line's material assignment
func (m *Model) RemoveMaterial(line *Line) {
	m.mu.Lock()
	defer m.mu.Unlock()
	line.Material = nil
}
