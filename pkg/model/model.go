// Package model builds and canonicalizes the structural model graph a
// finite-element solver consumes: nodes, lines, supports, sections,
// materials, end releases, load cases and loads. Entities are created
// exclusively through Model operations, which deduplicate geometry,
// assign stable sequential identifiers and keep the load attachment
// ledgers consistent.
package model

import (
	"math"
	"sync"

	"github.com/Shubham-550/strfem/pkg/audit"
	"github.com/Shubham-550/strfem/pkg/logging"
	"github.com/Shubham-550/strfem/pkg/metrics"
)

// DefaultPrecision is the number of decimals coordinates are rounded
// to before canonicalization.
const DefaultPrecision = 6

// Config holds construction options for a Model
type Config struct {
	// Precision controls coordinate rounding; the degeneracy epsilon
	// is derived as 10^-Precision.
	Precision int

	Logger  logging.Logger
	Auditor audit.Sink
	Metrics *metrics.Registry
}

// Model is the facade over the geometry registry, topology registry,
// property catalogs and load ledger. It owns one monotonically
// increasing ID counter per entity kind. All mutation goes through a
// single coarse-grained lock per instance: ID allocation and lookup
// table insertion form one critical section, so a failed operation
// never consumes an identifier or leaves a partial entry visible.
type Model struct {
	mu sync.RWMutex

	precision int
	epsilon   float64

	nodes     []*Node
	lines     []*Line
	supports  []*Support
	sections  []*Section
	materials []*Material
	releases  []*Release

	loadCases     []*LoadCase
	nodalLoads    []*NodalLoad
	lineLoadsConc []*LineLoadConcentrated
	lineLoadsDist []*LineLoadDistributed

	nodeLookup map[coordKey]*Node
	lineLookup map[linePair]*Line

	nextNodeID         uint64
	nextLineID         uint64
	nextSupportID      uint64
	nextSectionID      uint64
	nextMaterialID     uint64
	nextReleaseID      uint64
	nextLoadCaseID     uint64
	nextNodalLoadID    uint64
	nextLineLoadConcID uint64
	nextLineLoadDistID uint64

	logger  logging.Logger
	auditor audit.Sink
	metrics *metrics.Registry
}

// New creates a model with default configuration
func New() *Model {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a model with the given configuration.
// Zero-valued fields fall back to defaults: precision 6, the package
// default logger, a 1024-event audit recorder and a fresh metrics
// registry.
func NewWithConfig(cfg Config) *Model {
	if cfg.Precision <= 0 {
		cfg.Precision = DefaultPrecision
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.DefaultLogger()
	}
	if cfg.Auditor == nil {
		cfg.Auditor = audit.NewRecorder(1024)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewRegistry()
	}

	return &Model{
		precision:  cfg.Precision,
		epsilon:    math.Pow(10, -float64(cfg.Precision)),
		nodeLookup: make(map[coordKey]*Node),
		lineLookup: make(map[linePair]*Line),
		logger:     cfg.Logger,
		auditor:    cfg.Auditor,
		metrics:    cfg.Metrics,
	}
}

// Precision returns the configured coordinate rounding precision
func (m *Model) Precision() int {
	return m.precision
}

// Epsilon returns the derived degeneracy threshold, 10^-precision
func (m *Model) Epsilon() float64 {
	return m.epsilon
}

// Statistics is a consistent snapshot of entity populations
type Statistics struct {
	NodeCount         int
	LineCount         int
	SupportCount      int
	SectionCount      int
	MaterialCount     int
	ReleaseCount      int
	LoadCaseCount     int
	NodalLoadCount    int
	LineLoadConcCount int
	LineLoadDistCount int
}

// Statistics returns current entity counts
func (m *Model) Statistics() Statistics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Statistics{
		NodeCount:         len(m.nodes),
		LineCount:         len(m.lines),
		SupportCount:      len(m.supports),
		SectionCount:      len(m.sections),
		MaterialCount:     len(m.materials),
		ReleaseCount:      len(m.releases),
		LoadCaseCount:     len(m.loadCases),
		NodalLoadCount:    len(m.nodalLoads),
		LineLoadConcCount: len(m.lineLoadsConc),
		LineLoadDistCount: len(m.lineLoadsDist),
	}
}

// Nodes returns the nodes in creation order
func (m *Model) Nodes() []*Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Node, len(m.nodes))
	copy(out, m.nodes)
	return out
}

// Lines returns the lines in creation order
func (m *Model) Lines() []*Line {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Line, len(m.lines))
	copy(out, m.lines)
	return out
}

// Supports returns the supports in creation order
func (m *Model) Supports() []*Support {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Support, len(m.supports))
	copy(out, m.supports)
	return out
}

// Sections returns the sections in creation order
func (m *Model) Sections() []*Section {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Section, len(m.sections))
	copy(out, m.sections)
	return out
}

// Materials returns the materials in creation order
func (m *Model) Materials() []*Material {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Material, len(m.materials))
	copy(out, m.materials)
	return out
}

// Releases returns the releases in creation order
func (m *Model) Releases() []*Release {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Release, len(m.releases))
	copy(out, m.releases)
	return out
}

// LoadCases returns the load cases in creation order
func (m *Model) LoadCases() []*LoadCase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*LoadCase, len(m.loadCases))
	copy(out, m.loadCases)
	return out
}

// NodalLoads returns the nodal loads in creation order
func (m *Model) NodalLoads() []*NodalLoad {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*NodalLoad, len(m.nodalLoads))
	copy(out, m.nodalLoads)
	return out
}

// LineLoadsConcentrated returns the concentrated line loads in creation order
func (m *Model) LineLoadsConcentrated() []*LineLoadConcentrated {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*LineLoadConcentrated, len(m.lineLoadsConc))
	copy(out, m.lineLoadsConc)
	return out
}

// LineLoadsDistributed returns the distributed line loads in creation order
func (m *Model) LineLoadsDistributed() []*LineLoadDistributed {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*LineLoadDistributed, len(m.lineLoadsDist))
	copy(out, m.lineLoadsDist)
	return out
}
