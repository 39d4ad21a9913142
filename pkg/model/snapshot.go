package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/golang/snappy"

	"github.com/Shubham-550/strfem/pkg/logging"
)

// Snapshot serialization keeps entity references as IDs so the graph
// re-links cleanly on load. A zero ID means unassigned.

type nodeSnapshot struct {
	ID        uint64 `json:"id"`
	Coord     Vec3   `json:"coord"`
	SupportID uint64 `json:"support_id,omitempty"`
}

type lineSnapshot struct {
	ID         uint64 `json:"id"`
	Node1ID    uint64 `json:"node1_id"`
	Node2ID    uint64 `json:"node2_id"`
	SectionID  uint64 `json:"section_id,omitempty"`
	MaterialID uint64 `json:"material_id,omitempty"`
	ReleaseID  uint64 `json:"release_id,omitempty"`
}

type nodalLoadSnapshot struct {
	ID         uint64         `json:"id"`
	LoadCaseID uint64         `json:"load_case_id"`
	Components LoadComponents `json:"components"`
	AppliedTo  []uint64       `json:"applied_to"`
}

type lineLoadConcSnapshot struct {
	ID         uint64               `json:"id"`
	LoadCaseID uint64               `json:"load_case_id"`
	Components LoadComponents       `json:"components"`
	AppliedTo  map[uint64][]float64 `json:"applied_to"`
}

type lineLoadDistSnapshot struct {
	ID         uint64               `json:"id"`
	LoadCaseID uint64               `json:"load_case_id"`
	Xspan      float64              `json:"xspan"`
	Start      LoadComponents       `json:"start"`
	End        LoadComponents       `json:"end"`
	AppliedTo  map[uint64][]float64 `json:"applied_to"`
}

type modelSnapshot struct {
	Precision int `json:"precision"`

	Nodes         []nodeSnapshot         `json:"nodes"`
	Lines         []lineSnapshot         `json:"lines"`
	Supports      []*Support             `json:"supports"`
	Sections      []*Section             `json:"sections"`
	Materials     []*Material            `json:"materials"`
	Releases      []*Release             `json:"releases"`
	LoadCases     []*LoadCase            `json:"load_cases"`
	NodalLoads    []nodalLoadSnapshot    `json:"nodal_loads"`
	LineLoadsConc []lineLoadConcSnapshot `json:"line_loads_concentrated"`
	LineLoadsDist []lineLoadDistSnapshot `json:"line_loads_distributed"`

	NextNodeID         uint64 `json:"next_node_id"`
	NextLineID         uint64 `json:"next_line_id"`
	NextSupportID      uint64 `json:"next_support_id"`
	NextSectionID      uint64 `json:"next_section_id"`
	NextMaterialID     uint64 `json:"next_material_id"`
	NextReleaseID      uint64 `json:"next_release_id"`
	NextLoadCaseID     uint64 `json:"next_load_case_id"`
	NextNodalLoadID    uint64 `json:"next_nodal_load_id"`
	NextLineLoadConcID uint64 `json:"next_line_load_conc_id"`
	NextLineLoadDistID uint64 `json:"next_line_load_dist_id"`
}

// SaveSnapshot serializes the whole model to a file, snappy-compressed
// when compress is set.
func (m *Model) SaveSnapshot(path string, compress bool) error {
	m.mu.RLock()
	snap := m.buildSnapshot()
	m.mu.RUnlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if compress {
		data = snappy.Encode(nil, data)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	m.logger.Info("saved model snapshot",
		logging.String("path", path),
		logging.Count(len(data)))
	return nil
}

// LoadSnapshot reads a snapshot file written by SaveSnapshot and
// rebuilds the model, lookup tables and ID counters included. The
// config supplies the logger, auditor and metrics of the new model;
// its precision is overridden by the snapshot's.
func LoadSnapshot(path string, compress bool, cfg Config) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	if compress {
		data, err = snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress snapshot: %w", err)
		}
	}

	var snap modelSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	cfg.Precision = snap.Precision
	m := NewWithConfig(cfg)
	if err := m.restoreSnapshot(&snap); err != nil {
		return nil, err
	}

	m.logger.Info("loaded model snapshot",
		logging.String("path", path),
		logging.Count(len(m.nodes)))
	return m, nil
}

func (m *Model) buildSnapshot() *modelSnapshot {
	snap := &modelSnapshot{
		Precision:          m.precision,
		Supports:           m.supports,
		Sections:           m.sections,
		Materials:          m.materials,
		Releases:           m.releases,
		LoadCases:          m.loadCases,
		NextNodeID:         m.nextNodeID,
		NextLineID:         m.nextLineID,
		NextSupportID:      m.nextSupportID,
		NextSectionID:      m.nextSectionID,
		NextMaterialID:     m.nextMaterialID,
		NextReleaseID:      m.nextReleaseID,
		NextLoadCaseID:     m.nextLoadCaseID,
		NextNodalLoadID:    m.nextNodalLoadID,
		NextLineLoadConcID: m.nextLineLoadConcID,
		NextLineLoadDistID: m.nextLineLoadDistID,
	}

	for _, n := range m.nodes {
		ns := nodeSnapshot{ID: n.ID, Coord: n.Coord}
		if n.Support != nil {
			ns.SupportID = n.Support.ID
		}
		snap.Nodes = append(snap.Nodes, ns)
	}

	for _, l := range m.lines {
		ls := lineSnapshot{ID: l.ID, Node1ID: l.Node1.ID, Node2ID: l.Node2.ID}
		if l.Section != nil {
			ls.SectionID = l.Section.ID
		}
		if l.Material != nil {
			ls.MaterialID = l.Material.ID
		}
		if l.Release != nil {
			ls.ReleaseID = l.Release.ID
		}
		snap.Lines = append(snap.Lines, ls)
	}

	for _, nl := range m.nodalLoads {
		snap.NodalLoads = append(snap.NodalLoads, nodalLoadSnapshot{
			ID:         nl.ID,
			LoadCaseID: nl.LoadCaseID,
			Components: nl.Components,
			AppliedTo:  nl.AppliedTo(),
		})
	}

	for _, ll := range m.lineLoadsConc {
		applied := make(map[uint64][]float64, len(ll.appliedTo))
		for id, locs := range ll.appliedTo {
			applied[id] = append([]float64(nil), locs...)
		}
		snap.LineLoadsConc = append(snap.LineLoadsConc, lineLoadConcSnapshot{
			ID:         ll.ID,
			LoadCaseID: ll.LoadCaseID,
			Components: ll.Components,
			AppliedTo:  applied,
		})
	}

	for _, ld := range m.lineLoadsDist {
		applied := make(map[uint64][]float64, len(ld.appliedTo))
		for id, offs := range ld.appliedTo {
			applied[id] = append([]float64(nil), offs...)
		}
		snap.LineLoadsDist = append(snap.LineLoadsDist, lineLoadDistSnapshot{
			ID:         ld.ID,
			LoadCaseID: ld.LoadCaseID,
			Xspan:      ld.Xspan,
			Start:      ld.Start,
			End:        ld.End,
			AppliedTo:  applied,
		})
	}

	return snap
}

func (m *Model) restoreSnapshot(snap *modelSnapshot) error {
	supportByID := make(map[uint64]*Support, len(snap.Supports))
	for _, s := range snap.Supports {
		supportByID[s.ID] = s
	}
	sectionByID := make(map[uint64]*Section, len(snap.Sections))
	for _, s := range snap.Sections {
		sectionByID[s.ID] = s
	}
	materialByID := make(map[uint64]*Material, len(snap.Materials))
	for _, mt := range snap.Materials {
		materialByID[mt.ID] = mt
	}
	releaseByID := make(map[uint64]*Release, len(snap.Releases))
	for _, r := range snap.Releases {
		releaseByID[r.ID] = r
	}

	nodeByID := make(map[uint64]*Node, len(snap.Nodes))
	for _, ns := range snap.Nodes {
		node := &Node{ID: ns.ID, Coord: ns.Coord}
		if ns.SupportID != 0 {
			node.Support = supportByID[ns.SupportID]
		}
		m.nodes = append(m.nodes, node)
		m.nodeLookup[coordKey{ns.Coord.X, ns.Coord.Y, ns.Coord.Z}] = node
		nodeByID[node.ID] = node
	}

	for _, ls := range snap.Lines {
		n1, ok1 := nodeByID[ls.Node1ID]
		n2, ok2 := nodeByID[ls.Node2ID]
		if !ok1 || !ok2 {
			return fmt.Errorf("snapshot line %d references missing node", ls.ID)
		}
		line := &Line{ID: ls.ID, Node1: n1, Node2: n2}
		if ls.SectionID != 0 {
			line.Section = sectionByID[ls.SectionID]
		}
		if ls.MaterialID != 0 {
			line.Material = materialByID[ls.MaterialID]
		}
		if ls.ReleaseID != 0 {
			line.Release = releaseByID[ls.ReleaseID]
		}
		line.RefreshFrame(m.epsilon)
		m.lines = append(m.lines, line)
		m.lineLookup[newLinePair(n1.ID, n2.ID)] = line
	}

	m.supports = snap.Supports
	m.sections = snap.Sections
	m.materials = snap.Materials
	m.releases = snap.Releases
	m.loadCases = snap.LoadCases

	for _, nls := range snap.NodalLoads {
		load := &NodalLoad{
			ID:         nls.ID,
			LoadCaseID: nls.LoadCaseID,
			Components: nls.Components,
			appliedTo:  make(map[uint64]struct{}, len(nls.AppliedTo)),
		}
		for _, id := range nls.AppliedTo {
			load.appliedTo[id] = struct{}{}
		}
		m.nodalLoads = append(m.nodalLoads, load)
	}

	for _, lls := range snap.LineLoadsConc {
		load := &LineLoadConcentrated{
			ID:         lls.ID,
			LoadCaseID: lls.LoadCaseID,
			Components: lls.Components,
			appliedTo:  make(map[uint64][]float64, len(lls.AppliedTo)),
		}
		for id, locs := range lls.AppliedTo {
			load.appliedTo[id] = append([]float64(nil), locs...)
		}
		m.lineLoadsConc = append(m.lineLoadsConc, load)
	}

	for _, lds := range snap.LineLoadsDist {
		load := &LineLoadDistributed{
			ID:         lds.ID,
			LoadCaseID: lds.LoadCaseID,
			Xspan:      lds.Xspan,
			Start:      lds.Start,
			End:        lds.End,
			appliedTo:  make(map[uint64][]float64, len(lds.AppliedTo)),
		}
		for id, offs := range lds.AppliedTo {
			load.appliedTo[id] = append([]float64(nil), offs...)
		}
		m.lineLoadsDist = append(m.lineLoadsDist, load)
	}

	m.nextNodeID = snap.NextNodeID
	m.nextLineID = snap.NextLineID
	m.nextSupportID = snap.NextSupportID
	m.nextSectionID = snap.NextSectionID
	m.nextMaterialID = snap.NextMaterialID
	m.nextReleaseID = snap.NextReleaseID
	m.nextLoadCaseID = snap.NextLoadCaseID
	m.nextNodalLoadID = snap.NextNodalLoadID
	m.nextLineLoadConcID = snap.NextLineLoadConcID
	m.nextLineLoadDistID = snap.NextLineLoadDistID

	return nil
}
