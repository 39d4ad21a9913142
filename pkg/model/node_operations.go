package model

import (
	"math"
	"time"

	"github.com/Shubham-550/strfem/pkg/audit"
	"github.com/Shubham-550/strfem/pkg/logging"
)

// canonicalCoord rounds each component to the configured precision.
// The rounded value is both the lookup key and the stored coordinate;
// the original input is discarded.
func (m *Model) canonicalCoord(coord []float64) coordKey {
	var key coordKey
	scale := math.Pow(10, float64(m.precision))
	for i, c := range coord {
		key[i] = math.Round(c*scale) / scale
	}
	return key
}

// AddNode returns the node at the given coordinate, creating it if no
// node exists there yet. The coordinate is rounded to the configured
// precision before lookup, so inputs differing only beyond the
// precision resolve to the same node. A repeated call returns the
// existing node unchanged and consumes no identifier.
//
// Fails with ErrInvalidGeometry unless coord holds exactly three
// finite components (NaN and ±Inf can never form a canonical key).
func (m *Model) AddNode(coord []float64) (*Node, error) {
	start := time.Now()

	if len(coord) != 3 {
		m.logger.Error("node creation failed",
			logging.Operation("AddNode"),
			logging.Count(len(coord)))
		m.metrics.RecordOperation("add_node", "error", time.Since(start))
		return nil, invalidGeometryError("AddNode", "coordinates must have exactly three values")
	}
	for _, c := range coord {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			m.logger.Error("node creation failed",
				logging.Operation("AddNode"),
				logging.Coord(coord[0], coord[1], coord[2]))
			m.metrics.RecordOperation("add_node", "error", time.Since(start))
			return nil, invalidGeometryError("AddNode", "coordinate components must be finite")
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.canonicalCoord(coord)
	if existing, ok := m.nodeLookup[key]; ok {
		m.metrics.RecordDedupHit("node")
		m.metrics.RecordOperation("add_node", "dedup", time.Since(start))
		return existing, nil
	}

	m.nextNodeID++
	node := &Node{
		ID:    m.nextNodeID,
		Coord: Vec3{X: key[0], Y: key[1], Z: key[2]},
	}

	m.nodes = append(m.nodes, node)
	m.nodeLookup[key] = node

	m.logger.Info("created new node",
		logging.NodeID(node.ID),
		logging.Coord(node.Coord.X, node.Coord.Y, node.Coord.Z))
	m.auditor.Record(&audit.Event{
		Action:   audit.ActionCreate,
		Entity:   audit.EntityNode,
		EntityID: node.ID,
		Detail:   map[string]any{"coord": [3]float64(key)},
	})
	m.metrics.SetEntityCount("node", len(m.nodes))
	m.metrics.RecordOperation("add_node", "created", time.Since(start))

	return node, nil
}

// NodeCount returns the number of nodes in the model
func (m *Model) NodeCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.nodes)
}

// NodeAt returns the node whose canonical coordinate matches the
// given coordinate, or nil if none exists.
func (m *Model) NodeAt(coord []float64) *Node {
	if len(coord) != 3 {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.nodeLookup[m.canonicalCoord(coord)]
}
