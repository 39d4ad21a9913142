package model

import (
	"time"

	"github.com/Shubham-550/strfem/pkg/audit"
	"github.com/Shubham-550/strfem/pkg/logging"
)

// AddLine returns the line connecting the two nodes, creating it if
// none exists. Lines are unordered: AddLine(a, b) and AddLine(b, a)
// resolve to the same line via the sorted-ID canonical pair, but a
// newly created line keeps the caller's endpoint order so the local
// x axis points the way the caller meant it to.
//
// Fails with ErrMissingEndpoint if either node is nil and with
// ErrDegenerateLine if both endpoints are the same node. A failed
// call leaves the line table untouched and consumes no identifier.
func (m *Model) AddLine(node1, node2 *Node) (*Line, error) {
	start := time.Now()

	if node1 == nil || node2 == nil {
		m.logger.Error("line creation failed: both endpoints must be provided",
			logging.Operation("AddLine"))
		m.metrics.RecordOperation("add_line", "error", time.Since(start))
		return nil, missingEndpointError("AddLine")
	}
	if node1.ID == node2.ID {
		m.logger.Error("line cannot connect a node to itself",
			logging.Operation("AddLine"),
			logging.NodeID(node1.ID))
		m.metrics.RecordOperation("add_line", "error", time.Since(start))
		return nil, degenerateLineError("AddLine", node1.ID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	pair := newLinePair(node1.ID, node2.ID)
	if existing, ok := m.lineLookup[pair]; ok {
		m.metrics.RecordDedupHit("line")
		m.metrics.RecordOperation("add_line", "dedup", time.Since(start))
		return existing, nil
	}

	m.nextLineID++
	line := &Line{
		ID:    m.nextLineID,
		Node1: node1,
		Node2: node2,
	}
	line.RefreshFrame(m.epsilon)

	m.lines = append(m.lines, line)
	m.lineLookup[pair] = line

	m.logger.Info("created new line",
		logging.LineID(line.ID),
		logging.Uint64("node1_id", node1.ID),
		logging.Uint64("node2_id", node2.ID))
	m.auditor.Record(&audit.Event{
		Action:   audit.ActionCreate,
		Entity:   audit.EntityLine,
		EntityID: line.ID,
		Detail:   map[string]any{"node1_id": node1.ID, "node2_id": node2.ID},
	})
	m.metrics.SetEntityCount("line", len(m.lines))
	m.metrics.RecordOperation("add_line", "created", time.Since(start))

	return line, nil
}

// LineCount returns the number of lines in the model
func (m *Model) LineCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.lines)
}

// LineBetween returns the line connecting the two node IDs in either
// order, or nil if none exists.
func (m *Model) LineBetween(nodeID1, nodeID2 uint64) *Line {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lineLookup[newLinePair(nodeID1, nodeID2)]
}
