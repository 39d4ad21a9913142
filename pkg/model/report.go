package model

import (
	"fmt"
	"strings"
)

const reportSeparator = "=================================================="

// Report produces the aggregate textual model report: a header with
// total counts followed by one block per entity kind, entities listed
// in creation order. Block order is fixed: Nodes, Lines, Supports,
// Sections, Materials, Releases, Load Cases, Nodal Loads,
// Concentrated Line Loads, Distributed Line Loads.
func (m *Model) Report() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var b strings.Builder

	b.WriteString("\n" + reportSeparator + "\n\n")
	b.WriteString("Model Summary:\n")
	fmt.Fprintf(&b, "Total Nodes: %d\n", len(m.nodes))
	fmt.Fprintf(&b, "Total Lines: %d\n", len(m.lines))
	fmt.Fprintf(&b, "Total Supports: %d\n", len(m.supports))
	fmt.Fprintf(&b, "Total Sections: %d\n", len(m.sections))
	fmt.Fprintf(&b, "Total Materials: %d\n", len(m.materials))
	fmt.Fprintf(&b, "Total Releases: %d\n", len(m.releases))
	fmt.Fprintf(&b, "Total Load Cases: %d\n", len(m.loadCases))
	fmt.Fprintf(&b, "Total Nodal Loads: %d\n", len(m.nodalLoads))
	fmt.Fprintf(&b, "Total Concentrated Line Loads: %d\n", len(m.lineLoadsConc))
	fmt.Fprintf(&b, "Total Distributed Line Loads: %d\n", len(m.lineLoadsDist))

	writeBlock(&b, "Nodes", m.nodes)
	writeBlock(&b, "Lines", m.lines)
	writeBlock(&b, "Supports", m.supports)
	writeBlock(&b, "Sections", m.sections)
	writeBlock(&b, "Materials", m.materials)
	writeBlock(&b, "Releases", m.releases)
	writeBlock(&b, "Load Cases", m.loadCases)
	writeBlock(&b, "Nodal Loads", m.nodalLoads)
	writeBlock(&b, "Concentrated Line Loads", m.lineLoadsConc)
	writeBlock(&b, "Distributed Line Loads", m.lineLoadsDist)

	b.WriteString("\n" + reportSeparator + "\n")

	return b.String()
}

// String makes the model printable directly
func (m *Model) String() string {
	return m.Report()
}

func writeBlock[T fmt.Stringer](b *strings.Builder, title string, items []T) {
	b.WriteString("\n" + reportSeparator + "\n\n")
	b.WriteString(title + ":\n")
	for _, item := range items {
		b.WriteString(item.String())
		b.WriteString("\n")
	}
}
