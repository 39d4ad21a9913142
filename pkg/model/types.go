package model

import (
	"fmt"
	"math"
)

// coordKey is the canonical identity of a node: its coordinate
// rounded to the configured precision. Two add_node calls whose
// inputs round to the same key yield the same node.
type coordKey [3]float64

// linePair is the canonical identity of a line: its endpoint node
// IDs sorted ascending, so (a,b) and (b,a) collide.
type linePair [2]uint64

func newLinePair(a, b uint64) linePair {
	if a > b {
		a, b = b, a
	}
	return linePair{a, b}
}

// Node is a uniquely positioned point in global 3D space.
// Equality and map membership are ID-based; the coordinate is
// immutable after construction, the support assignment is not.
type Node struct {
	ID      uint64   `json:"id"`
	Coord   Vec3     `json:"coord"`
	Support *Support `json:"-"`
}

func (n *Node) String() string {
	return fmt.Sprintf("Node #%d at [%5.2f,%5.2f,%5.2f]", n.ID, n.Coord.X, n.Coord.Y, n.Coord.Z)
}

// LocalFrame is the right-handed orthonormal basis attached to a
// line, Vx along its axis, plus the member centroid.
type LocalFrame struct {
	Vx       Vec3 `json:"vx"`
	Vy       Vec3 `json:"vy"`
	Vz       Vec3 `json:"vz"`
	Centroid Vec3 `json:"centroid"`
}

// Line is a structural member connecting two distinct nodes.
// Node1/Node2 keep the caller's original order; the canonical
// identity used for deduplication is the sorted ID pair.
type Line struct {
	ID       uint64     `json:"id"`
	Node1    *Node      `json:"-"`
	Node2    *Node      `json:"-"`
	Section  *Section   `json:"-"`
	Material *Material  `json:"-"`
	Release  *Release   `json:"-"`
	Frame    LocalFrame `json:"frame"`
}

func (l *Line) String() string {
	return fmt.Sprintf("Line #%d (%d -> %d)", l.ID, l.Node1.ID, l.Node2.ID)
}

// RefreshFrame recomputes the local frame from the current endpoint
// coordinates. It is invoked at construction and must be called again
// if endpoint coordinates are ever moved, so the frame never goes stale.
//
// Vx follows Node1 -> Node2 in the caller's original order. When Vx is
// vertical within epsilon the general formula is singular, so global Y
// seeds the cross products instead of global Z.
func (l *Line) RefreshFrame(epsilon float64) {
	vx := l.Node2.Coord.Sub(l.Node1.Coord).Normalize()

	var vy, vz Vec3
	if isVertical(vx, epsilon) {
		vy = globalY
		vz = vx.Cross(vy).Normalize()
		vy = vz.Cross(vx).Normalize()
	} else {
		vz = globalZ
		vy = vz.Cross(vx).Normalize()
		vz = vx.Cross(vy).Normalize()
	}

	l.Frame = LocalFrame{
		Vx:       vx,
		Vy:       vy,
		Vz:       vz,
		Centroid: l.Node1.Coord.Mid(l.Node2.Coord),
	}
}

// isVertical reports whether the unit vector is aligned with the
// global vertical axis within epsilon.
func isVertical(v Vec3, epsilon float64) bool {
	return math.Abs(v.X) < epsilon && math.Abs(v.Y) < epsilon
}
