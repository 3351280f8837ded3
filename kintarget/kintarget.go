// Package kintarget defines the output of the layout engine: one canonical
// position per placed person, advisory ghost positions for split
// relationships, and the connections rendering draws between people.
package kintarget

import (
	"math"

	"github.com/kindredlab/kindred/lib/geo"
)

type ConnectionKind string

const (
	ConnectionPartner ConnectionKind = "partner"
	ConnectionChild   ConnectionKind = "child"
)

// Connection describes one line for rendering. SrcID is always the endpoint
// drawn at its canonical position. When GhostEnd is set, the line terminates
// there instead of at DstID's canonical position: the relationship was split
// and DstID is duplicated as a ghost next to SrcID. For ConnectionChild,
// SrcID is the parent unless the parent itself is the ghosted end.
type Connection struct {
	Kind     ConnectionKind `json:"kind"`
	SrcID    string         `json:"srcId"`
	DstID    string         `json:"dstId"`
	GhostEnd *geo.Point     `json:"ghostEnd,omitempty"`
}

// Ghost is a render-only duplicate position for PersonID, shown adjacent to
// LinkedID. It never replaces the canonical position.
type Ghost struct {
	PersonID string     `json:"personId"`
	LinkedID string     `json:"linkedPersonId"`
	Kind     string     `json:"kind"`
	Context  string     `json:"context,omitempty"`
	Position *geo.Point `json:"position"`
}

type Layout struct {
	// Positions maps person id to the top-left corner of their node box.
	// People the placer could not commit are absent; consumers must skip
	// anyone without a position.
	Positions map[string]*geo.Point `json:"positions"`

	Ghosts      []Ghost      `json:"ghosts,omitempty"`
	Connections []Connection `json:"connections,omitempty"`

	// NodeWidth and NodeHeight record the node footprint the positions were
	// computed with, so consumers can size boxes and bounds consistently.
	NodeWidth  float64 `json:"nodeWidth"`
	NodeHeight float64 `json:"nodeHeight"`
}

func NewLayout() *Layout {
	return &Layout{
		Positions: make(map[string]*geo.Point),
	}
}

// BoundingBox returns the box enclosing every canonical and ghost node, or
// nil for an empty layout.
func (l *Layout) BoundingBox() *geo.Box {
	x1 := math.Inf(1)
	y1 := math.Inf(1)
	x2 := math.Inf(-1)
	y2 := math.Inf(-1)

	grow := func(p *geo.Point) {
		x1 = math.Min(x1, p.X)
		y1 = math.Min(y1, p.Y)
		x2 = math.Max(x2, p.X+l.NodeWidth)
		y2 = math.Max(y2, p.Y+l.NodeHeight)
	}

	for _, p := range l.Positions {
		grow(p)
	}
	for _, g := range l.Ghosts {
		grow(g.Position)
	}

	if math.IsInf(x1, 1) {
		return nil
	}
	return geo.NewBox(geo.NewPoint(x1, y1), x2-x1, y2-y1)
}
