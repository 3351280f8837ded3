package kintree

import (
	"github.com/kindredlab/kindred/kingraph"
	"github.com/kindredlab/kindred/lib/geo"
)

// RootLayout wraps one top-level LayoutNode reduced to a local coordinate
// space: x relative to the component's left edge, y from the global
// generation map. Anchors are the people outside the component that anyone
// inside links to; the placer uses them to pull related components together.
type RootLayout struct {
	Root *LayoutNode

	RelativePositions map[string]*geo.Point
	// Order lists person ids in the order their relative positions were
	// assigned, so absolute placement and collision checks iterate stably.
	Order []string

	Width   float64
	Anchors []string

	Placed bool
	FinalX float64

	// Transient scheduler state, recomputed every placement round.
	score    int
	desiredX *float64
}

func (st *state) newRootLayout(root *LayoutNode) *RootLayout {
	rl := &RootLayout{
		Root:              root,
		RelativePositions: make(map[string]*geo.Point),
		Width:             root.TotalWidth,
	}
	st.assignRelative(rl, root, 0)
	rl.Anchors = st.collectAnchors(rl)
	return rl
}

// assignRelative positions a block within [left, left+TotalWidth): the
// couple row centered in the block's span, each child block centered as a
// group underneath. Vertical placement comes from the generation map, not
// tree depth, so a person pulled into a block by marriage still lands on
// their own generation row.
func (st *state) assignRelative(rl *RootLayout, n *LayoutNode, left float64) {
	x := left + (n.TotalWidth-n.CoupleWidth)/2
	members := make([]*kingraph.Person, 0, 1+len(n.Partners))
	members = append(members, n.Person)
	members = append(members, n.Partners...)
	for _, m := range members {
		y := float64(st.generations[m.ID]) * st.ruler.GenerationGap
		rl.RelativePositions[m.ID] = geo.NewPoint(x, y)
		rl.Order = append(rl.Order, m.ID)
		x += st.ruler.NodeWidth + st.ruler.HorizontalGap
	}

	childrenWidth := 0.
	for i, c := range n.Children {
		if i > 0 {
			childrenWidth += st.ruler.HorizontalGap
		}
		childrenWidth += c.TotalWidth
	}
	childLeft := left + (n.TotalWidth-childrenWidth)/2
	for _, c := range n.Children {
		st.assignRelative(rl, c, childLeft)
		childLeft += c.TotalWidth + st.ruler.HorizontalGap
	}
}

// collectAnchors gathers, in component order, every id referenced by a
// parent/child/partner edge from inside the component that resolves to a
// person outside it.
func (st *state) collectAnchors(rl *RootLayout) []string {
	var anchors []string
	seen := make(map[string]struct{})
	add := func(id string) {
		if _, inside := rl.RelativePositions[id]; inside {
			return
		}
		if st.graph.Get(id) == nil {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		anchors = append(anchors, id)
	}
	for _, id := range rl.Order {
		p := st.graph.Get(id)
		if p == nil {
			continue
		}
		for _, rid := range p.Relationships.Parents {
			add(rid)
		}
		for _, rid := range p.Relationships.Children {
			add(rid)
		}
		for _, rid := range p.Relationships.Partners {
			add(rid)
		}
	}
	return anchors
}
