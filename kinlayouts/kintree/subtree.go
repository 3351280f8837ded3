package kintree

import (
	"math"
	"sort"

	"oss.terrastruct.com/util-go/go2"

	"github.com/kindredlab/kindred/kingraph"
)

// LayoutNode is one couple block: a primary person, the partners placed next
// to them in the same row, and the nested blocks of their children. Widths
// follow the tidy-tree discipline: a block is as wide as the larger of its
// own couple row and its children's combined footprint.
type LayoutNode struct {
	Person   *kingraph.Person
	Partners []*kingraph.Person
	Children []*LayoutNode

	CoupleWidth float64
	TotalWidth  float64
}

// buildSubtree claims the given person and everyone placed with them: all
// partners (explicit and implied co-parents), then recursively the couple's
// children. The shared visited set guarantees every person lands in exactly
// one block, which is also what breaks cycles and re-married shared
// ancestors out of infinite recursion.
func (st *state) buildSubtree(id string) *LayoutNode {
	p := st.graph.Get(id)
	st.visited[id] = struct{}{}

	n := &LayoutNode{Person: p}

	// Partners are claimed before any recursion so a partner can't
	// simultaneously become another block's primary.
	for _, pid := range st.graph.ImpliedPartners(p) {
		if st.isVisited(pid) {
			continue
		}
		partner := st.graph.Get(pid)
		if partner == nil {
			continue
		}
		st.visited[pid] = struct{}{}
		n.Partners = append(n.Partners, partner)
	}

	k := float64(len(n.Partners))
	n.CoupleWidth = (1+k)*st.ruler.NodeWidth + k*st.ruler.HorizontalGap

	childIDs := st.coupleChildren(n)
	st.sortCentripetally(childIDs)

	childrenWidth := 0.
	for _, cid := range childIDs {
		if st.isVisited(cid) {
			continue
		}
		child := st.buildSubtree(cid)
		n.Children = append(n.Children, child)
		if childrenWidth > 0 {
			childrenWidth += st.ruler.HorizontalGap
		}
		childrenWidth += child.TotalWidth
	}

	n.TotalWidth = math.Max(n.CoupleWidth, childrenWidth)
	return n
}

// coupleChildren unions the children of the primary and of every partner,
// preserving first-seen order.
func (st *state) coupleChildren(n *LayoutNode) []string {
	var ids []string
	add := func(cid string) {
		if st.graph.Get(cid) == nil {
			return
		}
		if !go2.Contains(ids, cid) {
			ids = append(ids, cid)
		}
	}
	for _, cid := range n.Person.Relationships.Children {
		add(cid)
	}
	for _, partner := range n.Partners {
		for _, cid := range partner.Relationships.Children {
			add(cid)
		}
	}
	return ids
}

// sortCentripetally orders a couple's children so that partnered daughters
// drift to one side and partnered sons to the other, unpartnered children
// staying central. The partner's own subtree tends to end up on that side,
// which shortens and straightens the partner connector rendering draws
// later. Ties break by ascending birth date (empty dates first), then keep
// input order.
func (st *state) sortCentripetally(childIDs []string) {
	sort.SliceStable(childIDs, func(i, j int) bool {
		a := st.graph.Get(childIDs[i])
		b := st.graph.Get(childIDs[j])
		wa, wb := centripetalWeight(a), centripetalWeight(b)
		if wa != wb {
			return wa < wb
		}
		return a.BirthDate < b.BirthDate
	})
}

func centripetalWeight(p *kingraph.Person) int {
	if !p.HasPartner() {
		return 0
	}
	switch p.Gender {
	case kingraph.GenderFemale:
		return -1
	case kingraph.GenderMale:
		return 1
	}
	return 0
}
