package kintree

import (
	"github.com/kindredlab/kindred/kingraph"
	"github.com/kindredlab/kindred/kintarget"
	"github.com/kindredlab/kindred/lib/geo"
)

// resolveGhosts computes the advisory duplicate position for every split
// link: next to the linked person, offset to where the relationship would
// normally put the split person. A split parent link duplicates the person
// below the parent (where a child row sits), a split child link above the
// child, a split partner link beside the partner. Canonical positions are
// never touched. Links whose linked person has no position are skipped.
func (st *state) resolveGhosts(layout *kintarget.Layout) {
	for _, p := range st.graph.People {
		for _, sl := range p.SplitLinks {
			linked, ok := st.positions[sl.LinkedPersonID]
			if !ok {
				continue
			}
			var pos *geo.Point
			switch sl.Kind {
			case kingraph.LinkParent:
				pos = geo.NewPoint(linked.X, linked.Y+st.ruler.GenerationGap)
			case kingraph.LinkPartner:
				pos = geo.NewPoint(linked.X+st.ruler.NodeWidth+st.ruler.HorizontalGap, linked.Y)
			case kingraph.LinkChild:
				pos = geo.NewPoint(linked.X, linked.Y-st.ruler.GenerationGap)
			default:
				continue
			}
			layout.Ghosts = append(layout.Ghosts, kintarget.Ghost{
				PersonID: p.ID,
				LinkedID: sl.LinkedPersonID,
				Kind:     string(sl.Kind),
				Context:  sl.GhostContext,
				Position: pos,
			})
		}
	}
}
