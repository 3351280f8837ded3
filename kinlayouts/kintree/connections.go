package kintree

import (
	"github.com/kindredlab/kindred/kingraph"
	"github.com/kindredlab/kindred/kintarget"
)

type splitKey struct {
	owner  string
	kind   kingraph.LinkKind
	linked string
}

// buildConnections synthesizes the lines rendering draws: one partner
// connection per couple, one child connection per parent-child edge, in
// input order. A split relationship gets no long connector; instead a short
// connection terminates at the ghost resolved for it. Edges with an
// endpoint missing from the position map are dropped.
func (st *state) buildConnections(layout *kintarget.Layout) {
	splits := make(map[splitKey]struct{})
	for _, p := range st.graph.People {
		for _, sl := range p.SplitLinks {
			splits[splitKey{p.ID, sl.Kind, sl.LinkedPersonID}] = struct{}{}
		}
	}
	isSplit := func(owner string, kind kingraph.LinkKind, linked string) bool {
		_, ok := splits[splitKey{owner, kind, linked}]
		return ok
	}

	// Short connections to ghosts come first, in the order the ghosts were
	// resolved. The linked person keeps the canonical endpoint.
	for _, g := range layout.Ghosts {
		kind := kintarget.ConnectionChild
		if g.Kind == string(kingraph.LinkPartner) {
			kind = kintarget.ConnectionPartner
		}
		layout.Connections = append(layout.Connections, kintarget.Connection{
			Kind:     kind,
			SrcID:    g.LinkedID,
			DstID:    g.PersonID,
			GhostEnd: g.Position,
		})
	}

	seenPartner := make(map[splitKey]struct{})
	for _, p := range st.graph.People {
		for _, pid := range p.Relationships.Partners {
			if _, ok := seenPartner[splitKey{owner: p.ID, linked: pid}]; ok {
				continue
			}
			seenPartner[splitKey{owner: p.ID, linked: pid}] = struct{}{}
			seenPartner[splitKey{owner: pid, linked: p.ID}] = struct{}{}
			if isSplit(p.ID, kingraph.LinkPartner, pid) || isSplit(pid, kingraph.LinkPartner, p.ID) {
				continue
			}
			if !st.bothPlaced(p.ID, pid) {
				continue
			}
			layout.Connections = append(layout.Connections, kintarget.Connection{
				Kind:  kintarget.ConnectionPartner,
				SrcID: p.ID,
				DstID: pid,
			})
		}
		for _, cid := range p.Relationships.Children {
			if isSplit(cid, kingraph.LinkParent, p.ID) || isSplit(p.ID, kingraph.LinkChild, cid) {
				continue
			}
			if !st.bothPlaced(p.ID, cid) {
				continue
			}
			layout.Connections = append(layout.Connections, kintarget.Connection{
				Kind:  kintarget.ConnectionChild,
				SrcID: p.ID,
				DstID: cid,
			})
		}
	}
}

func (st *state) bothPlaced(a, b string) bool {
	_, okA := st.positions[a]
	_, okB := st.positions[b]
	return okA && okB
}
