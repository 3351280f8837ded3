package kingraph

import (
	"oss.terrastruct.com/util-go/go2"
)

// RepairRelationships heals the graph so that every relationship is
// bidirectional: if A lists B as a parent, B lists A as a child, and partner
// links are mutual. Each relationship list is then deduplicated, preserving
// first-occurrence order. Ids with no matching person are left alone.
//
// Idempotent: a second run on repaired data performs no mutation.
func (g *Graph) RepairRelationships() {
	for _, p := range g.People {
		for _, pid := range p.Relationships.Parents {
			parent := g.Get(pid)
			if parent == nil {
				continue
			}
			if !go2.Contains(parent.Relationships.Children, p.ID) {
				parent.Relationships.Children = append(parent.Relationships.Children, p.ID)
			}
		}
		for _, cid := range p.Relationships.Children {
			child := g.Get(cid)
			if child == nil {
				continue
			}
			if !go2.Contains(child.Relationships.Parents, p.ID) {
				child.Relationships.Parents = append(child.Relationships.Parents, p.ID)
			}
		}
		for _, pid := range p.Relationships.Partners {
			partner := g.Get(pid)
			if partner == nil {
				continue
			}
			if !go2.Contains(partner.Relationships.Partners, p.ID) {
				partner.Relationships.Partners = append(partner.Relationships.Partners, p.ID)
			}
		}
	}

	for _, p := range g.People {
		p.Relationships.Parents = dedupe(p.Relationships.Parents)
		p.Relationships.Children = dedupe(p.Relationships.Children)
		p.Relationships.Partners = dedupe(p.Relationships.Partners)
	}
}

func dedupe(ids []string) []string {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
