package kintree

import (
	"sort"

	"github.com/kindredlab/kindred/kingraph"
)

// collectRoots picks every generation-0 person as a potential root, groups
// roots that share at least one descendant into one cluster (so both halves
// of a reconstituted family stay adjacent), orders each cluster by ascending
// birth date, and flattens clusters in discovery order. People still
// unvisited after that (isolated cycles, fully detached individuals) are
// appended as extra roots in a final sweep.
func (st *state) collectRoots() []*LayoutNode {
	type cluster struct {
		roots       []*kingraph.Person
		descendants map[string]struct{}
	}

	var clusters []*cluster
	for _, p := range st.graph.People {
		if st.generations[p.ID] != 0 {
			continue
		}
		desc := st.descendants(p)

		// The root may bridge several existing clusters; merge them all
		// into the earliest one so discovery order is kept.
		var home *cluster
		rest := clusters[:0]
		for _, c := range clusters {
			if home == nil && intersects(c.descendants, desc) {
				home = c
				rest = append(rest, c)
				continue
			}
			if home != nil && intersects(c.descendants, desc) {
				home.roots = append(home.roots, c.roots...)
				for id := range c.descendants {
					home.descendants[id] = struct{}{}
				}
				continue
			}
			rest = append(rest, c)
		}
		clusters = rest

		if home == nil {
			home = &cluster{descendants: make(map[string]struct{})}
			clusters = append(clusters, home)
		}
		home.roots = append(home.roots, p)
		for id := range desc {
			home.descendants[id] = struct{}{}
		}
	}

	var ordered []*kingraph.Person
	for _, c := range clusters {
		sort.SliceStable(c.roots, func(i, j int) bool {
			return c.roots[i].BirthDate < c.roots[j].BirthDate
		})
		ordered = append(ordered, c.roots...)
	}

	var nodes []*LayoutNode
	for _, p := range ordered {
		if !st.isVisited(p.ID) {
			nodes = append(nodes, st.buildSubtree(p.ID))
		}
	}
	for _, p := range st.graph.People {
		if !st.isVisited(p.ID) {
			nodes = append(nodes, st.buildSubtree(p.ID))
		}
	}
	return nodes
}

// descendants walks child edges transitively. The guard set doubles as the
// result and protects against descent cycles from bad data.
func (st *state) descendants(p *kingraph.Person) map[string]struct{} {
	desc := make(map[string]struct{})
	var walk func(id string)
	walk = func(id string) {
		person := st.graph.Get(id)
		if person == nil {
			return
		}
		for _, cid := range person.Relationships.Children {
			if _, ok := desc[cid]; ok {
				continue
			}
			if st.graph.Get(cid) == nil {
				continue
			}
			desc[cid] = struct{}{}
			walk(cid)
		}
	}
	walk(p.ID)
	return desc
}

func intersects(a, b map[string]struct{}) bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	for id := range a {
		if _, ok := b[id]; ok {
			return true
		}
	}
	return false
}
