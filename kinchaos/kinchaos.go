// Package kinchaos generates random genealogical graphs for property-based
// testing of the layout engine. Generated graphs are structurally plausible
// (partners share a generation, children sit below their parents, marriages
// only join people of the same generation) but may carry one-sided
// relationship entries on purpose, to exercise the repair pass the way
// imperfect stored data would.
package kinchaos

import (
	"fmt"
	mathrand "math/rand"

	"github.com/kindredlab/kindred/kingraph"
)

// GenGraph grows a graph of roughly n people using the given rand source.
func GenGraph(rand *mathrand.Rand, n int) *kingraph.Graph {
	gs := &genState{
		rand: rand,
		gens: make(map[string]int),
	}
	gs.founder()
	for len(gs.people) < n {
		switch roll := gs.rand.Intn(10); {
		case roll < 2:
			gs.founder()
		case roll < 4:
			gs.partner()
		case roll < 5:
			gs.marry()
		default:
			gs.child()
		}
	}
	gs.splitSome()
	return kingraph.NewGraph(gs.people)
}

type genState struct {
	rand   *mathrand.Rand
	people []*kingraph.Person

	// gens tracks the generation each person was created at, so marriages
	// only join people who belong on the same row.
	gens map[string]int
}

func (gs *genState) newPerson(gen int) *kingraph.Person {
	p := &kingraph.Person{
		ID:        fmt.Sprintf("p%d", len(gs.people)),
		Name:      fmt.Sprintf("Person %d", len(gs.people)),
		BirthDate: fmt.Sprintf("%04d-%02d-%02d", 1900+gen*25+gs.rand.Intn(20), 1+gs.rand.Intn(12), 1+gs.rand.Intn(28)),
	}
	switch gs.rand.Intn(3) {
	case 0:
		p.Gender = kingraph.GenderFemale
	case 1:
		p.Gender = kingraph.GenderMale
	}
	gs.people = append(gs.people, p)
	gs.gens[p.ID] = gen
	return p
}

func (gs *genState) pick() *kingraph.Person {
	return gs.people[gs.rand.Intn(len(gs.people))]
}

func (gs *genState) founder() {
	gs.newPerson(0)
}

// partner attaches a brand-new person as a partner of an existing one.
// A third of the time only one side of the link is recorded.
func (gs *genState) partner() {
	p := gs.pick()
	q := gs.newPerson(gs.gens[p.ID])
	p.Relationships.Partners = append(p.Relationships.Partners, q.ID)
	if gs.rand.Intn(3) != 0 {
		q.Relationships.Partners = append(q.Relationships.Partners, p.ID)
	}
}

// marry links two existing people of the same generation. This is what
// stitches otherwise independent family trees together and forces the
// placer to resolve cross-component anchors.
func (gs *genState) marry() {
	a := gs.pick()
	for try := 0; try < 8; try++ {
		b := gs.pick()
		if b.ID == a.ID || gs.gens[b.ID] != gs.gens[a.ID] {
			continue
		}
		already := false
		for _, pid := range a.Relationships.Partners {
			if pid == b.ID {
				already = true
				break
			}
		}
		if already {
			continue
		}
		a.Relationships.Partners = append(a.Relationships.Partners, b.ID)
		if gs.rand.Intn(3) != 0 {
			b.Relationships.Partners = append(b.Relationships.Partners, a.ID)
		}
		return
	}
}

// child attaches a brand-new person as a child of an existing one, and of
// that person's first partner when there is one. Some back-references are
// deliberately omitted.
func (gs *genState) child() {
	p := gs.pick()
	c := gs.newPerson(gs.gens[p.ID] + 1)
	c.Relationships.Parents = append(c.Relationships.Parents, p.ID)
	if gs.rand.Intn(3) != 0 {
		p.Relationships.Children = append(p.Relationships.Children, c.ID)
	}
	if len(p.Relationships.Partners) > 0 {
		other := p.Relationships.Partners[0]
		c.Relationships.Parents = append(c.Relationships.Parents, other)
	}
}

// splitSome marks roughly one in ten existing parent links as split.
func (gs *genState) splitSome() {
	for _, p := range gs.people {
		if len(p.Relationships.Parents) == 0 {
			continue
		}
		if gs.rand.Intn(10) != 0 {
			continue
		}
		p.SplitLinks = append(p.SplitLinks, kingraph.SplitLink{
			Kind:           kingraph.LinkParent,
			LinkedPersonID: p.Relationships.Parents[0],
			GhostContext:   "detached for readability",
		})
	}
}
