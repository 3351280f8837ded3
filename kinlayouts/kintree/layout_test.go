package kintree_test

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kindredlab/kindred/kingraph"
	"github.com/kindredlab/kindred/kinlayouts"
	"github.com/kindredlab/kindred/kinlayouts/kintree"
	"github.com/kindredlab/kindred/kintarget"
	"github.com/kindredlab/kindred/lib/geo"
	"github.com/kindredlab/kindred/lib/log"
)

func calc(t *testing.T, people []*kingraph.Person) *kintarget.Layout {
	t.Helper()
	ctx := log.WithTB(context.Background(), t)
	layout, err := kinlayouts.CalculateLayout(ctx, kingraph.NewGraph(people), nil)
	assert.Nil(t, err)
	return layout
}

// assertNoRowOverlap checks the core correctness property: any two placed
// people on the same generation row keep at least one horizontal gap between
// their node boxes.
func assertNoRowOverlap(t *testing.T, layout *kintarget.Layout) {
	t.Helper()
	ids := make([]string, 0, len(layout.Positions))
	for id := range layout.Positions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			p := layout.Positions[ids[i]]
			q := layout.Positions[ids[j]]
			dy := p.Y - q.Y
			if dy < 0 {
				dy = -dy
			}
			if dy >= kintree.NODE_HEIGHT {
				continue
			}
			a := geo.NewBox(p, kintree.NODE_WIDTH, kintree.NODE_HEIGHT)
			b := geo.NewBox(q, kintree.NODE_WIDTH, kintree.NODE_HEIGHT)
			gap := a.HorizontalGapTo(b)
			if geo.PrecisionCompare(gap, kintree.HORIZONTAL_GAP, 0.001) < 0 {
				t.Errorf("%s at %s and %s at %s crowd the same row (gap %v)",
					ids[i], p.ToString(), ids[j], q.ToString(), gap)
			}
		}
	}
}

func TestSinglePerson(t *testing.T) {
	layout := calc(t, []*kingraph.Person{{ID: "only"}})

	assert.Equal(t, 1, len(layout.Positions))
	assert.True(t, layout.Positions["only"].Equals(geo.NewPoint(100, 100)))
	assert.Empty(t, layout.Connections)
	assert.Empty(t, layout.Ghosts)
}

func TestCoupleWithTwoChildren(t *testing.T) {
	layout := calc(t, []*kingraph.Person{
		{ID: "a", Relationships: kingraph.Relationships{Partners: []string{"b"}, Children: []string{"c", "d"}}},
		{ID: "b", Relationships: kingraph.Relationships{Children: []string{"c", "d"}}},
		{ID: "c"},
		{ID: "d"},
	})

	assert.Equal(t, 4, len(layout.Positions))
	// Couple row: 2*180 + 60 = 420 wide; two children (420 combined) sit
	// exactly underneath.
	assert.True(t, layout.Positions["a"].Equals(geo.NewPoint(100, 100)), layout.Positions["a"].ToString())
	assert.True(t, layout.Positions["b"].Equals(geo.NewPoint(340, 100)), layout.Positions["b"].ToString())
	assert.True(t, layout.Positions["c"].Equals(geo.NewPoint(100, 280)), layout.Positions["c"].ToString())
	assert.True(t, layout.Positions["d"].Equals(geo.NewPoint(340, 280)), layout.Positions["d"].ToString())

	var partners, childEdges int
	for _, c := range layout.Connections {
		switch c.Kind {
		case kintarget.ConnectionPartner:
			partners++
		case kintarget.ConnectionChild:
			childEdges++
		}
	}
	assert.Equal(t, 1, partners)
	assert.Equal(t, 4, childEdges) // two parents x two children

	assertNoRowOverlap(t, layout)
}

func TestDisconnectedSinglesPlacedLeftToRight(t *testing.T) {
	layout := calc(t, []*kingraph.Person{
		{ID: "west"},
		{ID: "east"},
	})

	w := layout.Positions["west"]
	e := layout.Positions["east"]
	assert.True(t, w.Equals(geo.NewPoint(100, 100)), w.ToString())

	// Second component appended right of the first with 1.5 gaps between
	// bounding boxes.
	boxGap := e.X - (w.X + kintree.NODE_WIDTH)
	assert.Equal(t, kintree.HORIZONTAL_GAP*1.5, boxGap)
	assert.Equal(t, w.Y, e.Y)
}

func TestSplitParentLink(t *testing.T) {
	layout := calc(t, []*kingraph.Person{
		{ID: "b", Relationships: kingraph.Relationships{Children: []string{"a"}}},
		{ID: "a", SplitLinks: []kingraph.SplitLink{
			{Kind: kingraph.LinkParent, LinkedPersonID: "b", GhostContext: "long line"},
		}},
	})

	// Canonical positions stay: a on its own row under b.
	bPos := layout.Positions["b"]
	aPos := layout.Positions["a"]
	assert.NotNil(t, bPos)
	assert.NotNil(t, aPos)

	// Ghost for a sits where a child of b would normally sit.
	if assert.Equal(t, 1, len(layout.Ghosts)) {
		g := layout.Ghosts[0]
		assert.Equal(t, "a", g.PersonID)
		assert.Equal(t, "b", g.LinkedID)
		assert.Equal(t, "long line", g.Context)
		assert.True(t, g.Position.Equals(geo.NewPoint(bPos.X, bPos.Y+kintree.GENERATION_GAP)), g.Position.ToString())
	}

	// The long b->a connector is suppressed in favor of the short one
	// ending at the ghost.
	if assert.Equal(t, 1, len(layout.Connections)) {
		c := layout.Connections[0]
		assert.Equal(t, kintarget.ConnectionChild, c.Kind)
		assert.Equal(t, "b", c.SrcID)
		assert.Equal(t, "a", c.DstID)
		assert.NotNil(t, c.GhostEnd)
	}
}

func TestSplitPartnerLink(t *testing.T) {
	layout := calc(t, []*kingraph.Person{
		{ID: "a", Relationships: kingraph.Relationships{Partners: []string{"b"}},
			SplitLinks: []kingraph.SplitLink{{Kind: kingraph.LinkPartner, LinkedPersonID: "b"}}},
		{ID: "b"},
	})

	bPos := layout.Positions["b"]
	if assert.Equal(t, 1, len(layout.Ghosts)) {
		g := layout.Ghosts[0]
		exp := geo.NewPoint(bPos.X+kintree.NODE_WIDTH+kintree.HORIZONTAL_GAP, bPos.Y)
		assert.True(t, g.Position.Equals(exp), g.Position.ToString())
	}
	if assert.Equal(t, 1, len(layout.Connections)) {
		assert.Equal(t, kintarget.ConnectionPartner, layout.Connections[0].Kind)
		assert.NotNil(t, layout.Connections[0].GhostEnd)
	}
}

func TestSplitChildLink(t *testing.T) {
	layout := calc(t, []*kingraph.Person{
		{ID: "p", Relationships: kingraph.Relationships{Children: []string{"c"}},
			SplitLinks: []kingraph.SplitLink{{Kind: kingraph.LinkChild, LinkedPersonID: "c"}}},
		{ID: "c"},
	})

	// Ghost for p sits where a parent of c would normally sit: one
	// generation above c.
	cPos := layout.Positions["c"]
	if assert.Equal(t, 1, len(layout.Ghosts)) {
		g := layout.Ghosts[0]
		assert.Equal(t, "p", g.PersonID)
		assert.Equal(t, "c", g.LinkedID)
		exp := geo.NewPoint(cPos.X, cPos.Y-kintree.GENERATION_GAP)
		assert.True(t, g.Position.Equals(exp), g.Position.ToString())
	}
	if assert.Equal(t, 1, len(layout.Connections)) {
		c := layout.Connections[0]
		assert.Equal(t, kintarget.ConnectionChild, c.Kind)
		assert.Equal(t, "c", c.SrcID)
		assert.Equal(t, "p", c.DstID)
		assert.NotNil(t, c.GhostEnd)
	}
}

func TestRoundCapDropsUnplacedComponents(t *testing.T) {
	// One more independent component than the scheduler has rounds. The
	// excess component is dropped from output, not an error.
	var people []*kingraph.Person
	for i := 0; i <= kintree.MAX_PLACEMENT_ROUNDS; i++ {
		people = append(people, &kingraph.Person{ID: fmt.Sprintf("solo%d", i)})
	}
	layout := calc(t, people)

	assert.Equal(t, kintree.MAX_PLACEMENT_ROUNDS, len(layout.Positions))
	for i := 0; i < kintree.MAX_PLACEMENT_ROUNDS; i++ {
		assert.Contains(t, layout.Positions, fmt.Sprintf("solo%d", i))
	}
	_, ok := layout.Positions[fmt.Sprintf("solo%d", kintree.MAX_PLACEMENT_ROUNDS)]
	assert.False(t, ok)
	assertNoRowOverlap(t, layout)
}

func TestThreeGenerationCoverage(t *testing.T) {
	people := []*kingraph.Person{
		{ID: "gp1", BirthDate: "1920", Relationships: kingraph.Relationships{Partners: []string{"gp2"}, Children: []string{"p1", "aunt"}}},
		{ID: "gp2", BirthDate: "1922"},
		{ID: "p1", Gender: kingraph.GenderMale, Relationships: kingraph.Relationships{Partners: []string{"p2"}}},
		{ID: "p2", Gender: kingraph.GenderFemale, Relationships: kingraph.Relationships{Children: []string{"kid1", "kid2"}}},
		{ID: "aunt"},
		{ID: "kid1", BirthDate: "1975"},
		{ID: "kid2", BirthDate: "1978"},
	}
	layout := calc(t, people)

	for _, p := range people {
		assert.Contains(t, layout.Positions, p.ID, "no position for %s", p.ID)
	}
	assertNoRowOverlap(t, layout)

	box := layout.BoundingBox()
	if assert.NotNil(t, box) {
		assert.GreaterOrEqual(t, box.TopLeft.X, 0.)
		assert.GreaterOrEqual(t, box.TopLeft.Y, 0.)
	}
}

func TestDeterministic(t *testing.T) {
	mk := func() []*kingraph.Person {
		return []*kingraph.Person{
			{ID: "r1", Relationships: kingraph.Relationships{Partners: []string{"r2"}, Children: []string{"m"}}},
			{ID: "r2"},
			{ID: "m", Relationships: kingraph.Relationships{Partners: []string{"w"}}},
			{ID: "w", Relationships: kingraph.Relationships{Parents: []string{"o1"}}},
			{ID: "o1"},
			{ID: "solo"},
		}
	}
	first := calc(t, mk())
	second := calc(t, mk())

	assert.Equal(t, len(first.Positions), len(second.Positions))
	for id, p := range first.Positions {
		assert.True(t, p.Equals(second.Positions[id]), "position of %s differs", id)
	}
	assert.Equal(t, first.Connections, second.Connections)
}
