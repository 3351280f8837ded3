package kingraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kindredlab/kindred/kingraph"
)

func TestImpliedPartners(t *testing.T) {
	g := kingraph.NewGraph([]*kingraph.Person{
		{ID: "a", Relationships: kingraph.Relationships{
			Partners: []string{"b"},
			Children: []string{"c1", "c2"},
		}},
		{ID: "b", Relationships: kingraph.Relationships{Partners: []string{"a"}, Children: []string{"c1"}}},
		// x co-parents c2 with a but was never recorded as a's partner.
		{ID: "x", Relationships: kingraph.Relationships{Children: []string{"c2"}}},
		{ID: "c1", Relationships: kingraph.Relationships{Parents: []string{"a", "b"}}},
		{ID: "c2", Relationships: kingraph.Relationships{Parents: []string{"a", "x"}}},
	})

	partners := g.ImpliedPartners(g.Get("a"))
	assert.Equal(t, []string{"b", "x"}, partners)

	// Derived, not stored: the data model is untouched.
	assert.Equal(t, []string{"b"}, g.Get("a").Relationships.Partners)
}

func TestImpliedPartnersExcludesSelfAndDuplicates(t *testing.T) {
	g := kingraph.NewGraph([]*kingraph.Person{
		{ID: "a", Relationships: kingraph.Relationships{
			Partners: []string{"b", "b"},
			Children: []string{"c"},
		}},
		{ID: "b", Relationships: kingraph.Relationships{Children: []string{"c"}}},
		{ID: "c", Relationships: kingraph.Relationships{Parents: []string{"a", "b", "a"}}},
	})

	assert.Equal(t, []string{"b"}, g.ImpliedPartners(g.Get("a")))
}

func TestGetMissing(t *testing.T) {
	g := kingraph.NewGraph([]*kingraph.Person{{ID: "a"}})
	assert.Nil(t, g.Get("nope"))
	assert.NotNil(t, g.Get("a"))
}
