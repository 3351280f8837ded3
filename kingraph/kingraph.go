// Package kingraph holds the genealogical data model the layout engine
// consumes: people linked by parent/child/partner relationships.
package kingraph

import (
	"oss.terrastruct.com/util-go/go2"
)

type LinkKind string

const (
	LinkParent  LinkKind = "parent"
	LinkPartner LinkKind = "partner"
	LinkChild   LinkKind = "child"
)

type Gender string

const (
	GenderUnknown Gender = ""
	GenderFemale  Gender = "female"
	GenderMale    Gender = "male"
	GenderOther   Gender = "other"
)

// SplitLink marks a relationship whose long connector the user detached.
// The engine renders it as a ghost duplicate near the linked person instead.
type SplitLink struct {
	Kind           LinkKind `json:"type"`
	LinkedPersonID string   `json:"linkedPersonId"`
	GhostContext   string   `json:"ghostContext,omitempty"`
}

// Relationships are kept as ordered slices. Iteration order is load-bearing:
// the layout scheduler's tie-breaks are input-order sensitive, so these must
// never be converted to unordered sets.
type Relationships struct {
	Parents  []string `json:"parents,omitempty"`
	Children []string `json:"children,omitempty"`
	Partners []string `json:"partners,omitempty"`
}

type Person struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Gender    Gender `json:"gender,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
	DeathDate string `json:"deathDate,omitempty"`

	Relationships Relationships `json:"relationships"`
	SplitLinks    []SplitLink   `json:"splitLinks,omitempty"`
}

// HasPartner reports whether p carries at least one explicit partner link.
func (p *Person) HasPartner() bool {
	return len(p.Relationships.Partners) > 0
}

// Graph is a snapshot of all people. People preserves input order.
type Graph struct {
	People []*Person `json:"people"`

	index map[string]*Person
}

func NewGraph(people []*Person) *Graph {
	g := &Graph{People: people}
	g.reindex()
	return g
}

func (g *Graph) reindex() {
	g.index = make(map[string]*Person, len(g.People))
	for _, p := range g.People {
		g.index[p.ID] = p
	}
}

// Get returns the person with the given id, or nil. Relationship ids with no
// matching person are expected and tolerated throughout the engine.
func (g *Graph) Get(id string) *Person {
	if g.index == nil {
		g.reindex()
	}
	return g.index[id]
}

// ImpliedPartners returns p's explicit partners plus anyone who co-parents at
// least one of p's children, in first-seen order and without duplicates. The
// co-parent relation is derived on demand, never stored, so it can't go stale.
func (g *Graph) ImpliedPartners(p *Person) []string {
	var partners []string
	for _, pid := range p.Relationships.Partners {
		if pid != p.ID && !go2.Contains(partners, pid) {
			partners = append(partners, pid)
		}
	}
	for _, cid := range p.Relationships.Children {
		child := g.Get(cid)
		if child == nil {
			continue
		}
		for _, parentID := range child.Relationships.Parents {
			if parentID == p.ID {
				continue
			}
			if !go2.Contains(partners, parentID) {
				partners = append(partners, parentID)
			}
		}
	}
	return partners
}
