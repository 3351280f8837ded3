// Package kintree computes a non-overlapping two-dimensional layout for a
// genealogical graph. People are partitioned into couple blocks sized by
// recursive tidy-tree widths, grouped into root components, and scheduled
// onto absolute horizontal offsets by an anchor-driven greedy placer with a
// directional collision probe. Relationships the user split are resolved to
// ghost duplicate positions instead of long connectors.
package kintree

import (
	"context"

	"cdr.dev/slog"

	"github.com/kindredlab/kindred/kingraph"
	"github.com/kindredlab/kindred/kintarget"
	"github.com/kindredlab/kindred/lib/geo"
	"github.com/kindredlab/kindred/lib/log"
)

// state is one layout session. Everything here is created fresh per Layout
// call and discarded with it; nothing is shared across invocations.
type state struct {
	ruler *Ruler
	graph *kingraph.Graph

	generations map[string]int
	visited     map[string]struct{}

	// positions is the global absolute position map the scheduler's rounds
	// read and append to. It is never rolled back. placedOrder mirrors its
	// insertion order so collision checks iterate deterministically.
	positions   map[string]*geo.Point
	placedOrder []string
}

// Layout computes positions for every person reachable from a root, plus
// ghost positions and connections. It never fails: recoverable data issues
// are absorbed and the result is best-effort. The graph is expected to be
// relationship-repaired on entry.
func Layout(ctx context.Context, g *kingraph.Graph, ruler *Ruler) (*kintarget.Layout, error) {
	if ruler == nil {
		ruler = DefaultRuler()
	}
	st := &state{
		ruler:     ruler,
		graph:     g,
		visited:   make(map[string]struct{}),
		positions: make(map[string]*geo.Point),
	}

	st.assignGenerations()
	log.Debug(ctx, "generations assigned", slog.F("people", len(g.People)))

	roots := st.collectRoots()
	layouts := make([]*RootLayout, 0, len(roots))
	for _, root := range roots {
		layouts = append(layouts, st.newRootLayout(root))
	}
	log.Debug(ctx, "root components built", slog.F("components", len(layouts)))

	st.placeComponents(ctx, layouts)

	layout := kintarget.NewLayout()
	layout.Positions = st.positions
	layout.NodeWidth = ruler.NodeWidth
	layout.NodeHeight = ruler.NodeHeight
	st.resolveGhosts(layout)
	st.buildConnections(layout)
	return layout, nil
}

func (st *state) isVisited(id string) bool {
	_, ok := st.visited[id]
	return ok
}
