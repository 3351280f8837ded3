// Package kinlayouts is the entrypoint tying the layout pipeline together:
// relationship repair, then the kintree engine.
package kinlayouts

import (
	"context"

	"cdr.dev/slog"

	"github.com/kindredlab/kindred/kingraph"
	"github.com/kindredlab/kindred/kinlayouts/kintree"
	"github.com/kindredlab/kindred/kintarget"
	"github.com/kindredlab/kindred/lib/log"
)

// CalculateLayout repairs g's relationships in place, then computes the
// layout. A nil ruler uses the default spacing. The result is best-effort:
// it is never an error for parts of the graph to be unplaceable, those
// people are simply absent from the position map.
func CalculateLayout(ctx context.Context, g *kingraph.Graph, ruler *kintree.Ruler) (*kintarget.Layout, error) {
	g.RepairRelationships()
	log.Debug(ctx, "relationships repaired", slog.F("people", len(g.People)))
	return kintree.Layout(ctx, g, ruler)
}
