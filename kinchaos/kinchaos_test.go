package kinchaos_test

import (
	"context"
	"fmt"
	mathrand "math/rand"
	"os"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/util-go/diff"
	"oss.terrastruct.com/util-go/xjson"

	"github.com/kindredlab/kindred/kinchaos"
	"github.com/kindredlab/kindred/kingraph"
	"github.com/kindredlab/kindred/kinlayouts"
	"github.com/kindredlab/kindred/kinlayouts/kintree"
	"github.com/kindredlab/kindred/kintarget"
	"github.com/kindredlab/kindred/lib/log"
)

// usage: KINDRED_CHAOS_N=500 go test ./kinchaos
//
// KINDRED_CHAOS_N controls how many random graphs to generate. Each graph
// is laid out and checked against the engine's invariants. A failing seed is
// printed so it can be pinned below.
func TestKinChaos(t *testing.T) {
	t.Parallel()

	n := 50
	if s := os.Getenv("KINDRED_CHAOS_N"); s != "" {
		envn, err := strconv.Atoi(s)
		if err != nil {
			t.Errorf("failed to atoi $KINDRED_CHAOS_N: %v", err)
		} else {
			n = envn
		}
	}

	for seed := int64(0); seed < int64(n); seed++ {
		seed := seed
		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			t.Parallel()
			testSeed(t, seed)
		})
	}
}

func testSeed(t *testing.T, seed int64) {
	g := kinchaos.GenGraph(mathrand.New(mathrand.NewSource(seed)), 30)
	ctx := log.WithTB(context.Background(), t)
	layout, err := kinlayouts.CalculateLayout(ctx, g, nil)
	assert.Nil(t, err)

	assertCoverage(t, g, layout)
	assertNoRowOverlap(t, layout)
	assertRepairIdempotent(t, g)
}

func assertCoverage(t *testing.T, g *kingraph.Graph, layout *kintarget.Layout) {
	t.Helper()
	for _, p := range g.People {
		if _, ok := layout.Positions[p.ID]; !ok {
			t.Errorf("no position for %s", p.ID)
		}
		pos := layout.Positions[p.ID]
		if pos != nil && (pos.X < 0 || pos.Y < 0) {
			t.Errorf("negative coordinate for %s: %s", p.ID, pos.ToString())
		}
	}
}

func assertNoRowOverlap(t *testing.T, layout *kintarget.Layout) {
	t.Helper()
	type placed struct {
		id string
		x  float64
		y  float64
	}
	var all []placed
	for _, p := range layoutOrder(layout) {
		pos := layout.Positions[p]
		all = append(all, placed{p, pos.X, pos.Y})
	}
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			a, b := all[i], all[j]
			dy := a.y - b.y
			if dy < 0 {
				dy = -dy
			}
			if dy >= kintree.NODE_HEIGHT {
				continue
			}
			dx := a.x - b.x
			if dx < 0 {
				dx = -dx
			}
			if dx < kintree.NODE_WIDTH+kintree.HORIZONTAL_GAP-0.001 {
				t.Errorf("%s (%v,%v) and %s (%v,%v) crowd the same row",
					a.id, a.x, a.y, b.id, b.x, b.y)
			}
		}
	}
}

func layoutOrder(layout *kintarget.Layout) []string {
	ids := make([]string, 0, len(layout.Positions))
	for id := range layout.Positions {
		ids = append(ids, id)
	}
	// Map order doesn't matter for a symmetric pairwise check, but sorted
	// output keeps failure messages stable.
	sort.Strings(ids)
	return ids
}

func assertRepairIdempotent(t *testing.T, g *kingraph.Graph) {
	t.Helper()
	before := string(xjson.Marshal(g.People))
	g.RepairRelationships()
	after := string(xjson.Marshal(g.People))
	ds, err := diff.Strings(before, after)
	if err != nil {
		t.Fatal(err)
	}
	if ds != "" {
		t.Errorf("repair is not idempotent:\n%s", ds)
	}
}
