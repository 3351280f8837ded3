package kintree

import (
	"context"
	"math"
	"sort"

	"cdr.dev/slog"

	"oss.terrastruct.com/util-go/go2"

	"github.com/kindredlab/kindred/lib/geo"
	"github.com/kindredlab/kindred/lib/log"
)

// placeComponents assigns each root component an absolute horizontal offset.
// Each round every unplaced component is scored, the best candidate is
// committed, and its absolute positions become obstacles for later rounds.
// The round cap bounds the fixed point; whatever remains unplaced at the cap
// is dropped from output and reported at warn level.
func (st *state) placeComponents(ctx context.Context, layouts []*RootLayout) {
	for round := 0; round < MAX_PLACEMENT_ROUNDS; round++ {
		var candidates []*RootLayout
		for _, rl := range layouts {
			if !rl.Placed {
				candidates = append(candidates, rl)
			}
		}
		if len(candidates) == 0 {
			break
		}

		for _, rl := range candidates {
			st.score(rl)
		}
		// Best score first; among equals, fill left to right to reduce
		// crossings. Stable so equal unanchored components keep input order.
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].score != candidates[j].score {
				return candidates[i].score > candidates[j].score
			}
			if candidates[i].desiredX != nil && candidates[j].desiredX != nil {
				return *candidates[i].desiredX < *candidates[j].desiredX
			}
			return false
		})

		top := candidates[0]
		var offset float64
		if top.desiredX != nil {
			offset = st.searchFit(top, *top.desiredX, layouts)
		} else {
			offset = st.appendRight(layouts)
		}
		st.commit(top, offset)
	}

	for _, rl := range layouts {
		if !rl.Placed {
			log.Warn(ctx, "component not placed within round cap, dropped from layout",
				slog.F("root", rl.Root.Person.ID),
				slog.F("people", len(rl.Order)))
		}
	}

	// Anchor pulls can probe components left of the base. Output
	// coordinates stay non-negative, so shift the whole layout back when
	// that happened. Translation preserves all the collision guarantees.
	minX := math.Inf(1)
	for _, id := range st.placedOrder {
		minX = math.Min(minX, st.positions[id].X)
	}
	if !math.IsInf(minX, 1) && minX < BASE_X {
		dx := BASE_X - minX
		for _, id := range st.placedOrder {
			st.positions[id].X += dx
		}
	}
}

// score rates a component for this round and computes its desired offset:
// anchored components whose anchors started landing center themselves on the
// mean anchor x; ones still waiting on anchors are deferred; anchorless
// components are free to go anywhere.
func (st *state) score(rl *RootLayout) {
	sum := 0.
	placed := 0
	for _, id := range rl.Anchors {
		if pos, ok := st.positions[id]; ok {
			sum += pos.X + st.ruler.NodeWidth/2
			placed++
		}
	}
	switch {
	case placed > 0:
		rl.score = SCORE_ANCHORED_READY
		rl.desiredX = go2.Pointer(sum/float64(placed) - rl.Width/2)
	case len(rl.Anchors) > 0:
		rl.score = SCORE_ANCHORED_WAITING
		rl.desiredX = nil
	default:
		rl.score = SCORE_FREE
		rl.desiredX = nil
	}
}

// searchFit probes the desired offset and, on collision, scans outward in
// fixed steps, preferred direction first, opening the opposite direction
// once the preferred side has failed past PROBE_FLIP_AFTER. If nothing
// within the bound fits, it falls back to appending on the right.
func (st *state) searchFit(rl *RootLayout, desired float64, layouts []*RootLayout) float64 {
	fits, dir := st.checkFit(rl, desired)
	if fits {
		return desired
	}
	if dir == 0 {
		dir = 1
	}
	for d := PROBE_STEP; d <= PROBE_BOUND; d += PROBE_STEP {
		x := desired + float64(dir)*d
		if ok, _ := st.checkFit(rl, x); ok {
			return x
		}
		if d > PROBE_FLIP_AFTER {
			x = desired - float64(dir)*d
			if ok, _ := st.checkFit(rl, x); ok {
				return x
			}
		}
	}
	return st.appendRight(layouts)
}

// checkFit reports whether the component collides with any already-placed
// person at the proposed offset. Two people collide when they share a
// generation row (vertical distance under NodeHeight) and their node boxes
// come closer than one HorizontalGap. The aggregate direction counter leans
// +1 per obstacle left of the candidate and -1 per obstacle right of it;
// its sign is the preferred escape direction, ties defaulting right.
func (st *state) checkFit(rl *RootLayout, offset float64) (fits bool, dir int) {
	fits = true
	counter := 0
	w := st.ruler.NodeWidth
	for _, id := range rl.Order {
		rel := rl.RelativePositions[id]
		x := rel.X + offset
		y := rel.Y + BASE_Y
		for _, oid := range st.placedOrder {
			o := st.positions[oid]
			if math.Abs(y-o.Y) >= st.ruler.NodeHeight {
				continue
			}
			if !geo.IntervalsOverlap(x, x+w+st.ruler.HorizontalGap, o.X, o.X+w+st.ruler.HorizontalGap) {
				continue
			}
			fits = false
			if x+w/2 > o.X+w/2 {
				counter++
			} else {
				counter--
			}
		}
	}
	return fits, geo.Sign(float64(counter))
}

// appendRight returns the offset immediately right of the rightmost placed
// component, or the base offset when nothing is placed yet.
func (st *state) appendRight(layouts []*RootLayout) float64 {
	right := math.Inf(-1)
	for _, rl := range layouts {
		if rl.Placed {
			right = math.Max(right, rl.FinalX+rl.Width)
		}
	}
	if math.IsInf(right, -1) {
		return BASE_X
	}
	return right + st.ruler.HorizontalGap*APPEND_GAP_FACTOR
}

// commit finalizes a component: its offset is recorded and every member's
// absolute position enters the global map. The map is append-only; a person
// already holding a position is never overwritten.
func (st *state) commit(rl *RootLayout, offset float64) {
	rl.Placed = true
	rl.FinalX = offset
	for _, id := range rl.Order {
		if _, ok := st.positions[id]; ok {
			continue
		}
		rel := rl.RelativePositions[id]
		st.positions[id] = geo.NewPoint(rel.X+offset, rel.Y+BASE_Y)
		st.placedOrder = append(st.placedOrder, id)
	}
}
