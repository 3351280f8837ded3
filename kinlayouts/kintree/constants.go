package kintree

const (
	NODE_WIDTH     = 180.
	NODE_HEIGHT    = 80.
	HORIZONTAL_GAP = 60.
	GENERATION_GAP = 180.
)

const (
	// Everything is placed below and right of this base so output
	// coordinates stay non-negative.
	BASE_X = 100.
	BASE_Y = 100.

	// The placement scheduler commits one component per round. The cap
	// guarantees termination; components still unplaced at the cap are
	// dropped from output and logged.
	MAX_PLACEMENT_ROUNDS = 100

	// Collision probe scan: fixed steps outward from the desired offset, up
	// to a hard bound, flipping to the opposite direction once the preferred
	// side has failed for this long.
	PROBE_STEP       = 50.
	PROBE_BOUND      = 4000.
	PROBE_FLIP_AFTER = 1500.

	// Fallback append leaves this many horizontal gaps after the rightmost
	// placed component.
	APPEND_GAP_FACTOR = 1.5
)

// Scheduler scores per round. A component whose anchors have started landing
// is strongly preferred; one still waiting on anchors is deferred below
// fully independent components.
const (
	SCORE_ANCHORED_READY   = 10
	SCORE_ANCHORED_WAITING = -5
	SCORE_FREE             = 1
)

// Ruler carries the four spacing constants, the engine's entire
// configuration surface. A nil Ruler means the defaults above.
type Ruler struct {
	NodeWidth     float64
	NodeHeight    float64
	HorizontalGap float64
	GenerationGap float64
}

func DefaultRuler() *Ruler {
	return &Ruler{
		NodeWidth:     NODE_WIDTH,
		NodeHeight:    NODE_HEIGHT,
		HorizontalGap: HORIZONTAL_GAP,
		GenerationGap: GENERATION_GAP,
	}
}
