package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/pflag"

	"cdr.dev/slog"

	"oss.terrastruct.com/util-go/xdefer"
	"oss.terrastruct.com/util-go/xjson"
	"oss.terrastruct.com/util-go/xmain"

	"github.com/kindredlab/kindred/kingraph"
	"github.com/kindredlab/kindred/kinlayouts"
	"github.com/kindredlab/kindred/kinlayouts/kintree"
	"github.com/kindredlab/kindred/lib/log"
)

func main() {
	xmain.Main(run)
}

func run(ctx context.Context, ms *xmain.State) (err error) {
	defer xdefer.Errorf(&err, "failed to compute layout")

	debugFlag, err := ms.Opts.Bool("DEBUG", "debug", "d", false, "print debug logs.")
	if err != nil {
		return err
	}
	nodeWidthFlag, err := ms.Opts.Int64("KINDRED_NODE_WIDTH", "node-width", "", kintree.NODE_WIDTH, "width of one person node in layout units")
	if err != nil {
		return err
	}
	nodeHeightFlag, err := ms.Opts.Int64("KINDRED_NODE_HEIGHT", "node-height", "", kintree.NODE_HEIGHT, "height of one person node in layout units")
	if err != nil {
		return err
	}
	horizontalGapFlag, err := ms.Opts.Int64("KINDRED_HORIZONTAL_GAP", "horizontal-gap", "", kintree.HORIZONTAL_GAP, "gap between nodes in one row")
	if err != nil {
		return err
	}
	generationGapFlag, err := ms.Opts.Int64("KINDRED_GENERATION_GAP", "generation-gap", "", kintree.GENERATION_GAP, "vertical gap between generation rows")
	if err != nil {
		return err
	}

	err = ms.Opts.Flags.Parse(ms.Opts.Args)
	if err != nil {
		return xmain.UsageErrorf("failed to parse flags: %v", err)
	}

	inputPath := "-"
	outputPath := "-"
	args := ms.Opts.Flags.Args()
	switch len(args) {
	case 0:
	case 1:
		inputPath = args[0]
	case 2:
		inputPath = args[0]
		outputPath = args[1]
	default:
		return xmain.UsageErrorf("too many arguments passed")
	}

	ctx = log.Stderr(ctx)
	if *debugFlag {
		ctx = log.Leveled(ctx, slog.LevelDebug)
	}
	ms.Opts.Flags.Visit(func(f *pflag.Flag) {
		log.Debug(ctx, "flag set", slog.F("flag", f.Name), slog.F("value", f.Value.String()))
	})

	input, err := ms.ReadPath(inputPath)
	if err != nil {
		return err
	}
	people, err := unmarshalPeople(input)
	if err != nil {
		return err
	}

	ruler := &kintree.Ruler{
		NodeWidth:     float64(*nodeWidthFlag),
		NodeHeight:    float64(*nodeHeightFlag),
		HorizontalGap: float64(*horizontalGapFlag),
		GenerationGap: float64(*generationGapFlag),
	}
	layout, err := kinlayouts.CalculateLayout(ctx, kingraph.NewGraph(people), ruler)
	if err != nil {
		return err
	}

	return ms.WritePath(outputPath, xjson.Marshal(layout))
}

// unmarshalPeople accepts either a bare JSON array of people or an object
// with a "people" key, matching the two snapshot shapes stores export.
func unmarshalPeople(input []byte) ([]*kingraph.Person, error) {
	var people []*kingraph.Person
	if err := json.Unmarshal(input, &people); err == nil {
		return people, nil
	}
	var wrapped struct {
		People []*kingraph.Person `json:"people"`
	}
	if err := json.Unmarshal(input, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.People, nil
}
