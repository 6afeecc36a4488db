package main

import (
	"fmt"
	"io"
	"time"

	"sable/internal/buildpipeline"
)

var timingRows = []struct {
	stage buildpipeline.Stage
	verb  string
}{
	{buildpipeline.StageLoad, "loaded"},
	{buildpipeline.StageTokenize, "tokenized"},
	{buildpipeline.StageParse, "parsed"},
	{buildpipeline.StageCheck, "checked"},
}

func printStageTimings(out io.Writer, timings buildpipeline.Timings) {
	if out == nil {
		return
	}
	for _, row := range timingRows {
		if timings.Has(row.stage) {
			fmt.Fprintf(out, "%s %.1f ms\n", row.verb, toMillis(timings.Duration(row.stage)))
		}
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
