package main

import (
	"fmt"
	"io"
	"time"

	"ranoc/internal/buildpipeline"
)

// printStageTimings prints one line per stage that ran. Stage times are
// summed across files, so they can exceed the wall clock of a parallel build.
func printStageTimings(out io.Writer, timings *buildpipeline.Timings) error {
	if out == nil || timings == nil {
		return nil
	}
	for _, stage := range buildpipeline.Stages() {
		if !timings.Has(stage) {
			continue
		}
		if _, err := fmt.Fprintf(out, "%-8s %.1f ms\n", stage, toMillis(timings.Duration(stage))); err != nil {
			return err
		}
	}
	return nil
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
