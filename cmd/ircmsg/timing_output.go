package main

import (
	"fmt"
	"io"

	"ircmsg/internal/observ"
)

func printTimings(out io.Writer, report observ.Report) {
	if out == nil || len(report.Phases) == 0 {
		return
	}
	for _, p := range report.Phases {
		fmt.Fprintf(out, "%s %.1f ms", p.Name, p.DurationMS)
		if p.Lines > 0 {
			fmt.Fprintf(out, " (%d lines, %s)", p.Lines, observ.FormatRate(p.LinesPerSec))
		}
		if p.Note != "" {
			fmt.Fprintf(out, " [%s]", p.Note)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "total %.1f ms\n", report.TotalMS)
}
