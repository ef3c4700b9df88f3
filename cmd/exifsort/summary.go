package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"exifsort/internal/sorter"
)

// maxProblems bounds how many per-file problems the summary lists.
const maxProblems = 20

// printSummary writes the run summary: a table for terminals, a single
// key=value line otherwise.
func printSummary(w io.Writer, report *sorter.Report, tty bool) {
	if !tty {
		fmt.Fprintf(w, "total=%d linked=%d exists=%d skipped=%d unreadable=%d failed=%d cancelled=%d linked_bytes=%d duration=%s\n",
			report.Total, report.Linked, report.Exists, report.Skipped,
			report.Unreadable, report.Failed, report.Cancelled,
			report.LinkedBytes, report.Duration().Round(time.Millisecond))
		return
	}

	counts := newSummaryTable(column{title: "Outcome"}, column{title: "Files", numeric: true})
	for _, oc := range outcomeCounts(report) {
		if oc.always || oc.n > 0 {
			counts.row(oc.label, oc.n)
		}
	}
	counts.footer("total", report.Total)
	fmt.Fprintln(w, counts)
	fmt.Fprintf(w, "Linked %s into %s in %s\n",
		humanize.Bytes(uint64(report.LinkedBytes)), report.Output, report.Duration().Round(time.Millisecond))

	problems := report.Problems()
	if len(problems) == 0 {
		return
	}
	pt := newSummaryTable(column{title: "File"}, column{title: "Problem"})
	for i, p := range problems {
		if i == maxProblems {
			pt.footer("...", fmt.Sprintf("%d more in the log", len(problems)-maxProblems))
			break
		}
		pt.row(p.File.Path, fmt.Sprint(p.Err))
	}
	fmt.Fprintln(w, pt)
}

type outcomeCount struct {
	label  string
	n      int
	always bool
}

// outcomeCounts lists the per-outcome tallies in display order. Cancelled
// only shows up when the run was interrupted.
func outcomeCounts(report *sorter.Report) []outcomeCount {
	return []outcomeCount{
		{"linked", report.Linked, true},
		{"already present", report.Exists, true},
		{"no metadata", report.Skipped, true},
		{"unreadable", report.Unreadable, true},
		{"failed", report.Failed, true},
		{"cancelled", report.Cancelled, false},
	}
}

// printPlan lists planned links relative to the output root.
func printPlan(w io.Writer, plan []sorter.PlannedLink, tty bool) {
	if !tty {
		for _, p := range plan {
			fmt.Fprintf(w, "%s\t%s\n", filepath.ToSlash(p.Rel), p.Source)
		}
		return
	}
	pt := newSummaryTable(column{title: "Destination"}, column{title: "Source"})
	for _, p := range plan {
		pt.row(filepath.ToSlash(p.Rel), p.Source)
	}
	pt.footer(humanize.Comma(int64(len(plan)))+" planned", "")
	fmt.Fprintln(w, pt)
}
