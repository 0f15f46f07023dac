package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"TreeScope/internal/explorer"
	"TreeScope/internal/model"
	"TreeScope/internal/recorder"
)

// FormatDrawSummary formats what a draw produced for display.
func FormatDrawSummary(res *model.DrawResult) string {
	var b strings.Builder

	if res.YLabel != "" {
		b.WriteString(fmt.Sprintf("%s vs %s\n", res.Label, res.YLabel))
	} else {
		b.WriteString(fmt.Sprintf("%s\n", res.Label))
	}
	b.WriteString(fmt.Sprintf("  entries: %s", humanize.Comma(int64(res.EntriesAfter))))
	if res.CutApplied {
		b.WriteString(fmt.Sprintf(" of %s (cut %q)", humanize.Comma(int64(res.EntriesBefore)), res.Cut))
	} else if res.Cut != "" {
		b.WriteString(fmt.Sprintf(" (cut %q ignored)", res.Cut))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("  bins: %d  x: [%.4g, %.4g]", res.Bins, res.XRange.Min, res.XRange.Max))
	if res.YLabel != "" {
		b.WriteString(fmt.Sprintf("  y: [%.4g, %.4g]", res.YRange.Min, res.YRange.Max))
	}
	b.WriteString("\n")

	if f := res.Fit; f != nil {
		if f.Converged {
			b.WriteString(fmt.Sprintf("  fit %s: amp=%.4g  μ=%.4g  σ=%.4g\n", f.Kind, f.Amplitude, f.Mean, f.Sigma))
		} else {
			b.WriteString(fmt.Sprintf("  fit %s: failed (%s)\n", f.Kind, f.Reason))
		}
	}
	return b.String()
}

// FormatKeys formats the top-level contents of a file.
func FormatKeys(path string, keys []explorer.Key) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s\n", path))
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("  %-24s %s\n", k.Name, k.Class))
	}
	return b.String()
}

// FormatTree formats a tree's entry count and branch names.
func FormatTree(t *explorer.Tree) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s: %s entries\n", t.Name(), humanize.Comma(t.Entries())))
	for _, name := range t.Branches() {
		b.WriteString(fmt.Sprintf("  %s\n", name))
	}
	return b.String()
}

// FormatHistory formats recorded draws, newest first.
func FormatHistory(records []recorder.DrawRecord) string {
	if len(records) == 0 {
		return "no draws recorded\n"
	}
	var b strings.Builder
	for _, r := range records {
		label := r.Label
		if r.YLabel != "" {
			label += " vs " + r.YLabel
		}
		b.WriteString(fmt.Sprintf("%s  %-20s %s/%s  %s entries",
			humanize.Time(r.Time), label, r.Source, r.Tree, humanize.Comma(int64(r.EntriesAfter))))
		if r.CutApplied {
			b.WriteString(fmt.Sprintf(" (cut %q)", r.Cut))
		}
		if r.FitKind != "" {
			if r.FitConverged {
				b.WriteString(fmt.Sprintf("  μ=%.4g σ=%.4g", r.FitMean, r.FitSigma))
			} else {
				b.WriteString("  fit failed")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
