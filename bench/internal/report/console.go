// CLAUDE:SUMMARY Renders the final comparison table and winner lines to a writer.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Summarize writes the human-readable comparison table. Targets whose
// measurement failed entirely show as "n/a" rather than zeros.
func Summarize(w io.Writer, rep *Report) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "app\tload ms\tdcl ms\tfcp ms\tlcp ms\trequests\ttransfer kb\tjs kb\tcss kb\tnav ms\ttrials")
	for _, name := range rep.Order {
		agg := rep.Results[name]
		if agg == nil {
			fmt.Fprintf(tw, "%s\tn/a\tn/a\tn/a\tn/a\tn/a\tn/a\tn/a\tn/a\t%s\t0\n",
				name, navCell(rep, name))
			continue
		}
		fmt.Fprintf(tw, "%s\t%.0f\t%.0f\t%.0f\t%.0f\t%.1f\t%.1f\t%.1f\t%.1f\t%s\t%d\n",
			name,
			agg.TotalLoadTimeMs,
			agg.DOMContentLoadedMs,
			agg.FirstContentfulPaintMs,
			agg.LargestContentfulPaintMs,
			agg.NetworkRequestCount,
			agg.TotalTransferBytes/1024,
			agg.JSBytes/1024,
			agg.CSSBytes/1024,
			navCell(rep, name),
			agg.Iterations)
	}
	tw.Flush()

	fmt.Fprintln(w)
	winnerLine(w, "fastest load", rep.Comparison.LoadTimeWinner,
		fmt.Sprintf("%.0f ms ahead", rep.Comparison.LoadTimeDifferenceMs))
	winnerLine(w, "smallest transfer", rep.Comparison.TransferSizeWinner,
		fmt.Sprintf("%.1f kb ahead", rep.Comparison.TransferSizeDifferenceBytes/1024))
	winnerLine(w, "fastest navigation", rep.Comparison.NavigationWinner,
		fmt.Sprintf("%.0f ms ahead", rep.Comparison.NavigationDifferenceMs))
}

func navCell(rep *Report, name string) string {
	ms, ok := rep.NavigationMs[name]
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.0f", ms)
}

func winnerLine(w io.Writer, label, winner, margin string) {
	if winner == "" {
		fmt.Fprintf(w, "%s: no verdict\n", label)
		return
	}
	fmt.Fprintf(w, "%s: %s (%s)\n", label, winner, margin)
}
