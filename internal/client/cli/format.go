package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/AleeDe/nafaverse/internal/planner"
)

// rupees formats whole rupees with thousands separators: Rs 1,250,000.
func rupees(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatInt(v, 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "Rs -" + b.String()
	}
	return "Rs " + b.String()
}

func rupeesF(v float64) string {
	return rupees(planner.Round(v))
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printChart(w io.Writer, points []planner.ChartPoint) {
	if len(points) == 0 {
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "Year\tProjected value")
	for _, p := range points {
		fmt.Fprintf(tw, "%d\t%s\n", p.Year, rupees(p.Amount))
	}
	_ = tw.Flush()
}

func printUnified(w io.Writer, u planner.Unified) {
	tw := newTable(w)
	if u.Meta.GoalName != "" {
		fmt.Fprintf(tw, "Goal:\t%s\n", u.Meta.GoalName)
	}
	if u.Meta.City != "" {
		fmt.Fprintf(tw, "City:\t%s\n", u.Meta.City)
	}
	if u.Meta.TargetYear != 0 {
		fmt.Fprintf(tw, "Target year:\t%d\n", u.Meta.TargetYear)
	}
	if u.Meta.Duration != 0 {
		fmt.Fprintf(tw, "Duration:\t%d years\n", u.Meta.Duration)
	}
	fmt.Fprintf(tw, "Monthly investment:\t%s\n", rupees(u.MonthlyInvestment))
	fmt.Fprintf(tw, "Total investment:\t%s\n", rupees(u.TotalInvestment))
	fmt.Fprintf(tw, "Final amount:\t%s\n", rupees(u.FinalAmount))
	fmt.Fprintf(tw, "Return / inflation:\t%.1f%% / %.1f%%\n", u.Meta.RoiRate, u.Meta.InflationRate)
	_ = tw.Flush()
	printChart(w, u.ChartData)
}
