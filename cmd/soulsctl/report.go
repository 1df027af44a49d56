package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sammyhga/SoulsData/internal/analytics"
	"github.com/sammyhga/SoulsData/internal/bootstrap"
)

func newReportCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard report for a trailing window",
		Example: `  soulsctl report --window 30
  soulsctl report --window 365 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			log, err := newLogger(v)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			comps, err := bootstrap.NewComponents(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer comps.Close()

			report, err := comps.Reports.Build(cmd.Context(), v.GetInt("window"))
			if err != nil {
				return err
			}

			if v.GetBool("json") {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			renderReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().Int("window", 0, "trailing window in days (default from config)")
	cmd.Flags().Bool("json", false, "print the report as JSON")
	return cmd
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	return t
}

// renderReport prints every section of report as a table.
func renderReport(w io.Writer, report *analytics.Report) {
	s := report.Stats

	summary := newTable(w, fmt.Sprintf("Last %d days (generated %s)", report.WindowDays, report.GeneratedAt.Format("2006-01-02 15:04 MST")))
	summary.AppendHeader(table.Row{"Metric", "Value"})
	summary.AppendRows([]table.Row{
		{"Total entries", s.TotalEntries},
		{"Won to Christ", s.Won},
		{"Recommitted", s.Recommitted},
		{"Encouraged", s.Encouraged},
		{"Invited", s.Invited},
		{"On WhatsApp", s.OnWhatsApp},
		{"Soul winners", s.UniqueSoulWinners},
		{"Residences", s.UniqueResidences},
		{"Zones", s.UniqueZones},
		{"Average age", s.AverageAge},
	})
	if report.Undated > 0 {
		summary.AppendFooter(table.Row{"Skipped (bad date)", report.Undated})
	}
	summary.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	summary.Render()

	renderSlices(w, "Categories", report.CategoryBreakdown)
	renderSlices(w, "Channel", report.ChannelBreakdown)

	series := newTable(w, "Activity by "+string(report.Granularity))
	series.AppendHeader(table.Row{"Period", "Total", "Won", "Recommitted"})
	for _, p := range report.TimeSeries {
		series.AppendRow(table.Row{p.Label, p.Total, p.Won, p.Recommitted})
	}
	series.Render()

	renderRanking(w, "Top soul winners", report.TopRecorders)
	renderRanking(w, "Top residences", report.TopResidences)
	renderRanking(w, "Top zones", report.TopZones)

	ages := newTable(w, "Age bands")
	ages.AppendHeader(table.Row{"Band", "Entries"})
	for _, b := range report.AgeBands {
		ages.AppendRow(table.Row{b.Label, b.Count})
	}
	ages.Render()
}

func renderSlices(w io.Writer, title string, slices []analytics.Slice) {
	t := newTable(w, title)
	t.AppendHeader(table.Row{"Label", "Entries"})
	for _, sl := range slices {
		t.AppendRow(table.Row{sl.Label, sl.Count})
	}
	t.Render()
}

func renderRanking(w io.Writer, title string, ranked []analytics.RankedCount) {
	t := newTable(w, title)
	t.AppendHeader(table.Row{"#", "Name", "Entries"})
	for i, r := range ranked {
		t.AppendRow(table.Row{i + 1, r.Label, r.Count})
	}
	t.Render()
}
