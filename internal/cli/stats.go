package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"pomopro/internal/core/model"
)

var (
	statsDays int

	headerStyle = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	heatStyles  = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	}
)

type statsOutput struct {
	model.Statistics
	Heatmap []model.DayCount `json:"heatmap"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show focus statistics and the daily heatmap",
	Long: `Show focus statistics and the daily heatmap.

Examples:
  pomopro stats             # totals, streak and the last 7 days
  pomopro stats --days 30   # last 30 days
  pomopro stats --json      # machine readable`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if statsDays <= 0 {
			return fmt.Errorf("--days must be positive, got %d", statsDays)
		}
		ledger, err := openLedger()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		stats := ledger.Statistics()
		heatmap := ledger.Heatmap(statsDays)
		if jsonOutput {
			return outputJSON(out, statsOutput{Statistics: stats, Heatmap: heatmap})
		}
		printStatistics(out, stats, heatmap)
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsDays, "days", heatmapDays, "number of days in the heatmap")
	rootCmd.AddCommand(statsCmd)
}

func printStatistics(out io.Writer, stats model.Statistics, heatmap []model.DayCount) {
	fmt.Fprintln(out, headerStyle.Render("Focus statistics"))
	fmt.Fprintf(out, "  %s %d\n", labelStyle.Render("sessions:"), stats.TotalFocusSessions)
	fmt.Fprintf(out, "  %s %d\n", labelStyle.Render("minutes: "), stats.TotalFocusMinutes)
	streak := fmt.Sprintf("%d day(s)", stats.CurrentStreak)
	if stats.LastStreakDate != "" {
		streak += " (last " + stats.LastStreakDate + ")"
	}
	fmt.Fprintf(out, "  %s %s\n", labelStyle.Render("streak:  "), streak)

	if len(heatmap) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("Last "+fmt.Sprint(len(heatmap))+" days"))
	peak := 0
	for _, day := range heatmap {
		peak = max(peak, day.Count)
	}
	for _, day := range heatmap {
		fmt.Fprintf(out, "  %s %s %d\n", day.Date, heatCell(day.Count, peak), day.Count)
	}
}

// heatCell renders one day as a row of blocks shaded by its share of the peak.
func heatCell(count, peak int) string {
	if count == 0 || peak == 0 {
		return heatStyles[0].Render("·")
	}
	level := 1 + (count*(len(heatStyles)-2))/peak
	level = min(level, len(heatStyles)-1)
	return heatStyles[level].Render(strings.Repeat("■", count))
}
