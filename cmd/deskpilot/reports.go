package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/deskpilot/internal/export"
	"github.com/verte-zerg/deskpilot/internal/model"
	"github.com/verte-zerg/deskpilot/internal/stats"
)

var (
	reportRange       string
	reportStart       string
	reportEnd         string
	reportHistoryDays int
	reportTopLimit    int
	reportPlotWidth   int
	reportPlotHeight  int

	leaderboardBy    string
	leaderboardLimit int

	exportOut string
)

func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&reportRange, "range", defaultRange, "report range: today, 7days, 30days or custom")
	cmd.Flags().StringVar(&reportStart, "start", "", "custom range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&reportEnd, "end", "", "custom range end (YYYY-MM-DD)")
	addHistoryFlag(cmd)
}

func addHistoryFlag(cmd *cobra.Command) {
	cmd.Flags().IntVar(&reportHistoryDays, "history-days", defaultHistoryDays, "streak lookback in days (0 = all history)")
}

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show today's participation",
		Args:  cobra.NoArgs,
		RunE:  runDashboardCmd,
	}
	addHistoryFlag(cmd)
	return cmd
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	report, err := loadReport(cmd, stats.RangeToday, nil, nil)
	if err != nil {
		return err
	}
	return stats.RenderDashboard(cmd.OutOrStdout(), report)
}

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Rank active employees",
		Args:  cobra.NoArgs,
		RunE:  runLeaderboardCmd,
	}
	cmd.Flags().StringVar(&leaderboardBy, "by", "weekly", "ranking metric: weekly, streak, today or window")
	cmd.Flags().IntVar(&leaderboardLimit, "limit", stats.LeaderboardLimit, "maximum rows")
	addRangeFlags(cmd)
	return cmd
}

func runLeaderboardCmd(cmd *cobra.Command, _ []string) error {
	applyIntConfig(cmd, "limit", &leaderboardLimit, fileCfg.Report.LeaderboardLimit)
	by, err := stats.ParseSelector(leaderboardBy)
	if err != nil {
		return err
	}
	kind, start, end, err := resolveRangeFlags(cmd)
	if err != nil {
		return err
	}
	report, err := loadReport(cmd, kind, start, end)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("Leaderboard | %s", leaderboardTitle(by, report.Window))
	return stats.RenderLeaderboard(cmd.OutOrStdout(), title, report.Leaderboard(by, leaderboardLimit))
}

func leaderboardTitle(by stats.Selector, w stats.Window) string {
	switch by.Name {
	case stats.BySessionsWeek.Name:
		return "Sessions This Week"
	case stats.ByStreak.Name:
		return "Current Streak"
	case stats.BySessionsToday.Name:
		return "Sessions Today"
	default:
		return fmt.Sprintf("Sessions (%s)", w.Label())
	}
}

func newAnalyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show participation over a date range",
		Args:  cobra.NoArgs,
		RunE:  runAnalyticsCmd,
	}
	addRangeFlags(cmd)
	cmd.Flags().IntVar(&reportTopLimit, "top", stats.TopPerformersLimit, "rows in the top performers panel")
	cmd.Flags().IntVar(&reportPlotWidth, "plot-width", 0, "trend plot width (default: fit terminal)")
	cmd.Flags().IntVar(&reportPlotHeight, "plot-height", defaultPlotHeight, "trend plot height")
	return cmd
}

func runAnalyticsCmd(cmd *cobra.Command, _ []string) error {
	applyIntConfig(cmd, "top", &reportTopLimit, fileCfg.Report.TopLimit)
	kind, start, end, err := resolveRangeFlags(cmd)
	if err != nil {
		return err
	}
	report, err := loadReport(cmd, kind, start, end)
	if err != nil {
		return err
	}
	return stats.RenderAnalytics(cmd.OutOrStdout(), report, stats.RenderOptions{
		PlotWidth:  reportPlotWidth,
		PlotHeight: reportPlotHeight,
		Compact:    rootCompact,
		TopLimit:   reportTopLimit,
	})
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the employee report as CSV",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	addRangeFlags(cmd)
	cmd.Flags().StringVar(&exportOut, "out", ".", "output directory, or - for stdout")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	kind, start, end, err := resolveRangeFlags(cmd)
	if err != nil {
		return err
	}
	report, err := loadReport(cmd, kind, start, end)
	if err != nil {
		return err
	}
	if exportOut == "-" {
		return export.WriteCSV(cmd.OutOrStdout(), report.Window.Label(), report.Users)
	}
	path := filepath.Join(exportOut, export.FileName(report.Company.Name, report.AsOf.In(report.Location)))
	if err := writeCSVFile(path, report); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d employees)\n", path, len(report.Users))
	return err
}

func writeCSVFile(path string, report stats.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "export-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp export: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if err := export.WriteCSV(writer, report.Window.Label(), report.Users); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close export: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func newEmployeesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employees",
		Short: "List the company's employees",
		Args:  cobra.NoArgs,
		RunE:  runEmployeesCmd,
	}
	addHistoryFlag(cmd)
	return cmd
}

func runEmployeesCmd(cmd *cobra.Command, _ []string) error {
	companyID, err := requireCompany()
	if err != nil {
		return err
	}
	st, closeFn, err := openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	report, err := buildReport(cmd, st, companyID, stats.RangeToday, nil, nil)
	if err != nil {
		return err
	}
	return stats.RenderRoster(cmd.OutOrStdout(), report)
}

func resolveRangeFlags(cmd *cobra.Command) (stats.RangeKind, *model.Date, *model.Date, error) {
	applyStringConfig(cmd, "range", &reportRange, fileCfg.Report.Range)
	kind, err := stats.ParseRangeKind(reportRange)
	if err != nil {
		return "", nil, nil, err
	}
	start, err := parseDateFlag("start", reportStart)
	if err != nil {
		return "", nil, nil, err
	}
	end, err := parseDateFlag("end", reportEnd)
	if err != nil {
		return "", nil, nil, err
	}
	if (start != nil || end != nil) && kind != stats.RangeCustom {
		if cmd.Flags().Changed("range") {
			return "", nil, nil, fmt.Errorf("--start/--end require --range custom")
		}
		kind = stats.RangeCustom
	}
	return kind, start, end, nil
}

func parseDateFlag(name, value string) (*model.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := model.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s value: %w", name, err)
	}
	return &d, nil
}

func loadReport(cmd *cobra.Command, kind stats.RangeKind, start, end *model.Date) (stats.Report, error) {
	companyID, err := requireCompany()
	if err != nil {
		return stats.Report{}, err
	}
	st, closeFn, err := openStore()
	if err != nil {
		return stats.Report{}, err
	}
	defer closeFn()
	return buildReport(cmd, st, companyID, kind, start, end)
}

func buildReport(cmd *cobra.Command, src stats.Source, companyID string, kind stats.RangeKind, start, end *model.Date) (stats.Report, error) {
	applyIntConfig(cmd, "history-days", &reportHistoryDays, fileCfg.Report.HistoryDays)
	loc, err := defaultLocation()
	if err != nil {
		return stats.Report{}, err
	}
	report, err := stats.BuildReport(commandContext(cmd), src, stats.ReportRequest{
		CompanyID:   companyID,
		Range:       kind,
		CustomStart: start,
		CustomEnd:   end,
		Now:         time.Now(),
		Location:    loc,
		HistoryDays: reportHistoryDays,
	}, stats.NewLogObserver(logger))
	if errors.Is(err, stats.ErrIncompleteRange) {
		return stats.Report{}, fmt.Errorf("custom range requires both --start and --end")
	}
	if err != nil {
		return stats.Report{}, fmt.Errorf("failed to build report: %w", err)
	}
	return report, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
