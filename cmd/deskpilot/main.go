// Package main provides the CLI entrypoint for deskpilot.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/deskpilot/internal/config"
	"github.com/verte-zerg/deskpilot/internal/routine"
	"github.com/verte-zerg/deskpilot/internal/stats"
	"github.com/verte-zerg/deskpilot/internal/store"
)

const (
	defaultRange       = string(stats.RangeLast7)
	defaultHistoryDays = 0
	defaultPlotHeight  = 8
)

var (
	rootDB       string
	rootCompany  string
	rootTimezone string
	rootVerbose  bool
	rootCompact  bool

	fileCfg config.FileConfig
	logger  = slog.New(slog.DiscardHandler)
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "deskpilot",
		Short:             "Workplace wellness participation analytics",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: loadSettings,
	}

	rootCmd.PersistentFlags().StringVar(&rootDB, "db", config.DefaultDBPath(), "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&rootCompany, "company", "", "company id")
	rootCmd.PersistentFlags().StringVar(&rootTimezone, "timezone", "", "reporting timezone when the company has none (default: local)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "log diagnostics to stderr")
	rootCmd.PersistentFlags().BoolVar(&rootCompact, "compact", false, "render trends as a one-line sparkline")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newAnalyticsCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newEmployeeCmd())
	rootCmd.AddCommand(newEmployeesCmd())
	rootCmd.AddCommand(newCompaniesCmd())
	rootCmd.AddCommand(newLogCmd())
	rootCmd.AddCommand(newRoutineCmd())
	rootCmd.AddCommand(newSeedCmd())

	return rootCmd
}

// loadSettings resolves flag > env > file > default for the shared flags.
func loadSettings(cmd *cobra.Command, _ []string) error {
	level := slog.LevelWarn
	if rootVerbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	envCfg, err := config.LoadEnv()
	if err != nil {
		return err
	}
	fileCfg, err = config.LoadConfig(envCfg.ConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	envCfg.Apply(&fileCfg)

	applyStringConfig(cmd, "db", &rootDB, fileCfg.Store.Path)
	applyStringConfig(cmd, "company", &rootCompany, fileCfg.Report.Company)
	applyStringConfig(cmd, "timezone", &rootTimezone, fileCfg.Report.Timezone)
	logger.Debug("settings loaded", "db", rootDB, "company", rootCompany, "timezone", rootTimezone)
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	envCfg, err := config.LoadEnv()
	if err != nil {
		return err
	}
	path := envCfg.ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// openStore opens the database behind the per-user history cache.
func openStore() (*store.Cached, func(), error) {
	st, err := store.Open(rootDB, store.WithLogger(logger))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	closeFn := func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}
	size := store.DefaultCacheSize
	if fileCfg.Store.CacheSize != nil {
		size = *fileCfg.Store.CacheSize
	}
	cached, err := store.NewCached(st, size)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return cached, closeFn, nil
}

func requireCompany() (string, error) {
	company := strings.TrimSpace(rootCompany)
	if company == "" {
		return "", fmt.Errorf("--company is required (or set DESKPILOT_COMPANY)")
	}
	return company, nil
}

func defaultLocation() (*time.Location, error) {
	if rootTimezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(rootTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid --timezone value: %w", err)
	}
	return loc, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# deskpilot configuration
# Uncomment a value to enable it. Environment variables (DESKPILOT_DB,
# DESKPILOT_TIMEZONE, DESKPILOT_COMPANY) override the file; CLI flags
# override both.

[report]
# company = ""              # Default company id
# timezone = "UTC"          # Used when a company has no timezone
# range = %q            # today, 7days, 30days
# leaderboard-limit = %d    # Rows in the leaderboard
# top-limit = %d            # Rows in the top performers panel
# history-days = %d          # Streak lookback in days (0 = all history)

[store]
# path = %q
# cache-size = %d          # Employees whose history stays cached

[routine]
# size = %d                 # Exercises per daily routine
# factor = %.1f             # Extra weight for exercises done less often
`,
		defaultRange,
		stats.LeaderboardLimit,
		stats.TopPerformersLimit,
		defaultHistoryDays,
		config.DefaultDBPath(),
		store.DefaultCacheSize,
		routine.DefaultSize,
		routine.DefaultFactor,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
