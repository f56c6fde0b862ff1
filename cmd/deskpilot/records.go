package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/deskpilot/internal/model"
	"github.com/verte-zerg/deskpilot/internal/routine"
	"github.com/verte-zerg/deskpilot/internal/stats"
	"github.com/verte-zerg/deskpilot/internal/store"
)

var (
	employeeName   string
	employeeEmail  string
	employeeRole   string
	employeeStatus string

	logUser     string
	logExercise string
	logDuration int
	logSource   string
	logAt       string

	routineUser    string
	routineSize    int
	routineFactor  float64
	routineUniform bool
)

func newEmployeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee USER_ID",
		Short: "Show one employee's history",
		Args:  cobra.ExactArgs(1),
		RunE:  runEmployeeCmd,
	}
	cmd.Flags().IntVar(&reportPlotWidth, "plot-width", 0, "trend plot width (default: fit terminal)")
	cmd.Flags().IntVar(&reportPlotHeight, "plot-height", defaultPlotHeight, "trend plot height")
	addHistoryFlag(cmd)
	cmd.AddCommand(newEmployeeAddCmd())
	cmd.AddCommand(newEmployeeStatusCmd())
	return cmd
}

func runEmployeeCmd(cmd *cobra.Command, args []string) error {
	companyID, err := requireCompany()
	if err != nil {
		return err
	}
	st, closeFn, err := openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	// The weekly report fills the history cache that the detail view reads.
	report, err := buildReport(cmd, st, companyID, stats.RangeLast7, nil, nil)
	if err != nil {
		return err
	}
	detail, err := stats.EmployeeDetail(commandContext(cmd), st, companyID, args[0], report.AsOf, report.Location)
	if errors.Is(err, stats.ErrEmployeeNotFound) || errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("employee %s not found in %s", args[0], report.Company.Name)
	}
	if err != nil {
		return err
	}
	board := report.Leaderboard(stats.BySessionsWeek, 0)
	detail.WeeklyRank = stats.RankOf(board, detail.User.ID)
	detail.Ranked = len(board)
	return stats.RenderDetail(cmd.OutOrStdout(), detail, stats.RenderOptions{
		PlotWidth:  reportPlotWidth,
		PlotHeight: reportPlotHeight,
		Compact:    rootCompact,
	})
}

func newEmployeeAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee to the company",
		Args:  cobra.NoArgs,
		RunE:  runEmployeeAddCmd,
	}
	cmd.Flags().StringVar(&employeeEmail, "email", "", "email address")
	cmd.Flags().StringVar(&employeeName, "name", "", "display name (default: email prefix)")
	cmd.Flags().StringVar(&employeeRole, "role", string(model.RoleEmployee), "role: employee or hr")
	cmd.Flags().StringVar(&employeeStatus, "status", string(model.StatusInvited), "status: invited, pending or active")
	return cmd
}

func runEmployeeAddCmd(cmd *cobra.Command, _ []string) error {
	companyID, err := requireCompany()
	if err != nil {
		return err
	}
	if strings.TrimSpace(employeeEmail) == "" {
		return fmt.Errorf("--email is required")
	}
	role := model.Role(employeeRole)
	if role != model.RoleEmployee && role != model.RoleHR {
		return fmt.Errorf("--role must be employee or hr")
	}
	st, closeFn, err := openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	ctx := commandContext(cmd)
	if _, err := st.FetchCompany(ctx, companyID); err != nil {
		return fmt.Errorf("failed to load company: %w", err)
	}
	user, err := st.InsertUser(ctx, model.User{
		Name:      employeeName,
		Email:     employeeEmail,
		Role:      role,
		CompanyID: companyID,
		Status:    model.Status(employeeStatus),
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), user.ID)
	return err
}

func newEmployeeStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status USER_ID STATUS",
		Short: "Change an employee's membership status",
		Args:  cobra.ExactArgs(2),
		RunE:  runEmployeeStatusCmd,
	}
}

func runEmployeeStatusCmd(cmd *cobra.Command, args []string) error {
	st, closeFn, err := openStore()
	if err != nil {
		return err
	}
	defer closeFn()
	if err := st.UpdateUserStatus(commandContext(cmd), args[0], model.Status(args[1])); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", args[0], args[1])
	return err
}

func newCompaniesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "companies",
		Short: "List companies",
		Args:  cobra.NoArgs,
		RunE:  runCompaniesCmd,
	}
}

func runCompaniesCmd(cmd *cobra.Command, _ []string) error {
	st, closeFn, err := openStore()
	if err != nil {
		return err
	}
	defer closeFn()
	companies, err := st.ListCompanies(commandContext(cmd))
	if err != nil {
		return err
	}
	if len(companies) == 0 {
		logErrf("No companies yet. Create demo data with: deskpilot seed\n")
		return nil
	}
	for _, c := range companies {
		tz := c.Timezone
		if tz == "" {
			tz = "-"
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", c.ID, c.Name, tz); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record a completed microbreak",
		Args:  cobra.NoArgs,
		RunE:  runLogCmd,
	}
	cmd.Flags().StringVar(&logUser, "user", "", "employee id")
	cmd.Flags().StringVar(&logExercise, "exercise", "", "exercise id")
	cmd.Flags().IntVar(&logDuration, "duration", 60, "session length in seconds")
	cmd.Flags().StringVar(&logSource, "source", "cli", "where the session was started")
	cmd.Flags().StringVar(&logAt, "at", "", "completion time (RFC 3339, default: now)")
	return cmd
}

func runLogCmd(cmd *cobra.Command, _ []string) error {
	if logUser == "" {
		return fmt.Errorf("--user is required")
	}
	if logDuration < 0 {
		return fmt.Errorf("--duration must be >= 0")
	}
	var at time.Time
	if logAt != "" {
		parsed, err := time.Parse(time.RFC3339, logAt)
		if err != nil {
			return fmt.Errorf("invalid --at value: %w", err)
		}
		if parsed.After(time.Now()) {
			return fmt.Errorf("--at must not be in the future")
		}
		at = parsed
	}
	st, closeFn, err := openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	saved, err := st.InsertLog(commandContext(cmd), model.SessionLog{
		UserID:          logUser,
		ExerciseID:      logExercise,
		Timestamp:       at,
		Source:          logSource,
		DurationSeconds: logDuration,
	})
	if err != nil {
		return err
	}
	logger.Debug("session logged", "user", saved.UserID, "company", saved.CompanyID, "exercise", saved.ExerciseID)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), saved.ID)
	return err
}

func newRoutineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routine",
		Short: "Pick today's microbreak routine",
		Args:  cobra.NoArgs,
		RunE:  runRoutineCmd,
	}
	cmd.Flags().StringVar(&routineUser, "user", "", "employee id; favors exercises they have done least")
	cmd.Flags().IntVar(&routineSize, "size", routine.DefaultSize, "number of exercises")
	cmd.Flags().Float64Var(&routineFactor, "factor", routine.DefaultFactor, "weight factor for less practiced exercises")
	cmd.Flags().BoolVar(&routineUniform, "uniform", false, "pick uniformly at random")
	return cmd
}

func runRoutineCmd(cmd *cobra.Command, _ []string) error {
	applyIntConfig(cmd, "size", &routineSize, fileCfg.Routine.Size)
	applyFloatConfig(cmd, "factor", &routineFactor, fileCfg.Routine.Factor)
	if routineSize <= 0 {
		return fmt.Errorf("--size must be > 0")
	}
	if routineFactor < 0 {
		return fmt.Errorf("--factor must be >= 0")
	}
	st, closeFn, err := openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	ctx := commandContext(cmd)
	exercises, err := st.ListExercises(ctx)
	if err != nil {
		return err
	}
	if len(exercises) == 0 {
		return fmt.Errorf("no exercises yet; create demo data with: deskpilot seed")
	}

	picker := routine.New()
	var picked []model.Exercise
	if routineUser == "" || routineUniform {
		picked = picker.Pick(exercises, routineSize)
	} else {
		logs, err := st.FetchAllLogsForUser(ctx, routineUser)
		if err != nil {
			return err
		}
		picked = picker.PickWeighted(exercises, routine.Counts(logs), routineSize, routineFactor)
	}
	out := cmd.OutOrStdout()
	for i, ex := range picked {
		line := strconv.Itoa(i+1) + ". " + ex.Name + " (" + string(ex.Difficulty) + ")"
		if ex.Description != "" {
			line += ": " + ex.Description
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
