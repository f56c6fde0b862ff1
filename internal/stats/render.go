package stats

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/deskpilot/internal/model"
)

var (
	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	headingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

// RenderOptions tunes terminal output.
type RenderOptions struct {
	PlotWidth  int
	PlotHeight int
	ForceColor bool
	// Compact replaces the trend chart with a one-line sparkline.
	Compact bool
	// TopLimit bounds the top performers panel; 0 uses TopPerformersLimit.
	TopLimit int
}

type kpi struct {
	title string
	value string
}

// RenderDashboard prints today's KPIs and the employee table, most active first.
func RenderDashboard(w io.Writer, r Report) error {
	m := r.Metrics
	if err := renderHeading(w, fmt.Sprintf("%s | %s", companyName(r.Company), model.DateOf(r.AsOf, r.Location))); err != nil {
		return err
	}
	if err := renderKPIs(w, []kpi{
		{"Total Employees", strconv.Itoa(m.TotalEmployees)},
		{"Active Employees", strconv.Itoa(m.ActiveEmployees)},
		{"Sessions Today", strconv.Itoa(m.SessionsToday)},
		{"Participation", fmt.Sprintf("%d%%", m.ParticipationRate)},
	}); err != nil {
		return err
	}
	users := SortByToday(r.Users)
	if len(users) == 0 {
		_, err := fmt.Fprintln(w, "No employees found.")
		return err
	}
	headers := []string{"Name", "Email", "Status", "Today", "Week", "Streak"}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			u.Name,
			u.Email,
			string(u.Status),
			strconv.Itoa(u.SessionsToday),
			strconv.Itoa(u.SessionsWeek),
			streakLabel(u.CurrentStreak),
		})
	}
	return writeLines(w, formatTable(headers, rows, map[int]bool{3: true, 4: true, 5: true}))
}

// RenderAnalytics prints range KPIs, the trend chart, top performers and
// every employee's activity in the window.
func RenderAnalytics(w io.Writer, r Report, opts RenderOptions) error {
	m := r.Metrics
	label := r.Window.Label()
	if err := renderHeading(w, fmt.Sprintf("%s | %s", companyName(r.Company), label)); err != nil {
		return err
	}
	if err := renderKPIs(w, []kpi{
		{"Total Employees", strconv.Itoa(m.TotalEmployees)},
		{"Sessions", strconv.Itoa(m.SessionsInWindow)},
		{"Active Employees", strconv.Itoa(m.ActiveInWindow)},
		{"Participation", fmt.Sprintf("%d%%", m.WindowParticipationRate)},
	}); err != nil {
		return err
	}
	if err := renderTrend(w, "Daily Sessions", r.Trend, opts); err != nil {
		return err
	}
	limit := opts.TopLimit
	if limit <= 0 {
		limit = TopPerformersLimit
	}
	if err := RenderLeaderboard(w, "Top Performers", r.TopPerformers(limit)); err != nil {
		return err
	}
	if err := renderHeading(w, "Employee Details"); err != nil {
		return err
	}
	if len(r.Users) == 0 {
		_, err := fmt.Fprintln(w, "No employees found.")
		return err
	}
	headers := []string{"Name", "Email", fmt.Sprintf("Sessions (%s)", label), "Streak"}
	rows := make([][]string, 0, len(r.Users))
	for _, u := range r.Users {
		rows = append(rows, []string{u.Name, u.Email, strconv.Itoa(u.SessionsInWindow), streakLabel(u.CurrentStreak)})
	}
	return writeLines(w, formatTable(headers, rows, map[int]bool{2: true, 3: true}))
}

// RenderRoster lists the report's employees in roster order with their
// join date and today's activity.
func RenderRoster(w io.Writer, r Report) error {
	roster := r.Roster
	if err := renderHeading(w, fmt.Sprintf("%s | Employees", companyName(r.Company))); err != nil {
		return err
	}
	if len(roster) == 0 {
		_, err := fmt.Fprintln(w, "No employees found.")
		return err
	}
	metrics := make(map[string]model.UserMetric, len(r.Users))
	for _, u := range r.Users {
		metrics[u.UserID] = u
	}
	headers := []string{"ID", "Name", "Email", "Status", "Joined", "Today", "Streak"}
	rows := make([][]string, 0, len(roster))
	for _, u := range roster {
		m := metrics[u.ID]
		rows = append(rows, []string{
			u.ID,
			u.Name,
			u.Email,
			string(u.Status),
			model.DateOf(u.CreatedAt, r.Location).String(),
			strconv.Itoa(m.SessionsToday),
			streakLabel(m.CurrentStreak),
		})
	}
	return writeLines(w, formatTable(headers, rows, map[int]bool{5: true, 6: true}))
}

// RenderLeaderboard prints ranked entries under a title.
func RenderLeaderboard(w io.Writer, title string, entries []model.LeaderboardEntry) error {
	if err := renderHeading(w, title); err != nil {
		return err
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No activity yet.")
		return err
	}
	headers := []string{"#", "Name", "Score"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{strconv.Itoa(e.Rank), e.Name, strconv.Itoa(e.Score)})
	}
	return writeLines(w, formatTable(headers, rows, map[int]bool{0: true, 2: true}))
}

// RenderDetail prints a single employee's history view.
func RenderDetail(w io.Writer, d Detail, opts RenderOptions) error {
	if err := renderHeading(w, fmt.Sprintf("%s <%s>", d.User.Name, d.User.Email)); err != nil {
		return err
	}
	kpis := []kpi{
		{"Total Sessions", strconv.Itoa(d.TotalSessions)},
		{"Current Streak", streakLabel(d.CurrentStreak)},
	}
	if d.Ranked > 0 {
		rank := "-"
		if d.WeeklyRank > 0 {
			rank = fmt.Sprintf("#%d of %d", d.WeeklyRank, d.Ranked)
		}
		kpis = append(kpis, kpi{"Weekly Rank", rank})
	}
	if err := renderKPIs(w, kpis); err != nil {
		return err
	}
	if err := renderTrend(w, fmt.Sprintf("Last %d Days", DetailTrendDays), d.Trend, opts); err != nil {
		return err
	}
	if err := renderHeading(w, "Exercise Breakdown"); err != nil {
		return err
	}
	if len(d.Breakdown) == 0 {
		_, err := fmt.Fprintln(w, "No sessions logged.")
		return err
	}
	headers := []string{"Exercise", "Count", "Last Done"}
	rows := make([][]string, 0, len(d.Breakdown))
	for _, b := range d.Breakdown {
		rows = append(rows, []string{b.Name, strconv.Itoa(b.Count), b.LastAt.In(d.Location).Format("2006-01-02 15:04")})
	}
	return writeLines(w, formatTable(headers, rows, map[int]bool{1: true}))
}

func renderTrend(w io.Writer, title string, trend []model.DailyCount, opts RenderOptions) error {
	if !opts.Compact {
		return PlotTrend(w, title, trend, opts.PlotWidth, opts.PlotHeight, opts.ForceColor)
	}
	if len(trend) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "%s  [%s]  %s..%s\n\n", title, Sparkline(TrendValues(trend)), trend[0].Date, trend[len(trend)-1].Date)
	return err
}

func renderHeading(w io.Writer, title string) error {
	_, err := fmt.Fprintln(w, headingStyle.Render(title))
	return err
}

func renderKPIs(w io.Writer, kpis []kpi) error {
	cards := make([]string, 0, len(kpis))
	for _, k := range kpis {
		cards = append(cards, cardStyle.Render(cardTitleStyle.Render(k.title)+"\n"+cardValueStyle.Render(k.value)))
	}
	_, err := fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	return err
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func streakLabel(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

func companyName(c model.Company) string {
	if c.Name == "" {
		return c.ID
	}
	return c.Name
}
