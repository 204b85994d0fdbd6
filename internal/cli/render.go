package cli

import (
	"fmt"
	"io"
	"strings"

	"coachboard/internal/api"
	"coachboard/internal/views"
)

const rule = 60

func header(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", green(strings.ToUpper(title)))
	fmt.Fprintln(w, strings.Repeat("=", rule))
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", yellow(title))
	fmt.Fprintln(w, strings.Repeat("-", rule))
}

func score(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}

func sessionLine(s api.Session, athletes map[string]string) string {
	line := fmt.Sprintf("%s  %-10s %s", s.Start, s.Type, s.Title)
	if name, ok := athletes[s.AthleteID]; ok {
		line += " (" + name + ")"
	}
	if s.RPE != nil {
		line += fmt.Sprintf("  RPE %d", *s.RPE)
	}
	return line
}

func athleteNames(athletes []api.Athlete) map[string]string {
	names := make(map[string]string, len(athletes))
	for _, a := range athletes {
		names[a.ID] = a.FullName()
	}
	return names
}

func renderDashboard(w io.Writer, d *views.Dashboard) {
	header(w, "Dashboard")
	fmt.Fprintf(w, "%s: %d\n", cyan("Active Athletes"), d.AthleteCount())
	fmt.Fprintf(w, "%s: %d\n", cyan("Active Goals"), len(d.ActiveGoals))
	fmt.Fprintf(w, "%s: %d\n", cyan("Upcoming Sessions"), len(d.UpcomingSessions))
	fmt.Fprintf(w, "%s: %d%%\n", cyan("Completion Rate"), d.CompletionRate)

	names := athleteNames(d.Athletes)

	section(w, "Athletes")
	if len(d.Athletes) == 0 {
		fmt.Fprintln(w, "No athletes yet.")
	}
	for _, a := range d.Athletes[:min(len(d.Athletes), 4)] {
		goals := views.FilterGoals(d.ActiveGoals, a.ID, "")
		fmt.Fprintf(w, "%s  %s  %d active goal(s)\n", bold(a.FullName()), a.Sector, len(goals))
	}

	section(w, "Recent Activity")
	if len(d.RecentSessions) == 0 {
		fmt.Fprintln(w, "No completed sessions.")
	}
	for _, s := range d.RecentSessions {
		fmt.Fprintln(w, sessionLine(s, names))
	}

	if d.LatestAssessment != nil {
		section(w, "Latest Assessment ("+d.LatestAssessment.Date+")")
		renderScores(w, &d.LatestAssessment.Scores)
	}
}

func renderScores(w io.Writer, s *api.Scores) {
	for i, v := range s.Values() {
		fmt.Fprintf(w, "%-20s %s\n", api.Dimensions[i], score(v))
	}
}

func renderRoster(w io.Writer, r *views.Roster, athletes []api.Athlete) {
	header(w, "Athletes")
	if len(r.Sectors) > 0 {
		fmt.Fprintf(w, "%s: %s\n", cyan("Sectors"), strings.Join(r.Sectors, ", "))
	}

	if len(athletes) == 0 {
		fmt.Fprintln(w, "\nNo athletes match your filters.")
		return
	}

	for _, a := range athletes {
		section(w, a.FullName())
		if age, ok := r.Age(a); ok {
			fmt.Fprintf(w, "%s: %d\n", cyan("Age"), age)
		}
		if a.Sector != "" {
			fmt.Fprintf(w, "%s: %s\n", cyan("Sector"), a.Sector)
		}
		if len(a.Specialties) > 0 {
			fmt.Fprintf(w, "%s: %s\n", cyan("Specialties"), strings.Join(a.Specialties, ", "))
		}
		for _, g := range r.ActiveGoals(a.ID) {
			fmt.Fprintf(w, "  %s %s (%s)\n", yellow("goal"), g.Name, g.Priority)
		}
		for _, rec := range r.AthleteRecords(a.ID) {
			fmt.Fprintf(w, "  %s %s %s (%s)\n", yellow("record"), rec.Discipline, rec.Value, rec.Date)
		}
	}

	fmt.Fprintf(w, "\n%s: %d  %s: %d\n", cyan("Total"), len(r.Athletes), cyan("Active Goals"), len(views.FilterGoals(r.Goals, "", api.GoalActive)))
}

func renderProgram(w io.Writer, d *views.ProgramDetail) {
	header(w, d.Program.Name)
	fmt.Fprintf(w, "%s: %s\n", cyan("Status"), d.Program.Status)
	fmt.Fprintf(w, "%s: %s to %s (%d weeks)\n", cyan("Dates"), d.Program.StartDate, d.Program.EndDate, d.DurationWeeks)
	fmt.Fprintf(w, "%s: %d per week\n", cyan("Frequency"), d.Program.WeeklyFrequency)
	fmt.Fprintf(w, "%s: %d%%\n", cyan("Progress"), d.Progress)
	if d.Goal != nil {
		fmt.Fprintf(w, "%s: %s (%s)\n", cyan("Goal"), d.Goal.Name, d.Goal.Status)
	}
	if d.Program.StructureText != "" {
		fmt.Fprintf(w, "\n%s\n", d.Program.StructureText)
	}

	for _, status := range []string{api.SessionScheduled, api.SessionDone, api.SessionDraft, api.SessionCanceled} {
		sessions := d.ByStatus[status]
		if len(sessions) == 0 {
			continue
		}
		section(w, fmt.Sprintf("%s (%d)", status, len(sessions)))
		for _, s := range views.SortSessionsByStartDesc(sessions) {
			fmt.Fprintln(w, sessionLine(s, nil))
		}
	}
}

func renderAthlete(w io.Writer, d *views.AthleteDetail) {
	a := d.Athlete
	header(w, a.FullName())
	if d.HasAge {
		fmt.Fprintf(w, "%s: %d\n", cyan("Age"), d.Age)
	}
	for _, field := range [][2]string{
		{"Sex", a.Sex},
		{"Sector", a.Sector},
		{"Category", a.Category},
		{"Club", a.Club},
		{"Coach", a.CoachName},
		{"Health", a.HealthStatus},
	} {
		if field[1] != "" {
			fmt.Fprintf(w, "%s: %s\n", cyan(field[0]), field[1])
		}
	}
	if len(a.Strengths) > 0 {
		fmt.Fprintf(w, "%s: %s\n", cyan("Strengths"), strings.Join(a.Strengths, ", "))
	}
	if len(a.Weaknesses) > 0 {
		fmt.Fprintf(w, "%s: %s\n", cyan("Weaknesses"), strings.Join(a.Weaknesses, ", "))
	}
	for _, inj := range a.Injuries {
		fmt.Fprintf(w, "  %s %s %s\n", red("injury"), inj.Date, inj.Type)
	}

	renderOverview(w, &d.Overview)

	section(w, fmt.Sprintf("Goals (%d active)", len(d.ActiveGoals)))
	for _, g := range d.Goals {
		fmt.Fprintf(w, "%-10s %s  %s -> %s\n", g.Status, g.Name, g.CurrentValue, g.TargetValue)
	}

	section(w, "Personal Records")
	for _, r := range d.Records {
		fmt.Fprintf(w, "%s  %s  %s\n", r.Date, r.Discipline, r.Value)
	}

	renderSeries(w, &d.Series)
}

func renderOverview(w io.Writer, o *api.AthleteOverview) {
	section(w, "Overview")
	fmt.Fprintf(w, "%s: %d min\n", cyan("Weekly Volume"), o.WeeklyVolume)
	fmt.Fprintf(w, "%s: %.1f\n", cyan("Average Intensity"), o.IntensityAvg)
	for _, kind := range views.CountByKey(o.SessionsCountByType) {
		fmt.Fprintf(w, "  %-10s %d\n", kind, o.SessionsCountByType[kind])
	}
	for _, e := range o.NextEvents {
		line := fmt.Sprintf("  %s %s %s", yellow("event"), e.Date, e.Name)
		if e.Place != "" {
			line += " @ " + e.Place
		}
		fmt.Fprintln(w, line)
	}
}

func renderSeries(w io.Writer, s *api.AssessmentSeries) {
	section(w, "Assessments")
	if len(s.Dates) == 0 {
		fmt.Fprintln(w, "No assessments yet.")
		return
	}
	fmt.Fprintf(w, "%-20s %s\n", "", strings.Join(s.Dates, "  "))
	for i, series := range s.Series() {
		cells := make([]string, len(series))
		for j, v := range series {
			cells[j] = fmt.Sprintf("%-10s", score(v))
		}
		fmt.Fprintf(w, "%-20s %s\n", api.Dimensions[i], strings.Join(cells, "  "))
	}
}
