package views

import (
	"reflect"
	"testing"
	"time"

	"coachboard/internal/api"
)

func goal(id, athleteID, status string) api.Goal {
	g := api.Goal{ID: id}
	g.AthleteID = athleteID
	g.Status = status
	return g
}

func session(id, status, start string) api.Session {
	s := api.Session{ID: id}
	s.Status = status
	s.Start = start
	return s
}

func goalIDs(goals []api.Goal) []string {
	ids := make([]string, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}
	return ids
}

func sessionIDs(sessions []api.Session) []string {
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	return ids
}

func TestFilterGoals(t *testing.T) {
	goals := []api.Goal{
		goal("g1", "abc", api.GoalActive),
		goal("g2", "abc", api.GoalAchieved),
		goal("g3", "xyz", api.GoalActive),
		goal("g4", "abc", api.GoalActive),
		goal("g5", "xyz", api.GoalPostponed),
	}

	tests := []struct {
		name      string
		athleteID string
		status    string
		want      []string
	}{
		{"active for abc", "abc", api.GoalActive, []string{"g1", "g4"}},
		{"active for anyone", "", api.GoalActive, []string{"g1", "g3", "g4"}},
		{"everything for xyz", "xyz", "", []string{"g3", "g5"}},
		{"no filters", "", "", []string{"g1", "g2", "g3", "g4", "g5"}},
		{"no match", "nobody", api.GoalActive, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := goalIDs(FilterGoals(goals, tt.athleteID, tt.status))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	if goals[1].ID != "g2" || len(goals) != 5 {
		t.Error("Expected input to be left untouched")
	}
}

func TestSortSessionsByStartDesc(t *testing.T) {
	sessions := []api.Session{
		session("s1", api.SessionDone, "2024-01-10T09:00:00"),
		session("s2", api.SessionDone, "not a date"),
		session("s3", api.SessionDone, "2024-01-12T09:00:00"),
		session("s4", api.SessionDone, "2024-01-10T09:00:00"),
		session("s5", api.SessionDone, "2024-01-11"),
	}

	got := sessionIDs(SortSessionsByStartDesc(sessions))
	want := []string{"s3", "s5", "s1", "s4", "s2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if sessions[0].ID != "s1" {
		t.Error("Expected input order to be preserved")
	}
}

func TestDashboardDerivations(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.Local)
	sessions := []api.Session{
		session("s1", api.SessionDone, "2024-01-01T10:00:00"),
		session("s2", api.SessionDone, "2024-01-03T10:00:00"),
		session("s3", api.SessionScheduled, "2024-01-20T10:00:00"),
		session("s4", api.SessionScheduled, "2024-01-10T10:00:00"),
		session("s5", api.SessionCanceled, "2024-01-21T10:00:00"),
		session("s6", api.SessionDone, "2024-01-05T10:00:00"),
	}

	if rate := CompletionRate(sessions); rate != 50 {
		t.Errorf("Expected completion rate 50, got %d", rate)
	}
	if rate := CompletionRate(nil); rate != 0 {
		t.Errorf("Expected completion rate 0 for no sessions, got %d", rate)
	}

	upcoming := sessionIDs(UpcomingSessions(sessions, now))
	if !reflect.DeepEqual(upcoming, []string{"s3"}) {
		t.Errorf("Expected only s3 upcoming, got %v", upcoming)
	}

	recent := sessionIDs(RecentSessions(sessions, 2))
	if !reflect.DeepEqual(recent, []string{"s6", "s2"}) {
		t.Errorf("Expected recent [s6 s2], got %v", recent)
	}
}

func TestPercentRounding(t *testing.T) {
	tests := []struct {
		part, total, want int
	}{
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{0, 5, 0},
		{5, 5, 100},
		{3, 0, 0},
	}

	for _, tt := range tests {
		if got := Percent(tt.part, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.part, tt.total, got, tt.want)
		}
	}
}

func TestLatestAssessment(t *testing.T) {
	if LatestAssessment(nil) != nil {
		t.Error("Expected nil for no assessments")
	}

	assessments := []api.PhysicalAssessment{
		{ID: "a1", AssessmentInput: api.AssessmentInput{Date: "2024-01-01"}},
		{ID: "a2", AssessmentInput: api.AssessmentInput{Date: "2024-03-01"}},
		{ID: "a3", AssessmentInput: api.AssessmentInput{Date: "2024-02-01"}},
	}
	if latest := LatestAssessment(assessments); latest == nil || latest.ID != "a2" {
		t.Errorf("Expected a2 to be latest, got %+v", latest)
	}
}

func athlete(id, first, last, sector string) api.Athlete {
	a := api.Athlete{ID: id}
	a.FirstName = first
	a.LastName = last
	a.Sector = sector
	return a
}

func TestFilterAthletes(t *testing.T) {
	athletes := []api.Athlete{
		athlete("a1", "Marie", "Durand", "sprint"),
		athlete("a2", "Jean", "Martin", "throws"),
		athlete("a3", "Lucas", "Marchand", "sprint"),
		athlete("a4", "Emma", "Petit", ""),
	}

	tests := []struct {
		name   string
		search string
		sector string
		want   []string
	}{
		{"case-insensitive first name", "MARIE", "", []string{"a1"}},
		{"last name substring", "mar", "", []string{"a1", "a2", "a3"}},
		{"sector only", "", "sprint", []string{"a1", "a3"}},
		{"search and sector", "mar", "throws", []string{"a2"}},
		{"no filters", "", "", []string{"a1", "a2", "a3", "a4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, a := range FilterAthletes(athletes, tt.search, tt.sector) {
				got = append(got, a.ID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	sectors := UniqueSectors(athletes)
	if !reflect.DeepEqual(sectors, []string{"sprint", "throws"}) {
		t.Errorf("Expected sectors [sprint throws], got %v", sectors)
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local)

	tests := []struct {
		birth string
		want  int
		ok    bool
	}{
		{"2000-06-15", 24, true},
		{"2000-06-16", 23, true},
		{"2000-07-01", 23, true},
		{"2000-01-01", 24, true},
		{"", 0, false},
		{"garbage", 0, false},
	}

	for _, tt := range tests {
		got, ok := Age(tt.birth, now)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Age(%q) = %d, %v; want %d, %v", tt.birth, got, ok, tt.want, tt.ok)
		}
	}
}

func TestProgramDerivations(t *testing.T) {
	p := api.Program{}
	p.StartDate = "2024-01-01"
	p.EndDate = "2024-02-25"
	if weeks := DurationWeeks(p); weeks != 8 {
		t.Errorf("Expected 8 weeks, got %d", weeks)
	}

	p.EndDate = "2023-12-01"
	if weeks := DurationWeeks(p); weeks != 0 {
		t.Errorf("Expected 0 weeks for inverted range, got %d", weeks)
	}

	sessions := []api.Session{
		session("s1", api.SessionDone, ""),
		session("s2", api.SessionScheduled, ""),
		session("s3", api.SessionCanceled, ""),
		session("s4", api.SessionDone, ""),
		session("s5", api.SessionDraft, ""),
	}
	if progress := ProgramProgress(sessions); progress != 50 {
		t.Errorf("Expected progress 50, got %d", progress)
	}

	byStatus := SessionsByStatus(sessions)
	if got := sessionIDs(byStatus[api.SessionDone]); !reflect.DeepEqual(got, []string{"s1", "s4"}) {
		t.Errorf("Expected done [s1 s4], got %v", got)
	}
}

func TestCountByKey(t *testing.T) {
	got := CountByKey(map[string]int{"gym": 2, "speed": 5, "rest": 2})
	want := []string{"speed", "gym", "rest"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
