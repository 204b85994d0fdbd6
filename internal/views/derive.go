package views

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"

	"coachboard/internal/api"
)

// The backend sends naive timestamps; they are read as local time
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseTime parses a backend date or datetime string
func ParseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FilterGoals returns the goals matching athleteID and status, in input
// order. An empty argument matches everything.
func FilterGoals(goals []api.Goal, athleteID, status string) []api.Goal {
	out := make([]api.Goal, 0, len(goals))
	for _, g := range goals {
		if athleteID != "" && g.AthleteID != athleteID {
			continue
		}
		if status != "" && g.Status != status {
			continue
		}
		out = append(out, g)
	}
	return out
}

// FilterSessions returns the sessions with the given status, in input order
func FilterSessions(sessions []api.Session, status string) []api.Session {
	out := make([]api.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out
}

// SortSessionsByStartDesc returns a copy sorted newest first. Sessions
// with an unparseable start go last; ties keep input order.
func SortSessionsByStartDesc(sessions []api.Session) []api.Session {
	out := slices.Clone(sessions)
	slices.SortStableFunc(out, func(a, b api.Session) int {
		ta, okA := ParseTime(a.Start)
		tb, okB := ParseTime(b.Start)
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		return tb.Compare(ta)
	})
	return out
}

// UpcomingSessions returns scheduled sessions starting after now
func UpcomingSessions(sessions []api.Session, now time.Time) []api.Session {
	var out []api.Session
	for _, s := range sessions {
		if s.Status != api.SessionScheduled {
			continue
		}
		if start, ok := ParseTime(s.Start); ok && start.After(now) {
			out = append(out, s)
		}
	}
	return out
}

// RecentSessions returns up to n done sessions, newest first
func RecentSessions(sessions []api.Session, n int) []api.Session {
	done := SortSessionsByStartDesc(FilterSessions(sessions, api.SessionDone))
	if len(done) > n {
		done = done[:n]
	}
	return done
}

// Percent returns part/total as a rounded percentage, 0 when total is 0
func Percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// CompletionRate is the rounded share of sessions that are done
func CompletionRate(sessions []api.Session) int {
	return Percent(len(FilterSessions(sessions, api.SessionDone)), len(sessions))
}

// LatestAssessment returns the assessment with the latest date, or nil
func LatestAssessment(assessments []api.PhysicalAssessment) *api.PhysicalAssessment {
	var latest *api.PhysicalAssessment
	var latestAt time.Time
	for i := range assessments {
		at, ok := ParseTime(assessments[i].Date)
		if !ok {
			continue
		}
		if latest == nil || at.After(latestAt) {
			latest = &assessments[i]
			latestAt = at
		}
	}
	return latest
}

// FilterAthletes matches search case-insensitively against first or last
// name and sector exactly. Empty arguments match everything.
func FilterAthletes(athletes []api.Athlete, search, sector string) []api.Athlete {
	search = strings.ToLower(search)
	out := make([]api.Athlete, 0, len(athletes))
	for _, a := range athletes {
		matchesSearch := search == "" ||
			strings.Contains(strings.ToLower(a.FirstName), search) ||
			strings.Contains(strings.ToLower(a.LastName), search)
		matchesSector := sector == "" || a.Sector == sector
		if matchesSearch && matchesSector {
			out = append(out, a)
		}
	}
	return out
}

// UniqueSectors returns the non-empty sectors in first-seen order
func UniqueSectors(athletes []api.Athlete) []string {
	var out []string
	seen := make(map[string]bool)
	for _, a := range athletes {
		if a.Sector == "" || seen[a.Sector] {
			continue
		}
		seen[a.Sector] = true
		out = append(out, a.Sector)
	}
	return out
}

// RecordsFor returns the records of one athlete, in input order
func RecordsFor(records []api.PersonalRecord, athleteID string) []api.PersonalRecord {
	var out []api.PersonalRecord
	for _, r := range records {
		if r.AthleteID == athleteID {
			out = append(out, r)
		}
	}
	return out
}

// Age returns completed years between birthDate and now
func Age(birthDate string, now time.Time) (int, bool) {
	if birthDate == "" {
		return 0, false
	}
	birth, ok := ParseTime(birthDate)
	if !ok {
		return 0, false
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age, true
}

// DurationWeeks returns the program length in whole weeks, rounded up
func DurationWeeks(p api.Program) int {
	start, okStart := ParseTime(p.StartDate)
	end, okEnd := ParseTime(p.EndDate)
	if !okStart || !okEnd || end.Before(start) {
		return 0
	}
	days := int(dateOf(end).Sub(dateOf(start)).Hours()/24) + 1
	return (days + 6) / 7
}

// dateOf drops the clock so day arithmetic ignores DST shifts
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SessionsByStatus groups sessions by status, keeping input order
func SessionsByStatus(sessions []api.Session) map[string][]api.Session {
	out := make(map[string][]api.Session)
	for _, s := range sessions {
		out[s.Status] = append(out[s.Status], s)
	}
	return out
}

// ProgramProgress is the rounded share of planned (not canceled) sessions
// that are done
func ProgramProgress(sessions []api.Session) int {
	planned := 0
	done := 0
	for _, s := range sessions {
		switch s.Status {
		case api.SessionCanceled:
			continue
		case api.SessionDone:
			done++
		}
		planned++
	}
	return Percent(done, planned)
}

// CountByKey returns the keys of m sorted by descending count then name
func CountByKey(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(m[b], m[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return keys
}
