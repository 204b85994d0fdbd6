package views

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"coachboard/internal/api"
	"coachboard/internal/metrics"
)

// ErrNotAuthenticated is returned by every load when nobody is logged in
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrProgramNotFound is returned when the program is not in the athlete's list
var ErrProgramNotFound = errors.New("program not found")

// Failure notifications
const (
	MsgDashboardFailed = "Failed to load dashboard data"
	MsgRosterFailed    = "Failed to load athletes data"
	MsgProgramFailed   = "Failed to load program data"
	MsgAthleteFailed   = "Failed to load athlete data"
)

// API is the subset of the API client the views read from
type API interface {
	ListAthletes(ctx context.Context, filter api.AthleteFilter, opts ...api.RequestOption) ([]api.Athlete, error)
	GetAthlete(ctx context.Context, id string, opts ...api.RequestOption) (*api.Athlete, error)
	ListGoals(ctx context.Context, athleteID string, opts ...api.RequestOption) ([]api.Goal, error)
	ListPrograms(ctx context.Context, athleteID string, opts ...api.RequestOption) ([]api.Program, error)
	ListSessions(ctx context.Context, filter api.SessionFilter, opts ...api.RequestOption) ([]api.Session, error)
	ListAssessments(ctx context.Context, athleteID string, opts ...api.RequestOption) ([]api.PhysicalAssessment, error)
	ListRecords(ctx context.Context, athleteID string, opts ...api.RequestOption) ([]api.PersonalRecord, error)
	AthleteOverview(ctx context.Context, athleteID string, opts ...api.RequestOption) (*api.AthleteOverview, error)
	AthleteAssessmentSeries(ctx context.Context, athleteID string, opts ...api.RequestOption) (*api.AssessmentSeries, error)
}

// Session reports whether the process is logged in
type Session interface {
	IsAuthenticated() bool
}

// Loader fetches and derives view data. Every load is all-or-nothing: the
// reads run in parallel and the first failure cancels the rest.
type Loader struct {
	api      API
	session  Session
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewLoader creates a view loader
func NewLoader(client API, session Session, notifier Notifier, logger *slog.Logger) *Loader {
	return &Loader{
		api:      client,
		session:  session,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// load gates on the session, runs reads concurrently and reports a single
// notification on failure
func (l *Loader) load(ctx context.Context, view, failMsg string, reads ...func(context.Context) error) error {
	if !l.session.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for _, read := range reads {
		g.Go(func() error {
			return read(gctx)
		})
	}
	err := g.Wait()
	duration := time.Since(start)

	metrics.ViewLoadDuration.WithLabelValues(view).Observe(duration.Seconds())
	if err != nil {
		metrics.ViewLoadsTotal.WithLabelValues(view, metrics.ResultFailure).Inc()
		l.notifier.Notify(failMsg, err)
		return err
	}

	metrics.ViewLoadsTotal.WithLabelValues(view, metrics.ResultSuccess).Inc()
	l.logger.Debug("view loaded", "view", view, "reads", len(reads), "duration_ms", duration.Milliseconds())
	return nil
}

// Dashboard is the coach's landing summary
type Dashboard struct {
	Athletes    []api.Athlete
	Goals       []api.Goal
	Sessions    []api.Session
	Assessments []api.PhysicalAssessment

	ActiveGoals      []api.Goal
	UpcomingSessions []api.Session
	RecentSessions   []api.Session
	CompletionRate   int
	LatestAssessment *api.PhysicalAssessment
}

// NewDashboard derives the summary from the raw datasets
func NewDashboard(athletes []api.Athlete, goals []api.Goal, sessions []api.Session, assessments []api.PhysicalAssessment, now time.Time) *Dashboard {
	return &Dashboard{
		Athletes:         athletes,
		Goals:            goals,
		Sessions:         sessions,
		Assessments:      assessments,
		ActiveGoals:      FilterGoals(goals, "", api.GoalActive),
		UpcomingSessions: UpcomingSessions(sessions, now),
		RecentSessions:   RecentSessions(sessions, 5),
		CompletionRate:   CompletionRate(sessions),
		LatestAssessment: LatestAssessment(assessments),
	}
}

// AthleteCount is the number of athletes on the roster
func (d *Dashboard) AthleteCount() int {
	return len(d.Athletes)
}

// LoadDashboard fetches athletes, goals, sessions and assessments
func (l *Loader) LoadDashboard(ctx context.Context) (*Dashboard, error) {
	var (
		athletes    []api.Athlete
		goals       []api.Goal
		sessions    []api.Session
		assessments []api.PhysicalAssessment
	)

	err := l.load(ctx, metrics.ViewDashboard, MsgDashboardFailed,
		func(ctx context.Context) (err error) {
			athletes, err = l.api.ListAthletes(ctx, api.AthleteFilter{})
			return err
		},
		func(ctx context.Context) (err error) {
			goals, err = l.api.ListGoals(ctx, "")
			return err
		},
		func(ctx context.Context) (err error) {
			sessions, err = l.api.ListSessions(ctx, api.SessionFilter{})
			return err
		},
		func(ctx context.Context) (err error) {
			assessments, err = l.api.ListAssessments(ctx, "")
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	return NewDashboard(athletes, goals, sessions, assessments, l.now()), nil
}

// Roster is the athlete list with per-athlete goals and records
type Roster struct {
	Athletes []api.Athlete
	Goals    []api.Goal
	Records  []api.PersonalRecord
	Sectors  []string

	now time.Time
}

// Filter applies the name search and sector filter
func (r *Roster) Filter(search, sector string) []api.Athlete {
	return FilterAthletes(r.Athletes, search, sector)
}

// ActiveGoals returns the active goals of one athlete
func (r *Roster) ActiveGoals(athleteID string) []api.Goal {
	return FilterGoals(r.Goals, athleteID, api.GoalActive)
}

// AthleteRecords returns the personal records of one athlete
func (r *Roster) AthleteRecords(athleteID string) []api.PersonalRecord {
	return RecordsFor(r.Records, athleteID)
}

// Age returns an athlete's age at load time
func (r *Roster) Age(a api.Athlete) (int, bool) {
	return Age(a.BirthDate, r.now)
}

// LoadRoster fetches athletes, goals and records
func (l *Loader) LoadRoster(ctx context.Context) (*Roster, error) {
	var (
		athletes []api.Athlete
		goals    []api.Goal
		records  []api.PersonalRecord
	)

	err := l.load(ctx, metrics.ViewRoster, MsgRosterFailed,
		func(ctx context.Context) (err error) {
			athletes, err = l.api.ListAthletes(ctx, api.AthleteFilter{})
			return err
		},
		func(ctx context.Context) (err error) {
			goals, err = l.api.ListGoals(ctx, "")
			return err
		},
		func(ctx context.Context) (err error) {
			records, err = l.api.ListRecords(ctx, "")
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	return &Roster{
		Athletes: athletes,
		Goals:    goals,
		Records:  records,
		Sectors:  UniqueSectors(athletes),
		now:      l.now(),
	}, nil
}

// ProgramDetail is one program with its sessions and goal
type ProgramDetail struct {
	Program  api.Program
	Goal     *api.Goal
	Sessions []api.Session

	DurationWeeks int
	Progress      int
	ByStatus      map[string][]api.Session
}

// LoadProgramDetail fetches the athlete's programs, the program's sessions
// and the athlete's goals
func (l *Loader) LoadProgramDetail(ctx context.Context, athleteID, programID string) (*ProgramDetail, error) {
	var (
		programs []api.Program
		sessions []api.Session
		goals    []api.Goal
	)

	err := l.load(ctx, metrics.ViewProgramDetail, MsgProgramFailed,
		func(ctx context.Context) (err error) {
			programs, err = l.api.ListPrograms(ctx, athleteID)
			return err
		},
		func(ctx context.Context) (err error) {
			sessions, err = l.api.ListSessions(ctx, api.SessionFilter{ProgramID: programID})
			return err
		},
		func(ctx context.Context) (err error) {
			goals, err = l.api.ListGoals(ctx, athleteID)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range programs {
		if programs[i].ID == programID {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.notifier.Notify(MsgProgramFailed, ErrProgramNotFound)
		return nil, ErrProgramNotFound
	}
	program := programs[idx]

	detail := &ProgramDetail{
		Program:       program,
		Sessions:      SortSessionsByStartDesc(sessions),
		DurationWeeks: DurationWeeks(program),
		Progress:      ProgramProgress(sessions),
		ByStatus:      SessionsByStatus(sessions),
	}
	if program.GoalID != "" {
		for i := range goals {
			if goals[i].ID == program.GoalID {
				detail.Goal = &goals[i]
				break
			}
		}
	}
	return detail, nil
}

// AthleteDetail is everything shown on an athlete's page
type AthleteDetail struct {
	Athlete     api.Athlete
	Overview    api.AthleteOverview
	Series      api.AssessmentSeries
	ActiveGoals []api.Goal
	Goals       []api.Goal
	Records     []api.PersonalRecord
	Age         int
	HasAge      bool
}

// LoadAthleteDetail fetches the athlete with analytics, goals and records
func (l *Loader) LoadAthleteDetail(ctx context.Context, athleteID string) (*AthleteDetail, error) {
	var (
		athlete  *api.Athlete
		overview *api.AthleteOverview
		series   *api.AssessmentSeries
		goals    []api.Goal
		records  []api.PersonalRecord
	)

	err := l.load(ctx, metrics.ViewAthleteDetail, MsgAthleteFailed,
		func(ctx context.Context) (err error) {
			athlete, err = l.api.GetAthlete(ctx, athleteID)
			return err
		},
		func(ctx context.Context) (err error) {
			overview, err = l.api.AthleteOverview(ctx, athleteID)
			return err
		},
		func(ctx context.Context) (err error) {
			series, err = l.api.AthleteAssessmentSeries(ctx, athleteID)
			return err
		},
		func(ctx context.Context) (err error) {
			goals, err = l.api.ListGoals(ctx, athleteID)
			return err
		},
		func(ctx context.Context) (err error) {
			records, err = l.api.ListRecords(ctx, athleteID)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	age, ok := Age(athlete.BirthDate, l.now())
	return &AthleteDetail{
		Athlete:     *athlete,
		Overview:    *overview,
		Series:      *series,
		ActiveGoals: FilterGoals(goals, athleteID, api.GoalActive),
		Goals:       goals,
		Records:     records,
		Age:         age,
		HasAge:      ok,
	}, nil
}
