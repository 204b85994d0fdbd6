package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label value constants to prevent typos
const (
	// Load results
	ResultSuccess = "success"
	ResultFailure = "failure"

	// Session events
	EventInit   = "init"
	EventLogin  = "login"
	EventLogout = "logout"

	// Views
	ViewDashboard     = "dashboard"
	ViewRoster        = "roster"
	ViewProgramDetail = "program_detail"
	ViewAthleteDetail = "athlete_detail"

	// API operations
	OpLogin                 = "login"
	OpLogout                = "logout"
	OpMe                    = "me"
	OpRegister              = "register"
	OpHealth                = "health"
	OpListAthletes          = "list_athletes"
	OpGetAthlete            = "get_athlete"
	OpCreateAthlete         = "create_athlete"
	OpUpdateAthlete         = "update_athlete"
	OpDeleteAthlete         = "delete_athlete"
	OpListGoals             = "list_goals"
	OpCreateGoal            = "create_goal"
	OpUpdateGoal            = "update_goal"
	OpDeleteGoal            = "delete_goal"
	OpListPrograms          = "list_programs"
	OpCreateProgram         = "create_program"
	OpUpdateProgram         = "update_program"
	OpDeleteProgram         = "delete_program"
	OpListSessions          = "list_sessions"
	OpCreateSession         = "create_session"
	OpUpdateSession         = "update_session"
	OpDeleteSession         = "delete_session"
	OpListExercises         = "list_exercises"
	OpCreateExercise        = "create_exercise"
	OpUpdateExercise        = "update_exercise"
	OpDeleteExercise        = "delete_exercise"
	OpListAssessments       = "list_assessments"
	OpCreateAssessment      = "create_assessment"
	OpUpdateAssessment      = "update_assessment"
	OpDeleteAssessment      = "delete_assessment"
	OpListRecords           = "list_records"
	OpCreateRecord          = "create_record"
	OpUpdateRecord          = "update_record"
	OpDeleteRecord          = "delete_record"
	OpListTemplates         = "list_templates"
	OpCreateTemplate        = "create_template"
	OpUpdateTemplate        = "update_template"
	OpDeleteTemplate        = "delete_template"
	OpAthleteOverview       = "athlete_overview"
	OpAthleteAssessmentSets = "athlete_assessment_series"

	// Status code label for transport failures that never produced a response
	StatusNetworkError = "network_error"

	// Cookie store operations
	StoreOpLoad   = "load"
	StoreOpSave   = "save"
	StoreOpDelete = "delete"
	StoreOpPurge  = "purge"
	StoreOpCount  = "count"
)

// HTTP transport metrics
var (
	HTTPClientRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_client_requests_total",
			Help: "Total number of outgoing HTTP requests",
		},
		[]string{"method", "status_code"},
	)

	HTTPClientRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_client_request_duration_seconds",
			Help:    "Outgoing HTTP request latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "status_code"},
	)
)

// Backend API metrics
var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of backend API requests",
		},
		[]string{"operation", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Backend API request latency in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"operation", "status_code"},
	)

	APIInvalidPayloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_invalid_payloads_total",
			Help: "Total number of backend responses rejected by schema validation",
		},
		[]string{"operation"},
	)
)

// Session metrics
var (
	SessionState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "session_state",
			Help: "Authentication state (0=unknown, 1=unauthenticated, 2=authenticated)",
		},
	)

	SessionTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_transitions_total",
			Help: "Total number of session lifecycle events by outcome",
		},
		[]string{"event", "result"},
	)
)

// View metrics
var (
	ViewLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "view_loads_total",
			Help: "Total number of view load cycles by outcome",
		},
		[]string{"view", "result"},
	)

	ViewLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "view_load_duration_seconds",
			Help:    "Time to fetch all datasets for a view",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"view"},
	)
)

// Cookie store metrics
var (
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cookie_store_operation_duration_seconds",
			Help:    "Cookie store operation latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation"},
	)

	StoreOperationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookie_store_operation_errors_total",
			Help: "Total number of cookie store operation errors",
		},
		[]string{"operation"},
	)

	StoreCookies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cookie_store_cookies",
			Help: "Number of persisted cookies",
		},
	)
)
