package api

// Wire types for the coaching backend. Field names follow the backend's
// snake_case JSON exactly. Dates and times are kept as the strings the
// server sends (e.g. "2024-01-01" or "2024-01-15T10:00:00"); views parse
// them when they need ordering.
//
// Entities embed their create input so the same validation tags cover both
// what the client sends and what it accepts back.

// Role distinguishes coaches from athletes
type Role string

const (
	RoleCoach   Role = "coach"
	RoleAthlete Role = "athlete"
)

// User is the authenticated identity returned by /auth/me
type User struct {
	ID        string `json:"id" validate:"required"`
	Role      Role   `json:"role" validate:"required,oneof=coach athlete"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	CreatedAt string `json:"created_at"`
}

// FullName joins first and last name
func (u *User) FullName() string {
	return joinName(u.FirstName, u.LastName)
}

// Token is the credential exchange response. The session itself travels in
// an http-only cookie set on the same response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Role      Role   `json:"role"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// HealthStatus is returned by the API root
type HealthStatus struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Injury is one entry of an athlete's injury history
type Injury struct {
	Date  string `json:"date" validate:"required"`
	Type  string `json:"type" validate:"required"`
	Notes string `json:"notes,omitempty"`
}

// AthleteInput holds the client-writable athlete fields
type AthleteInput struct {
	FirstName            string   `json:"first_name" validate:"required"`
	LastName             string   `json:"last_name" validate:"required"`
	BirthDate            string   `json:"birth_date,omitempty"`
	Sex                  string   `json:"sex,omitempty" validate:"omitempty,oneof=male female other"`
	HeightCm             *float64 `json:"height_cm,omitempty" validate:"omitempty,gte=0"`
	WeightKg             *float64 `json:"weight_kg,omitempty" validate:"omitempty,gte=0"`
	Specialties          []string `json:"specialties"`
	Sector               string   `json:"sector,omitempty"`
	PhotoURL             string   `json:"photo_url,omitempty"`
	Category             string   `json:"category,omitempty"`
	CoachName            string   `json:"coach_name,omitempty"`
	Club                 string   `json:"club,omitempty"`
	Notes                string   `json:"notes,omitempty"`
	HealthStatus         string   `json:"health_status,omitempty"`
	Strengths            []string `json:"strengths"`
	Weaknesses           []string `json:"weaknesses"`
	Injuries             []Injury `json:"injuries" validate:"dive"`
	AllergiesLimitations []string `json:"allergies_limitations"`
}

// Athlete is the root aggregate for goals, programs, sessions and assessments
type Athlete struct {
	ID string `json:"id" validate:"required"`
	AthleteInput
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// FullName joins first and last name
func (a *Athlete) FullName() string {
	return joinName(a.FirstName, a.LastName)
}

// AthleteUpdate is a partial patch; nil fields are not sent
type AthleteUpdate struct {
	FirstName            *string  `json:"first_name,omitempty"`
	LastName             *string  `json:"last_name,omitempty"`
	BirthDate            *string  `json:"birth_date,omitempty"`
	Sex                  *string  `json:"sex,omitempty"`
	HeightCm             *float64 `json:"height_cm,omitempty"`
	WeightKg             *float64 `json:"weight_kg,omitempty"`
	Specialties          []string `json:"specialties,omitempty"`
	Sector               *string  `json:"sector,omitempty"`
	PhotoURL             *string  `json:"photo_url,omitempty"`
	Category             *string  `json:"category,omitempty"`
	CoachName            *string  `json:"coach_name,omitempty"`
	Club                 *string  `json:"club,omitempty"`
	Notes                *string  `json:"notes,omitempty"`
	HealthStatus         *string  `json:"health_status,omitempty"`
	Strengths            []string `json:"strengths,omitempty"`
	Weaknesses           []string `json:"weaknesses,omitempty"`
	Injuries             []Injury `json:"injuries,omitempty"`
	AllergiesLimitations []string `json:"allergies_limitations,omitempty"`
}

// Goal statuses
const (
	GoalActive    = "active"
	GoalAchieved  = "achieved"
	GoalFailed    = "failed"
	GoalAbandoned = "abandoned"
	GoalPostponed = "postponed"
)

// GoalInput holds the client-writable goal fields
type GoalInput struct {
	AthleteID    string `json:"athlete_id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Type         string `json:"type" validate:"required,oneof=performance technical physical health other"`
	Description  string `json:"description,omitempty"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Priority     string `json:"priority" validate:"required,oneof=high medium low"`
	InitialValue string `json:"initial_value,omitempty"`
	TargetValue  string `json:"target_value,omitempty"`
	CurrentValue string `json:"current_value,omitempty"`
	Status       string `json:"status" validate:"required,oneof=active achieved failed abandoned postponed"`
}

// Goal belongs to one athlete
type Goal struct {
	ID string `json:"id" validate:"required"`
	GoalInput
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// GoalUpdate is a partial patch; nil fields are not sent
type GoalUpdate struct {
	Name         *string `json:"name,omitempty"`
	Type         *string `json:"type,omitempty"`
	Description  *string `json:"description,omitempty"`
	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
	Priority     *string `json:"priority,omitempty"`
	InitialValue *string `json:"initial_value,omitempty"`
	TargetValue  *string `json:"target_value,omitempty"`
	CurrentValue *string `json:"current_value,omitempty"`
	Status       *string `json:"status,omitempty"`
}

// Program statuses
const (
	ProgramDraft     = "draft"
	ProgramActive    = "active"
	ProgramCompleted = "completed"
	ProgramCanceled  = "canceled"
)

// ProgramInput holds the client-writable program fields
type ProgramInput struct {
	AthleteID       string `json:"athlete_id" validate:"required"`
	GoalID          string `json:"goal_id,omitempty"`
	Name            string `json:"name" validate:"required"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	WeeklyFrequency int    `json:"weekly_frequency" validate:"gte=0"`
	StructureText   string `json:"structure_text,omitempty"`
	Status          string `json:"status" validate:"required,oneof=draft active completed canceled"`
	Notes           string `json:"notes,omitempty"`
}

// Program belongs to one athlete and is optionally tied to a goal
type Program struct {
	ID string `json:"id" validate:"required"`
	ProgramInput
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ProgramUpdate is a partial patch; nil fields are not sent
type ProgramUpdate struct {
	GoalID          *string `json:"goal_id,omitempty"`
	Name            *string `json:"name,omitempty"`
	StartDate       *string `json:"start_date,omitempty"`
	EndDate         *string `json:"end_date,omitempty"`
	WeeklyFrequency *int    `json:"weekly_frequency,omitempty"`
	StructureText   *string `json:"structure_text,omitempty"`
	Status          *string `json:"status,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// Session statuses
const (
	SessionDraft     = "draft"
	SessionScheduled = "scheduled"
	SessionDone      = "done"
	SessionCanceled  = "canceled"
)

// SessionInput holds the client-writable session fields
type SessionInput struct {
	ProgramID   string   `json:"program_id" validate:"required"`
	AthleteID   string   `json:"athlete_id" validate:"required"`
	Title       string   `json:"title"`
	Type        string   `json:"type" validate:"required,oneof=gym technique speed endurance rest other"`
	Start       string   `json:"start" validate:"required"`
	End         string   `json:"end"`
	Intensity   *int     `json:"intensity,omitempty" validate:"omitempty,gte=1,lte=10"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status" validate:"required,oneof=draft scheduled done canceled"`
	Notes       string   `json:"notes,omitempty"`
	RPE         *int     `json:"rpe,omitempty" validate:"omitempty,gte=1,lte=10"`
	DurationMin *int     `json:"duration_min,omitempty" validate:"omitempty,gte=0"`
}

// Session is a time-boxed training event
type Session struct {
	ID string `json:"id" validate:"required"`
	SessionInput
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// SessionUpdate is a partial patch; nil fields are not sent
type SessionUpdate struct {
	ProgramID   *string  `json:"program_id,omitempty"`
	Title       *string  `json:"title,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Start       *string  `json:"start,omitempty"`
	End         *string  `json:"end,omitempty"`
	Intensity   *int     `json:"intensity,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
	RPE         *int     `json:"rpe,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
}

// ExerciseInput holds the client-writable exercise fields
type ExerciseInput struct {
	Name        string   `json:"name" validate:"required"`
	Category    string   `json:"category" validate:"required,oneof=legs push pull core olympic mobility other"`
	Muscles     []string `json:"muscles"`
	Description string   `json:"description,omitempty"`
	VideoURL    string   `json:"video_url,omitempty"`
}

// Exercise is a catalog entry
type Exercise struct {
	ID string `json:"id" validate:"required"`
	ExerciseInput
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ExerciseUpdate is a partial patch; nil fields are not sent
type ExerciseUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Muscles     []string `json:"muscles,omitempty"`
	Description *string  `json:"description,omitempty"`
	VideoURL    *string  `json:"video_url,omitempty"`
}

// Scores holds the ten physical capability scores, each on a 0-10 scale
type Scores struct {
	StrengthMax       *float64 `json:"strength_max,omitempty" validate:"omitempty,gte=0,lte=10"`
	StrengthEndurance *float64 `json:"strength_endurance,omitempty" validate:"omitempty,gte=0,lte=10"`
	StrengthExplosive *float64 `json:"strength_explosive,omitempty" validate:"omitempty,gte=0,lte=10"`
	SpeedLinear       *float64 `json:"speed_linear,omitempty" validate:"omitempty,gte=0,lte=10"`
	Agility           *float64 `json:"agility,omitempty" validate:"omitempty,gte=0,lte=10"`
	Power             *float64 `json:"power,omitempty" validate:"omitempty,gte=0,lte=10"`
	Mobility          *float64 `json:"mobility,omitempty" validate:"omitempty,gte=0,lte=10"`
	EnduranceAerobic  *float64 `json:"endurance_aerobic,omitempty" validate:"omitempty,gte=0,lte=10"`
	EnduranceLactate  *float64 `json:"endurance_lactate,omitempty" validate:"omitempty,gte=0,lte=10"`
	ICM               *float64 `json:"icm,omitempty" validate:"omitempty,gte=0,lte=10"`
}

// Dimension names in display order
var Dimensions = []string{
	"strength_max",
	"strength_endurance",
	"strength_explosive",
	"speed_linear",
	"agility",
	"power",
	"mobility",
	"endurance_aerobic",
	"endurance_lactate",
	"icm",
}

// Values returns the scores in Dimensions order
func (s *Scores) Values() []*float64 {
	return []*float64{
		s.StrengthMax, s.StrengthEndurance, s.StrengthExplosive,
		s.SpeedLinear, s.Agility, s.Power, s.Mobility,
		s.EnduranceAerobic, s.EnduranceLactate, s.ICM,
	}
}

// AssessmentInput holds the client-writable assessment fields
type AssessmentInput struct {
	AthleteID string `json:"athlete_id" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Scores
	Notes string `json:"notes,omitempty"`
}

// PhysicalAssessment is a snapshot of an athlete's capabilities on a date
type PhysicalAssessment struct {
	ID string `json:"id" validate:"required"`
	AssessmentInput
	CreatedAt string `json:"created_at"`
}

// AssessmentUpdate is a partial patch; nil fields are not sent
type AssessmentUpdate struct {
	Date *string `json:"date,omitempty"`
	Scores
	Notes *string `json:"notes,omitempty"`
}

// RecordInput holds the client-writable personal record fields
type RecordInput struct {
	AthleteID  string `json:"athlete_id" validate:"required"`
	Discipline string `json:"discipline" validate:"required"`
	Value      string `json:"value"`
	Date       string `json:"date"`
	Notes      string `json:"notes,omitempty"`
}

// PersonalRecord is an append-only log entry
type PersonalRecord struct {
	ID string `json:"id" validate:"required"`
	RecordInput
	CreatedAt string `json:"created_at"`
}

// RecordUpdate is a partial patch; nil fields are not sent
type RecordUpdate struct {
	Discipline *string `json:"discipline,omitempty"`
	Value      *string `json:"value,omitempty"`
	Date       *string `json:"date,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// TemplateExercise is one prescribed exercise inside a session template
type TemplateExercise struct {
	Name    string   `json:"name" validate:"required"`
	Sets    *int     `json:"sets,omitempty" validate:"omitempty,gte=0"`
	Reps    *int     `json:"reps,omitempty" validate:"omitempty,gte=0"`
	LoadKg  *float64 `json:"load_kg,omitempty" validate:"omitempty,gte=0"`
	RestSec *int     `json:"rest_sec,omitempty" validate:"omitempty,gte=0"`
	Notes   string   `json:"notes,omitempty"`
}

// TemplateInput holds the client-writable session template fields
type TemplateInput struct {
	Name        string             `json:"name" validate:"required"`
	Type        string             `json:"type" validate:"required,oneof=gym technique speed endurance rest other"`
	Description string             `json:"description,omitempty"`
	DurationMin int                `json:"duration_min" validate:"gte=0"`
	Intensity   *int               `json:"intensity,omitempty" validate:"omitempty,gte=1,lte=10"`
	Tags        []string           `json:"tags"`
	Exercises   []TemplateExercise `json:"exercises" validate:"dive"`
}

// SessionTemplate is a reusable catalog entry
type SessionTemplate struct {
	ID string `json:"id" validate:"required"`
	TemplateInput
	CreatedAt string `json:"created_at"`
}

// TemplateUpdate is a partial patch; nil fields are not sent
type TemplateUpdate struct {
	Name        *string            `json:"name,omitempty"`
	Type        *string            `json:"type,omitempty"`
	Description *string            `json:"description,omitempty"`
	DurationMin *int               `json:"duration_min,omitempty"`
	Intensity   *int               `json:"intensity,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
	Exercises   []TemplateExercise `json:"exercises,omitempty"`
}

// Event is an upcoming competition or milestone in an overview
type Event struct {
	ID    string `json:"id"`
	Name  string `json:"name" validate:"required"`
	Place string `json:"place,omitempty"`
	Date  string `json:"date" validate:"required"`
	Notes string `json:"notes,omitempty"`
}

// AthleteOverview is pre-aggregated server side
type AthleteOverview struct {
	WeeklyVolume        int            `json:"weekly_volume" validate:"gte=0"`
	IntensityAvg        float64        `json:"intensity_avg" validate:"gte=0"`
	SessionsCountByType map[string]int `json:"sessions_count_by_type"`
	NextEvents          []Event        `json:"next_events" validate:"dive"`
}

// AssessmentSeries is a time series of the ten dimensions keyed by date.
// Every series has one entry per date; missing scores are null.
type AssessmentSeries struct {
	Dates             []string   `json:"dates"`
	StrengthMax       []*float64 `json:"strength_max"`
	StrengthEndurance []*float64 `json:"strength_endurance"`
	StrengthExplosive []*float64 `json:"strength_explosive"`
	SpeedLinear       []*float64 `json:"speed_linear"`
	Agility           []*float64 `json:"agility"`
	Power             []*float64 `json:"power"`
	Mobility          []*float64 `json:"mobility"`
	EnduranceAerobic  []*float64 `json:"endurance_aerobic"`
	EnduranceLactate  []*float64 `json:"endurance_lactate"`
	ICM               []*float64 `json:"icm"`
}

// Series returns the per-dimension series in Dimensions order
func (s *AssessmentSeries) Series() [][]*float64 {
	return [][]*float64{
		s.StrengthMax, s.StrengthEndurance, s.StrengthExplosive,
		s.SpeedLinear, s.Agility, s.Power, s.Mobility,
		s.EnduranceAerobic, s.EnduranceLactate, s.ICM,
	}
}

// AthleteFilter narrows GET /athletes
type AthleteFilter struct {
	Name   string
	Sector string
}

// SessionFilter narrows GET /sessions
type SessionFilter struct {
	AthleteID string
	ProgramID string
	StartDate string
	EndDate   string
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}
