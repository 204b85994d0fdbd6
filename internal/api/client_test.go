package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return New(server.URL, opts...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestErrorStatusClassification(t *testing.T) {
	tests := []struct {
		status int
		body   string
	}{
		{http.StatusBadRequest, `{"detail":"bad request"}`},
		{http.StatusUnauthorized, "Unauthorized"},
		{http.StatusForbidden, `{"detail":"forbidden"}`},
		{http.StatusNotFound, `{"detail":"Athlete not found"}`},
		{http.StatusUnprocessableEntity, `{"detail":[]}`},
		{http.StatusInternalServerError, "boom"},
		{http.StatusServiceUnavailable, ""},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			_, err := client.ListAthletes(context.Background(), AthleteFilter{})
			if err == nil {
				t.Fatal("Expected error")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Expected *APIError, got %T", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, apiErr.Status)
			}
			if apiErr.Message != tt.body {
				t.Errorf("Expected message %q, got %q", tt.body, apiErr.Message)
			}
			if StatusCode(err) != tt.status {
				t.Errorf("Expected StatusCode %d, got %d", tt.status, StatusCode(err))
			}
			if errors.Is(err, ErrInvalidPayload) {
				t.Error("Did not expect an invalid payload error")
			}
		})
	}
}

func TestErrorHelpers(t *testing.T) {
	notFound := &APIError{Status: 404, Message: "Not Found"}
	if !IsNotFound(notFound) {
		t.Error("Expected IsNotFound to return true for 404")
	}

	unauthorized := &APIError{Status: 401, Message: "Unauthorized"}
	if !IsUnauthorized(unauthorized) {
		t.Error("Expected IsUnauthorized to return true for 401")
	}

	netErr := &NetworkError{Op: "me", Err: errors.New("connection refused")}
	if IsUnauthorized(netErr) || StatusCode(netErr) != 0 {
		t.Error("Expected network errors to carry no status")
	}
	if !IsNetworkError(netErr) {
		t.Error("Expected IsNetworkError to return true")
	}
}

func TestSuccessDecodesBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/me" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"id":         "u1",
			"role":       "coach",
			"email":      "c@x.com",
			"first_name": "C",
			"last_name":  "X",
			"created_at": "2024-01-01",
		})
	})

	user, err := client.Me(context.Background())
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}

	want := User{ID: "u1", Role: RoleCoach, Email: "c@x.com", FirstName: "C", LastName: "X", CreatedAt: "2024-01-01"}
	if *user != want {
		t.Errorf("Expected %+v, got %+v", want, *user)
	}
	if user.FullName() != "C X" {
		t.Errorf("Expected full name 'C X', got %q", user.FullName())
	}
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		writeJSON(w, http.StatusOK, []Exercise{})
	}, WithHeader("X-Client", "coachboard"), WithHeader("Accept-Language", "fr"))

	_, err := client.ListExercises(context.Background(), "", WithRequestHeader("Accept-Language", "en"))
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}

	if got.Get("Content-Type") != "application/json" {
		t.Errorf("Expected JSON content type, got %q", got.Get("Content-Type"))
	}
	if got.Get("X-Client") != "coachboard" {
		t.Errorf("Expected default header, got %q", got.Get("X-Client"))
	}
	if got.Get("Accept-Language") != "en" {
		t.Errorf("Expected per-call override 'en', got %q", got.Get("Accept-Language"))
	}
	if got.Get("X-Request-ID") == "" {
		t.Error("Expected request id header")
	}
}

func TestContentTypeOverride(t *testing.T) {
	var got string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Content-Type")
		writeJSON(w, http.StatusOK, map[string]string{"message": "Athlete deleted"})
	})

	err := client.DeleteAthlete(context.Background(), "a1", WithRequestHeader("Content-Type", "text/plain"))
	if err != nil {
		t.Fatalf("DeleteAthlete failed: %v", err)
	}
	if got != "text/plain" {
		t.Errorf("Expected overridden content type, got %q", got)
	}
}

func TestQueryFilters(t *testing.T) {
	tests := []struct {
		name string
		call func(*Client) error
		path string
		want url.Values
	}{
		{
			name: "athletes without filters",
			call: func(c *Client) error {
				_, err := c.ListAthletes(context.Background(), AthleteFilter{})
				return err
			},
			path: "/api/athletes",
			want: url.Values{},
		},
		{
			name: "athletes by name and sector",
			call: func(c *Client) error {
				_, err := c.ListAthletes(context.Background(), AthleteFilter{Name: "Jo Doe", Sector: "sprint"})
				return err
			},
			path: "/api/athletes",
			want: url.Values{"name": {"Jo Doe"}, "sector": {"sprint"}},
		},
		{
			name: "sessions partial filter",
			call: func(c *Client) error {
				_, err := c.ListSessions(context.Background(), SessionFilter{ProgramID: "p1", EndDate: "2024-02-01"})
				return err
			},
			path: "/api/sessions",
			want: url.Values{"program_id": {"p1"}, "end_date": {"2024-02-01"}},
		},
		{
			name: "exercises by category",
			call: func(c *Client) error {
				_, err := c.ListExercises(context.Background(), "legs")
				return err
			},
			path: "/api/exercises",
			want: url.Values{"category": {"legs"}},
		},
		{
			name: "records by athlete",
			call: func(c *Client) error {
				_, err := c.ListRecords(context.Background(), "abc")
				return err
			},
			path: "/api/records",
			want: url.Values{"athlete_id": {"abc"}},
		},
		{
			name: "templates",
			call: func(c *Client) error {
				_, err := c.ListSessionTemplates(context.Background())
				return err
			},
			path: "/api/templates/sessions",
			want: url.Values{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			var gotQuery url.Values
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = r.URL.Query()
				writeJSON(w, http.StatusOK, []any{})
			})

			if err := tt.call(client); err != nil {
				t.Fatalf("Call failed: %v", err)
			}
			if gotPath != tt.path {
				t.Errorf("Expected path %s, got %s", tt.path, gotPath)
			}
			if gotQuery.Encode() != tt.want.Encode() {
				t.Errorf("Expected query %q, got %q", tt.want.Encode(), gotQuery.Encode())
			}
		})
	}
}

func TestListGoalsThenFilterActive(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("athlete_id") != "abc" {
			t.Errorf("Expected athlete_id=abc, got %q", r.URL.RawQuery)
		}
		io.WriteString(w, `[
			{"id":"g1","athlete_id":"abc","name":"Sub 11","type":"performance","priority":"high","status":"active","start_date":"2024-01-01","end_date":"2024-06-01"},
			{"id":"g2","athlete_id":"abc","name":"Squat 150","type":"physical","priority":"medium","status":"achieved","start_date":"2024-01-01","end_date":"2024-03-01"}
		]`)
	})

	goals, err := client.ListGoals(context.Background(), "abc")
	if err != nil {
		t.Fatalf("ListGoals failed: %v", err)
	}

	var active []Goal
	for _, g := range goals {
		if g.Status == GoalActive {
			active = append(active, g)
		}
	}
	if len(active) != 1 || active[0].ID != "g1" {
		t.Errorf("Expected only g1 to be active, got %+v", active)
	}
}

func TestCreateSendsBody(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&got)
		io.WriteString(w, `{"id":"s1","program_id":"p1","athlete_id":"a1","title":"Blocks","type":"speed","start":"2024-01-15T10:00:00","end":"2024-01-15T11:00:00","tags":[],"status":"scheduled","created_at":"2024-01-01T00:00:00","updated_at":"2024-01-01T00:00:00"}`)
	})

	intensity := 7
	session, err := client.CreateSession(context.Background(), SessionInput{
		ProgramID: "p1",
		AthleteID: "a1",
		Title:     "Blocks",
		Type:      "speed",
		Start:     "2024-01-15T10:00:00",
		End:       "2024-01-15T11:00:00",
		Intensity: &intensity,
		Status:    SessionScheduled,
	})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if session.ID != "s1" {
		t.Errorf("Expected id s1, got %s", session.ID)
	}

	if got["intensity"] != float64(7) {
		t.Errorf("Expected intensity 7 in body, got %v", got["intensity"])
	}
	if _, ok := got["rpe"]; ok {
		t.Error("Expected unset rpe to be omitted")
	}
	if _, ok := got["id"]; ok {
		t.Error("Expected create body to carry no id")
	}
}

func TestUpdateSendsOnlySetFields(t *testing.T) {
	var got map[string]any
	var gotMethod, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&got)
		io.WriteString(w, `{"id":"g1","athlete_id":"abc","name":"Sub 11","type":"performance","priority":"high","status":"achieved"}`)
	})

	status := GoalAchieved
	goal, err := client.UpdateGoal(context.Background(), "g1", GoalUpdate{Status: &status})
	if err != nil {
		t.Fatalf("UpdateGoal failed: %v", err)
	}

	if gotMethod != http.MethodPut || gotPath != "/api/goals/g1" {
		t.Errorf("Expected PUT /api/goals/g1, got %s %s", gotMethod, gotPath)
	}
	if len(got) != 1 || got["status"] != "achieved" {
		t.Errorf("Expected body with only status, got %v", got)
	}
	if goal.Status != GoalAchieved {
		t.Errorf("Expected achieved status, got %s", goal.Status)
	}
}

func TestInvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"id":`},
		{"missing id", `{"role":"coach","email":"c@x.com"}`},
		{"unknown role", `{"id":"u1","role":"admin","email":"c@x.com"}`},
		{"wrong type", `{"id":1,"role":"coach","email":"c@x.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.body)
			})

			_, err := client.Me(context.Background())
			if !errors.Is(err, ErrInvalidPayload) {
				t.Fatalf("Expected ErrInvalidPayload, got %v", err)
			}
			if StatusCode(err) != http.StatusOK {
				t.Errorf("Expected status 200 on invalid payload, got %d", StatusCode(err))
			}
		})
	}
}

func TestScoreOutOfRangeRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":"pa1","athlete_id":"a1","date":"2024-01-10","power":11}]`)
	})

	_, err := client.ListAssessments(context.Background(), "a1")
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("Expected ErrInvalidPayload for score 11, got %v", err)
	}
}

func TestAssessmentSeriesLengthMismatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"dates":["2024-01-01","2024-02-01"],"strength_max":[5],"strength_endurance":[1,2],"strength_explosive":[1,2],"speed_linear":[1,2],"agility":[1,2],"power":[1,2],"mobility":[1,2],"endurance_aerobic":[1,2],"endurance_lactate":[1,2],"icm":[1,2]}`)
	})

	_, err := client.AthleteAssessmentSeries(context.Background(), "a1")
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("Expected ErrInvalidPayload, got %v", err)
	}
}

func TestAnalyticsPaths(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/analytics/athlete/a1/overview":
			io.WriteString(w, `{"weekly_volume":240,"intensity_avg":6.5,"sessions_count_by_type":{"gym":2,"speed":1},"next_events":[{"id":"e1","name":"Regionals","date":"2024-05-01"}]}`)
		case "/api/analytics/athlete/a1/assessments":
			io.WriteString(w, `{"dates":["2024-01-01"],"strength_max":[5],"strength_endurance":[null],"strength_explosive":[6],"speed_linear":[7],"agility":[null],"power":[8],"mobility":[4],"endurance_aerobic":[null],"endurance_lactate":[3],"icm":[null]}`)
		default:
			http.NotFound(w, r)
		}
	})

	overview, err := client.AthleteOverview(context.Background(), "a1")
	if err != nil {
		t.Fatalf("AthleteOverview failed: %v", err)
	}
	if overview.WeeklyVolume != 240 || overview.SessionsCountByType["gym"] != 2 || len(overview.NextEvents) != 1 {
		t.Errorf("Unexpected overview %+v", overview)
	}

	series, err := client.AthleteAssessmentSeries(context.Background(), "a1")
	if err != nil {
		t.Fatalf("AthleteAssessmentSeries failed: %v", err)
	}
	if series.StrengthEndurance[0] != nil {
		t.Error("Expected null score to decode as nil")
	}
	if series.Power[0] == nil || *series.Power[0] != 8 {
		t.Errorf("Expected power 8, got %v", series.Power[0])
	}
}

func TestNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	origin := server.URL
	server.Close()

	client := New(origin, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	_, err := client.ListSessions(context.Background(), SessionFilter{})
	if err == nil {
		t.Fatal("Expected error from closed server")
	}

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Expected *NetworkError, got %T: %v", err, err)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Error("Network failure must not be classified as an API error")
	}
}

func TestSessionCookieRoundTrip(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "c@x.com" || req.Password != "secret" {
			http.Error(w, `{"detail":"Incorrect email or password"}`, http.StatusUnauthorized)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "jwt", Path: "/", HttpOnly: true})
		writeJSON(w, http.StatusOK, Token{AccessToken: "jwt", TokenType: "bearer"})
	})
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("access_token"); err != nil || c.Value != "jwt" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		io.WriteString(w, `{"id":"u1","role":"coach","email":"c@x.com","first_name":"C","last_name":"X","created_at":"2024-01-01"}`)
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "", Path: "/", MaxAge: -1})
		writeJSON(w, http.StatusOK, map[string]string{"message": "Successfully logged out"})
	})

	jar, _ := cookiejar.New(nil)
	client := newTestClient(t, mux.ServeHTTP, WithJar(jar))
	ctx := context.Background()

	if _, err := client.Me(ctx); !IsUnauthorized(err) {
		t.Fatalf("Expected 401 before login, got %v", err)
	}
	if _, err := client.Login(ctx, "c@x.com", "wrong"); !IsUnauthorized(err) {
		t.Fatalf("Expected 401 for wrong password, got %v", err)
	}
	if _, err := client.Login(ctx, "c@x.com", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := client.Me(ctx); err != nil {
		t.Fatalf("Expected Me to succeed with session cookie, got %v", err)
	}
	if err := client.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := client.Me(ctx); !IsUnauthorized(err) {
		t.Errorf("Expected 401 after logout, got %v", err)
	}
}

func TestBaseURL(t *testing.T) {
	client := New("http://localhost:8001/")
	if client.BaseURL() != "http://localhost:8001/api" {
		t.Errorf("Expected trailing slash to be trimmed, got %s", client.BaseURL())
	}
}

func TestVoidCallsAcceptEmptyBody(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		call    func(*Client) error
	}{
		{
			name: "delete 204",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodDelete || r.URL.Path != "/api/athletes/a1" {
					t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
				}
				w.WriteHeader(http.StatusNoContent)
			},
			call: func(c *Client) error { return c.DeleteAthlete(context.Background(), "a1") },
		},
		{
			name:    "logout empty 200",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) },
			call:    func(c *Client) error { return c.Logout(context.Background()) },
		},
		{
			name:    "delete whitespace body",
			handler: func(w http.ResponseWriter, r *http.Request) { io.WriteString(w, "\n") },
			call:    func(c *Client) error { return c.DeleteGoal(context.Background(), "g1") },
		},
		{
			name: "logout message ack",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]string{"message": "Successfully logged out"})
			},
			call: func(c *Client) error { return c.Logout(context.Background()) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			if err := tt.call(client); err != nil {
				t.Errorf("Expected success, got %v", err)
			}
		})
	}
}

func TestVoidCallRejectsMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>")
	})

	err := client.DeleteSession(context.Background(), "s1")
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("Expected ErrInvalidPayload, got %v", err)
	}
	if StatusCode(err) != http.StatusOK {
		t.Errorf("Expected status 200, got %d", StatusCode(err))
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestErrorStatusKeptWhenBodyReadFails(t *testing.T) {
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusServiceUnavailable,
			Header:     make(http.Header),
			Body:       io.NopCloser(errReader{}),
			Request:    r,
		}, nil
	})}
	client := New("http://backend.test", WithHTTPClient(hc), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	_, err := client.ListAthletes(context.Background(), AthleteFilter{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", apiErr.Status)
	}
	if IsNetworkError(err) {
		t.Error("Expected a classified status error, not a network error")
	}
}

func TestWithJarDoesNotMutateCallerClient(t *testing.T) {
	var sawCookie bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("access_token"); err == nil {
			sawCookie = true
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	}))
	t.Cleanup(server.Close)

	jar, _ := cookiejar.New(nil)
	u, _ := url.Parse(server.URL)
	jar.SetCookies(u, []*http.Cookie{{Name: "access_token", Value: "jwt", Path: "/"}})

	hc := &http.Client{}
	client := New(server.URL, WithHTTPClient(hc), WithJar(jar), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	if hc.Jar != nil {
		t.Error("Expected caller's http.Client jar to stay unset")
	}
	if err := client.Logout(context.Background()); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if !sawCookie {
		t.Error("Expected the jar's cookie to be sent")
	}
}
