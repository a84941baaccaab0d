// Package apitest runs an in-memory user-records API for tests.
//
// The server answers the same routes, query parameters, and error bodies as the
// real backend, backed by a deterministic data set. Tests can inject failures per
// route and inspect the requests that were received.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/rshade/dataexplorer/internal/api"
)

// Seed data vocabularies, matching the real backend's generator.
//
//nolint:gochecknoglobals // Read-only fixtures.
var (
	Departments = []string{"Engineering", "Marketing", "Sales", "HR", "Finance", "IT", "Operations"}
	Roles       = []string{"Intern", "Junior", "Mid-level", "Senior", "Lead", "Manager", "Director"}

	firstNames = []string{"Ada", "Grace", "Linus", "Ken", "Barbara", "Dennis", "Frances", "Edsger", "Margaret", "Alan", "Radia"}
	lastNames  = []string{"Lovelace", "Hopper", "Torvalds", "Thompson", "Liskov", "Ritchie", "Allen", "Dijkstra", "Hamilton", "Turing"}
)

// DefaultUserCount is the number of users a new Server starts with.
const DefaultUserCount = 57

const (
	maxLimit = 100
	minSeed  = 1
	maxSeed  = 1000
)

// Request is one request the server received.
type Request struct {
	Method    string
	Path      string
	Query     url.Values
	RequestID string
	UserAgent string
}

// failure is an injected response for a route.
type failure struct {
	status int
	body   string
}

// Server is a fake user-records API.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	users    []api.User
	failures map[string]failure
	delays   map[string]time.Duration
	requests []Request
}

// NewServer starts a Server seeded with DefaultUserCount users and closes it when t ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		users:    GenerateUsers(DefaultUserCount),
		failures: make(map[string]failure),
		delays:   make(map[string]time.Duration),
	}
	s.Server = httptest.NewServer(s.router())
	t.Cleanup(s.Close)
	return s
}

// Client returns an api.Client pointed at the server.
func (s *Server) Client(t testing.TB) *api.Client {
	t.Helper()

	c, err := api.NewClient(api.Options{BaseURL: s.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	return c
}

// SetUsers replaces the data set.
func (s *Server) SetUsers(users []api.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]api.User(nil), users...)
}

// Users returns a copy of the data set.
func (s *Server) Users() []api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.User(nil), s.users...)
}

// Fail makes every request to path answer with status and body until Recover is called.
// An empty body is sent as-is, so the response is not structured.
func (s *Server) Fail(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = failure{status: status, body: body}
}

// FailWithDetail is Fail with a {"detail": message} body.
func (s *Server) FailWithDetail(path string, status int, message string) {
	body, _ := json.Marshal(map[string]string{"detail": message})
	s.Fail(path, status, string(body))
}

// Delay holds every response for path by d.
func (s *Server) Delay(path string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays[path] = d
}

// Recover clears injected failures and delays for path.
func (s *Server) Recover(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, path)
	delete(s.delays, path)
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Hits counts requests received for path.
func (s *Server) Hits(path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Path == path {
			n++
		}
	}
	return n
}

// GenerateUsers builds n deterministic users with ids 1..n.
func GenerateUsers(n int) []api.User {
	base := time.Date(2020, time.January, 6, 0, 0, 0, 0, time.UTC)
	users := make([]api.User, 0, n)
	for i := range n {
		first := firstNames[i%len(firstNames)]
		last := lastNames[(i/len(firstNames)+i)%len(lastNames)]
		joined := base.AddDate(0, 0, (i*37)%1800)
		users = append(users, api.User{
			ID:         i + 1,
			Name:       first + " " + last,
			Email:      fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i+1),
			Role:       Roles[(i*3)%len(Roles)],
			Department: Departments[(i*5)%len(Departments)],
			DateJoined: api.Date{Time: joined},
		})
	}
	return users
}

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.record, s.inject)
	r.HandleFunc("/users/", s.handleUsers).Methods(http.MethodGet)
	r.HandleFunc("/departments/", s.handleDepartments).Methods(http.MethodGet)
	r.HandleFunc("/roles/", s.handleRoles).Methods(http.MethodGet)
	r.HandleFunc("/seed/", s.handleSeed).Methods(http.MethodPost)
	r.HandleFunc("/health/", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/cache/", s.handleCache).Methods(http.MethodDelete)
	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.Query(),
			RequestID: r.Header.Get("X-Request-ID"),
			UserAgent: r.UserAgent(),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		f, failing := s.failures[r.URL.Path]
		delay := s.delays[r.URL.Path]
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// validationError is one entry of a 422 response's detail list.
type validationError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type listQuery struct {
	skip       int
	limit      int
	search     string
	department string
	role       string
	sortBy     string
	sortOrder  string
}

func parseListQuery(q url.Values) (listQuery, []validationError) {
	lq := listQuery{skip: 0, limit: 10, sortBy: "id", sortOrder: "asc"}
	var errs []validationError

	intParam := func(name string, dst *int, minimum, maximum int) {
		raw := q.Get(name)
		if raw == "" {
			return
		}
		v, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs = append(errs, validationError{
				Loc: []string{"query", name}, Msg: "Input should be a valid integer", Type: "int_parsing",
			})
		case v < minimum:
			errs = append(errs, validationError{
				Loc: []string{"query", name}, Msg: fmt.Sprintf("Input should be greater than or equal to %d", minimum),
				Type: "greater_than_equal",
			})
		case maximum > 0 && v > maximum:
			errs = append(errs, validationError{
				Loc: []string{"query", name}, Msg: fmt.Sprintf("Input should be less than or equal to %d", maximum),
				Type: "less_than_equal",
			})
		default:
			*dst = v
		}
	}
	intParam("skip", &lq.skip, 0, 0)
	intParam("limit", &lq.limit, 1, maxLimit)

	lq.search = q.Get("search")
	lq.department = q.Get("department")
	lq.role = q.Get("role")

	if v := q.Get("sort_by"); v != "" {
		switch v {
		case "id", "name", "email", "role", "department", "date_joined":
			lq.sortBy = v
		default:
			errs = append(errs, validationError{
				Loc: []string{"query", "sort_by"}, Msg: "String should match pattern", Type: "string_pattern_mismatch",
			})
		}
	}
	if v := q.Get("sort_order"); v != "" {
		if v != "asc" && v != "desc" {
			errs = append(errs, validationError{
				Loc: []string{"query", "sort_order"}, Msg: "String should match pattern", Type: "string_pattern_mismatch",
			})
		} else {
			lq.sortOrder = v
		}
	}
	return lq, errs
}

func matches(u api.User, lq listQuery) bool {
	if lq.department != "" && u.Department != lq.department {
		return false
	}
	if lq.role != "" && u.Role != lq.role {
		return false
	}
	if lq.search == "" {
		return true
	}
	needle := strings.ToLower(lq.search)
	for _, field := range []string{u.Name, u.Email, u.Department, u.Role} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func less(a, b api.User, column string) bool {
	switch column {
	case "name":
		return a.Name < b.Name
	case "email":
		return a.Email < b.Email
	case "role":
		return a.Role < b.Role
	case "department":
		return a.Department < b.Department
	case "date_joined":
		return a.DateJoined.Before(b.DateJoined.Time)
	default:
		return a.ID < b.ID
	}
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	lq, errs := parseListQuery(r.URL.Query())
	if len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": errs})
		return
	}

	all := s.Users()
	filtered := make([]api.User, 0, len(all))
	for _, u := range all {
		if matches(u, lq) {
			filtered = append(filtered, u)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		if lq.sortOrder == "desc" {
			return less(filtered[j], filtered[i], lq.sortBy)
		}
		return less(filtered[i], filtered[j], lq.sortBy)
	})

	total := len(filtered)
	start := min(lq.skip, total)
	end := min(start+lq.limit, total)

	writeJSON(w, http.StatusOK, map[string]any{
		"users":       filtered[start:end],
		"total":       total,
		"page":        lq.skip/lq.limit + 1,
		"limit":       lq.limit,
		"total_pages": (total + lq.limit - 1) / lq.limit,
	})
}

func (s *Server) distinct(field func(api.User) string, key string) []map[string]string {
	seen := make(map[string]bool)
	out := []map[string]string{}
	for _, u := range s.Users() {
		v := field(u)
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, map[string]string{key: v})
	}
	return out
}

func (s *Server) handleDepartments(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.distinct(func(u api.User) string { return u.Department }, "department"))
}

func (s *Server) handleRoles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.distinct(func(u api.User) string { return u.Role }, "role"))
}

func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	count := api.DefaultSeedCount
	var errs []validationError
	if raw := r.URL.Query().Get("count"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < minSeed || v > maxSeed {
			errs = append(errs, validationError{
				Loc: []string{"query", "count"}, Msg: "Input should be between 1 and 1000", Type: "value_error",
			})
		}
		count = v
	}
	if len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": errs})
		return
	}

	s.SetUsers(GenerateUsers(count))
	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Seeded %d users", count)})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleCache(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Cache cleared"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
