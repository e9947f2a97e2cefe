// Package mockapi is an in-memory stand-in for the GCA API. It serves the
// five client endpoints, enforces bearer authentication and reports
// validation failures with the API's errorMessages convention (HTTP 200 with
// an error list in the body).
package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

// Warn is a moderation record.
type Warn struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BannedBy  string    `json:"banned_by"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// ShortLink is a stored short link.
type ShortLink struct {
	Code      string     `json:"code"`
	URL       string     `json:"url"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Server holds the in-memory state. It is safe for concurrent use.
type Server struct {
	apiKey  string
	version string
	logger  zerolog.Logger
	now     func() time.Time

	mu         sync.Mutex
	experience map[string]int64
	stats      map[string]float64
	warns      map[string][]Warn
	links      map[string]ShortLink
}

// Option configures a Server.
type Option func(*Server)

// WithAPIVersion serves the routes under /v{version}. Defaults to "1".
func WithAPIVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithLogger sets the request logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithClock overrides time.Now, for expiry checks in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New creates a Server accepting apiKey as its only valid bearer token.
func New(apiKey string, opts ...Option) *Server {
	s := &Server{
		apiKey:     apiKey,
		version:    "1",
		logger:     zerolog.Nop(),
		now:        time.Now,
		experience: map[string]int64{},
		stats:      map[string]float64{},
		warns:      map[string][]Warn{},
		links:      map[string]ShortLink{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	prefix := "/v" + s.version

	r := httprouter.New()
	r.GET(prefix+"/users/:id/experience", s.authenticated(s.getExperience))
	r.GET(prefix+"/users/:id/warn", s.authenticated(s.getWarns))
	r.POST(prefix+"/users/:id/warn", s.authenticated(s.createWarn))
	r.PUT(prefix+"/stats/:name", s.authenticated(s.updateStat))
	r.POST(prefix+"/shortlinks", s.authenticated(s.createShortLink))
	r.NotFound = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody("route not found"))
	})
	return r
}

// SetExperience seeds the experience of a user.
func (s *Server) SetExperience(userID string, xp int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.experience[userID] = xp
}

// Stat returns the stored value of a stat.
func (s *Server) Stat(name string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.stats[name]
	return v, ok
}

// Warns returns a copy of the warns recorded for a user.
func (s *Server) Warns(userID string) []Warn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Warn(nil), s.warns[userID]...)
}

// ShortLink returns the link stored under code.
func (s *Server) ShortLink(code string) (ShortLink, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.links[code]
	return l, ok
}

func (s *Server) authenticated(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token != s.apiKey {
			s.logger.Warn().Str("method", r.Method).Str("path", r.URL.Path).Msg("rejected request with invalid api key")
			writeJSON(w, http.StatusUnauthorized, errorBody("invalid api key"))
			return
		}
		s.logger.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("request")
		next(w, r, ps)
	}
}

type errorResponse struct {
	ErrorMessages []string `json:"errorMessages"`
}

func errorBody(msgs ...string) errorResponse {
	return errorResponse{ErrorMessages: msgs}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody reports false after writing a 400 when the body is not JSON.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("malformed json body"))
		return false
	}
	return true
}
