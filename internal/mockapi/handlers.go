package mockapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

const generatedCodeLength = 7

func (s *Server) getExperience(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
	userID := ps.ByName("id")

	s.mu.Lock()
	xp := s.experience[userID]
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":    userID,
		"experience": xp,
	})
}

func (s *Server) getWarns(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
	userID := ps.ByName("id")
	warns := s.Warns(userID)
	if warns == nil {
		warns = []Warn{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id": userID,
		"warns":   warns,
	})
}

type createWarnRequest struct {
	BannedBy string `json:"banned_by"`
	Reason   string `json:"reason"`
}

func (s *Server) createWarn(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req createWarnRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var problems []string
	if req.BannedBy == "" {
		problems = append(problems, "banned_by is required")
	}
	if strings.TrimSpace(req.Reason) == "" {
		problems = append(problems, "reason is required")
	}
	if len(problems) > 0 {
		writeJSON(w, http.StatusOK, errorBody(problems...))
		return
	}

	warn := Warn{
		ID:        uuid.NewString(),
		UserID:    ps.ByName("id"),
		BannedBy:  req.BannedBy,
		Reason:    req.Reason,
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.warns[warn.UserID] = append(s.warns[warn.UserID], warn)
	s.mu.Unlock()

	s.logger.Info().Str("user_id", warn.UserID).Str("banned_by", warn.BannedBy).Msg("warn created")
	writeJSON(w, http.StatusCreated, warn)
}

type updateStatRequest struct {
	Value  *json.Number `json:"value"`
	Append *bool        `json:"append"`
}

func (s *Server) updateStat(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req updateStatRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Value == nil {
		writeJSON(w, http.StatusOK, errorBody("value is required"))
		return
	}
	value, err := req.Value.Float64()
	if err != nil {
		writeJSON(w, http.StatusOK, errorBody("value must be a number"))
		return
	}
	appendValue := req.Append == nil || *req.Append

	name := ps.ByName("name")
	s.mu.Lock()
	if appendValue {
		s.stats[name] += value
	} else {
		s.stats[name] = value
	}
	current := s.stats[name]
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"name":  name,
		"value": current,
	})
}

type createShortLinkRequest struct {
	URL       string `json:"url"`
	Code      string `json:"code"`
	ExpiresAt string `json:"expires_at"`
}

func (s *Server) createShortLink(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createShortLinkRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var problems []string
	switch {
	case req.URL == "":
		problems = append(problems, "url is required")
	case !isHTTPURL(req.URL):
		problems = append(problems, "url is invalid")
	}

	var expiresAt *time.Time
	if req.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, req.ExpiresAt)
		switch {
		case err != nil:
			problems = append(problems, "expires_at is invalid")
		case !t.After(s.now()):
			problems = append(problems, "expires_at must be in the future")
		default:
			expiresAt = &t
		}
	}
	if len(problems) > 0 {
		writeJSON(w, http.StatusOK, errorBody(problems...))
		return
	}

	s.mu.Lock()
	code := req.Code
	if code == "" {
		code = s.unusedCodeLocked()
	} else if _, taken := s.links[code]; taken {
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, errorBody("code is already taken"))
		return
	}
	link := ShortLink{Code: code, URL: req.URL, ExpiresAt: expiresAt}
	s.links[code] = link
	s.mu.Unlock()

	s.logger.Info().Str("code", code).Msg("short link created")
	writeJSON(w, http.StatusCreated, link)
}

func (s *Server) unusedCodeLocked() string {
	for {
		code := strings.ReplaceAll(uuid.NewString(), "-", "")[:generatedCodeLength]
		if _, taken := s.links[code]; !taken {
			return code
		}
	}
}

func isHTTPURL(val string) bool {
	parsed, err := url.Parse(val)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}
