package gcapi

import "net/http"

// Auth produces the fixed header block sent with every request.
type Auth struct {
	apiKey string
}

func newAuth(cfg Config) Auth {
	return Auth{apiKey: cfg.APIKey}
}

// Headers returns a fresh header set: bearer authorization plus JSON accept
// and content type.
func (a Auth) Headers() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+a.apiKey)
	h.Set("Accept", "application/json")
	h.Set("Content-Type", "application/json")
	return h
}
