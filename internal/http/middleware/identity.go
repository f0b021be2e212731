package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// Caller identifies the authenticated staff member behind a request.
type Caller struct {
	ID   int64
	Name string
	Role string
}

// IsAdmin reports whether the caller may use the operational admin endpoints.
func (c Caller) IsAdmin() bool {
	switch strings.ToUpper(c.Role) {
	case "ADMIN", "SUPERVISOR":
		return true
	}
	return false
}

// Authenticator resolves the caller identity from an incoming request.
type Authenticator interface {
	Authenticate(r *http.Request) (Caller, bool)
}

// HeaderAuthenticator trusts identity headers set by the edge proxy.
type HeaderAuthenticator struct{}

// Authenticate reads X-User-Id, X-User-Name and X-User-Role.
func (HeaderAuthenticator) Authenticate(r *http.Request) (Caller, bool) {
	id, err := strconv.ParseInt(r.Header.Get("X-User-Id"), 10, 64)
	if err != nil || id <= 0 {
		return Caller{}, false
	}
	return Caller{
		ID:   id,
		Name: r.Header.Get("X-User-Name"),
		Role: r.Header.Get("X-User-Role"),
	}, true
}

type callerKey struct{}

// Identity rejects unauthenticated requests and stores the caller in the context.
func Identity(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := auth.Authenticate(r)
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerKey{}, caller)))
		})
	}
}

// CallerFromContext returns the caller stored by Identity.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok
}
