package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/fairlane-hq/fairlane/internal/domain"
)

// ─── Profile Resolution ─────────────────────────────────────────────────────
// Callers identify themselves with a profile_id header. The middleware
// resolves it to a profile row before any handler runs; requests without a
// resolvable profile never reach the core.

type contextKey string

const profileKey contextKey = "fairlane-profile"

// requireProfile resolves the profile_id header to a Profile and stores it
// in the request context, or rejects with 401.
func (s *Server) requireProfile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.Header.Get("profile_id"), 10, 64)
		if err != nil {
			writeError(w, domain.Unauthorized(""))
			return
		}

		profile, ok, err := s.db.ProfileByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			writeError(w, domain.Unauthorized(""))
			return
		}

		ctx := context.WithValue(r.Context(), profileKey, profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// profileFrom returns the profile resolved by requireProfile.
func profileFrom(r *http.Request) domain.Profile {
	p, _ := r.Context().Value(profileKey).(domain.Profile)
	return p
}
