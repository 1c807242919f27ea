package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fairlane-hq/fairlane/internal/domain"
)

// ─── Request Validation ─────────────────────────────────────────────────────
// Parameter checks run before any core operation: the core receives only
// well-formed numeric ids and dates.

// idParam parses a numeric URL parameter. label names the parameter in the
// error detail, e.g. "Contract id".
func idParam(r *http.Request, name, label string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, domain.ParamMissing(label + " is missing")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.InvalidParam(label + " should be a number")
	}
	return id, nil
}

// dateLayouts accepted for the admin window bounds.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// windowParams parses and validates the start/end query parameters.
func windowParams(r *http.Request) (start, end time.Time, err error) {
	rawStart := r.URL.Query().Get("start")
	rawEnd := r.URL.Query().Get("end")
	if rawStart == "" || rawEnd == "" {
		return time.Time{}, time.Time{}, domain.ParamMissing("Start and end dates are required")
	}

	start, okStart := parseDate(rawStart)
	end, okEnd := parseDate(rawEnd)
	if !okStart || !okEnd {
		return time.Time{}, time.Time{}, domain.InvalidParam("Start and end dates should be valid ISO string dates")
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, domain.InvalidParam("Start date should be before end date")
	}
	return start, end, nil
}

// limitParam parses an optional positive integer query parameter,
// returning 0 when absent so the engine applies its default.
func limitParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, domain.InvalidParam("Limit should be a positive number")
	}
	return limit, nil
}
