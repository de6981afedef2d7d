package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"prism/internal/domain"
	"prism/internal/httputil"
	"prism/internal/render"
)

// handleError converts domain errors to responses in the negotiated
// representation. ErrForbiddenRedirect never reaches this point; the
// calling handler turns it into a redirect because only it knows the
// requester's own listing URL.
func handleError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, err error) {
	status := http.StatusInternalServerError
	detail := "internal server error"

	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
		detail = err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		detail = "not found"
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
		detail = "unauthorized"
	case errors.Is(err, domain.ErrUnprocessable):
		status = http.StatusUnprocessableEntity
		detail = "could not complete the requested change"
	}

	if httputil.NegotiateFormat(r) == httputil.FormatJSON {
		httputil.RespondError(w, status, detail)
		return
	}
	renderer.Error(w, status, detail)
}

// parseMaxTime reads the max_time query parameter (unix seconds) into a
// created-before cursor. Absent or malformed values mean no cursor.
func parseMaxTime(r *http.Request) *time.Time {
	raw := r.URL.Query().Get("max_time")
	if raw == "" {
		return nil
	}

	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}

	t := time.Unix(seconds, 0)
	return &t
}
