package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"prism/internal/domain"
	"prism/internal/httputil"
	"prism/internal/render"
	"prism/internal/service"

	domainSvc "prism/internal/domain/services"
)

// PhotoHandler handles photo HTTP requests
type PhotoHandler struct {
	photoService domainSvc.PhotoService
	renderer     *render.Renderer
	logger       *slog.Logger
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photoService domainSvc.PhotoService, renderer *render.Renderer, logger *slog.Logger) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
		renderer:     renderer,
		logger:       logger,
	}
}

// photoEnvelope wraps the raw mutation payload. The inner map goes through
// the mass-assignment guard before anything else reads it.
type photoEnvelope struct {
	Photo map[string]interface{} `json:"photo"`
}

// CreatePhoto creates a new photo
// POST /api/photos
func (h *PhotoHandler) CreatePhoto(w http.ResponseWriter, r *http.Request) {
	requesterID := httputil.GetPersonID(r)
	if requesterID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "sign in to post photos")
		return
	}

	var req photoEnvelope
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params := service.SanitizePhotoParams(req.Photo, service.OpCreate)

	photo, err := h.photoService.CreatePhoto(r.Context(), requesterID, params)
	if err != nil {
		handleError(w, r, h.renderer, err)
		return
	}

	if httputil.NegotiateFormat(r) == httputil.FormatJSON {
		httputil.RespondJSON(w, http.StatusCreated, photo)
		return
	}
	h.renderer.Photo(w, http.StatusCreated, photo)
}

// ListPhotos lists a person's photos visible to the requester
// GET /api/people/{personID}/photos
func (h *PhotoHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	personID := r.PathValue("personID")
	if personID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "person ID is required")
		return
	}

	viewerID := httputil.GetPersonID(r)
	maxTime := parseMaxTime(r)

	listing, err := h.photoService.ListPhotos(r.Context(), viewerID, personID, maxTime)
	if err != nil {
		handleError(w, r, h.renderer, err)
		return
	}

	if httputil.NegotiateFormat(r) == httputil.FormatJSON {
		httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"photos": listing})
		return
	}
	h.renderer.Listing(w, http.StatusOK, personID, listing)
}

// ShowPhoto returns a single photo if the requester may see it
// GET /api/people/{personID}/photos/{id}
func (h *PhotoHandler) ShowPhoto(w http.ResponseWriter, r *http.Request) {
	personID := r.PathValue("personID")
	id := r.PathValue("id")
	if personID == "" || id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "person ID and photo ID are required")
		return
	}

	viewerID := httputil.GetPersonID(r)

	photo, err := h.photoService.ShowPhoto(r.Context(), viewerID, id)
	if err != nil {
		handleError(w, r, h.renderer, err)
		return
	}

	// A photo reached through the wrong person's listing does not exist
	// as far as the caller can tell.
	if photo.OwnerID != personID {
		handleError(w, r, h.renderer, domain.ErrNotFound)
		return
	}

	if httputil.NegotiateFormat(r) == httputil.FormatJSON {
		httputil.RespondJSON(w, http.StatusOK, photo)
		return
	}
	h.renderer.Photo(w, http.StatusOK, photo)
}

// EditPhoto returns the owner's edit view
// GET /api/photos/{id}/edit
func (h *PhotoHandler) EditPhoto(w http.ResponseWriter, r *http.Request) {
	requesterID := httputil.GetPersonID(r)
	if requesterID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "sign in to edit photos")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "photo ID is required")
		return
	}

	photo, err := h.photoService.EditPhoto(r.Context(), requesterID, id)
	if err != nil {
		if errors.Is(err, domain.ErrForbiddenRedirect) {
			h.redirectToOwnListing(w, r, requesterID)
			return
		}
		handleError(w, r, h.renderer, err)
		return
	}

	if httputil.NegotiateFormat(r) == httputil.FormatJSON {
		httputil.RespondJSON(w, http.StatusOK, photo)
		return
	}
	h.renderer.Edit(w, http.StatusOK, photo)
}

// UpdatePhoto applies caption/scope changes
// PATCH /api/photos/{id}
func (h *PhotoHandler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	requesterID := httputil.GetPersonID(r)
	if requesterID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "sign in to edit photos")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "photo ID is required")
		return
	}

	var req photoEnvelope
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params := service.SanitizePhotoParams(req.Photo, service.OpUpdate)

	photo, err := h.photoService.UpdatePhoto(r.Context(), requesterID, id, params)
	if err != nil {
		if errors.Is(err, domain.ErrForbiddenRedirect) {
			h.redirectToOwnListing(w, r, requesterID)
			return
		}
		handleError(w, r, h.renderer, err)
		return
	}

	if httputil.NegotiateFormat(r) == httputil.FormatJSON {
		httputil.RespondJSON(w, http.StatusOK, photo)
		return
	}
	h.renderer.Photo(w, http.StatusOK, photo)
}

// DestroyPhoto deletes an owned photo
// DELETE /api/photos/{id}
func (h *PhotoHandler) DestroyPhoto(w http.ResponseWriter, r *http.Request) {
	requesterID := httputil.GetPersonID(r)
	if requesterID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "sign in to delete photos")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "photo ID is required")
		return
	}

	if err := h.photoService.DestroyPhoto(r.Context(), requesterID, id); err != nil {
		handleError(w, r, h.renderer, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetProfilePhoto designates an owned photo as the profile photo
// POST /api/photos/{id}/profile
func (h *PhotoHandler) SetProfilePhoto(w http.ResponseWriter, r *http.Request) {
	requesterID := httputil.GetPersonID(r)
	if requesterID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "sign in to change your profile photo")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "photo ID is required")
		return
	}

	if err := h.photoService.SetProfilePhoto(r.Context(), requesterID, id); err != nil {
		handleError(w, r, h.renderer, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]string{
		"status":   "created",
		"photo_id": id,
	})
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *PhotoHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}

// redirectToOwnListing answers a denied read-adjacent action with a
// redirect to the requester's own photos. The response shape is the same
// whatever the reason for the denial.
func (h *PhotoHandler) redirectToOwnListing(w http.ResponseWriter, r *http.Request, requesterID string) {
	http.Redirect(w, r, "/api/people/"+requesterID+"/photos", http.StatusFound)
}
