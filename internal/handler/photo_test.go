package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"prism/internal/domain"
	"prism/internal/domain/models"
	"prism/internal/domain/services"
	"prism/internal/httputil"
	"prism/internal/render"
)

// stubPhotoService returns canned results per operation. Handlers are
// tested for status codes, negotiation and redirect wiring, not for
// lifecycle semantics.
type stubPhotoService struct {
	photo      *models.Photo
	listing    *services.PhotoListing
	err        error
	lastParams *services.PhotoParams
}

func (s *stubPhotoService) CreatePhoto(_ context.Context, requesterID string, params *services.PhotoParams) (*models.Photo, error) {
	s.lastParams = params
	if s.err != nil {
		return nil, s.err
	}
	photo := *s.photo
	photo.OwnerID = requesterID
	return &photo, nil
}

func (s *stubPhotoService) ListPhotos(context.Context, string, string, *time.Time) (*services.PhotoListing, error) {
	return s.listing, s.err
}

func (s *stubPhotoService) ShowPhoto(context.Context, string, string) (*models.Photo, error) {
	return s.photo, s.err
}

func (s *stubPhotoService) EditPhoto(context.Context, string, string) (*models.Photo, error) {
	return s.photo, s.err
}

func (s *stubPhotoService) UpdatePhoto(_ context.Context, _ string, _ string, params *services.PhotoParams) (*models.Photo, error) {
	s.lastParams = params
	return s.photo, s.err
}

func (s *stubPhotoService) DestroyPhoto(context.Context, string, string) error {
	return s.err
}

func (s *stubPhotoService) SetProfilePhoto(context.Context, string, string) error {
	return s.err
}

func newTestServer(t *testing.T, svc services.PhotoService) *http.ServeMux {
	t.Helper()

	renderer, err := render.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	h := NewPhotoHandler(svc, renderer, slog.New(slog.DiscardHandler))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/photos", h.CreatePhoto)
	mux.HandleFunc("GET /api/people/{personID}/photos", h.ListPhotos)
	mux.HandleFunc("GET /api/people/{personID}/photos/{id}", h.ShowPhoto)
	mux.HandleFunc("GET /api/photos/{id}/edit", h.EditPhoto)
	mux.HandleFunc("PATCH /api/photos/{id}", h.UpdatePhoto)
	mux.HandleFunc("DELETE /api/photos/{id}", h.DestroyPhoto)
	mux.HandleFunc("POST /api/photos/{id}/profile", h.SetProfilePhoto)
	return mux
}

func doRequest(mux *http.ServeMux, method, path, personID, accept, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if personID != "" {
		req = httputil.WithPersonID(req, personID)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func samplePhoto() *models.Photo {
	return &models.Photo{
		ID:        "p1",
		OwnerID:   "alice",
		Caption:   "sunset",
		Public:    true,
		MediaKey:  "uploads/sunset.jpg",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreatePhotoHandler(t *testing.T) {
	t.Run("anonymous gets 401", func(t *testing.T) {
		mux := newTestServer(t, &stubPhotoService{photo: samplePhoto()})
		rec := doRequest(mux, "POST", "/api/photos", "", "application/json", `{"photo":{"media_key":"uploads/x.jpg"}}`)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("authenticated create returns 201 JSON when preferred", func(t *testing.T) {
		mux := newTestServer(t, &stubPhotoService{photo: samplePhoto()})
		rec := doRequest(mux, "POST", "/api/photos", "alice", "application/json", `{"photo":{"media_key":"uploads/x.jpg"}}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
	})

	t.Run("browser-style accept gets HTML", func(t *testing.T) {
		mux := newTestServer(t, &stubPhotoService{photo: samplePhoto()})
		rec := doRequest(mux, "POST", "/api/photos", "alice", "text/html,application/xhtml+xml,*/*;q=0.8", `{"photo":{"media_key":"uploads/x.jpg"}}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("Content-Type = %q, want text/html", ct)
		}
	})

	t.Run("owner override is stripped before the service sees it", func(t *testing.T) {
		svc := &stubPhotoService{photo: samplePhoto()}
		mux := newTestServer(t, svc)
		doRequest(mux, "POST", "/api/photos", "alice", "application/json",
			`{"photo":{"media_key":"uploads/x.jpg","owner_id":"mallory"}}`)
		if svc.lastParams == nil {
			t.Fatal("service never received params")
		}
		// PhotoParams has no owner field at all; check nothing else leaked
		if svc.lastParams.MediaKey != "uploads/x.jpg" {
			t.Errorf("MediaKey = %q, want uploads/x.jpg", svc.lastParams.MediaKey)
		}
	})

	t.Run("malformed body gets 400", func(t *testing.T) {
		mux := newTestServer(t, &stubPhotoService{photo: samplePhoto()})
		rec := doRequest(mux, "POST", "/api/photos", "alice", "application/json", `{not json`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestListPhotosHandler(t *testing.T) {
	listing := &services.PhotoListing{
		Entries: []models.Photo{*samplePhoto()},
		Count:   1,
	}

	t.Run("anonymous listing succeeds", func(t *testing.T) {
		mux := newTestServer(t, &stubPhotoService{listing: listing})
		rec := doRequest(mux, "GET", "/api/people/alice/photos", "", "application/json", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var body struct {
			Photos services.PhotoListing `json:"photos"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if body.Photos.Count != 1 {
			t.Errorf("count = %d, want 1", body.Photos.Count)
		}
	})

	t.Run("default accept renders HTML", func(t *testing.T) {
		mux := newTestServer(t, &stubPhotoService{listing: listing})
		rec := doRequest(mux, "GET", "/api/people/alice/photos", "", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("Content-Type = %q, want text/html", ct)
		}
	})
}

func TestShowPhotoHandler(t *testing.T) {
	t.Run("invisible photo gets 404", func(t *testing.T) {
		mux := newTestServer(t, &stubPhotoService{err: fmt.Errorf("photo: %w", domain.ErrNotFound)})
		rec := doRequest(mux, "GET", "/api/people/alice/photos/p1", "eve", "application/json", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("photo under the wrong person gets 404", func(t *testing.T) {
		// The stub returns alice's photo but the URL names bob
		mux := newTestServer(t, &stubPhotoService{photo: samplePhoto()})
		rec := doRequest(mux, "GET", "/api/people/bob/photos/p1", "alice", "application/json", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("visible photo gets 200", func(t *testing.T) {
		mux := newTestServer(t, &stubPhotoService{photo: samplePhoto()})
		rec := doRequest(mux, "GET", "/api/people/alice/photos/p1", "", "application/json", "")
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})
}

func TestEditAndUpdateRedirect(t *testing.T) {
	denied := &stubPhotoService{err: fmt.Errorf("photo: %w", domain.ErrForbiddenRedirect)}

	t.Run("denied edit redirects to the requester's own listing", func(t *testing.T) {
		mux := newTestServer(t, denied)
		rec := doRequest(mux, "GET", "/api/photos/p1/edit", "bob", "text/html", "")
		if rec.Code != http.StatusFound {
			t.Fatalf("status = %d, want 302", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/api/people/bob/photos" {
			t.Errorf("Location = %q, want /api/people/bob/photos", loc)
		}
	})

	t.Run("denied update redirects the same way", func(t *testing.T) {
		mux := newTestServer(t, denied)
		rec := doRequest(mux, "PATCH", "/api/photos/p1", "bob", "text/html", `{"photo":{"caption":"defaced"}}`)
		if rec.Code != http.StatusFound {
			t.Fatalf("status = %d, want 302", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/api/people/bob/photos" {
			t.Errorf("Location = %q, want /api/people/bob/photos", loc)
		}
	})

	t.Run("anonymous edit gets 401, not a redirect", func(t *testing.T) {
		mux := newTestServer(t, denied)
		rec := doRequest(mux, "GET", "/api/photos/p1/edit", "", "text/html", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestDestroyPhotoHandler(t *testing.T) {
	t.Run("owner destroy gets 204", func(t *testing.T) {
		mux := newTestServer(t, &stubPhotoService{})
		rec := doRequest(mux, "DELETE", "/api/photos/p1", "alice", "application/json", "")
		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})

	t.Run("non-owner destroy gets 404", func(t *testing.T) {
		mux := newTestServer(t, &stubPhotoService{err: fmt.Errorf("photo: %w", domain.ErrNotFound)})
		rec := doRequest(mux, "DELETE", "/api/photos/p1", "bob", "application/json", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestSetProfilePhotoHandler(t *testing.T) {
	t.Run("owned photo gets 201 with photo id", func(t *testing.T) {
		mux := newTestServer(t, &stubPhotoService{})
		rec := doRequest(mux, "POST", "/api/photos/p1/profile", "alice", "application/json", "")
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}

		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if body["status"] != "created" || body["photo_id"] != "p1" {
			t.Errorf("body = %v, want status=created photo_id=p1", body)
		}
	})

	t.Run("non-owned photo gets 422", func(t *testing.T) {
		mux := newTestServer(t, &stubPhotoService{err: fmt.Errorf("photo: %w", domain.ErrUnprocessable)})
		rec := doRequest(mux, "POST", "/api/photos/p1/profile", "bob", "application/json", "")
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", rec.Code)
		}
	})
}
