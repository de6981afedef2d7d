// Package render produces the human-oriented HTML representation chosen by
// content negotiation. Structured-data clients get JSON from httputil
// instead; the view layer here is deliberately thin because rich rendering
// belongs to the frontend, not this core.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"prism/internal/domain/models"
	"prism/internal/domain/services"
)

//go:embed templates/*.html.tmpl
var templateFiles embed.FS

// Renderer renders HTML views from embedded templates
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	templates, err := template.ParseFS(templateFiles, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: templates}, nil
}

// listingView is the data for the listing template
type listingView struct {
	PersonID string
	Listing  *services.PhotoListing
}

// Listing renders a person's visible photos
func (r *Renderer) Listing(w http.ResponseWriter, status int, personID string, listing *services.PhotoListing) {
	r.render(w, status, "listing.html.tmpl", &listingView{PersonID: personID, Listing: listing})
}

// Photo renders a single photo view
func (r *Renderer) Photo(w http.ResponseWriter, status int, photo *models.Photo) {
	r.render(w, status, "photo.html.tmpl", photo)
}

// Edit renders the owner's edit view
func (r *Renderer) Edit(w http.ResponseWriter, status int, photo *models.Photo) {
	r.render(w, status, "edit.html.tmpl", photo)
}

// Error renders an HTML error page
func (r *Renderer) Error(w http.ResponseWriter, status int, message string) {
	r.render(w, status, "error.html.tmpl", struct {
		Status  int
		Title   string
		Message string
	}{Status: status, Title: http.StatusText(status), Message: message})
}

func (r *Renderer) render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		// Headers are already written; nothing left to do but log via
		// the surrounding recovery middleware on panic paths.
		fmt.Fprintf(w, "<!-- render error: %v -->", err)
	}
}
