package services

import (
	"context"
	"time"

	"prism/internal/domain/models"
)

// PhotoParams is a sanitized mutation payload. Only fields on the
// mass-assignment allow-list ever reach this struct; in particular there is
// no owner field, so an injected owner override cannot survive sanitization.
// Pointer fields distinguish "absent" from zero values on update.
type PhotoParams struct {
	Caption         *string
	Public          *bool
	AspectIDs       []string
	SetProfilePhoto bool
	MediaKey        string
}

// PhotoListing is the visible subset of a person's photos for one viewer.
// Count reflects only visible records, never the hidden total.
type PhotoListing struct {
	Entries []models.Photo `json:"entries"`
	Count   int            `json:"count"`
}

// PhotoService defines the photo lifecycle operations
type PhotoService interface {
	// CreatePhoto creates a photo owned by requesterID. Requires a media
	// key; an omitted scope defaults to public.
	CreatePhoto(ctx context.Context, requesterID string, params *PhotoParams) (*models.Photo, error)

	// ListPhotos returns personID's photos visible to viewerID, newest
	// first, optionally bounded by a created-before cursor. viewerID may
	// be empty (anonymous).
	ListPhotos(ctx context.Context, viewerID, personID string, maxTime *time.Time) (*PhotoListing, error)

	// ShowPhoto returns the photo iff visible to viewerID. Absent and
	// invisible photos yield the same ErrNotFound.
	ShowPhoto(ctx context.Context, viewerID, id string) (*models.Photo, error)

	// EditPhoto returns the photo for the owner's edit view. Foreign and
	// absent ids both get ErrForbiddenRedirect, so the response shape
	// reveals nothing about whether the id exists.
	EditPhoto(ctx context.Context, requesterID, id string) (*models.Photo, error)

	// UpdatePhoto applies sanitized caption/scope changes. Foreign and
	// absent ids both get ErrForbiddenRedirect; state is untouched.
	UpdatePhoto(ctx context.Context, requesterID, id string, params *PhotoParams) (*models.Photo, error)

	// DestroyPhoto removes an owned photo and emits exactly one
	// retraction. Non-owned or already-deleted ids yield ErrNotFound
	// with no side effects.
	DestroyPhoto(ctx context.Context, requesterID, id string) error

	// SetProfilePhoto atomically switches the requester's profile photo
	// designation. Foreign and absent ids both yield ErrUnprocessable,
	// no mutation.
	SetProfilePhoto(ctx context.Context, requesterID, id string) error
}
