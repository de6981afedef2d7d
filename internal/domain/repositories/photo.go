package repositories

import (
	"context"
	"time"

	"prism/internal/domain/models"
)

// PhotoRepository is the query contract the lifecycle service needs from
// durable storage. Visibility filtering happens inside the store so that
// hidden records never reach the caller.
type PhotoRepository interface {
	// Create persists a new photo together with its aspect scope rows.
	Create(ctx context.Context, photo *models.Photo) error

	// GetByID retrieves a photo regardless of visibility. Used by the
	// ownership gate; never exposed to viewers directly.
	GetByID(ctx context.Context, id string) (*models.Photo, error)

	// GetVisible retrieves a photo only if the viewer may see it.
	// Absent and invisible records return the same ErrNotFound.
	GetVisible(ctx context.Context, id, viewerID string) (*models.Photo, error)

	// ListVisible returns the photos of ownerID visible to viewerID,
	// newest first. When maxTime is non-nil only records created
	// strictly before it are returned.
	ListVisible(ctx context.Context, ownerID, viewerID string, maxTime *time.Time) ([]models.Photo, error)

	// Update persists caption and scope changes. Owner and id are
	// immutable; the WHERE clause is keyed on both id and owner_id.
	Update(ctx context.Context, photo *models.Photo) error

	// Delete removes the photo iff it is owned by ownerID. Returns
	// ErrNotFound when no row matched (absent, already deleted, or not
	// owned - deliberately indistinguishable).
	Delete(ctx context.Context, id, ownerID string) (*models.Photo, error)
}
