package repositories

import (
	"context"

	"prism/internal/domain/models"
)

// AspectRepository reads the social-scope groups a person owns. Viewer
// memberships never surface through this interface; the photo queries
// resolve them inside their visibility predicate.
type AspectRepository interface {
	// ListOwnedBy returns the aspects a person has defined.
	ListOwnedBy(ctx context.Context, ownerID string) ([]models.Aspect, error)
}
