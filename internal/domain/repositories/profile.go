package repositories

import "context"

// ProfileRepository manages the per-person profile photo designation.
// At most one photo per person holds it at any time.
type ProfileRepository interface {
	// SetProfilePhoto switches the designation to photoID in a single
	// atomic store transition (clear-then-assign).
	SetProfilePhoto(ctx context.Context, personID, photoID string) error

	// ClearIfPhoto removes the designation wherever it points at
	// photoID. Called when a designated photo is destroyed.
	ClearIfPhoto(ctx context.Context, photoID string) error
}
