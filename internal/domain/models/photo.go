package models

import (
	"time"
)

// Photo is a user-submitted media post. OwnerID is set once at creation
// from the authenticated requester and never from client input.
type Photo struct {
	ID        string     `json:"id" db:"id"`
	OwnerID   string     `json:"owner_id" db:"owner_id"`
	Caption   string     `json:"caption" db:"caption"`
	Public    bool       `json:"public" db:"public"`
	AspectIDs []string   `json:"aspect_ids,omitempty" db:"-"`
	MediaKey  string     `json:"media_key" db:"media_key"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// VisibleTo reports whether a viewer may see the photo. viewerAspectIDs
// are the aspects (of any owner) the viewer has been added to. An empty
// viewerID is an anonymous request and sees only public photos.
//
// The Postgres repository enforces the same predicate in SQL; this helper
// is the single in-process definition, used by in-memory fakes and the
// show path.
func (p *Photo) VisibleTo(viewerID string, viewerAspectIDs []string) bool {
	if p.Public {
		return true
	}
	if viewerID == "" {
		return false
	}
	if viewerID == p.OwnerID {
		return true
	}
	for _, shared := range p.AspectIDs {
		for _, member := range viewerAspectIDs {
			if shared == member {
				return true
			}
		}
	}
	return false
}

// Retraction is the event emitted exactly once when a photo is destroyed,
// consumed by the federation layer to notify remote pods.
type Retraction struct {
	PhotoID     string    `json:"photo_id"`
	OwnerID     string    `json:"owner_id"`
	RetractedAt time.Time `json:"retracted_at"`
}
