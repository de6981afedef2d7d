package models

import "time"

// Aspect is a named social-context group a person shares photos with.
// Membership determines which non-public photos a viewer can see.
type Aspect struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
