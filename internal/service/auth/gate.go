// Package auth holds the ownership gate every single-record photo
// operation passes through.
package auth

import (
	"prism/internal/domain"
	"prism/internal/domain/models"
)

// Action is the operation being authorized against a photo.
type Action int

const (
	ActionEdit Action = iota
	ActionUpdate
	ActionDestroy
	ActionSetProfilePhoto
)

// Decision is the gate's tagged outcome. It is a value, not an error, so
// each caller can map a denial to the response shape its action requires.
type Decision int

const (
	// Allow permits the action.
	Allow Decision = iota
	// DenyRedirect routes the requester to their own listing. Used for
	// read-adjacent actions where an explicit error would confirm the
	// record exists.
	DenyRedirect
	// DenyNotFound makes the record indistinguishable from an absent
	// one. Used for destructive actions.
	DenyNotFound
	// DenyStatus reports a distinct failure status with no safe redirect
	// target. Used for the profile-photo designation.
	DenyStatus
)

// Authorize decides whether requesterID may perform action on photo.
// Allow iff the requester is the record's owner; the deny flavor depends
// only on the action, never on why access was denied.
func Authorize(requesterID string, photo *models.Photo, action Action) Decision {
	if photo != nil && requesterID != "" && photo.OwnerID == requesterID {
		return Allow
	}

	switch action {
	case ActionEdit, ActionUpdate:
		return DenyRedirect
	case ActionSetProfilePhoto:
		return DenyStatus
	default:
		return DenyNotFound
	}
}

// Err maps a decision to the domain error the lifecycle service
// propagates. Allow maps to nil.
func (d Decision) Err() error {
	switch d {
	case Allow:
		return nil
	case DenyRedirect:
		return domain.ErrForbiddenRedirect
	case DenyStatus:
		return domain.ErrUnprocessable
	default:
		return domain.ErrNotFound
	}
}
