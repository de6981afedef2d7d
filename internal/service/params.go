package service

import (
	"prism/internal/domain/services"
)

// Operation is the mutation kind a payload is sanitized for.
type Operation int

const (
	OpCreate Operation = iota
	OpUpdate
)

// SanitizePhotoParams is the mass-assignment guard. It maps a raw mutation
// payload to a PhotoParams containing only allow-listed fields for the
// operation kind. Anything else - including owner, owner_id, author,
// author_id, or any other identity-reassigning field - is dropped silently.
// The operation proceeds with the remaining fields and the caller gets no
// signal that an override was attempted, so the guard cannot be used as an
// existence or policy oracle.
func SanitizePhotoParams(raw map[string]interface{}, op Operation) *services.PhotoParams {
	params := &services.PhotoParams{}
	if raw == nil {
		return params
	}

	if caption, ok := raw["caption"].(string); ok {
		params.Caption = &caption
	}

	if public, ok := raw["public"].(bool); ok {
		params.Public = &public
	}

	if ids, ok := raw["aspect_ids"].([]interface{}); ok {
		aspectIDs := make([]string, 0, len(ids))
		for _, id := range ids {
			if s, ok := id.(string); ok {
				aspectIDs = append(aspectIDs, s)
			}
		}
		params.AspectIDs = aspectIDs
	}

	if set, ok := raw["set_profile_photo"].(bool); ok {
		params.SetProfilePhoto = set
	}

	if op == OpCreate {
		if key, ok := raw["media_key"].(string); ok {
			params.MediaKey = key
		}
	}

	return params
}
