package service

import (
	"reflect"
	"testing"
)

func TestSanitizePhotoParams(t *testing.T) {
	t.Run("keeps allow-listed fields on create", func(t *testing.T) {
		params := SanitizePhotoParams(map[string]interface{}{
			"caption":           "at the beach",
			"public":            true,
			"media_key":         "uploads/abc123.jpg",
			"set_profile_photo": true,
		}, OpCreate)

		if params.Caption == nil || *params.Caption != "at the beach" {
			t.Errorf("Caption = %v, want 'at the beach'", params.Caption)
		}
		if params.Public == nil || !*params.Public {
			t.Errorf("Public = %v, want true", params.Public)
		}
		if params.MediaKey != "uploads/abc123.jpg" {
			t.Errorf("MediaKey = %q, want 'uploads/abc123.jpg'", params.MediaKey)
		}
		if !params.SetProfilePhoto {
			t.Error("SetProfilePhoto = false, want true")
		}
	})

	t.Run("drops owner overrides silently", func(t *testing.T) {
		for _, field := range []string{"owner", "owner_id", "author", "author_id", "person", "person_id"} {
			params := SanitizePhotoParams(map[string]interface{}{
				"caption": "now with lasers!",
				field:     "mallory",
			}, OpUpdate)

			// The operation proceeds with the rest of the payload
			if params.Caption == nil || *params.Caption != "now with lasers!" {
				t.Errorf("field %s: caption lost during sanitization", field)
			}
		}
	})

	t.Run("media_key ignored on update", func(t *testing.T) {
		params := SanitizePhotoParams(map[string]interface{}{
			"media_key": "uploads/replacement.jpg",
		}, OpUpdate)

		if params.MediaKey != "" {
			t.Errorf("MediaKey = %q, want empty on update", params.MediaKey)
		}
	})

	t.Run("aspect ids coerced from json array", func(t *testing.T) {
		params := SanitizePhotoParams(map[string]interface{}{
			"aspect_ids": []interface{}{"a1", "a2", 42},
		}, OpCreate)

		want := []string{"a1", "a2"}
		if !reflect.DeepEqual(params.AspectIDs, want) {
			t.Errorf("AspectIDs = %v, want %v", params.AspectIDs, want)
		}
	})

	t.Run("clean payload survives untouched", func(t *testing.T) {
		// Sanitizing a payload with no protected fields is a no-op
		// restricted to the allow-list.
		raw := map[string]interface{}{
			"caption":   "sunset",
			"public":    false,
			"media_key": "uploads/sunset.jpg",
		}
		params := SanitizePhotoParams(raw, OpCreate)

		if *params.Caption != "sunset" || *params.Public != false || params.MediaKey != "uploads/sunset.jpg" {
			t.Errorf("sanitized params differ from clean input: %+v", params)
		}
		if params.SetProfilePhoto {
			t.Error("SetProfilePhoto defaulted to true")
		}
		if params.AspectIDs != nil {
			t.Errorf("AspectIDs = %v, want nil for absent field", params.AspectIDs)
		}
	})

	t.Run("nil payload yields empty params", func(t *testing.T) {
		params := SanitizePhotoParams(nil, OpCreate)
		if params == nil {
			t.Fatal("SanitizePhotoParams(nil) = nil")
		}
		if params.Caption != nil || params.Public != nil || params.MediaKey != "" {
			t.Errorf("empty payload produced fields: %+v", params)
		}
	})
}
