package auth

import (
	"errors"
	"testing"

	"prism/internal/domain"
	"prism/internal/domain/models"
)

func TestAuthorize(t *testing.T) {
	photo := &models.Photo{ID: "p1", OwnerID: "alice"}

	tests := []struct {
		name      string
		requester string
		photo     *models.Photo
		action    Action
		want      Decision
	}{
		{"owner can edit", "alice", photo, ActionEdit, Allow},
		{"owner can update", "alice", photo, ActionUpdate, Allow},
		{"owner can destroy", "alice", photo, ActionDestroy, Allow},
		{"owner can set profile photo", "alice", photo, ActionSetProfilePhoto, Allow},
		{"non-owner edit redirects", "bob", photo, ActionEdit, DenyRedirect},
		{"non-owner update redirects", "bob", photo, ActionUpdate, DenyRedirect},
		{"non-owner destroy looks like not found", "bob", photo, ActionDestroy, DenyNotFound},
		{"non-owner profile photo gets failure status", "bob", photo, ActionSetProfilePhoto, DenyStatus},
		{"anonymous destroy looks like not found", "", photo, ActionDestroy, DenyNotFound},
		{"anonymous edit redirects", "", photo, ActionEdit, DenyRedirect},
		{"nil photo never allows", "alice", nil, ActionDestroy, DenyNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Authorize(tt.requester, tt.photo, tt.action); got != tt.want {
				t.Errorf("Authorize(%q, %v) = %v, want %v", tt.requester, tt.action, got, tt.want)
			}
		})
	}
}

func TestDecisionErr(t *testing.T) {
	tests := []struct {
		name     string
		decision Decision
		wantErr  error
	}{
		{"allow maps to nil", Allow, nil},
		{"redirect maps to forbidden redirect", DenyRedirect, domain.ErrForbiddenRedirect},
		{"not found maps to not found", DenyNotFound, domain.ErrNotFound},
		{"status maps to unprocessable", DenyStatus, domain.ErrUnprocessable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decision.Err()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Err() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Err() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
