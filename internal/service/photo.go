package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"prism/internal/config"
	"prism/internal/domain"
	"prism/internal/domain/models"
	"prism/internal/domain/repositories"
	"prism/internal/domain/services"
	"prism/internal/federation"
	gate "prism/internal/service/auth"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// photoService implements the PhotoService interface
type photoService struct {
	photoRepo   repositories.PhotoRepository
	aspectRepo  repositories.AspectRepository
	profileRepo repositories.ProfileRepository
	txManager   repositories.TransactionManager
	publisher   federation.RetractionPublisher
	logger      *slog.Logger
}

// NewPhotoService creates a new photo lifecycle service
func NewPhotoService(
	photoRepo repositories.PhotoRepository,
	aspectRepo repositories.AspectRepository,
	profileRepo repositories.ProfileRepository,
	txManager repositories.TransactionManager,
	publisher federation.RetractionPublisher,
	logger *slog.Logger,
) services.PhotoService {
	return &photoService{
		photoRepo:   photoRepo,
		aspectRepo:  aspectRepo,
		profileRepo: profileRepo,
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger,
	}
}

// CreatePhoto creates a photo owned by requesterID. The owner comes from
// the authenticated identity alone; params carry no owner field at all.
func (s *photoService) CreatePhoto(ctx context.Context, requesterID string, params *services.PhotoParams) (*models.Photo, error) {
	if requesterID == "" {
		return nil, fmt.Errorf("create photo: %w", domain.ErrUnauthorized)
	}

	if err := s.validateCreate(params); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	public, aspectIDs, err := s.resolveScope(ctx, requesterID, params, true)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	photo := &models.Photo{
		ID:        uuid.NewString(),
		OwnerID:   requesterID,
		Public:    public,
		AspectIDs: aspectIDs,
		MediaKey:  params.MediaKey,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if params.Caption != nil {
		photo.Caption = *params.Caption
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.photoRepo.Create(txCtx, photo); err != nil {
			return err
		}
		if params.SetProfilePhoto {
			return s.profileRepo.SetProfilePhoto(txCtx, requesterID, photo.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("photo created",
		"id", photo.ID,
		"owner_id", photo.OwnerID,
		"public", photo.Public,
		"profile_photo", params.SetProfilePhoto,
	)

	return photo, nil
}

// ListPhotos returns personID's photos visible to viewerID. The count is
// derived from the visible subset, so hidden photos change nothing in the
// response.
func (s *photoService) ListPhotos(ctx context.Context, viewerID, personID string, maxTime *time.Time) (*services.PhotoListing, error) {
	photos, err := s.photoRepo.ListVisible(ctx, personID, viewerID, maxTime)
	if err != nil {
		return nil, err
	}

	return &services.PhotoListing{
		Entries: photos,
		Count:   len(photos),
	}, nil
}

// ShowPhoto returns the photo iff visible to viewerID
func (s *photoService) ShowPhoto(ctx context.Context, viewerID, id string) (*models.Photo, error) {
	return s.photoRepo.GetVisible(ctx, id, viewerID)
}

// EditPhoto returns the photo for the owner's edit view
func (s *photoService) EditPhoto(ctx context.Context, requesterID, id string) (*models.Photo, error) {
	photo, err := s.getForGate(ctx, id)
	if err != nil {
		return nil, err
	}

	if decision := gate.Authorize(requesterID, photo, gate.ActionEdit); decision != gate.Allow {
		return nil, decision.Err()
	}

	return photo, nil
}

// UpdatePhoto applies sanitized caption/scope changes to an owned photo
func (s *photoService) UpdatePhoto(ctx context.Context, requesterID, id string, params *services.PhotoParams) (*models.Photo, error) {
	photo, err := s.getForGate(ctx, id)
	if err != nil {
		return nil, err
	}

	if decision := gate.Authorize(requesterID, photo, gate.ActionUpdate); decision != gate.Allow {
		return nil, decision.Err()
	}

	if err := s.validateUpdate(params); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if params.Caption != nil {
		photo.Caption = *params.Caption
	}

	if params.Public != nil || params.AspectIDs != nil {
		public, aspectIDs, err := s.resolveScope(ctx, requesterID, params, false)
		if err != nil {
			return nil, err
		}
		photo.Public = public
		photo.AspectIDs = aspectIDs
	}
	photo.UpdatedAt = time.Now()

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.photoRepo.Update(txCtx, photo); err != nil {
			return err
		}
		if params.SetProfilePhoto {
			return s.profileRepo.SetProfilePhoto(txCtx, requesterID, photo.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("photo updated", "id", photo.ID, "owner_id", requesterID)

	return photo, nil
}

// DestroyPhoto removes an owned photo and emits exactly one retraction.
// A denial is a no-op shaped like NotFound, so probing a foreign id and
// probing a missing one look identical.
func (s *photoService) DestroyPhoto(ctx context.Context, requesterID, id string) error {
	photo, err := s.getForGate(ctx, id)
	if err != nil {
		return err
	}

	if decision := gate.Authorize(requesterID, photo, gate.ActionDestroy); decision != gate.Allow {
		return decision.Err()
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		// Delete is keyed on owner too; a concurrent destroy loses
		// here with ErrNotFound.
		if _, err := s.photoRepo.Delete(txCtx, id, requesterID); err != nil {
			return err
		}
		return s.profileRepo.ClearIfPhoto(txCtx, id)
	})
	if err != nil {
		return err
	}

	retraction := &models.Retraction{
		PhotoID:     id,
		OwnerID:     requesterID,
		RetractedAt: time.Now(),
	}
	if err := s.publisher.PublishRetraction(ctx, retraction); err != nil {
		// The row is gone either way; the destroy is not reported
		// complete until the event is confirmed.
		return fmt.Errorf("photo %s deleted but retraction not confirmed: %w", id, err)
	}

	s.logger.Info("photo destroyed", "id", id, "owner_id", requesterID)

	return nil
}

// SetProfilePhoto atomically switches the requester's designated photo
func (s *photoService) SetProfilePhoto(ctx context.Context, requesterID, id string) error {
	photo, err := s.getForGate(ctx, id)
	if err != nil {
		return err
	}

	if decision := gate.Authorize(requesterID, photo, gate.ActionSetProfilePhoto); decision != gate.Allow {
		return decision.Err()
	}

	if err := s.profileRepo.SetProfilePhoto(ctx, requesterID, id); err != nil {
		return err
	}

	s.logger.Info("profile photo set", "photo_id", id, "person_id", requesterID)

	return nil
}

// getForGate loads a photo for an ownership decision. An absent id flows
// through the gate as a nil photo, so the deny shape depends only on the
// action and probing a missing id looks exactly like probing a foreign one.
func (s *photoService) getForGate(ctx context.Context, id string) (*models.Photo, error) {
	photo, err := s.photoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return photo, nil
}

// resolveScope turns sanitized scope fields into the stored form. A photo
// is public, or shared to a non-empty set of aspects that must belong to
// the requester. On create an omitted scope defaults to public.
func (s *photoService) resolveScope(ctx context.Context, requesterID string, params *services.PhotoParams, isCreate bool) (bool, []string, error) {
	if params.Public != nil && *params.Public {
		return true, nil, nil
	}

	if len(params.AspectIDs) == 0 {
		if isCreate && params.Public == nil {
			// No scope submitted at all
			return true, nil, nil
		}
		return false, nil, fmt.Errorf("%w: a private photo needs at least one aspect", domain.ErrValidation)
	}

	owned, err := s.aspectRepo.ListOwnedBy(ctx, requesterID)
	if err != nil {
		return false, nil, err
	}

	ownedSet := make(map[string]bool, len(owned))
	for _, aspect := range owned {
		ownedSet[aspect.ID] = true
	}

	for _, aspectID := range params.AspectIDs {
		if !ownedSet[aspectID] {
			return false, nil, fmt.Errorf("%w: aspect %s does not belong to you", domain.ErrValidation, aspectID)
		}
	}

	return false, params.AspectIDs, nil
}

// validateCreate validates a sanitized create payload
func (s *photoService) validateCreate(params *services.PhotoParams) error {
	return validation.Errors{
		"media_key":  validation.Validate(params.MediaKey, validation.Required, validation.Length(1, config.MaxMediaKeyLength)),
		"caption":    validation.Validate(deref(params.Caption), validation.Length(0, config.MaxCaptionLength)),
		"aspect_ids": validation.Validate(params.AspectIDs, validation.Length(0, config.MaxAspectsPerPhoto)),
	}.Filter()
}

// validateUpdate validates a sanitized update payload
func (s *photoService) validateUpdate(params *services.PhotoParams) error {
	return validation.Errors{
		"caption":    validation.Validate(deref(params.Caption), validation.Length(0, config.MaxCaptionLength)),
		"aspect_ids": validation.Validate(params.AspectIDs, validation.Length(0, config.MaxAspectsPerPhoto)),
	}.Filter()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
