package seed

import (
	"context"
	"log/slog"
	"time"

	"prism/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DevSeeder inserts sample aspects, memberships, and photos under fixed
// person ids for local development. Every insert is ON CONFLICT DO
// NOTHING so reseeding is safe.
type DevSeeder struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

func NewDevSeeder(pool *pgxpool.Pool, tables *postgres.TableNames, logger *slog.Logger) *DevSeeder {
	return &DevSeeder{
		pool:   pool,
		tables: tables,
		logger: logger,
	}
}

// Fixed UUIDs so repeated seeds hit the same rows.
const (
	seedAlice  = "11111111-1111-1111-1111-111111111111"
	seedBob    = "11111111-1111-1111-1111-111111111112"
	seedAspect = "22222222-2222-2222-2222-222222222221"

	seedPublicPhoto     = "33333333-3333-3333-3333-333333333331"
	seedRestrictedPhoto = "33333333-3333-3333-3333-333333333332"
)

// Seed creates one aspect ("Friends", owned by one fixed person id and
// containing another), one public photo and one photo restricted to that
// aspect. Person ids are implicit; no person rows exist in this schema.
func (s *DevSeeder) Seed(ctx context.Context) error {
	now := time.Now()

	if err := s.insertAspect(ctx, seedAspect, seedAlice, "Friends", now); err != nil {
		return err
	}
	if err := s.insertMembership(ctx, seedAspect, seedBob, now); err != nil {
		return err
	}

	if err := s.insertPhoto(ctx, seedPublicPhoto, seedAlice, "Sunset over the harbor", true, "uploads/dev/sunset.jpg", now); err != nil {
		return err
	}
	if err := s.insertPhoto(ctx, seedRestrictedPhoto, seedAlice, "Birthday dinner", false, "uploads/dev/dinner.jpg", now.Add(time.Second)); err != nil {
		return err
	}
	if err := s.insertPhotoAspect(ctx, seedRestrictedPhoto, seedAspect); err != nil {
		return err
	}

	// The public photo doubles as the first person's profile photo
	query := `INSERT INTO ` + s.tables.Profiles + ` (person_id, photo_id, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (person_id) DO NOTHING`
	if _, err := s.pool.Exec(ctx, query, seedAlice, seedPublicPhoto, now); err != nil {
		return err
	}

	s.logger.Info("dev data seeded",
		"aspects", 1,
		"photos", 2,
	)
	return nil
}

func (s *DevSeeder) insertAspect(ctx context.Context, id, ownerID, name string, createdAt time.Time) error {
	query := `INSERT INTO ` + s.tables.Aspects + ` (id, owner_id, name, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`
	_, err := s.pool.Exec(ctx, query, id, ownerID, name, createdAt)
	return err
}

func (s *DevSeeder) insertMembership(ctx context.Context, aspectID, personID string, createdAt time.Time) error {
	query := `INSERT INTO ` + s.tables.AspectMemberships + ` (aspect_id, person_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (aspect_id, person_id) DO NOTHING`
	_, err := s.pool.Exec(ctx, query, aspectID, personID, createdAt)
	return err
}

func (s *DevSeeder) insertPhoto(ctx context.Context, id, ownerID, caption string, public bool, mediaKey string, createdAt time.Time) error {
	query := `INSERT INTO ` + s.tables.Photos + ` (id, owner_id, caption, public, media_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (id) DO NOTHING`
	_, err := s.pool.Exec(ctx, query, id, ownerID, caption, public, mediaKey, createdAt)
	return err
}

func (s *DevSeeder) insertPhotoAspect(ctx context.Context, photoID, aspectID string) error {
	query := `INSERT INTO ` + s.tables.PhotoAspects + ` (photo_id, aspect_id)
		VALUES ($1, $2)
		ON CONFLICT (photo_id, aspect_id) DO NOTHING`
	_, err := s.pool.Exec(ctx, query, photoID, aspectID)
	return err
}
