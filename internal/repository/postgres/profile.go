package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"prism/internal/domain"
	"prism/internal/domain/repositories"
)

// PostgresProfileRepository implements the ProfileRepository interface
type PostgresProfileRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(cfg *RepositoryConfig) repositories.ProfileRepository {
	return &PostgresProfileRepository{
		pool:   cfg.Pool,
		tables: cfg.Tables,
	}
}

// SetProfilePhoto switches the designation in one upsert. The per-person
// unique key makes clear-then-assign a single atomic transition, so two
// concurrent calls serialize at the row and exactly one designation
// survives.
func (r *PostgresProfileRepository) SetProfilePhoto(ctx context.Context, personID, photoID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (person_id, photo_id, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (person_id)
		DO UPDATE SET photo_id = EXCLUDED.photo_id, updated_at = NOW()
	`, r.tables.Profiles)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, personID, photoID); err != nil {
		if IsPgForeignKeyError(err) {
			// Photo destroyed between the ownership check and the upsert
			return fmt.Errorf("photo %s: %w", photoID, domain.ErrNotFound)
		}
		return fmt.Errorf("set profile photo: %w", err)
	}

	return nil
}

// ClearIfPhoto removes the designation wherever it points at photoID
func (r *PostgresProfileRepository) ClearIfPhoto(ctx context.Context, photoID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET photo_id = NULL, updated_at = NOW()
		WHERE photo_id = $1
	`, r.tables.Profiles)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, photoID); err != nil {
		return fmt.Errorf("clear profile photo: %w", err)
	}

	return nil
}
