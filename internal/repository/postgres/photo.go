package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"prism/internal/config"
	"prism/internal/domain"
	"prism/internal/domain/models"
	"prism/internal/domain/repositories"
)

// PostgresPhotoRepository implements the PhotoRepository interface.
// Visibility is enforced inside the queries: a row the viewer may not see
// behaves exactly like a row that does not exist.
type PostgresPhotoRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewPhotoRepository creates a new photo repository
func NewPhotoRepository(cfg *RepositoryConfig) repositories.PhotoRepository {
	return &PostgresPhotoRepository{
		pool:   cfg.Pool,
		tables: cfg.Tables,
	}
}

// visibleClause is the shared predicate deciding whether the photo row p is
// visible to the viewer bound at the given placeholder: owner, public, or
// member of an aspect the photo is shared to. Mirrors models.Photo.VisibleTo.
func (r *PostgresPhotoRepository) visibleClause(viewerParam string) string {
	return fmt.Sprintf(`(
		p.public
		OR p.owner_id = %[1]s
		OR EXISTS (
			SELECT 1
			FROM %[2]s pa
			JOIN %[3]s am ON am.aspect_id = pa.aspect_id
			WHERE pa.photo_id = p.id AND am.person_id = %[1]s
		)
	)`, viewerParam, r.tables.PhotoAspects, r.tables.AspectMemberships)
}

// Create persists the photo and its aspect scope rows. Callers run it
// inside a transaction when the scope is non-empty.
func (r *PostgresPhotoRepository) Create(ctx context.Context, photo *models.Photo) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, owner_id, caption, public, media_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Photos)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		photo.ID,
		photo.OwnerID,
		photo.Caption,
		photo.Public,
		photo.MediaKey,
		photo.CreatedAt,
		photo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create photo: %w", err)
	}

	if err := r.insertAspects(ctx, photo.ID, photo.AspectIDs); err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a photo regardless of visibility. Only the ownership
// gate calls this; viewers go through GetVisible.
func (r *PostgresPhotoRepository) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.owner_id, p.caption, p.public, p.media_key, p.created_at, p.updated_at
		FROM %s p
		WHERE p.id = $1
	`, r.tables.Photos)

	photo, err := r.scanOne(ctx, query, id)
	if err != nil {
		return nil, err
	}

	if err := r.loadAspects(ctx, photo); err != nil {
		return nil, err
	}

	return photo, nil
}

// GetVisible retrieves a photo only if the viewer may see it
func (r *PostgresPhotoRepository) GetVisible(ctx context.Context, id, viewerID string) (*models.Photo, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.owner_id, p.caption, p.public, p.media_key, p.created_at, p.updated_at
		FROM %s p
		WHERE p.id = $1 AND %s
	`, r.tables.Photos, r.visibleClause("$2"))

	photo, err := r.scanOne(ctx, query, id, viewerID)
	if err != nil {
		return nil, err
	}

	if photo.OwnerID == viewerID {
		if err := r.loadAspects(ctx, photo); err != nil {
			return nil, err
		}
	}

	return photo, nil
}

// ListVisible returns ownerID's photos visible to viewerID, newest first
func (r *PostgresPhotoRepository) ListVisible(ctx context.Context, ownerID, viewerID string, maxTime *time.Time) ([]models.Photo, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.owner_id, p.caption, p.public, p.media_key, p.created_at, p.updated_at
		FROM %s p
		WHERE p.owner_id = $1
		  AND ($3::timestamptz IS NULL OR p.created_at < $3)
		  AND %s
		ORDER BY p.created_at DESC
		LIMIT %d
	`, r.tables.Photos, r.visibleClause("$2"), config.DefaultListLimit)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ownerID, viewerID, maxTime)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		var photo models.Photo
		err := rows.Scan(
			&photo.ID,
			&photo.OwnerID,
			&photo.Caption,
			&photo.Public,
			&photo.MediaKey,
			&photo.CreatedAt,
			&photo.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, photo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate photos: %w", err)
	}

	if photos == nil {
		photos = []models.Photo{}
	}

	return photos, nil
}

// Update persists caption/scope changes, keyed on id and owner so a stale
// owner can never write. Scope rows are replaced wholesale; the service
// wraps scope changes in a transaction.
func (r *PostgresPhotoRepository) Update(ctx context.Context, photo *models.Photo) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET caption = $1, public = $2, updated_at = $3
		WHERE id = $4 AND owner_id = $5
	`, r.tables.Photos)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		photo.Caption,
		photo.Public,
		photo.UpdatedAt,
		photo.ID,
		photo.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("update photo: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("photo %s: %w", photo.ID, domain.ErrNotFound)
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE photo_id = $1`, r.tables.PhotoAspects)
	if _, err := executor.Exec(ctx, deleteQuery, photo.ID); err != nil {
		return fmt.Errorf("clear photo aspects: %w", err)
	}

	return r.insertAspects(ctx, photo.ID, photo.AspectIDs)
}

// Delete removes the photo iff owned by ownerID and returns the deleted
// row. Zero rows matched means absent, already deleted, or not owned;
// callers get the same ErrNotFound for all three.
func (r *PostgresPhotoRepository) Delete(ctx context.Context, id, ownerID string) (*models.Photo, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, caption, public, media_key, created_at, updated_at
	`, r.tables.Photos)

	var photo models.Photo
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, ownerID).Scan(
		&photo.ID,
		&photo.OwnerID,
		&photo.Caption,
		&photo.Public,
		&photo.MediaKey,
		&photo.CreatedAt,
		&photo.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("photo %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("delete photo: %w", err)
	}

	return &photo, nil
}

// scanOne runs a single-row photo query
func (r *PostgresPhotoRepository) scanOne(ctx context.Context, query string, args ...interface{}) (*models.Photo, error) {
	var photo models.Photo
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, args...).Scan(
		&photo.ID,
		&photo.OwnerID,
		&photo.Caption,
		&photo.Public,
		&photo.MediaKey,
		&photo.CreatedAt,
		&photo.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("photo: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get photo: %w", err)
	}
	return &photo, nil
}

// loadAspects fills in the photo's aspect scope rows
func (r *PostgresPhotoRepository) loadAspects(ctx context.Context, photo *models.Photo) error {
	query := fmt.Sprintf(`SELECT aspect_id FROM %s WHERE photo_id = $1`, r.tables.PhotoAspects)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, photo.ID)
	if err != nil {
		return fmt.Errorf("load photo aspects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var aspectID string
		if err := rows.Scan(&aspectID); err != nil {
			return fmt.Errorf("scan photo aspect: %w", err)
		}
		photo.AspectIDs = append(photo.AspectIDs, aspectID)
	}

	return rows.Err()
}

// insertAspects writes the photo's scope rows
func (r *PostgresPhotoRepository) insertAspects(ctx context.Context, photoID string, aspectIDs []string) error {
	if len(aspectIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (photo_id, aspect_id)
		SELECT $1, unnest($2::uuid[])
	`, r.tables.PhotoAspects)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, photoID, aspectIDs); err != nil {
		switch {
		case IsPgDuplicateError(err):
			return fmt.Errorf("%w: aspect listed twice in scope", domain.ErrValidation)
		case IsPgForeignKeyError(err):
			// Aspect deleted between ownership validation and the write
			return fmt.Errorf("%w: aspect no longer exists", domain.ErrValidation)
		}
		return fmt.Errorf("insert photo aspects: %w", err)
	}

	return nil
}
