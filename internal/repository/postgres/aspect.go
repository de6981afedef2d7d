package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"prism/internal/domain/models"
	"prism/internal/domain/repositories"
)

// PostgresAspectRepository implements the AspectRepository interface
type PostgresAspectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewAspectRepository creates a new aspect repository
func NewAspectRepository(cfg *RepositoryConfig) repositories.AspectRepository {
	return &PostgresAspectRepository{
		pool:   cfg.Pool,
		tables: cfg.Tables,
	}
}

// ListOwnedBy returns the aspects a person has defined
func (r *PostgresAspectRepository) ListOwnedBy(ctx context.Context, ownerID string) ([]models.Aspect, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, name, created_at
		FROM %s
		WHERE owner_id = $1
		ORDER BY created_at
	`, r.tables.Aspects)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list aspects: %w", err)
	}
	defer rows.Close()

	var aspects []models.Aspect
	for rows.Next() {
		var aspect models.Aspect
		if err := rows.Scan(&aspect.ID, &aspect.OwnerID, &aspect.Name, &aspect.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan aspect: %w", err)
		}
		aspects = append(aspects, aspect)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate aspects: %w", err)
	}

	if aspects == nil {
		aspects = []models.Aspect{}
	}

	return aspects, nil
}
