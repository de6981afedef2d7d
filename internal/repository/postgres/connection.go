package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"prism/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Photos            string
	PhotoAspects      string
	Aspects           string
	AspectMemberships string
	Profiles          string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Photos:            fmt.Sprintf("%sphotos", prefix),
		PhotoAspects:      fmt.Sprintf("%sphoto_aspects", prefix),
		Aspects:           fmt.Sprintf("%saspects", prefix),
		AspectMemberships: fmt.Sprintf("%saspect_memberships", prefix),
		Profiles:          fmt.Sprintf("%sprofiles", prefix),
	}
}

// CreateConnectionPool creates a pgx connection pool.
//
// When the connection goes through a transaction pooler (port 6543),
// prepared statements are not available, so cache_describe mode is used
// instead. An explicit default_query_exec_mode in the connection string
// takes precedence over this auto-detection. Dynamic table prefixes are
// interpolated before the SQL reaches the server, so each environment gets
// its own statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for pooler compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction from the context when one is present,
// otherwise the pool. Repositories automatically join surrounding
// transactions this way.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
