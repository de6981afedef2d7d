package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPgErrorClassification(t *testing.T) {
	duplicate := &pgconn.PgError{Code: "23505"}
	foreignKey := &pgconn.PgError{Code: "23503"}
	other := errors.New("connection reset")

	tests := []struct {
		name          string
		err           error
		wantDuplicate bool
		wantFK        bool
		wantNoRows    bool
	}{
		{"unique violation", duplicate, true, false, false},
		{"wrapped unique violation", fmt.Errorf("insert photo aspects: %w", duplicate), true, false, false},
		{"foreign key violation", foreignKey, false, true, false},
		{"wrapped foreign key violation", fmt.Errorf("set profile photo: %w", foreignKey), false, true, false},
		{"no rows", pgx.ErrNoRows, false, false, true},
		{"unrelated error", other, false, false, false},
		{"nil", nil, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPgDuplicateError(tt.err); got != tt.wantDuplicate {
				t.Errorf("IsPgDuplicateError() = %v, want %v", got, tt.wantDuplicate)
			}
			if got := IsPgForeignKeyError(tt.err); got != tt.wantFK {
				t.Errorf("IsPgForeignKeyError() = %v, want %v", got, tt.wantFK)
			}
			if got := IsPgNoRowsError(tt.err); got != tt.wantNoRows {
				t.Errorf("IsPgNoRowsError() = %v, want %v", got, tt.wantNoRows)
			}
		})
	}
}
