package repository_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"studykit/pkg/repository"
)

func TestMapError(t *testing.T) {
	notFound := errors.New("record not found")
	duplicate := errors.New("record already exists")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			"nil passes through",
			nil,
			nil,
		},
		{
			"no rows maps to not found",
			sql.ErrNoRows,
			notFound,
		},
		{
			"wrapped no rows maps to not found",
			fmt.Errorf("query: %w", sql.ErrNoRows),
			notFound,
		},
		{
			"unique violation maps to duplicate",
			&pgconn.PgError{Code: "23505"},
			duplicate,
		},
		{
			"other postgres error passes through",
			&pgconn.PgError{Code: "23503"},
			&pgconn.PgError{Code: "23503"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.MapError(tt.err, notFound, duplicate)

			switch want := tt.want.(type) {
			case nil:
				if got != nil {
					t.Errorf("MapError() = %v, want nil", got)
				}
			case *pgconn.PgError:
				var pgErr *pgconn.PgError
				if !errors.As(got, &pgErr) || pgErr.Code != want.Code {
					t.Errorf("MapError() = %v, want pg error %s", got, want.Code)
				}
			default:
				if !errors.Is(got, tt.want) {
					t.Errorf("MapError() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestMapError_UnrelatedError(t *testing.T) {
	notFound := errors.New("record not found")
	duplicate := errors.New("record already exists")
	boom := errors.New("connection reset")

	got := repository.MapError(boom, notFound, duplicate)
	if !errors.Is(got, boom) {
		t.Errorf("MapError() = %v, want original error", got)
	}
}
