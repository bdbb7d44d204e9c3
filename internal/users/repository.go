package users

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"studykit/internal/auth"
	"studykit/pkg/repository"
)

const userColumns = "id, username, email, password_hash, profile_image, created_at, updated_at"

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a user repository backed by the database.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "users"),
	}
}

func (r *repo) Register(ctx context.Context, cmd RegisterCommand) (*User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	taken, err := r.exists(ctx, "email", cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	taken, err = r.exists(ctx, "username", cmd.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	q := `INSERT INTO users(id, username, email, password_hash, profile_image)
		VALUES($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	user, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (User, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			uuid.New(), cmd.Username, cmd.Email, hash, DefaultProfileImage(cmd.Username),
		}, scanUser)
	})
	if err != nil {
		// Concurrent registration can still trip the unique constraints.
		return nil, repository.MapError(err, ErrNotFound, ErrEmailTaken)
	}

	r.logger.Info("user registered", "id", user.ID, "username", user.Username)
	return &user, nil
}

func (r *repo) Authenticate(ctx context.Context, cmd LoginCommand) (*User, error) {
	if cmd.Email == "" || cmd.Password == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrValidation)
	}

	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := repository.QueryOne(ctx, r.db, q, []any{cmd.Email}, scanUser)
	if err != nil {
		if repository.MapError(err, ErrNotFound, ErrNotFound) == ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	if !auth.ComparePassword(user.PasswordHash, cmd.Password) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &user, nil
}

func (r *repo) exists(ctx context.Context, column, value string) (bool, error) {
	q := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM users WHERE %s = $1)`, column)
	var exists bool
	err := r.db.QueryRowContext(ctx, q, value).Scan(&exists)
	return exists, err
}

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.ProfileImage,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}
