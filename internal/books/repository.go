package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"studykit/internal/storage"
	"studykit/pkg/pagination"
	"studykit/pkg/query"
	"studykit/pkg/repository"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a book repository with database and cover blob storage integration.
func New(db *sql.DB, store storage.System, logger *slog.Logger, pageCfg pagination.Config) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "books"),
		pagination: pageCfg,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Book], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, "CreatedAt", true).
		WhereSearch(page.Search, "Title", "Caption")

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	records, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanBook)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}

	result := pagination.NewPageResult(records, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]Book, error) {
	q, args := query.
		NewBuilder(projection, "CreatedAt", true).
		WhereEquals("UserId", userID).
		BuildSelect()

	records, err := repository.QueryMany(ctx, r.db, q, args, scanBook)
	if err != nil {
		return nil, fmt.Errorf("query user books: %w", err)
	}
	return records, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Book, error) {
	q, args := query.
		NewBuilder(projection, "CreatedAt", true).
		BuildSingle("Id", id)

	book, err := repository.QueryOne(ctx, r.db, q, args, scanBook)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &book, nil
}

func (r *repo) Create(ctx context.Context, userID uuid.UUID, cmd CreateCommand) (*Book, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	cover, err := cmd.DecodeImage()
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	imageKey := coverKey(id)

	if err := r.storage.Store(ctx, imageKey, cover); err != nil {
		return nil, fmt.Errorf("store cover: %w", err)
	}

	q := `INSERT INTO books(id, title, caption, rating, image_key, user_id)
		VALUES($1, $2, $3, $4, $5, $6)`

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		_, err := tx.ExecContext(ctx, q, id, cmd.Title, cmd.Caption, cmd.Rating, imageKey, userID)
		return struct{}{}, err
	})
	if err != nil {
		if delErr := r.storage.Delete(ctx, imageKey); delErr != nil {
			r.logger.Error("cover cleanup failed after db error", "image_key", imageKey, "error", delErr)
		}
		return nil, fmt.Errorf("insert book: %w", err)
	}

	r.logger.Info("book created", "id", id, "title", cmd.Title, "user_id", userID)
	return r.Find(ctx, id)
}

func (r *repo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	book, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	if book.UserID != userID {
		return ErrNotOwner
	}

	q := `DELETE FROM books WHERE id = $1`
	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	// Cover cleanup is best-effort; the record is already gone.
	if err := r.storage.Delete(ctx, book.ImageKey); err != nil {
		r.logger.Error("cover cleanup failed", "image_key", book.ImageKey, "error", err)
	}

	r.logger.Info("book deleted", "id", id)
	return nil
}

func (r *repo) Cover(ctx context.Context, id uuid.UUID) ([]byte, error) {
	book, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := r.storage.Retrieve(ctx, book.ImageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("retrieve cover: %w", err)
	}
	return data, nil
}

func coverKey(id uuid.UUID) string {
	return fmt.Sprintf("covers/%s/cover", id.String())
}

func scanBook(s repository.Scanner) (Book, error) {
	var b Book
	err := s.Scan(
		&b.ID,
		&b.Title,
		&b.Caption,
		&b.Rating,
		&b.ImageKey,
		&b.UserID,
		&b.AuthorUsername,
		&b.AuthorProfileImage,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}
