package books

import (
	"context"

	"github.com/google/uuid"

	"studykit/pkg/pagination"
)

// System defines the book management operations.
// Implementations handle cover blob storage and database persistence.
type System interface {
	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Book], error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Book, error)
	Find(ctx context.Context, id uuid.UUID) (*Book, error)
	Create(ctx context.Context, userID uuid.UUID, cmd CreateCommand) (*Book, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Cover(ctx context.Context, id uuid.UUID) ([]byte, error)
}
