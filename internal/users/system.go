package users

import (
	"context"

	"github.com/google/uuid"
)

// System defines the account operations.
type System interface {
	Register(ctx context.Context, cmd RegisterCommand) (*User, error)
	Authenticate(ctx context.Context, cmd LoginCommand) (*User, error)
	Find(ctx context.Context, id uuid.UUID) (*User, error)
}
