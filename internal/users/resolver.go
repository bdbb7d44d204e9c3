package users

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"studykit/internal/auth"
)

type resolver struct {
	sys System
}

// NewResolver adapts the user system to the identity gate's Resolver interface.
func NewResolver(sys System) auth.Resolver {
	return &resolver{sys: sys}
}

func (r *resolver) Resolve(ctx context.Context, id uuid.UUID) (*auth.Identity, error) {
	user, err := r.sys.Find(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &auth.Identity{
		ID:           user.ID,
		Username:     user.Username,
		ProfileImage: user.ProfileImage,
	}, nil
}
