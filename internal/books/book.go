// Package books provides the book recommendation resource: creation with a
// stored cover image, paginated listing with author attribution, and
// owner-checked deletion.
package books

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Book represents a stored recommendation with its author attribution.
type Book struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Caption            string    `json:"caption"`
	Rating             int       `json:"rating"`
	ImageKey           string    `json:"image"`
	UserID             uuid.UUID `json:"user_id"`
	AuthorUsername     string    `json:"author_username"`
	AuthorProfileImage string    `json:"author_profile_image"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CreateCommand contains the data required to create a new book.
// Image carries the cover as base64, with or without a data URI prefix.
type CreateCommand struct {
	Title   string `json:"title"`
	Caption string `json:"caption"`
	Image   string `json:"image"`
	Rating  int    `json:"rating"`
}

// Validate checks the creation fields before any storage work happens.
func (c *CreateCommand) Validate() error {
	if c.Title == "" || c.Caption == "" || c.Image == "" || c.Rating == 0 {
		return fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if c.Rating < 1 || c.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	return nil
}

// DecodeImage returns the raw cover bytes from the base64 payload.
// A data URI prefix (data:image/...;base64,) is stripped when present.
func (c *CreateCommand) DecodeImage() ([]byte, error) {
	payload := c.Image
	if strings.HasPrefix(payload, "data:") {
		if idx := strings.Index(payload, ","); idx >= 0 {
			payload = payload[idx+1:]
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: image must be base64 encoded", ErrValidation)
	}
	return data, nil
}
