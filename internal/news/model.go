// Package news serves the curated finance news feed.
package news

import (
	"time"

	"github.com/google/uuid"
)

// Item is a link to an external article.
type Item struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Link        string    `json:"link" db:"link"`
	PublishedAt time.Time `json:"date" db:"published_at"`
}

type CreateItemRequest struct {
	Name string `json:"name" validate:"required"`
	Link string `json:"link" validate:"required,http_url"`
}
