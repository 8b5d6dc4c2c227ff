package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Book is a physical book keyed by its ISBN. The ISBN is checksum-validated
// once at creation and never re-validated on update.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ISBN        string    `bun:"isbn,pk,nullzero" json:"isbn"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `json:"title"`
	AuthorID    int       `json:"author_id"`
	Author      *Author   `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	Media       string    `json:"media"`
	Read        bool      `json:"read"`
	StarRating  int       `json:"star_rating"`
	SpiceRating int       `json:"spice_rating"`
	GoreRating  int       `json:"gore_rating"`
	Synopsis    string    `json:"synopsis"`
}
