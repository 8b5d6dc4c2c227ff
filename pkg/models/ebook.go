package models

import (
	"time"

	"github.com/uptrace/bun"
)

// EBook has the same shape as Book plus a buy flag; its media column always
// holds MediaEBook.
type EBook struct {
	bun.BaseModel `bun:"table:ebooks,alias:eb"`

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
	Buy         bool      `json:"buy"`
}

// AsBook copies every field except buy into a Book with the given media.
// Used by the conversion transaction.
func (eb *EBook) AsBook(media string) *Book {
	return &Book{
		ISBN:        eb.ISBN,
		CreatedAt:   eb.CreatedAt,
		UpdatedAt:   eb.UpdatedAt,
		Title:       eb.Title,
		AuthorID:    eb.AuthorID,
		Media:       media,
		Read:        eb.Read,
		StarRating:  eb.StarRating,
		SpiceRating: eb.SpiceRating,
		GoreRating:  eb.GoreRating,
		Synopsis:    eb.Synopsis,
	}
}
