package books

import "mime/multipart"

// InsertBookPayload is the multipart form for POST /api/{category}/{isbn}/insert.
// These fields are the write allow-list: anything else in the form is rejected
// at the binder. The buy flag only applies to EBooks and is dropped for Books.
type InsertBookPayload struct {
	Title       string                           `form:"title" json:"title" validate:"required,max=300"`
	AuthorID    int                              `form:"author_id" json:"author_id" validate:"required,min=1"`
	Media       string                           `form:"media" json:"media,omitempty"`
	Read        bool                             `form:"read" json:"read,omitempty"`
	Buy         bool                             `form:"buy" json:"buy,omitempty"`
	StarRating  int                              `form:"star_rating" json:"star_rating,omitempty" validate:"min=0,max=5"`
	SpiceRating int                              `form:"spice_rating" json:"spice_rating,omitempty" validate:"min=0,max=5"`
	GoreRating  int                              `form:"gore_rating" json:"gore_rating,omitempty" validate:"min=0,max=5"`
	Synopsis    string                           `form:"synopsis" json:"synopsis,omitempty" validate:"max=5000"`
	FormFiles   map[string]*multipart.FileHeader `form:"-" json:"-"`
}

// UpdateBookPayload is the multipart form for POST /api/{category}/{isbn}/update.
// Only provided fields are written, all in a single statement.
type UpdateBookPayload struct {
	Title       *string                          `form:"title" json:"title,omitempty" validate:"omitempty,min=1,max=300"`
	AuthorID    *int                             `form:"author_id" json:"author_id,omitempty" validate:"omitempty,min=1"`
	Media       *string                          `form:"media" json:"media,omitempty"`
	Read        *bool                            `form:"read" json:"read,omitempty"`
	Buy         *bool                            `form:"buy" json:"buy,omitempty"`
	StarRating  *int                             `form:"star_rating" json:"star_rating,omitempty" validate:"omitempty,min=0,max=5"`
	SpiceRating *int                             `form:"spice_rating" json:"spice_rating,omitempty" validate:"omitempty,min=0,max=5"`
	GoreRating  *int                             `form:"gore_rating" json:"gore_rating,omitempty" validate:"omitempty,min=0,max=5"`
	Synopsis    *string                          `form:"synopsis" json:"synopsis,omitempty" validate:"omitempty,max=5000"`
	FormFiles   map[string]*multipart.FileHeader `form:"-" json:"-"`
}

// ConvertEBookToBookPayload is the JSON body for POST /api/convertEBookToBook.
type ConvertEBookToBookPayload struct {
	ISBN  string `json:"isbn" validate:"required,isbn"`
	Media string `json:"media" validate:"required,oneof=Hardcover Paperback"`
}
