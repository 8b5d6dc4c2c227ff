package records

// InsertAuthorPayload is the JSON body for POST /api/data/Authors.
type InsertAuthorPayload struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
}

// InsertRecordPayload is the JSON body for POST /api/data/Books and
// /api/data/EBooks. Unlike the multipart insert route the ISBN travels in the
// body here.
type InsertRecordPayload struct {
	ISBN        string `json:"isbn" validate:"required,isbn"`
	Title       string `json:"title" validate:"required,max=300"`
	AuthorID    int    `json:"author_id" validate:"required,min=1"`
	Media       string `json:"media,omitempty"`
	Read        bool   `json:"read,omitempty"`
	Buy         bool   `json:"buy,omitempty"`
	StarRating  int    `json:"star_rating,omitempty" validate:"min=0,max=5"`
	SpiceRating int    `json:"spice_rating,omitempty" validate:"min=0,max=5"`
	GoreRating  int    `json:"gore_rating,omitempty" validate:"min=0,max=5"`
	Synopsis    string `json:"synopsis,omitempty" validate:"max=5000"`
}
