package binder

import (
	"github.com/go-playground/validator/v10"

	"github.com/hemlockbooks/hemlock/pkg/identifiers"
)

// isbnValidator accepts a checksum-valid ISBN-10 or ISBN-13 after
// normalization. The empty string is allowed so the field can be treated as
// "not yet provided"; combine with `required` when the identifier must be
// present.
func isbnValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return identifiers.Accepted(value)
}
