package models

// Category names one of the two book tables. The values are the table names
// the UI sends in URLs, e.g. /api/Books/get.
type Category string

const (
	CategoryBooks  Category = "Books"
	CategoryEBooks Category = "EBooks"
)

// ParseCategory validates a raw category string from a URL parameter.
func ParseCategory(raw string) (Category, bool) {
	switch Category(raw) {
	case CategoryBooks, CategoryEBooks:
		return Category(raw), true
	}
	return "", false
}

// Media is the physical format of a catalog entry.
const (
	MediaHardcover = "Hardcover"
	MediaPaperback = "Paperback"
	MediaEBook     = "EBook"
)

// ValidBookMedia reports whether media is a physical-book format. EBook rows
// always carry MediaEBook and never one of these.
func ValidBookMedia(media string) bool {
	return media == MediaHardcover || media == MediaPaperback
}
