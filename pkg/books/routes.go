package books

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/hemlockbooks/hemlock/pkg/covers"
)

// RegisterRoutesWithGroup registers catalog routes on the /api group. The
// :category segment selects the books or ebooks table.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, coverStore *covers.Store) {
	h := &handler{
		bookService: NewService(db),
		coverStore:  coverStore,
	}

	g.POST("/convertEBookToBook", h.convert)
	g.GET("/:category/get", h.list)
	g.GET("/:category/author/:authorId", h.listByAuthor)
	g.POST("/:category/:isbn/insert", h.insert)
	g.POST("/:category/:isbn/update", h.update)
}
