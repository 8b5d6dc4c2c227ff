package records

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/hemlockbooks/hemlock/pkg/covers"
)

// RegisterRoutesWithGroup registers the generic data routes on the /api
// group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, coverStore *covers.Store) {
	h := &handler{
		recordService: NewService(db),
		coverStore:    coverStore,
	}

	g.POST("/data/:table", h.insert)
	g.DELETE("/data/:table/:id", h.delete)
}
