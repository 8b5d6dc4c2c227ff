package authors

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/hemlockbooks/hemlock/pkg/errcodes"
)

type handler struct {
	authorService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	authors, err := h.authorService.ListAuthors(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(authors) == 0 {
		return errcodes.NotFound("Authors")
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"message": "Authors retrieved successfully",
		"data":    authors,
	}))
}
