package records

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"

	"github.com/hemlockbooks/hemlock/pkg/covers"
	"github.com/hemlockbooks/hemlock/pkg/errcodes"
	"github.com/hemlockbooks/hemlock/pkg/identifiers"
)

type handler struct {
	recordService *Service
	coverStore    *covers.Store
}

func tableParam(c echo.Context) (table, error) {
	t, ok := parseTable(c.Param("table"))
	if !ok {
		return "", errcodes.ValidationError(fmt.Sprintf("%q is not a known table.", c.Param("table")))
	}
	return t, nil
}

func (h *handler) insert(c echo.Context) error {
	ctx := c.Request().Context()

	t, err := tableParam(c)
	if err != nil {
		return err
	}

	var lastID int64
	if t == tableAuthors {
		p := &InsertAuthorPayload{}
		if err := c.Bind(p); err != nil {
			return errors.WithStack(err)
		}
		lastID, err = h.recordService.InsertAuthor(ctx, p)
	} else {
		p := &InsertRecordPayload{}
		if err := c.Bind(p); err != nil {
			return errors.WithStack(err)
		}
		lastID, err = h.recordService.InsertRecord(ctx, t, p)
	}
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, map[string]any{
		"lastID": lastID,
	}))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	t, err := tableParam(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if err := h.recordService.Delete(ctx, t, id); err != nil {
		return errors.WithStack(err)
	}

	// Orphaned covers are cleaned up alongside the row. Missing files are
	// fine, and a failed unlink should not undo the delete.
	if t != tableAuthors {
		if err := h.coverStore.Remove(identifiers.Normalize(id)); err != nil {
			log := logger.FromContext(ctx)
			log.Warn("failed to remove cover", logger.Data{"isbn": id, "error": err.Error()})
		}
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"message": "Record deleted successfully",
	}))
}
