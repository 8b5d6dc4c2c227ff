package books

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/hemlockbooks/hemlock/pkg/covers"
	"github.com/hemlockbooks/hemlock/pkg/errcodes"
	"github.com/hemlockbooks/hemlock/pkg/identifiers"
	"github.com/hemlockbooks/hemlock/pkg/models"
)

type handler struct {
	bookService *Service
	coverStore  *covers.Store
}

func categoryParam(c echo.Context) (models.Category, error) {
	category, ok := models.ParseCategory(c.Param("category"))
	if !ok {
		return "", errcodes.ValidationError(fmt.Sprintf("%q is not a valid category.", c.Param("category")))
	}
	return category, nil
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	category, err := categoryParam(c)
	if err != nil {
		return err
	}

	rows, count, err := h.bookService.ListBooks(ctx, category)
	if err != nil {
		return errors.WithStack(err)
	}
	if count == 0 {
		return errcodes.NotFound(string(category))
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"message": fmt.Sprintf("%s retrieved successfully", category),
		"data":    rows,
	}))
}

func (h *handler) listByAuthor(c echo.Context) error {
	ctx := c.Request().Context()

	category, err := categoryParam(c)
	if err != nil {
		return err
	}

	authorID, err := strconv.Atoi(c.Param("authorId"))
	if err != nil {
		return errcodes.ValidationTypeError(fmt.Sprintf("%q is not a valid author id.", c.Param("authorId")))
	}

	rows, count, err := h.bookService.ListBooksByAuthor(ctx, category, authorID)
	if err != nil {
		return errors.WithStack(err)
	}
	if count == 0 {
		return errcodes.NotFound(string(category))
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"message": fmt.Sprintf("%s retrieved successfully", category),
		"data":    rows,
	}))
}

func (h *handler) insert(c echo.Context) error {
	ctx := c.Request().Context()

	category, err := categoryParam(c)
	if err != nil {
		return err
	}

	p := &InsertBookPayload{}
	if err := c.Bind(p); err != nil {
		return errors.WithStack(err)
	}

	isbn, err := h.bookService.CreateBook(ctx, category, c.Param("isbn"), p)
	if err != nil {
		return errors.WithStack(err)
	}

	// The row is already committed, so a cover write failure surfaces as a
	// 500 but leaves the catalog entry in place.
	if fh, ok := p.FormFiles["cover"]; ok {
		if err := h.coverStore.Save(isbn, fh); err != nil {
			return errors.WithStack(err)
		}
	}

	return errors.WithStack(c.JSON(http.StatusCreated, map[string]any{
		"message": fmt.Sprintf("%s inserted successfully", singular(category)),
		"data":    map[string]any{"isbn": isbn},
	}))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	category, err := categoryParam(c)
	if err != nil {
		return err
	}

	p := &UpdateBookPayload{}
	if err := c.Bind(p); err != nil {
		return errors.WithStack(err)
	}

	updated, err := h.bookService.UpdateBook(ctx, category, c.Param("isbn"), p)
	if err != nil {
		return errors.WithStack(err)
	}

	if fh, ok := p.FormFiles["cover"]; ok {
		if err := h.coverStore.Save(identifiers.Normalize(c.Param("isbn")), fh); err != nil {
			return errors.WithStack(err)
		}
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"message": fmt.Sprintf("%s updated successfully", singular(category)),
		"data":    updated,
	}))
}

func (h *handler) convert(c echo.Context) error {
	ctx := c.Request().Context()

	p := &ConvertEBookToBookPayload{}
	if err := c.Bind(p); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.ConvertEBookToBook(ctx, p.ISBN, p.Media)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"message": "EBook converted to Book successfully",
		"data":    book,
	}))
}

func singular(category models.Category) string {
	if category == models.CategoryEBooks {
		return "EBook"
	}
	return "Book"
}
