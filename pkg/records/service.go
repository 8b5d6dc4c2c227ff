package records

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/hemlockbooks/hemlock/pkg/authors"
	"github.com/hemlockbooks/hemlock/pkg/books"
	"github.com/hemlockbooks/hemlock/pkg/errcodes"
	"github.com/hemlockbooks/hemlock/pkg/models"
)

// table identifies which store a /api/data request addresses. Only the three
// catalog tables are reachable; anything else is rejected before touching the
// database.
type table string

const (
	tableAuthors table = "authors"
	tableBooks   table = "books"
	tableEBooks  table = "ebooks"
)

func parseTable(raw string) (table, bool) {
	switch strings.ToLower(raw) {
	case "authors":
		return tableAuthors, true
	case "books":
		return tableBooks, true
	case "ebooks":
		return tableEBooks, true
	}
	return "", false
}

func (t table) category() models.Category {
	if t == tableEBooks {
		return models.CategoryEBooks
	}
	return models.CategoryBooks
}

type Service struct {
	db            *bun.DB
	authorService *authors.Service
	bookService   *books.Service
}

func NewService(db *bun.DB) *Service {
	return &Service{
		db:            db,
		authorService: authors.NewService(db),
		bookService:   books.NewService(db),
	}
}

// InsertAuthor creates an author row and returns its generated id.
func (svc *Service) InsertAuthor(ctx context.Context, p *InsertAuthorPayload) (int64, error) {
	author := &models.Author{
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
	if err := svc.authorService.CreateAuthor(ctx, author); err != nil {
		return 0, err
	}
	return int64(author.ID), nil
}

// InsertRecord creates a book or ebook row and returns its rowid, matching
// the shape author inserts report.
func (svc *Service) InsertRecord(ctx context.Context, t table, p *InsertRecordPayload) (int64, error) {
	isbn, err := svc.bookService.CreateBook(ctx, t.category(), p.ISBN, &books.InsertBookPayload{
		Title:       p.Title,
		AuthorID:    p.AuthorID,
		Media:       p.Media,
		Read:        p.Read,
		Buy:         p.Buy,
		StarRating:  p.StarRating,
		SpiceRating: p.SpiceRating,
		GoreRating:  p.GoreRating,
		Synopsis:    p.Synopsis,
	})
	if err != nil {
		return 0, err
	}

	var rowID int64
	err = svc.db.
		NewSelect().
		Table(string(t)).
		ColumnExpr("rowid").
		Where("isbn = ?", isbn).
		Scan(ctx, &rowID)
	return rowID, errors.WithStack(err)
}

// Delete removes a row keyed by the table's id column, which is the isbn for
// the book tables and the numeric id for authors.
func (svc *Service) Delete(ctx context.Context, t table, id string) error {
	if t == tableAuthors {
		authorID, err := parseAuthorID(id)
		if err != nil {
			return err
		}
		return svc.authorService.DeleteAuthor(ctx, authorID)
	}
	return svc.bookService.DeleteBook(ctx, t.category(), id)
}

func parseAuthorID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errcodes.ValidationTypeError("author id must be a positive integer.")
	}
	return id, nil
}
