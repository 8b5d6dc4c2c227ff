package books

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/hemlockbooks/hemlock/pkg/authors"
	"github.com/hemlockbooks/hemlock/pkg/errcodes"
	"github.com/hemlockbooks/hemlock/pkg/identifiers"
	"github.com/hemlockbooks/hemlock/pkg/models"
)

type Service struct {
	db            *bun.DB
	authorService *authors.Service
}

func NewService(db *bun.DB) *Service {
	return &Service{db: db, authorService: authors.NewService(db)}
}

// CreateBook inserts a new row into the category's table and returns the
// normalized ISBN it was stored under. The buy flag is only kept for EBooks.
func (svc *Service) CreateBook(ctx context.Context, category models.Category, isbn string, p *InsertBookPayload) (string, error) {
	isbn = identifiers.Normalize(isbn)
	if !identifiers.Accepted(isbn) {
		return "", errcodes.ValidationError(fmt.Sprintf("%q is not a valid ISBN-10 or ISBN-13.", isbn))
	}

	media, err := mediaFor(category, p.Media)
	if err != nil {
		return "", err
	}

	exists, err := svc.authorService.Exists(ctx, p.AuthorID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", errcodes.ValidationError(fmt.Sprintf("author_id %d does not reference an existing author.", p.AuthorID))
	}

	taken, err := svc.isbnExists(ctx, svc.db, category, isbn)
	if err != nil {
		return "", err
	}
	if taken {
		return "", errcodes.Conflict(string(category))
	}

	now := time.Now()

	if category == models.CategoryEBooks {
		ebook := &models.EBook{
			ISBN:        isbn,
			CreatedAt:   now,
			UpdatedAt:   now,
			Title:       p.Title,
			AuthorID:    p.AuthorID,
			Media:       media,
			Read:        p.Read,
			StarRating:  p.StarRating,
			SpiceRating: p.SpiceRating,
			GoreRating:  p.GoreRating,
			Synopsis:    p.Synopsis,
			Buy:         p.Buy,
		}
		_, err = svc.db.NewInsert().Model(ebook).Exec(ctx)
		return isbn, errors.WithStack(err)
	}

	book := &models.Book{
		ISBN:        isbn,
		CreatedAt:   now,
		UpdatedAt:   now,
		Title:       p.Title,
		AuthorID:    p.AuthorID,
		Media:       media,
		Read:        p.Read,
		StarRating:  p.StarRating,
		SpiceRating: p.SpiceRating,
		GoreRating:  p.GoreRating,
		Synopsis:    p.Synopsis,
	}
	_, err = svc.db.NewInsert().Model(book).Exec(ctx)
	return isbn, errors.WithStack(err)
}

func (svc *Service) RetrieveBook(ctx context.Context, category models.Category, isbn string) (any, error) {
	isbn = identifiers.Normalize(isbn)

	if category == models.CategoryEBooks {
		ebook := &models.EBook{}
		err := svc.db.
			NewSelect().
			Model(ebook).
			Relation("Author").
			Where("eb.isbn = ?", isbn).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, errcodes.NotFound("EBook")
			}
			return nil, errors.WithStack(err)
		}
		return ebook, nil
	}

	book := &models.Book{}
	err := svc.db.
		NewSelect().
		Model(book).
		Relation("Author").
		Where("b.isbn = ?", isbn).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}
	return book, nil
}

// ListBooks returns all rows in the category's table ordered by title, along
// with the row count so the handler can 404 an empty catalog.
func (svc *Service) ListBooks(ctx context.Context, category models.Category) (any, int, error) {
	if category == models.CategoryEBooks {
		var ebooks []*models.EBook
		err := svc.db.
			NewSelect().
			Model(&ebooks).
			Relation("Author").
			Order("eb.title ASC").
			Scan(ctx)
		if err != nil {
			return nil, 0, errors.WithStack(err)
		}
		return ebooks, len(ebooks), nil
	}

	var books []*models.Book
	err := svc.db.
		NewSelect().
		Model(&books).
		Relation("Author").
		Order("b.title ASC").
		Scan(ctx)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}
	return books, len(books), nil
}

func (svc *Service) ListBooksByAuthor(ctx context.Context, category models.Category, authorID int) (any, int, error) {
	if category == models.CategoryEBooks {
		var ebooks []*models.EBook
		err := svc.db.
			NewSelect().
			Model(&ebooks).
			Relation("Author").
			Where("eb.author_id = ?", authorID).
			Order("eb.title ASC").
			Scan(ctx)
		if err != nil {
			return nil, 0, errors.WithStack(err)
		}
		return ebooks, len(ebooks), nil
	}

	var books []*models.Book
	err := svc.db.
		NewSelect().
		Model(&books).
		Relation("Author").
		Where("b.author_id = ?", authorID).
		Order("b.title ASC").
		Scan(ctx)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}
	return books, len(books), nil
}

// UpdateBook applies every provided field in one statement and returns the
// updated row. Fields left nil in the payload are untouched.
func (svc *Service) UpdateBook(ctx context.Context, category models.Category, isbn string, p *UpdateBookPayload) (any, error) {
	isbn = identifiers.Normalize(isbn)

	if p.AuthorID != nil {
		exists, err := svc.authorService.Exists(ctx, *p.AuthorID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errcodes.ValidationError(fmt.Sprintf("author_id %d does not reference an existing author.", *p.AuthorID))
		}
	}

	if category == models.CategoryEBooks {
		ebook := &models.EBook{ISBN: isbn, UpdatedAt: time.Now()}
		columns := []string{"updated_at"}

		if p.Title != nil {
			ebook.Title = *p.Title
			columns = append(columns, "title")
		}
		if p.AuthorID != nil {
			ebook.AuthorID = *p.AuthorID
			columns = append(columns, "author_id")
		}
		if p.Read != nil {
			ebook.Read = *p.Read
			columns = append(columns, "read")
		}
		if p.Buy != nil {
			ebook.Buy = *p.Buy
			columns = append(columns, "buy")
		}
		if p.StarRating != nil {
			ebook.StarRating = *p.StarRating
			columns = append(columns, "star_rating")
		}
		if p.SpiceRating != nil {
			ebook.SpiceRating = *p.SpiceRating
			columns = append(columns, "spice_rating")
		}
		if p.GoreRating != nil {
			ebook.GoreRating = *p.GoreRating
			columns = append(columns, "gore_rating")
		}
		if p.Synopsis != nil {
			ebook.Synopsis = *p.Synopsis
			columns = append(columns, "synopsis")
		}

		result, err := svc.db.
			NewUpdate().
			Model(ebook).
			Column(columns...).
			WherePK().
			Exec(ctx)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if n, err := result.RowsAffected(); err != nil {
			return nil, errors.WithStack(err)
		} else if n == 0 {
			return nil, errcodes.NotFound("EBook")
		}

		return svc.RetrieveBook(ctx, category, isbn)
	}

	media, err := updateMediaFor(category, p.Media)
	if err != nil {
		return nil, err
	}

	book := &models.Book{ISBN: isbn, UpdatedAt: time.Now()}
	columns := []string{"updated_at"}

	if p.Title != nil {
		book.Title = *p.Title
		columns = append(columns, "title")
	}
	if p.AuthorID != nil {
		book.AuthorID = *p.AuthorID
		columns = append(columns, "author_id")
	}
	if media != "" {
		book.Media = media
		columns = append(columns, "media")
	}
	if p.Read != nil {
		book.Read = *p.Read
		columns = append(columns, "read")
	}
	if p.StarRating != nil {
		book.StarRating = *p.StarRating
		columns = append(columns, "star_rating")
	}
	if p.SpiceRating != nil {
		book.SpiceRating = *p.SpiceRating
		columns = append(columns, "spice_rating")
	}
	if p.GoreRating != nil {
		book.GoreRating = *p.GoreRating
		columns = append(columns, "gore_rating")
	}
	if p.Synopsis != nil {
		book.Synopsis = *p.Synopsis
		columns = append(columns, "synopsis")
	}

	result, err := svc.db.
		NewUpdate().
		Model(book).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, errors.WithStack(err)
	} else if n == 0 {
		return nil, errcodes.NotFound("Book")
	}

	return svc.RetrieveBook(ctx, category, isbn)
}

func (svc *Service) DeleteBook(ctx context.Context, category models.Category, isbn string) error {
	isbn = identifiers.Normalize(isbn)

	var result sql.Result
	var err error
	if category == models.CategoryEBooks {
		result, err = svc.db.
			NewDelete().
			Model((*models.EBook)(nil)).
			Where("isbn = ?", isbn).
			Exec(ctx)
	} else {
		result, err = svc.db.
			NewDelete().
			Model((*models.Book)(nil)).
			Where("isbn = ?", isbn).
			Exec(ctx)
	}
	if err != nil {
		return errors.WithStack(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if n == 0 {
		if category == models.CategoryEBooks {
			return errcodes.NotFound("EBook")
		}
		return errcodes.NotFound("Book")
	}
	return nil
}

// ConvertEBookToBook atomically moves an ebook row into the books table under
// the given physical media. The source row is deleted in the same transaction,
// so either both tables change or neither does.
func (svc *Service) ConvertEBookToBook(ctx context.Context, isbn, media string) (*models.Book, error) {
	isbn = identifiers.Normalize(isbn)
	if !models.ValidBookMedia(media) {
		return nil, errcodes.ValidationError(fmt.Sprintf("%q is not a valid media for a physical book.", media))
	}

	var converted *models.Book

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		ebook := &models.EBook{}
		err := tx.
			NewSelect().
			Model(ebook).
			Where("eb.isbn = ?", isbn).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errcodes.NotFound("EBook")
			}
			return errors.WithStack(err)
		}

		taken, err := tx.
			NewSelect().
			Model((*models.Book)(nil)).
			Where("b.isbn = ?", isbn).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if taken {
			return errcodes.Conflict("Book")
		}

		book := ebook.AsBook(media)
		book.UpdatedAt = time.Now()

		if _, err := tx.NewInsert().Model(book).Exec(ctx); err != nil {
			return errors.WithStack(err)
		}
		if _, err := tx.NewDelete().Model(ebook).WherePK().Exec(ctx); err != nil {
			return errors.WithStack(err)
		}

		converted = book
		return nil
	})
	if err != nil {
		return nil, err
	}

	return converted, nil
}

func (svc *Service) isbnExists(ctx context.Context, db bun.IDB, category models.Category, isbn string) (bool, error) {
	var exists bool
	var err error
	if category == models.CategoryEBooks {
		exists, err = db.
			NewSelect().
			Model((*models.EBook)(nil)).
			Where("eb.isbn = ?", isbn).
			Exists(ctx)
	} else {
		exists, err = db.
			NewSelect().
			Model((*models.Book)(nil)).
			Where("b.isbn = ?", isbn).
			Exists(ctx)
	}
	return exists, errors.WithStack(err)
}

// mediaFor resolves the stored media for an insert. EBooks always store
// MediaEBook; physical books must name a physical media.
func mediaFor(category models.Category, media string) (string, error) {
	if category == models.CategoryEBooks {
		return models.MediaEBook, nil
	}
	if media == "" {
		media = models.MediaPaperback
	}
	if !models.ValidBookMedia(media) {
		return "", errcodes.ValidationError(fmt.Sprintf("%q is not a valid media for a physical book.", media))
	}
	return media, nil
}

// updateMediaFor resolves the media column for a physical book update. An
// absent field means the column stays as is.
func updateMediaFor(category models.Category, media *string) (string, error) {
	if media == nil || category == models.CategoryEBooks {
		return "", nil
	}
	if !models.ValidBookMedia(*media) {
		return "", errcodes.ValidationError(fmt.Sprintf("%q is not a valid media for a physical book.", *media))
	}
	return *media, nil
}
