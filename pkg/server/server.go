package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"

	"github.com/hemlockbooks/hemlock/pkg/authors"
	"github.com/hemlockbooks/hemlock/pkg/binder"
	"github.com/hemlockbooks/hemlock/pkg/books"
	"github.com/hemlockbooks/hemlock/pkg/config"
	"github.com/hemlockbooks/hemlock/pkg/covers"
	"github.com/hemlockbooks/hemlock/pkg/errcodes"
	"github.com/hemlockbooks/hemlock/pkg/records"
)

func New(cfg *config.Config, db *bun.DB, coverStore *covers.Store) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	// Covers are served straight off disk by convention: /covers/{isbn}.jpg.
	e.Static("/covers", coverStore.Dir())

	api := e.Group("/api")
	authors.RegisterRoutesWithGroup(api, db)
	books.RegisterRoutesWithGroup(api, db, coverStore)
	records.RegisterRoutesWithGroup(api, db, coverStore)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
