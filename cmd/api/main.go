package main

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"

	"github.com/hemlockbooks/hemlock/pkg/config"
	"github.com/hemlockbooks/hemlock/pkg/covers"
	"github.com/hemlockbooks/hemlock/pkg/database"
	"github.com/hemlockbooks/hemlock/pkg/migrations"
	"github.com/hemlockbooks/hemlock/pkg/server"
	"github.com/hemlockbooks/hemlock/pkg/version"
)

func main() {
	ctx := context.Background()
	log := logger.New()

	log.Info("starting hemlock", logger.Data{"version": version.Version})

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	coverStore := covers.NewStore(cfg.CoversDir)
	if err := coverStore.Init(); err != nil {
		log.Err(err).Fatal("covers directory error")
	}
	log.Info("covers directory initialized", logger.Data{"path": cfg.CoversDir})

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	group, err := migrations.BringUpToDate(ctx, db)
	if err != nil {
		log.Err(err).Fatal("migrations error")
	}
	if group.ID == 0 {
		log.Info("no new migrations to run")
	} else {
		log.Info("migrated to new group", logger.Data{"group_id": group.ID, "migration_names": group.Migrations.String()})
	}

	srv, err := server.New(cfg, db, coverStore)
	if err != nil {
		log.Err(err).Fatal("server error")
	}

	graceful := signals.Setup()

	go func() {
		log.Info("server started", logger.Data{"addr": srv.Addr})
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Fatal("server stopped")
		}
		log.Info("server stopped")
	}()

	<-graceful
	log.Info("starting graceful shutdown")

	err = srv.Shutdown(ctx)
	if err != nil {
		log.Err(err).Error("server shutdown error")
	}
	log.Info("server shutdown")

	err = db.Close()
	if err != nil {
		log.Err(err).Error("database close error")
	}
	log.Info("database closed")
}
