package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goliatone/go-formbuilder/internal/log"
	"github.com/goliatone/go-formbuilder/pkg/services"
	"github.com/goliatone/go-formbuilder/pkg/store"
	"github.com/goliatone/go-formbuilder/server"
)

func main() {
	cfg := parseFlags()
	log.SetDebug(cfg.Debug)

	st, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal("main.store.open:", err)
	}
	defer closeStore()

	if cfg.Theme != "" {
		if cfg.Theme != "light" && cfg.Theme != "dark" {
			log.Fatal("main.config: -theme must be light or dark")
		}
		if err := st.SetThemePreference(context.Background(), cfg.Theme); err != nil {
			log.Fatal("main.theme:", err)
		}
	}

	backend := services.NewMock()
	if cfg.SeedSize > 0 {
		if err := backend.Seed(context.Background(), int(cfg.SeedSize)); err != nil {
			log.Fatal("main.seed:", err)
		}
		log.Infof("seeded demo form with %d submissions", cfg.SeedSize)
	}

	app, err := server.NewApp(st, backend)
	if err != nil {
		log.Fatal("main.app:", err)
	}

	if err := runServer(cfg, server.Wire(app)); !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func openStore(cfg config) (*store.Store, func(), error) {
	if cfg.DBPath == "" {
		return store.New(store.NewMemory()), func() {}, nil
	}
	kv, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return store.New(kv), func() { kv.Close() }, nil
}

func runServer(cfg config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.URL())
	return srv.ListenAndServe()
}
