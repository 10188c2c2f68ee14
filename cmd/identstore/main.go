package main

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"IdentStore/internal/api"
	"IdentStore/internal/config"
	"IdentStore/internal/identity"
	"IdentStore/internal/product"
	"IdentStore/pkg/kit"
)

const setupTimeout = 5 * time.Second

func main() {
	service := "identstore"
	cfg := config.New()

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	db, err := openDB(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	store := product.NewSQLStore(db)

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()
	if err := store.Setup(ctx); err != nil {
		log.Fatal("product table setup", zap.Error(err))
	}
	log.Info("product table ready")

	h := api.NewHandler(api.Deps{
		Log:      log,
		Service:  service,
		Registry: identity.NewRegistry(),
		Products: store,

		PromRegistry:   prometheus.NewRegistry(),
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,

		IssueLimitPerMin: cfg.IssueLimitPerMin,
	})

	if err := kit.RunHTTPServer(cfg.Address, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

// openDB picks the driver from the DSN. Postgres URLs go to pgx; anything
// else is treated as a sqlite DSN, defaulting to a fresh in-memory database.
// The sqlite pool is capped at one connection because every new in-memory
// connection would otherwise see its own empty database.
func openDB(dsn string) (*sql.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return sql.Open("pgx", dsn)
	}

	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
