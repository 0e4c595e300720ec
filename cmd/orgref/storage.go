package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	accessDB "github.com/davicafu/orgref/internal/access/infra/outbound/db"
	"github.com/davicafu/orgref/internal/config"
	geoDB "github.com/davicafu/orgref/internal/geo/infra/outbound/db"
	orgDB "github.com/davicafu/orgref/internal/org/infra/outbound/db"
	refDB "github.com/davicafu/orgref/internal/referential/infra/outbound/db"
	"github.com/davicafu/orgref/internal/shared/application"
	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	"github.com/davicafu/orgref/internal/shared/infra/platform/db/memstore"
	"github.com/davicafu/orgref/internal/shared/infra/platform/db/sqlstore"
	sharedUtils "github.com/davicafu/orgref/internal/shared/infra/utils"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// storage agrupa lo que depende del driver configurado. db es nil con DB_DRIVER=memory.
type storage struct {
	db        *sql.DB
	dialect   sqlstore.Dialect
	memOutbox *memstore.Outbox
	log       *zap.Logger
}

func openStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (*storage, error) {
	if cfg.DBDriver == "memory" {
		log.Info("⚡️ Usando almacenamiento en memoria")
		return &storage{memOutbox: memstore.NewOutbox(), log: log}, nil
	}

	dialect, err := sqlstore.DialectFor(cfg.DBDriver)
	if err != nil {
		return nil, err
	}
	dsn := cfg.SQLitePath
	if dialect.Name == sqlstore.Postgres.Name {
		dsn = cfg.PostgresDSN
	}

	db, err := sql.Open(dialect.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect.Name, err)
	}
	if dialect.Name == sqlstore.SQLite.Name {
		// SQLite serializa las escrituras; una sola conexión evita SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}
	// Postgres puede tardar en aceptar conexiones al arrancar junto al servicio.
	ping := func() error { return db.PingContext(ctx) }
	if err := sharedUtils.Retry(ctx, log, "db.ping", 5, 500*time.Millisecond, ping); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect.Name, err)
	}

	// Orden de migración según las FK.
	var tables []sqlstore.Migration
	tables = append(tables, geoDB.Tables()...)
	tables = append(tables, refDB.Tables()...)
	tables = append(tables, orgDB.Tables()...)
	tables = append(tables, accessDB.Tables()...)
	if err := sqlstore.Migrate(ctx, db, dialect, tables...); err != nil {
		db.Close()
		return nil, err
	}

	log.Info("✅ Base de datos lista", zap.String("driver", dialect.Name))
	return &storage{db: db, dialect: dialect, log: log}, nil
}

func (s *storage) outbox() sharedDomain.OutboxRepository {
	if s.db == nil {
		return s.memOutbox
	}
	return sqlstore.NewOutboxRepo(s.db, s.dialect)
}

func (s *storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// newRepo devuelve el repositorio SQL de la tabla o, sin base de datos, uno en memoria.
func newRepo[E sharedDomain.Entity](s *storage, table sqlstore.Table[E], reg *sharedQuery.Registry[E], clone func(E) E) application.Repository[E] {
	if s.db == nil {
		return memstore.NewRepository(reg, clone, s.memOutbox)
	}
	return sqlstore.NewRepository(s.db, s.dialect, table, s.log)
}
