package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/FleaMarket_Go/internal/config"
	"github.com/osse101/FleaMarket_Go/internal/database"
	"github.com/osse101/FleaMarket_Go/internal/database/postgres"
	"github.com/osse101/FleaMarket_Go/internal/database/sqlite"
	"github.com/osse101/FleaMarket_Go/internal/repository"
)

// Pinger reports database reachability for readiness probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Repositories are the persistence backends chosen by DB_DRIVER. With the
// memory driver every field is nil and state lives only in process.
type Repositories struct {
	Quota        repository.Quota
	PlayerOffers repository.PlayerOffers
	DB           Pinger

	close func() error
}

// Close releases the underlying connection, if any.
func (r *Repositories) Close() error {
	if r == nil || r.close == nil {
		return nil
	}
	return r.close()
}

// InitializeRepositories connects to the configured driver and applies its
// migrations.
func InitializeRepositories(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	slog.Info(LogMsgDatabaseSelected, "driver", cfg.DBDriver)

	switch cfg.DBDriver {
	case config.DBDriverPostgres:
		pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, database.DefaultMaxIdleTime, database.DefaultMaxLifetime)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgConnectPostgresFmt, err)
		}
		if err := database.MigratePostgres(ctx, pool, cfg.Path(database.MigrationsDirPostgres)); err != nil {
			pool.Close()
			return nil, fmt.Errorf(ErrMsgMigratePostgresFmt, err)
		}
		return &Repositories{
			Quota:        postgres.NewQuotaRepository(pool),
			PlayerOffers: postgres.NewPlayerOfferRepository(pool),
			DB:           pool,
			close: func() error {
				pool.Close()
				return nil
			},
		}, nil

	case config.DBDriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath, cfg.Path(database.MigrationsDirSQLite))
		if err != nil {
			return nil, fmt.Errorf(ErrMsgOpenSQLiteFmt, err)
		}
		return &Repositories{
			Quota:        sqlite.NewQuotaRepository(db),
			PlayerOffers: sqlite.NewPlayerOfferRepository(db),
			DB:           db,
			close:        db.Close,
		}, nil

	default:
		return &Repositories{}, nil
	}
}
