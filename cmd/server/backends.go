package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusly/lms-platform/internal/api/handler"
	"github.com/campusly/lms-platform/internal/core/ports"
	memstore "github.com/campusly/lms-platform/internal/infrastructure/db/memory"
	mongostore "github.com/campusly/lms-platform/internal/infrastructure/db/mongo"
	pgstore "github.com/campusly/lms-platform/internal/infrastructure/db/postgres"
	redisstore "github.com/campusly/lms-platform/internal/infrastructure/db/redis"
	"github.com/campusly/lms-platform/internal/infrastructure/identity"
	"github.com/campusly/lms-platform/internal/pkg/config"
)

const memoryCooldownSweep = time.Minute

// backends holds the adapters chosen by the *_DRIVER settings.
type backends struct {
	profiles     ports.ProfileStore
	applications ports.ApplicationStore
	cooldowns    ports.CooldownStore
	orphans      ports.OrphanLedger
	identity     ports.IdentityProvider
	readiness    map[string]handler.Pinger
	closers      []func(context.Context) error
}

func connectBackends(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backends, error) {
	b := &backends{readiness: make(map[string]handler.Pinger)}

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := pgstore.Connect(ctx, pgstore.Config{DSN: cfg.Postgres.DSN})
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func(context.Context) error { return db.Close() })
		if err := pgstore.Migrate(ctx, db); err != nil {
			b.close(log)
			return nil, err
		}
		b.profiles = pgstore.NewProfileStore(db)
		b.applications = pgstore.NewApplicationStore(db)
		b.readiness["postgres"] = db.PingContext

	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, client.Disconnect)
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			b.close(log)
			return nil, err
		}
		b.profiles = mongostore.NewProfileRepository(db)
		b.applications = mongostore.NewApplicationRepository(db)
		b.orphans = mongostore.NewOrphanRepository(db)
		b.readiness["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }

	default:
		b.profiles = memstore.NewProfileStore()
		b.applications = memstore.NewApplicationStore()
	}

	switch cfg.CooldownDriver {
	case config.DriverRedis:
		rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			b.close(log)
			return nil, err
		}
		b.closers = append(b.closers, func(context.Context) error { return rdb.Close() })
		b.cooldowns = redisstore.NewCooldownStore(rdb)
		b.orphans = redisstore.NewOrphanLedger(rdb)
		b.readiness["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }

	default:
		cooldowns := memstore.NewCooldownStore()
		go cooldowns.RunSweeper(ctx, memoryCooldownSweep)
		b.cooldowns = cooldowns
	}

	if b.orphans == nil {
		b.orphans = memstore.NewOrphanLedger()
	}

	switch cfg.IdentityDriver {
	case config.DriverGoTrue:
		client := identity.NewGoTrueClient(identity.GoTrueConfig{
			BaseURL: cfg.Identity.URL,
			APIKey:  cfg.Identity.APIKey,
			Timeout: cfg.Identity.Timeout,

			RatePerSecond: cfg.Identity.RatePerSecond,
			Burst:         cfg.Identity.Burst,
		}, nil)
		b.identity = client
		b.readiness["identity"] = client.Health

	default:
		log.Warn().Msg("using in-memory identity provider; accounts are lost on restart")
		b.identity = identity.NewMemoryProvider()
	}

	return b, nil
}

// close releases backends in reverse order of acquisition.
func (b *backends) close(log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](ctx); err != nil {
			log.Error().Err(fmt.Errorf("close backend: %w", err)).Msg("shutdown")
		}
	}
	b.closers = nil
}
