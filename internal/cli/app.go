package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/three-level-auth/internal/config"
	"github.com/iliyamo/three-level-auth/internal/database"
	"github.com/iliyamo/three-level-auth/internal/handler"
	"github.com/iliyamo/three-level-auth/internal/logging"
	"github.com/iliyamo/three-level-auth/internal/queue"
	"github.com/iliyamo/three-level-auth/internal/repository"
	"github.com/iliyamo/three-level-auth/internal/router"
	"github.com/iliyamo/three-level-auth/internal/service"
)

// app is a fully wired server plus the resources it must release.
type app struct {
	echo      *echo.Echo
	db        *sql.DB
	redis     *redis.Client
	publisher *queue.Publisher
}

// stores is the storage backend selected by STORE_DRIVER.
type stores struct {
	accounts service.AccountStore
	patterns service.PatternStore
	faces    service.FaceStore
	pinger   handler.Pinger
}

// openDB is a seam for tests.
var openDB = database.Open

func buildApp(ctx context.Context, cfg config.Config, migrate bool, log logging.Logger) (*app, error) {
	a := &app{}

	st, err := a.openStores(ctx, cfg, migrate, log)
	if err != nil {
		return nil, err
	}

	var events service.EventSink
	if cfg.Audit.Enabled {
		a.publisher = queue.NewPublisher(cfg.Audit.URL, cfg.Audit.Queue, log)
		events = a.publisher
		log.Info(ctx, "audit events enabled", "queue", cfg.Audit.Queue)
	}

	if cfg.RateLimit.Enabled {
		a.redis = config.NewRedisClient(ctx, cfg.Redis)
		if a.redis == nil {
			log.Warn(ctx, "redis unreachable, rate limiting disabled", "addr", cfg.Redis.Addr)
		}
	}

	accounts := service.NewAccountService(st.accounts, cfg.BcryptCost, events, log)
	patterns := service.NewPatternService(st.accounts, st.patterns, nil, events, log)
	faces := service.NewFaceService(st.accounts, st.faces, nil, events, log)

	a.echo = router.New(router.Deps{
		Auth:      handler.NewAuthHandler(accounts, log),
		Pattern:   handler.NewPatternHandler(patterns, log),
		Facial:    handler.NewFacialHandler(faces, log),
		Store:     st.pinger,
		CORS:      cfg.CORS,
		RateLimit: cfg.RateLimit,
		Redis:     a.redis,
		Log:       log,
	})
	return a, nil
}

func (a *app) openStores(ctx context.Context, cfg config.Config, migrate bool, log logging.Logger) (stores, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn(ctx, "using in-memory store, data is lost on restart")
		mem := repository.NewMemoryStore()
		return stores{accounts: mem.Accounts(), patterns: mem.Patterns(), faces: mem.Faces()}, nil

	case config.StoreMySQL:
		db, err := openDB(ctx, cfg.DB)
		if err != nil {
			return stores{}, fmt.Errorf("open database: %w", err)
		}
		if migrate {
			if err := database.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return stores{}, fmt.Errorf("migrate: %w", err)
			}
		}
		a.db = db
		log.Info(ctx, "connected to mysql", "host", cfg.DB.Host, "db", cfg.DB.Name)
		return stores{
			accounts: repository.NewAccountRepo(db),
			patterns: repository.NewPatternRepo(db),
			faces:    repository.NewFaceRepo(db),
			pinger:   db,
		}, nil
	}
	return stores{}, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// Close releases every resource the app opened.
func (a *app) Close() error {
	var errs []error
	if a.publisher != nil {
		errs = append(errs, a.publisher.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
