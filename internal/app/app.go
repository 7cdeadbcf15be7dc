// Package app builds the application out of its configuration and owns
// every long-lived handle (pool, Redis client, background sweeper).
package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"demo-bank/config"
	"demo-bank/internal/adapter/http/handler"
	"demo-bank/internal/adapter/http/middleware"
	"demo-bank/internal/adapter/storage/memory"
	pgStorage "demo-bank/internal/adapter/storage/postgres"
	redisStorage "demo-bank/internal/adapter/storage/redis"
	"demo-bank/internal/core/ports"
	"demo-bank/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const sessionSweepInterval = time.Minute

// App is the assembled application.
type App struct {
	router  *gin.Engine
	seeder  *service.SeedService
	log     zerolog.Logger
	closers []func()
}

type stores struct {
	users      ports.UserRepository
	txns       ports.TransactionRepository
	transactor ports.DBTransactor
	sessions   ports.SessionStore
	checkers   []ports.HealthChecker
}

// New connects the configured backends, provisions the seed user and
// builds the router. On error every handle opened so far is released.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{log: log}

	st, err := a.openStores(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	secret := cfg.Session.Secret
	if secret == "" {
		secret, err = randomSecret()
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("generating session secret: %w", err)
		}
		log.Warn().Msg("session.secret is empty, using a random secret; sessions will not survive a restart")
	}

	hashSvc := service.NewPasswordHashService()
	authSvc := service.NewAuthService(st.users, hashSvc, st.sessions, cfg.Session.TTL, log)
	accountSvc := service.NewAccountService(st.users, st.txns, log)
	transferSvc := service.NewTransferService(st.users, st.txns, st.transactor, log)
	a.seeder = service.NewSeedService(st.users, hashSvc, log)

	if cfg.Seed.Enabled {
		if _, err := a.seeder.EnsureUser(ctx, cfg.Seed.Username, cfg.Seed.Password, cfg.Seed.Balance); err != nil {
			a.Close()
			return nil, fmt.Errorf("provisioning seed user: %w", err)
		}
	}

	gin.SetMode(cfg.Server.Mode)
	a.router = handler.SetupRouter(handler.RouterDeps{
		AuthSvc:     authSvc,
		AccountSvc:  accountSvc,
		TransferSvc: transferSvc,
		Cookie: &middleware.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.Secure,
			MaxAge: cfg.Session.TTL,
			Signer: service.NewHMACSignatureService(secret),
		},
		HealthCheckers: st.checkers,
		CORSOrigins:    cfg.Server.CORSOrigins,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		Logger:         log,
	})

	return a, nil
}

func (a *App) openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	st := &stores{}

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := pgStorage.NewPool(ctx, cfg.Database, a.log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)

		if cfg.Database.RunMigrations {
			if err := pgStorage.Migrate(ctx, pool, a.log); err != nil {
				return nil, err
			}
		}

		st.users = pgStorage.NewUserRepo(pool)
		st.txns = pgStorage.NewTransactionRepo(pool)
		st.transactor = pgStorage.NewTransactor(pool)
		st.checkers = append(st.checkers, pgStorage.NewHealthCheck(pool))
	case config.DriverMemory:
		store := memory.NewStore()
		st.users = memory.NewUserRepo(store)
		st.txns = memory.NewTransactionRepo(store)
		st.transactor = store
		a.log.Warn().Msg("Using in-memory storage; data is lost on exit")
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, a.log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() {
			if err := rdb.Close(); err != nil {
				a.log.Warn().Err(err).Msg("closing redis client")
			}
		})
		st.sessions = redisStorage.NewSessionStore(rdb)
		st.checkers = append(st.checkers, redisStorage.NewHealthCheck(rdb))
	case config.SessionStoreMemory:
		sessions := memory.NewSessionStore()
		sweepCtx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			defer close(done)
			sessions.RunSweeper(sweepCtx, sessionSweepInterval, a.log)
		}()
		a.closers = append(a.closers, func() {
			cancel()
			<-done
		})
		st.sessions = sessions
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}

	return st, nil
}

// Handler returns the HTTP handler serving every route.
func (a *App) Handler() http.Handler {
	return a.router
}

// Close releases every handle in reverse order of acquisition.
// It is safe to call more than once.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
