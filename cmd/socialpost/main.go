package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	rdb "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/socialpost/internal/config"
	"github.com/dropDatabas3/socialpost/internal/domain/repository"
	ctrl "github.com/dropDatabas3/socialpost/internal/http/controllers/social"
	"github.com/dropDatabas3/socialpost/internal/http/handlers"
	"github.com/dropDatabas3/socialpost/internal/http/router"
	svc "github.com/dropDatabas3/socialpost/internal/http/services/social"
	"github.com/dropDatabas3/socialpost/internal/infra/cachefactory"
	"github.com/dropDatabas3/socialpost/internal/metrics"
	"github.com/dropDatabas3/socialpost/internal/observability/logger"
	"github.com/dropDatabas3/socialpost/internal/provider"
	"github.com/dropDatabas3/socialpost/internal/provider/facebook"
	"github.com/dropDatabas3/socialpost/internal/provider/github"
	"github.com/dropDatabas3/socialpost/internal/provider/linkedin"
	"github.com/dropDatabas3/socialpost/internal/rate"
	"github.com/dropDatabas3/socialpost/internal/security/secretbox"
	memstore "github.com/dropDatabas3/socialpost/internal/store/adapters/memory"
	pgstore "github.com/dropDatabas3/socialpost/internal/store/adapters/pg"
)

// storeBundle abstrae el backend elegido por config.
type storeBundle struct {
	socialAccounts repository.SocialAccountRepository
	accounts       repository.AccountRepository
	pinger         router.Pinger
	close          func()
}

func main() {
	var (
		flagConfig  = flag.String("config", "configs/config.yaml", "ruta a config.yaml")
		flagEnvFile = flag.String("env-file", ".env", "ruta a .env (opcional)")
		flagMigrate = flag.Bool("migrate", false, "aplicar migraciones al arrancar (solo postgres)")
	)
	flag.Parse()

	if *flagEnvFile != "" {
		_ = godotenv.Load(*flagEnvFile)
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		// logger todavía no inicializado
		panic("config: " + err.Error())
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "socialpost"})
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Codec de tokens: sin secret no hay servicio.
	codec, err := secretbox.New(cfg.Crypto.InstallationSecret)
	if err != nil {
		log.Fatal("secretbox init failed", logger.Err(err))
	}

	// Storage
	store, err := openStore(ctx, cfg, *flagMigrate)
	if err != nil {
		log.Fatal("store init failed", logger.Err(err))
	}
	defer store.close()

	// Cache (estado de sesión del handshake)
	cacheCfg := cachefactory.Config{Kind: cfg.Cache.Kind}
	cacheCfg.Redis.Addr = cfg.Cache.Redis.Addr
	cacheCfg.Redis.DB = cfg.Cache.Redis.DB
	cacheCfg.Memory.DefaultTTL = cfg.Cache.Memory.DefaultTTL
	cch, err := cachefactory.Open(cacheCfg)
	if err != nil {
		log.Fatal("cache init failed", logger.Err(err))
	}

	// Providers
	registry := buildRegistry(cfg)

	// Rate limit del connect: redis si el cache es redis, in-process si no.
	limiter := buildLimiter(cfg)

	// Servicios
	records := svc.NewRecordsService(svc.RecordsDeps{
		Records:  store.socialAccounts,
		Accounts: store.accounts,
		Codec:    codec,
	})
	handshake := svc.NewHandshakeService(svc.HandshakeDeps{
		Registry: registry,
		Sessions: svc.NewDataHandler(cch, cfg.SessionTTL()),
		Records:  records,
	})
	services := svc.Services{Handshake: handshake, Records: records}

	// Métricas
	if err := metrics.RegisterSocial(nil); err != nil {
		log.Fatal("metrics registration failed", logger.Err(err))
	}

	// HTTP
	mux := router.New(router.Deps{
		Social: router.SocialRouterDeps{
			Controllers: ctrl.NewControllers(services, ctrl.Config{ManageURL: cfg.Social.ManageURL}),
			Limiter:     limiter,
		},
		Admin: router.AdminRouterDeps{
			Records: handlers.NewAdminRecordsHandler(records),
			APIKey:  cfg.Admin.APIKey,
		},
		Store: store.pinger,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening",
			logger.String("addr", cfg.Server.Addr),
			logger.String("storage", cfg.Storage.Driver),
			logger.Any("implementers", registry.IDs()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", logger.Err(err))
		os.Exit(1)
	}
	log.Info("server stopped")
}

func openStore(ctx context.Context, cfg *config.Config, migrate bool) (*storeBundle, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		st, err := pgstore.New(ctx, cfg.Storage.DSN, pgstore.Options{
			MaxConns: cfg.Storage.Postgres.MaxConns,
			MinConns: cfg.Storage.Postgres.MinConns,
		})
		if err != nil {
			return nil, err
		}
		if migrate {
			if err := st.Migrate(ctx); err != nil {
				st.Close()
				return nil, err
			}
		}
		return &storeBundle{
			socialAccounts: st.SocialAccounts(),
			accounts:       st.Accounts(),
			pinger:         st,
			close:          st.Close,
		}, nil
	default: // memory
		st := memstore.New()
		return &storeBundle{
			socialAccounts: st.SocialAccounts(),
			accounts:       st.Accounts(),
			close:          func() {},
		}, nil
	}
}

func buildLimiter(cfg *config.Config) rate.Limiter {
	max := cfg.Social.ConnectRate.Max
	window := cfg.ConnectRateWindow()
	if cfg.Cache.Kind == "redis" {
		client := rdb.NewClient(&rdb.Options{
			Addr: cfg.Cache.Redis.Addr,
			DB:   cfg.Cache.Redis.DB,
		})
		return rate.NewRedisLimiter(client, "sp:rl:", max, window)
	}
	return rate.NewMemoryLimiter(max, window)
}

func buildRegistry(cfg *config.Config) *provider.Registry {
	registry := provider.NewRegistry()
	for id, p := range cfg.Social.Providers {
		if !p.Enabled {
			continue
		}
		pc := provider.Config{
			ClientID:     p.ClientID,
			ClientSecret: p.ClientSecret,
			RedirectURL:  p.RedirectURL,
			Scopes:       p.Scopes,
		}
		switch id {
		case "facebook":
			registry.Register(facebook.New(pc))
		case "github":
			registry.Register(github.New(pc))
		case "linkedin":
			registry.Register(linkedin.New(pc))
		default:
			logger.L().Warn("unknown implementer in config ignored", logger.Implementer(id))
		}
	}
	return registry
}
