package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"booking_front/internal/adapters/gateway"
	server "booking_front/internal/adapters/http_server"
	"booking_front/internal/adapters/observability"
	redisad "booking_front/internal/adapters/redis"
	"booking_front/internal/app"
	"booking_front/internal/domain"
	"booking_front/internal/session"
	"booking_front/internal/shared"
)

func main() {
	cfg, problems := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	for _, err := range problems {
		log.Warn().Err(err).Msg("config")
	}

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// sessions and cache
	var (
		repo  domain.SessionRepository = session.NewMemoryRepo()
		cache domain.Cache
	)
	if cfg.RedisAddr != "" {
		rc := redisad.NewClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rc.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
		repo = redisad.NewSessionRepo(rc)
		cache = redisad.NewCache(rc, "booking:")
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis connection ok")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, sessions live in process memory")
	}
	sessions := session.NewManager(repo, cfg.SessionTTL)

	// backends
	gw, err := gateway.New(gateway.Endpoints{
		Users:  cfg.UsersAPI,
		Hotels: cfg.HotelsAPI,
		Search: cfg.SearchAPI,
	}, gateway.Options{
		Timeout: cfg.GatewayTimeout,
		RPS:     cfg.GatewayRPS,
		Retries: cfg.GatewayRetries,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize backend clients")
	}

	// services
	listing := app.NewListingService(gw.Search)
	queries := app.NewHotelQueries(gw.Hotels, cache, cfg.HotelCacheTTL)
	h := &server.Handlers{
		Auth:         app.NewAuthService(gw.Users),
		Listing:      listing,
		Hotels:       queries,
		Booking:      app.NewBookingService(gw.Hotels),
		Reservations: app.NewReservationAggregator(gw.Hotels, queries, cfg.LookupConcurrency),
		Admin:        app.NewAdminCoordinator(gw.Hotels, listing, queries),
	}

	// http
	srv := server.New(sessions, server.CookieConfig{Secure: cfg.CookieSecure})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(h)

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("users", cfg.UsersAPI).
		Str("hotels", cfg.HotelsAPI).
		Str("search", cfg.SearchAPI).
		Msg("web listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("web stopped")
}
