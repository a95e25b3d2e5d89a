package main

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"booking_front/internal/adapters/gateway"
	"booking_front/internal/adapters/observability"
	"booking_front/internal/app"
	"booking_front/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg, problems := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	for _, err := range problems {
		log.Warn().Err(err).Msg("config")
	}

	if cfg.SeedToken == "" {
		log.Fatal().Msg("SEED_TOKEN is required: an administrator token for the hotel service")
	}
	workers := cfg.SeedWorkers
	if workers <= 0 {
		workers = 1
	}

	log.Info().
		Str("hotels", cfg.HotelsAPI).
		Str("search", cfg.SearchAPI).
		Int("workers", workers).
		Int("catalogue", len(app.DemoCatalogue)).
		Msg("seeder starting")

	gw, err := gateway.New(gateway.Endpoints{
		Users:  cfg.UsersAPI,
		Hotels: cfg.HotelsAPI,
		Search: cfg.SearchAPI,
	}, gateway.Options{Timeout: cfg.GatewayTimeout, RPS: cfg.GatewayRPS, Retries: cfg.GatewayRetries})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize backend clients")
	}
	seed := app.NewSeedService(gw.Hotels, app.NewListingService(gw.Search))

	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg               sync.WaitGroup
		created, skipped atomic.Int64
	)

	for _, f := range app.DemoCatalogue {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(f app.HotelForm) {
			defer wg.Done()
			defer sem.Release(1)

			ok, err := seed.SeedHotel(ctx, cfg.SeedToken, f)
			switch {
			case err != nil:
				log.Warn().Str("name", f.Name).Err(err).Msg("seed failed")
			case ok:
				created.Add(1)
				log.Info().Str("name", f.Name).Msg("seed ok")
			default:
				skipped.Add(1)
				log.Info().Str("name", f.Name).Msg("already present")
			}
		}(f)
	}

	wg.Wait()
	log.Info().Int64("created", created.Load()).Int64("skipped", skipped.Load()).Msg("seeding completed")
}
