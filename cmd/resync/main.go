// resync recomputes every hotel's derived fields (price_per_night,
// rooms_available, rating) straight from the room-type and review rows.
// Useful after bulk imports or manual fixes that bypassed the API.
package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"stayinn/internal/adapters/observability"
	"stayinn/internal/shared"
	mysqlrepo "stayinn/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().Int("workers", cfg.ResyncWorkers).Msg("resync starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	repo := mysqlrepo.New(db)

	ids, err := repo.ListHotelIDs(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listing hotel ids failed")
	}

	sem := semaphore.NewWeighted(int64(cfg.ResyncWorkers))
	var wg sync.WaitGroup

	for _, id := range ids {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(hotelID int64) {
			defer wg.Done()
			defer sem.Release(1)

			if err := repo.SyncHotelAggregates(ctx, hotelID); err != nil {
				observability.ObserveAggregateSync("room_types", "error")
				log.Warn().Int64("hotel_id", hotelID).Err(err).Msg("aggregate resync failed")
				return
			}
			if err := repo.SyncHotelRating(ctx, hotelID); err != nil {
				observability.ObserveAggregateSync("rating", "error")
				log.Warn().Int64("hotel_id", hotelID).Err(err).Msg("rating resync failed")
				return
			}
			log.Info().Int64("hotel_id", hotelID).Msg("resync ok")
		}(id)
	}

	wg.Wait()
	log.Info().Int("hotels", len(ids)).Msg("resync completed")
}
