package main

import (
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/goldjoker92/vigiApp-sub000/config"
	"github.com/goldjoker92/vigiApp-sub000/cronjobs"
	"github.com/goldjoker92/vigiApp-sub000/db"
	"github.com/goldjoker92/vigiApp-sub000/dedup"
	"github.com/goldjoker92/vigiApp-sub000/geoquery"
	"github.com/goldjoker92/vigiApp-sub000/guardrail"
	"github.com/goldjoker92/vigiApp-sub000/logging"
	"github.com/goldjoker92/vigiApp-sub000/remoteconfig"
	"github.com/goldjoker92/vigiApp-sub000/routes"
	"github.com/goldjoker92/vigiApp-sub000/strikes"
	"github.com/goldjoker92/vigiApp-sub000/summarization"
)

// engineStore is everything the engine needs from the document store.
type engineStore interface {
	dedup.Store
	geoquery.Reader
	cronjobs.Sweeper
	summarization.IncidentSource
}

func main() {
	cfg := config.Load()
	log := logging.L()
	defer logging.Sync()

	// Document store: Firestore in deployment, in-memory without credentials
	// (local dev and CI).
	var (
		store engineStore
		rules remoteconfig.Provider
	)
	if os.Getenv("FIREBASE_CREDENTIALS") != "" {
		firestoreClient, err := db.InitFirestore()
		if err != nil {
			log.Fatalw("failed to initialize Firestore", "err", err)
		}
		defer db.CloseFirestore()
		store = db.NewFirestoreStore(firestoreClient)
		rules = remoteconfig.NewFirestoreProvider(firestoreClient, cfg.Guardrail.CacheTTL, cfg.Guardrail.FetchTimeout)
	} else {
		log.Warn("FIREBASE_CREDENTIALS not set, using in-memory store")
		store = db.NewMemoryStore()
		rules = remoteconfig.Static{}
	}

	// Strike/block state: Redis when configured, otherwise single-instance
	// process memory.
	policy := strikes.Policy{
		Limit:         cfg.Strikes.Limit,
		Window:        cfg.Strikes.Window,
		BlockDuration: cfg.Strikes.BlockDuration,
	}
	var strikeStore strikes.Store
	if cfg.Redis.Addr != "" {
		strikeStore = strikes.NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}), policy)
	} else {
		log.Warn("REDIS_ADDR not set, strike state is process-local")
		strikeStore = strikes.NewMemoryStore(policy)
	}

	guard := guardrail.New(rules, strikeStore)
	dedupSvc := dedup.NewService(store, guard, dedup.Config{
		WindowMinutes: cfg.Dedup.WindowMinutes,
		GridKm:        cfg.Dedup.GridKm,
		TTLDays:       cfg.Dedup.TTLDays,
	})
	querySvc := geoquery.NewService(store)

	scheduler := cronjobs.InitCronJobs(cfg, rules, store, store)
	defer scheduler.Stop()

	r := routes.SetupRouter(cfg, dedupSvc, querySvc)
	log.Infow("listening", "port", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalw("failed to start server", "err", err)
	}
}
