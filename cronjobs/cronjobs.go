package cronjobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sashabaranov/go-openai"

	"github.com/goldjoker92/vigiApp-sub000/config"
	"github.com/goldjoker92/vigiApp-sub000/logging"
	"github.com/goldjoker92/vigiApp-sub000/remoteconfig"
	"github.com/goldjoker92/vigiApp-sub000/summarization"
)

// Sweeper removes the read-side traces of expired incidents.
type Sweeper interface {
	SweepExpiredFootprints(ctx context.Context, now time.Time) (int, error)
}

// InitCronJobs schedules the periodic maintenance work: guardrail config
// refresh, hot-incident digests and the expired-footprint sweep. Returns the
// started cron so the caller can Stop it on shutdown.
func InitCronJobs(cfg *config.Config, rules remoteconfig.Provider, source summarization.IncidentSource, sweeper Sweeper) *cron.Cron {
	logging.L().Info("starting cron jobs")
	c := cron.New()

	// Guardrail rules: force a refetch every 10 minutes, matching the cache
	// TTL, so a quiet instance still picks up new aliases.
	_, err := c.AddFunc("*/10 * * * *", func() {
		rules.Invalidate()
		rules.Rules(context.Background())
	})
	if err != nil {
		logging.L().Errorw("error scheduling config refresh", "err", err)
	}

	// Hot-incident digests: hourly, only when an OpenAI key is configured.
	if cfg.Digest.OpenAIKey != "" {
		client := openai.NewClient(cfg.Digest.OpenAIKey)
		_, err = c.AddFunc("15 * * * *", func() {
			runID := uuid.NewString()
			logging.L().Infow("cronjob: incident digests running", "run", runID)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			since := time.Now().Add(-cfg.Digest.LookbackWindow)
			if err := summarization.GenerateDigests(ctx, source, client, since, cfg.Digest.MinReports); err != nil {
				logging.L().Warnw("digest job failed", "run", runID, "err", err)
			}
		})
		if err != nil {
			logging.L().Errorw("error scheduling digest job", "err", err)
		}
	}

	// Footprint sweep: daily at 03:30.
	_, err = c.AddFunc("30 3 * * *", func() {
		runID := uuid.NewString()
		logging.L().Infow("cronjob: footprint sweep running", "run", runID)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		deleted, err := sweeper.SweepExpiredFootprints(ctx, time.Now())
		if err != nil {
			logging.L().Warnw("footprint sweep failed", "run", runID, "err", err)
			return
		}
		logging.L().Infow("footprint sweep done", "run", runID, "deleted", deleted)
	})
	if err != nil {
		logging.L().Errorw("error scheduling footprint sweep", "err", err)
	}

	c.Start()
	return c
}
