package jobs

import (
	"context"
	"sync/atomic"
	"time"

	"healthtrack/config"
	"healthtrack/utils"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	userConcurrency = 4
	jobTimeout      = 10 * time.Minute
)

type UserLister interface {
	UserIDs(ctx context.Context) ([]uint, error)
}

type WeeklyInsights interface {
	WeeklyAndMail(ctx context.Context, userID uint, end string) error
}

type DailyDigest interface {
	Digest(ctx context.Context, userID uint, day string) error
}

type Deps struct {
	Users    UserLister
	Insights WeeklyInsights
	Digest   DailyDigest
	Log      *zap.Logger
}

// Start registers the weekly insights job (Sunday) and the evening warning
// digest, then starts the scheduler. Callers own Shutdown.
func Start(cfg config.SchedulerConfig, d Deps) (gocron.Scheduler, error) {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Sunday), gocron.NewAtTimes(gocron.NewAtTime(cfg.InsightsHour, 0, 0))),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			RunWeeklyInsights(ctx, d)
		}),
		gocron.WithName("weekly-insights"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(cfg.DigestHour, 0, 0))),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			RunDailyDigest(ctx, d)
		}),
		gocron.WithName("daily-digest"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	d.Log.Info("scheduler started",
		zap.Uint("insights_hour", cfg.InsightsHour),
		zap.Uint("digest_hour", cfg.DigestHour))
	return s, nil
}

// RunWeeklyInsights returns how many users were processed successfully.
func RunWeeklyInsights(ctx context.Context, d Deps) int {
	today := utils.Today()
	return forEachUser(ctx, d, "weekly-insights", func(ctx context.Context, userID uint) error {
		return d.Insights.WeeklyAndMail(ctx, userID, today)
	})
}

func RunDailyDigest(ctx context.Context, d Deps) int {
	today := utils.Today()
	return forEachUser(ctx, d, "daily-digest", func(ctx context.Context, userID uint) error {
		return d.Digest.Digest(ctx, userID, today)
	})
}

// forEachUser runs fn for every user with bounded concurrency. A failing
// user is logged and does not stop the others.
func forEachUser(ctx context.Context, d Deps, job string, fn func(context.Context, uint) error) int {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	ids, err := d.Users.UserIDs(ctx)
	if err != nil {
		log.Error("list users failed", zap.String("job", job), zap.Error(err))
		return 0
	}

	var ok atomic.Int64
	var g errgroup.Group
	g.SetLimit(userConcurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if err := fn(ctx, id); err != nil {
				log.Warn("job failed for user", zap.String("job", job), zap.Uint("user_id", id), zap.Error(err))
				return nil
			}
			ok.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	log.Info("job finished", zap.String("job", job), zap.Int("users", len(ids)), zap.Int64("succeeded", ok.Load()))
	return int(ok.Load())
}
