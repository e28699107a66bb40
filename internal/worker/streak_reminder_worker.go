package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rishav-026/Gamified-Coding-platform/internal/clock"
	"github.com/rishav-026/Gamified-Coding-platform/internal/event"
	"github.com/rishav-026/Gamified-Coding-platform/internal/logger"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
)

// StreakReminderWorker publishes a streak.at_risk event once a day for every user
// whose last activity was the previous UTC day
type StreakReminderWorker struct {
	progress  repository.Progress
	publisher event.Publisher
	clock     clock.Clock
	hour      int
	pool      *Pool

	timer    *time.Timer
	shutdown chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
}

// NewStreakReminderWorker creates a worker that runs daily at hour:00 UTC
func NewStreakReminderWorker(progress repository.Progress, publisher event.Publisher, clk clock.Clock, hour int) *StreakReminderWorker {
	if hour < 0 || hour > 23 {
		hour = 0
	}
	return &StreakReminderWorker{
		progress:  progress,
		publisher: publisher,
		clock:     clk,
		hour:      hour,
		pool:      NewPool(DefaultReminderWorkers, DefaultReminderQueueSize),
		shutdown:  make(chan struct{}),
	}
}

// Start launches the publishing pool and schedules the first run
func (w *StreakReminderWorker) Start() {
	w.pool.Start()
	w.scheduleNext()
}

func (w *StreakReminderWorker) scheduleNext() {
	duration := timeUntilNextRun(w.clock.Now(), w.hour)
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.shutdown:
		return
	default:
	}
	if w.timer != nil {
		w.timer.Stop()
	}

	// Two-stage scheduling so a long timer that drifts cannot fire the run early
	if duration > StandbyThreshold {
		wait := duration - StandbyLead
		w.timer = time.AfterFunc(wait, w.scheduleNext)
		log.Info(LogMsgStreakReminderStandby, "next_check_at", w.clock.Now().UTC().Add(wait))
		return
	}

	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		rem := timeUntilNextRun(w.clock.Now(), w.hour)
		if rem > EarlyFireTolerance && rem < 23*time.Hour {
			w.scheduleNext()
			return
		}

		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			if _, err := w.RunOnce(context.Background()); err != nil {
				logger.FromContext(context.Background()).Error(LogMsgStreakReminderFailed, "error", err)
			}
		}()
		w.scheduleNext()
	})
	log.Info(LogMsgStreakReminderApproach, "next_run_at", w.clock.Now().UTC().Add(duration))
}

// RunOnce queues a reminder for each at-risk streak and returns how many were queued
func (w *StreakReminderWorker) RunOnce(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	now := w.clock.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	log.Info(LogMsgStreakReminderStarting, "from", yesterday, "to", today)
	atRisk, err := w.progress.ListStreaksAtRisk(ctx, yesterday, today)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, p := range atRisk {
		evt := event.NewStreakAtRiskEvent(p.UserID, p.CurrentStreak, now)
		ok := w.pool.Enqueue(JobFunc(func(ctx context.Context) error {
			w.publisher.PublishWithRetry(ctx, evt)
			return nil
		}))
		if !ok {
			break
		}
		queued++
	}

	log.Info(LogMsgStreakReminderCompleted, "reminders", queued)
	return queued, nil
}

// Shutdown cancels the pending timer, waits for an in-flight run and drains the pool
func (w *StreakReminderWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgStreakReminderShutdown)

	w.mu.Lock()
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}
	if w.timer != nil {
		w.timer.Stop()
		log.Info(LogMsgStreakReminderCancelled)
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		w.pool.Stop()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgStreakReminderDone)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgStreakReminderTimeout)
		return ctx.Err()
	}
}

// timeUntilNextRun is the duration from now to the next hour:00 UTC
func timeUntilNextRun(now time.Time, hour int) time.Duration {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
