package worker

import "time"

// Log messages - worker pool
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgPoolStopped     = "Worker pool stopped, job dropped"
)

// Log messages - streak reminder worker
const (
	LogMsgStreakReminderStandby   = "Streak reminder standby"
	LogMsgStreakReminderApproach  = "Streak reminder scheduled"
	LogMsgStreakReminderStarting  = "Streak reminder run starting"
	LogMsgStreakReminderCompleted = "Streak reminder run completed"
	LogMsgStreakReminderFailed    = "Streak reminder run failed"
	LogMsgStreakReminderShutdown  = "Shutting down streak reminder worker"
	LogMsgStreakReminderCancelled = "Cancelled pending streak reminder"
	LogMsgStreakReminderDone      = "Streak reminder worker shutdown complete"
	LogMsgStreakReminderTimeout   = "Streak reminder worker shutdown timeout, a run may still be in flight"
)

// Scheduling
const (
	// StandbyThreshold switches from the long-range timer to the final approach
	StandbyThreshold = time.Hour
	// StandbyLead is how early the long-range timer wakes before the run
	StandbyLead = 45 * time.Minute
	// EarlyFireTolerance reschedules a timer that fired this much too early
	EarlyFireTolerance = 10 * time.Second
)

// Reminder pool sizing
const (
	DefaultReminderWorkers   = 4
	DefaultReminderQueueSize = 256
)
