package bootstrap

import (
	"context"
	"log/slog"

	"github.com/rishav-026/Gamified-Coding-platform/internal/event"
	"github.com/rishav-026/Gamified-Coding-platform/internal/server"
	"github.com/rishav-026/Gamified-Coding-platform/internal/sse"
	"github.com/rishav-026/Gamified-Coding-platform/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	ReminderWorker     *worker.StreakReminderWorker
	Hub                *sse.Hub
	CloseDiscord       func() error
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops components in order:
// 1. HTTP server (stop accepting new requests)
// 2. Streak reminder worker
// 3. SSE hub and the Discord session
// 4. Event publisher (flush pending retries)
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.ReminderWorker != nil {
		if err := components.ReminderWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgReminderWorkerFailed, "error", err)
		}
	}

	if components.Hub != nil {
		components.Hub.Stop()
	}

	if components.CloseDiscord != nil {
		if err := components.CloseDiscord(); err != nil {
			slog.Error(LogMsgDiscordCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgShuttingDownEventPublisher)
	if components.ResilientPublisher != nil {
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
