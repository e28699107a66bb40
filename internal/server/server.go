package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/rishav-026/Gamified-Coding-platform/internal/analytics"
	"github.com/rishav-026/Gamified-Coding-platform/internal/assistant"
	"github.com/rishav-026/Gamified-Coding-platform/internal/auth"
	"github.com/rishav-026/Gamified-Coding-platform/internal/contribution"
	"github.com/rishav-026/Gamified-Coding-platform/internal/database"
	"github.com/rishav-026/Gamified-Coding-platform/internal/gamification"
	"github.com/rishav-026/Gamified-Coding-platform/internal/handler"
	"github.com/rishav-026/Gamified-Coding-platform/internal/leaderboard"
	"github.com/rishav-026/Gamified-Coding-platform/internal/logger"
	"github.com/rishav-026/Gamified-Coding-platform/internal/metrics"
	"github.com/rishav-026/Gamified-Coding-platform/internal/notification"
	"github.com/rishav-026/Gamified-Coding-platform/internal/quest"
	"github.com/rishav-026/Gamified-Coding-platform/internal/sse"
	"github.com/rishav-026/Gamified-Coding-platform/internal/submission"
	"github.com/rishav-026/Gamified-Coding-platform/internal/tutorial"
	"github.com/rishav-026/Gamified-Coding-platform/internal/user"
)

// Options holds the transport settings
type Options struct {
	Port           int
	AdminAPIKey    string
	TrustedProxies []string
	CORSOrigins    []string
}

// Services are the domain services exposed over HTTP
type Services struct {
	Auth          auth.Service
	Users         user.Service
	Progression   gamification.Service
	Quests        quest.Service
	Tutorials     tutorial.Service
	Submissions   submission.Service
	Leaderboard   leaderboard.Service
	Notifications notification.Service
	Assistant     assistant.Service
	Analytics     analytics.Service
	Contributions contribution.Service
	Hub           *sse.Hub
}

type Server struct {
	httpServer *http.Server
	handler    http.Handler
}

// NewServer builds the router and the HTTP server
func NewServer(opts Options, dbPool database.Pool, svc Services) *Server {
	r := chi.NewRouter()

	// outermost first
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", HeaderAuthorization, "Content-Type", HeaderAPIKey},
		ExposedHeaders:   []string{HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           CORSMaxAge,
	}))
	r.Use(SecurityLoggingMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Unversioned
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	authHandler := handler.NewAuthHandler(svc.Auth)
	userHandler := handler.NewUserHandler(svc.Users, svc.Progression)
	progressionHandler := handler.NewProgressionHandler(svc.Progression)
	questHandler := handler.NewQuestHandler(svc.Quests)
	tutorialHandler := handler.NewTutorialHandler(svc.Tutorials)
	submissionHandler := handler.NewSubmissionHandler(svc.Submissions)
	leaderboardHandler := handler.NewLeaderboardHandler(svc.Leaderboard)
	notificationHandler := handler.NewNotificationHandler(svc.Notifications)
	assistantHandler := handler.NewAssistantHandler(svc.Assistant)
	analyticsHandler := handler.NewAnalyticsHandler(svc.Analytics)
	githubHandler := handler.NewGithubHandler(svc.Contributions)
	adminHandler := handler.NewAdminHandler(svc.Progression, svc.Users, svc.Leaderboard)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Get("/levels", progressionHandler.HandleGetLevels)
		r.Get("/badges", progressionHandler.HandleGetBadges)
		r.Get("/badges/{id}", progressionHandler.HandleGetBadge)

		r.Get("/quests", questHandler.HandleListQuests)
		r.Get("/quests/{id}", questHandler.HandleGetQuest)
		r.Get("/quests/category/{category}", questHandler.HandleListByCategory)
		r.Get("/tasks/{id}", questHandler.HandleGetTask)

		r.Get("/tutorials", tutorialHandler.HandleListTutorials)
		r.Get("/tutorials/{id}", tutorialHandler.HandleGetTutorial)
		r.Get("/tutorials/{id}/next", tutorialHandler.HandleGetNextTutorial)

		r.Get("/leaderboard", leaderboardHandler.HandleGetLeaderboard)
		r.Get("/leaderboard/user/{id}", leaderboardHandler.HandleGetUserRank)

		// Bearer routes
		r.Group(func(r chi.Router) {
			r.Use(BearerAuthMiddleware(svc.Auth, opts.TrustedProxies, detector))

			r.Route("/users/me", func(r chi.Router) {
				r.Get("/", userHandler.HandleGetMe)
				r.Put("/", userHandler.HandleUpdateMe)
				r.Get("/badges", userHandler.HandleGetMyBadges)
				r.Get("/level", userHandler.HandleGetMyLevel)
				r.Get("/streak", userHandler.HandleGetMyStreak)
				r.Post("/check-in", userHandler.HandleCheckIn)
			})

			r.Get("/quests/progress", questHandler.HandleListProgress)
			r.Get("/quests/stats", questHandler.HandleGetStats)
			r.Post("/quests/{id}/start", questHandler.HandleStartQuest)
			r.Get("/quests/{id}/progress", questHandler.HandleGetQuestProgress)
			r.Post("/quests/{id}/tasks/{taskID}/complete", questHandler.HandleCompleteTask)

			r.Get("/tutorials/progress", tutorialHandler.HandleGetProgress)
			r.Post("/tutorials/{id}/complete", tutorialHandler.HandleCompleteTutorial)

			r.Route("/submissions", func(r chi.Router) {
				r.Post("/", submissionHandler.HandleCreate)
				r.Get("/", submissionHandler.HandleList)
				r.Get("/{id}", submissionHandler.HandleGet)
				r.Post("/{id}/evaluate", submissionHandler.HandleEvaluate)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.HandleList)
				r.Get("/stream", sse.Handler(svc.Hub))
				r.Put("/{id}/read", notificationHandler.HandleMarkRead)
				r.Post("/read-all", notificationHandler.HandleMarkAllRead)
			})

			r.Route("/ai", func(r chi.Router) {
				r.Post("/chat", assistantHandler.HandleChat)
				r.Post("/explain-code", assistantHandler.HandleExplainCode)
				r.Post("/hint", assistantHandler.HandleHint)
				r.Post("/debug-code", assistantHandler.HandleDebugCode)
				r.Post("/learn-concept", assistantHandler.HandleLearnConcept)
				r.Post("/clear-history", assistantHandler.HandleClearHistory)
			})

			r.Get("/analytics/me", analyticsHandler.HandleGetSummary)
			r.Get("/analytics/me/progress", analyticsHandler.HandleGetDailyProgress)

			r.Route("/github", func(r chi.Router) {
				r.Get("/profile/{username}", githubHandler.HandleGetProfile)
				r.Post("/commits", githubHandler.HandleTrackCommits)
				r.Post("/pull-requests", githubHandler.HandleTrackPullRequests)
			})
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(APIKeyMiddleware(opts.AdminAPIKey, opts.TrustedProxies, detector))

			r.Post("/progression/award-xp", adminHandler.HandleAwardXP)
			r.Get("/cache/stats", adminHandler.HandleGetCacheStats)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		handler: r,
	}
}

// Handler exposes the router, used by tests
func (s *Server) Handler() http.Handler {
	return s.handler
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush keeps event streams working through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		for _, p := range QuietPaths {
			if strings.HasPrefix(r.URL.Path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
