// Package api exposes the sync triggers and leaderboard reads over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"gramboard/service"
)

// NewServer creates and configures the HTTP router
func NewServer(syncSvc service.SyncService, boardSvc service.LeaderboardService, nextRun service.NextRunQuerier, highEngagementDefault float64) *chi.Mux {
	routes := &Routes{
		syncService:             syncSvc,
		leaderboardService:      boardSvc,
		nextRun:                 nextRun,
		highEngagementThreshold: highEngagementDefault,
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware)

	r.Get("/health", routes.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/sync", routes.handleSyncAll)
		r.Post("/scrape", routes.handleScrape)
		r.Get("/sync/next", routes.handleNextRun)

		r.Get("/leaderboard", routes.handleLeaderboard)
		r.Get("/stats", routes.handleStats)
		r.Get("/top", routes.handleTop)
		r.Get("/high-engagement", routes.handleHighEngagement)

		r.Get("/profiles", routes.handleListProfiles)
		r.Get("/profiles/{username}", routes.handleGetProfile)
		r.Post("/profiles/{username}/sync", routes.handleSyncProfile)
	})

	return r
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		log.Debugf("HTTP %s %s %d %s %s",
			r.Method,
			r.URL.Path,
			ww.Status(),
			time.Since(start),
			middleware.GetReqID(r.Context()),
		)
	})
}
