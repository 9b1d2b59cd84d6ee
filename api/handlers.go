package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"gramboard/scraper"
	"gramboard/service"
)

// Routes holds the handler dependencies
type Routes struct {
	syncService             service.SyncService
	leaderboardService      service.LeaderboardService
	nextRun                 service.NextRunQuerier
	highEngagementThreshold float64
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// NextRunResponse represents the next scheduled sync run
type NextRunResponse struct {
	Scheduled bool       `json:"scheduled"`
	NextRun   *time.Time `json:"next_run,omitempty"`
}

func (rt *Routes) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Routes) handleSyncAll(w http.ResponseWriter, r *http.Request) {
	report, err := rt.syncService.SyncAll(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrSyncInProgress) {
			writeError(w, http.StatusConflict, "a sync run is already in progress")
			return
		}
		log.Errorf("Manual sync failed: %v", err)
		writeError(w, http.StatusInternalServerError, "sync failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (rt *Routes) handleScrape(w http.ResponseWriter, r *http.Request) {
	err := rt.syncService.RunScraper(r.Context())
	if err != nil {
		if errors.Is(err, scraper.ErrScraperBusy) {
			writeError(w, http.StatusConflict, "scraper is already running")
			return
		}
		var procErr *scraper.ProcessError
		if errors.As(err, &procErr) {
			log.Errorf("Manual scrape failed: %v", procErr)
			writeError(w, http.StatusBadGateway, procErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

func (rt *Routes) handleSyncProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := rt.syncService.SyncProfile(r.Context(), username); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "synced", "username": username})
}

func (rt *Routes) handleNextRun(w http.ResponseWriter, _ *http.Request) {
	next, ok := rt.nextRun.NextRun()

	resp := NextRunResponse{Scheduled: ok}
	if ok {
		resp.NextRun = &next
	}

	writeJSON(w, http.StatusOK, resp)
}

func (rt *Routes) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := rt.leaderboardService.GetLeaderboard(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, board)
}

func (rt *Routes) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := rt.leaderboardService.GetSummaryStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (rt *Routes) handleTop(w http.ResponseWriter, r *http.Request) {
	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = service.MetricFollowers
	}

	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	top, err := rt.leaderboardService.GetTopProfiles(r.Context(), metric, limit)
	if err != nil {
		if errors.Is(err, service.ErrUnknownMetric) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, top)
}

func (rt *Routes) handleHighEngagement(w http.ResponseWriter, r *http.Request) {
	min := rt.highEngagementThreshold
	if raw := r.URL.Query().Get("min"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "min must be a non-negative number")
			return
		}
		min = parsed
	}

	profiles, err := rt.leaderboardService.GetHighEngagement(r.Context(), min)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}

func (rt *Routes) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := rt.leaderboardService.GetAllProfiles(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}

func (rt *Routes) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	profile, err := rt.leaderboardService.GetProfile(r.Context(), username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
