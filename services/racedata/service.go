package racedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"racelog-backend/lib/scrapers/racefacer"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("racelog.services.racedata")

const (
	BackendStatic   = "static"
	BackendRendered = "rendered"
)

type Config struct {
	// "static" or "rendered", defaults to "static"
	Backend string `json:"backend"`
	BaseUrl string `json:"base_url"`
	// rendered backend only
	NavigationTimeoutSeconds int `json:"navigation_timeout_seconds"`
	SessionDelaySeconds      int `json:"session_delay_seconds"`
}

type Service struct {
	config Config
}

func NewService(config Config) Service {
	return Service{config: config}
}

func (s Service) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /race-data/{username}", s.handleRaceData)
	mux.HandleFunc("GET /health", s.handleHealth)
}

// sources hold browser state in the rendered case, so each request
// gets a fresh one and tears it down when the request ends
func (s Service) newSource() (racefacer.Source, error) {
	switch s.config.Backend {
	case BackendRendered:
		return racefacer.NewRenderedSource(racefacer.RenderedSourceOptions{
			BaseUrl:           s.config.BaseUrl,
			NavigationTimeout: time.Duration(s.config.NavigationTimeoutSeconds) * time.Second,
			SessionDelay:      time.Duration(s.config.SessionDelaySeconds) * time.Second,
		})
	case BackendStatic, "":
		return racefacer.NewStaticSource(racefacer.StaticSourceOptions{
			BaseUrl: s.config.BaseUrl,
		})
	default:
		return nil, fmt.Errorf("unknown backend %q", s.config.Backend)
	}
}

func (s Service) handleRaceData(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleRaceData")
	defer span.End()

	username := r.PathValue("username")
	slog.InfoContext(ctx, "received race data request", "username", username)

	source, err := s.newSource()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create page source")
		writeError(ctx, w, http.StatusInternalServerError, err)
		return
	}
	defer source.Close(ctx)

	result, err := racefacer.ExtractRaceData(ctx, source, username)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extraction failed")

		if errors.Is(err, racefacer.ErrProfileNotFound) {
			writeError(ctx, w, http.StatusNotFound, err)
			return
		}
		writeError(ctx, w, http.StatusInternalServerError, err)
		return
	}

	writeJson(ctx, w, http.StatusOK, result)
}

func (s Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJson(r.Context(), w, http.StatusOK, map[string]string{"status": "healthy"})
}

type errorBody struct {
	Detail string `json:"detail"`
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	slog.ErrorContext(ctx, "request failed", "status", status, "err", err)
	writeJson(ctx, w, status, errorBody{Detail: err.Error()})
}

func writeJson(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.ErrorContext(ctx, "failed to write response body", "err", err)
	}
}
