package run

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vertekal/msrsync/pkg/adapters"
	"github.com/vertekal/msrsync/pkg/models/api"
	"github.com/vertekal/msrsync/pkg/models/domain"
	"github.com/vertekal/msrsync/pkg/services/msr"
	"github.com/vertekal/msrsync/pkg/services/timesheet"
)

// Updater performs monthly report update runs. *msr.Orchestrator satisfies it.
type Updater interface {
	Run(ctx context.Context, req msr.RunRequest) (*domain.RunResult, error)
}

type Handler struct {
	updater  Updater
	registry msr.Registry
	source   timesheet.Source
	aggOpts  timesheet.Options
}

func NewHandler(updater Updater, registry msr.Registry, source timesheet.Source, aggOpts timesheet.Options) *Handler {
	return &Handler{
		updater:  updater,
		registry: registry,
		source:   source,
		aggOpts:  aggOpts,
	}
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	response := make([]api.ReportDefinition, 0)
	for _, id := range h.registry.ListReports() {
		def, err := h.registry.Get(id)
		if err != nil {
			continue
		}
		sheets := make([]string, 0, len(def.Sheets))
		for _, s := range def.Sheets {
			sheets = append(sheets, s.Name)
		}
		response = append(response, api.ReportDefinition{
			Id:       def.ID,
			Sheets:   sheets,
			Patterns: def.FilePatterns,
		})
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode report definitions")
	}
}

func (h *Handler) GetPeriodHours(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	raw := chi.URLParam(r, "period")

	period, err := domain.ParsePeriod(raw)
	if err != nil {
		http.Error(w, "invalid period format. Expected format: Jan-06", http.StatusBadRequest)
		return
	}

	entries, err := h.source.FetchMonth(ctx, period)
	if err != nil {
		logger.Error().
			Err(err).
			Str("period", period.Display()).
			Msg("failed to fetch timesheets")
		http.Error(w, "failed to fetch timesheet data", http.StatusBadGateway)
		return
	}
	hours := timesheet.Aggregate(entries, h.aggOpts)

	err = json.NewEncoder(w).Encode(adapters.MapPeriodHoursDomainToApi(period, hours))
	if err != nil {
		logger.Error().
			Err(err).
			Str("period", period.Display()).
			Msg("failed to encode period hours")
	}
}

func (h *Handler) CreateRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	period, err := domain.ParsePeriod(req.Period)
	if err != nil {
		http.Error(w, "invalid period format. Expected format: Jan-06", http.StatusBadRequest)
		return
	}
	for _, id := range req.Reports {
		if _, err := h.registry.Get(id); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	result, err := h.updater.Run(ctx, msr.RunRequest{
		Period:  period,
		Reports: req.Reports,
		Files:   req.Files,
		DryRun:  req.DryRun,
	})
	if err != nil {
		logger.Error().
			Err(err).
			Str("period", period.Display()).
			Msg("update run failed")
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrReportNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	response := adapters.MapRunResultDomainToApi(*result)
	response.RunId = uuid.NewString()

	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		logger.Error().
			Err(err).
			Str("run_id", response.RunId).
			Msg("failed to encode run result")
	}
}
