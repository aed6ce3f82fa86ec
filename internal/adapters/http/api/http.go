// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	service "github.com/lagiland/scoreboard/internal/app"
	"github.com/lagiland/scoreboard/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Submit scores a contestant and persists the result.
	Submit(ctx context.Context, sub service.Submission) (model.Contestant, error)

	// Contestants returns the (optionally filtered) list, most recent
	// first. The boolean reports whether the data is stale.
	Contestants(ctx context.Context, query string) ([]model.Contestant, bool)

	// Delete removes one contestant by id.
	Delete(ctx context.Context, id string) error

	// Stats summarizes the contest for the dashboard.
	Stats(ctx context.Context) service.Stats

	// ExportCSV streams the contestant list as CSV rows.
	ExportCSV(ctx context.Context, w io.Writer) error

	// ExportFilename is the suggested download name for CSV exports.
	ExportFilename() string
}

// Server wires HTTP routes for the scoring API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	contestantsHandler *ContestantsHandler
	exportHandler      *ExportHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(deps),
		contestantsHandler: NewContestantsHandler(deps),
		exportHandler:      NewExportHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/contestants/export", MetricsMiddleware(s.exportHandler.HandleExport, "export"))
	mux.HandleFunc("/contestants/", MetricsMiddleware(s.contestantsHandler.HandleContestantByID, "contestant"))
	mux.HandleFunc("/contestants", MetricsMiddleware(s.contestantsHandler.HandleContestants, "contestants"))
}

// submissionRequest mirrors the judging form for POST /contestants.
type submissionRequest struct {
	Name      string               `json:"name"       validate:"required"`
	EntryCode string               `json:"entry_code" validate:"required"`
	Category  model.Category       `json:"category"   validate:"required"`
	General   model.GeneralScores  `json:"general"`
	Specific  model.SpecificScores `json:"specific"`
	Social    socialCountsRequest  `json:"social"`
}

type socialCountsRequest struct {
	LikeCount    int `json:"like_count"    validate:"gte=0"`
	ShareCount   int `json:"share_count"   validate:"gte=0"`
	CommentCount int `json:"comment_count" validate:"gte=0"`
}

var validate = validator.New()

func (r submissionRequest) validate() error {
	return validate.Struct(r)
}

func (r submissionRequest) toSubmission() service.Submission {
	return service.Submission{
		Name:      r.Name,
		EntryCode: r.EntryCode,
		Category:  r.Category,
		General:   r.General,
		Specific:  r.Specific,
		Likes:     r.Social.LikeCount,
		Shares:    r.Social.ShareCount,
		Comments:  r.Social.CommentCount,
	}
}

// listResponse carries the contestant list plus a staleness marker so the
// dashboard can surface degraded reads without blanking out.
type listResponse struct {
	Contestants []model.Contestant `json:"contestants"`
	Stale       bool               `json:"stale"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
