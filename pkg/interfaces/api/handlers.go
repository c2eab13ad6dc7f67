package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/vsinha/planboard/pkg/domain/entities"
)

// HealthResponse is the payload of /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, SuccessResponse("ok", HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Service:   "planboard",
	}))
}

func (s *Server) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.orchestrator.DashboardSummary(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.JSON(w, r, SuccessResponse("dashboard summary", summary))
}

func (s *Server) DashboardInsights(w http.ResponseWriter, r *http.Request) {
	report, err := s.orchestrator.Insights(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.JSON(w, r, SuccessResponse("dashboard insights", report))
}

func (s *Server) CapacityInsights(w http.ResponseWriter, r *http.Request) {
	report, err := s.orchestrator.CapacityReport(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.JSON(w, r, SuccessResponse("capacity insights", report))
}

// PlanningBoard serves /planning/board/{material}?horizon_weeks=N. Without
// horizon_weeks the configured default applies.
func (s *Server) PlanningBoard(w http.ResponseWriter, r *http.Request) {
	horizon := s.defaultHorizon
	if raw := r.URL.Query().Get("horizon_weeks"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse(http.StatusBadRequest, "horizon_weeks must be an integer"))
			return
		}
		horizon = n
	}

	material := entities.MaterialID(chi.URLParam(r, "material"))
	board, err := s.orchestrator.PlanningBoard(r.Context(), material, horizon)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.JSON(w, r, SuccessResponse("planning board", board))
}

// Upload stores the multipart field "file" as the snapshot of {kind}
func (s *Server) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			render.Status(r, http.StatusRequestEntityTooLarge)
			render.JSON(w, r, ErrorResponse(http.StatusRequestEntityTooLarge, "upload exceeds size limit"))
			return
		}
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse(http.StatusBadRequest, "expected a multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse(http.StatusBadRequest, `missing multipart field "file"`))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	kind := entities.SnapshotKind(chi.URLParam(r, "kind"))
	receipt, err := s.ingest.Upload(r.Context(), kind, header.Filename, data)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, SuccessResponse("snapshot stored", receipt))
}

func (s *Server) UploadHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.ingest.History(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.JSON(w, r, SuccessResponse("upload history", history))
}
