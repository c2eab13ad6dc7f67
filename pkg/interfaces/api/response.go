package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/vsinha/planboard/pkg/application/services/ingest"
	"github.com/vsinha/planboard/pkg/application/services/insights"
	"github.com/vsinha/planboard/pkg/application/services/kpi"
	"github.com/vsinha/planboard/pkg/application/services/orchestration"
	"github.com/vsinha/planboard/pkg/application/services/planning"
	"github.com/vsinha/planboard/pkg/domain/entities"
	"github.com/vsinha/planboard/pkg/domain/repositories"
	"github.com/vsinha/planboard/pkg/infrastructure/repositories/snapshot"
)

// APIResponse is the envelope of every JSON response. Status is 0 on
// success and the HTTP status code otherwise.
type APIResponse struct {
	Status int         `json:"status"`
	Msg    string      `json:"msg"`
	Data   interface{} `json:"data,omitempty"`
}

func SuccessResponse(msg string, data interface{}) *APIResponse {
	return &APIResponse{Status: 0, Msg: msg, Data: data}
}

func ErrorResponse(status int, msg string) *APIResponse {
	return &APIResponse{Status: status, Msg: msg}
}

// StatusFor maps service errors to HTTP status codes
func StatusFor(err error) int {
	switch {
	case errors.Is(err, orchestration.ErrUploadRequired),
		errors.Is(err, ingest.ErrInvalidFile),
		errors.Is(err, ingest.ErrEmptyUpload),
		errors.Is(err, snapshot.ErrUnsupportedFormat),
		errors.Is(err, entities.ErrUnknownSnapshotKind),
		errors.Is(err, kpi.ErrNoValidMaterials),
		errors.Is(err, planning.ErrMaterialRequired):
		return http.StatusBadRequest
	case errors.Is(err, planning.ErrMaterialNotFound),
		errors.Is(err, insights.ErrNoCapacityData),
		errors.Is(err, repositories.ErrSnapshotNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		msg = "internal server error"
	}
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse(status, msg))
}
