package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"formacao-backend/internal/middleware"
	"formacao-backend/internal/models"
	"formacao-backend/internal/services"
)

type ProgressHandler struct {
	progressService *services.ProgressService
}

func NewProgressHandler(progressService *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

func (h *ProgressHandler) MarkWatched(w http.ResponseWriter, r *http.Request) {
	trainingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid training id", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.progressService.MarkWatched(r.Context(), userID, trainingID); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"watched": true})
}

func (h *ProgressHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	records, err := h.progressService.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if records == nil {
		records = []models.ProgressWithStatus{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *ProgressHandler) GetForTraining(w http.ResponseWriter, r *http.Request) {
	trainingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid training id", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	record, err := h.progressService.GetForTraining(r.Context(), userID, trainingID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}
