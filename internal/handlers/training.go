package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"formacao-backend/internal/models"
	"formacao-backend/internal/services"
)

type TrainingHandler struct {
	contentService    *services.ContentService
	transcriptService *services.TranscriptService
}

func NewTrainingHandler(contentService *services.ContentService, transcriptService *services.TranscriptService) *TrainingHandler {
	return &TrainingHandler{contentService: contentService, transcriptService: transcriptService}
}

func (h *TrainingHandler) ListByBrand(w http.ResponseWriter, r *http.Request) {
	brandID, err := uuid.Parse(r.URL.Query().Get("brand_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "brand_id query parameter is required", r))
		return
	}

	trainings, err := h.contentService.ListTrainings(r.Context(), brandID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if trainings == nil {
		trainings = []*models.Training{}
	}
	writeJSON(w, http.StatusOK, trainings)
}

func (h *TrainingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid training id", r))
		return
	}

	training, err := h.contentService.GetTraining(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, training)
}

func (h *TrainingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.SaveTrainingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	training, err := h.contentService.CreateTraining(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, training)
}

func (h *TrainingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid training id", r))
		return
	}

	var req models.SaveTrainingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	training, err := h.contentService.UpdateTraining(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, training)
}

func (h *TrainingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid training id", r))
		return
	}

	if err := h.contentService.DeleteTraining(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Training deleted"})
}

// ExtractTranscript pulls transcript text from the training's media and
// stores it for quiz generation. Admin-only; may take a while for long
// videos.
func (h *TrainingHandler) ExtractTranscript(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid training id", r))
		return
	}

	resp, err := h.transcriptService.ExtractTranscript(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
