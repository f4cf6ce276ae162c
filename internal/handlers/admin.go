package handlers

import (
	"encoding/json"
	"net/http"

	"formacao-backend/internal/models"
	"formacao-backend/internal/services"
)

type AdminHandler struct {
	authService *services.AuthService
}

func NewAdminHandler(authService *services.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

// SetAdminClaim grants or revokes the admin role for a user by email.
// The new claim only lands in tokens issued after the next sign-in.
func (h *AdminHandler) SetAdminClaim(w http.ResponseWriter, r *http.Request) {
	var req models.SetAdminClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	resp, err := h.authService.SetAdminClaim(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
