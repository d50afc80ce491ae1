package http

import (
	"encoding/json"
	"net/http"

	"github.com/stocktree/stocktree-auth/internal/logger"
	"github.com/stocktree/stocktree-auth/internal/utils"
	"github.com/stocktree/stocktree-auth/models"
)

func (h *Handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.verifyOTP").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	profile, err := h.services.AuthService.VerifyOTP(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.verifyOTP").Msg("error verifying code")
		http.Error(w, "error verifying code", statusFromError(err))
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) resendOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ResendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.resendOTP").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.AuthService.ResendOTP(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.resendOTP").Msg("error resending code")
		http.Error(w, "error resending code", statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}
