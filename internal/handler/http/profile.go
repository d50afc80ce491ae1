package http

import (
	"net/http"

	"github.com/stocktree/stocktree-auth/internal/logger"
	"github.com/stocktree/stocktree-auth/internal/utils"
)

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	profile, err := h.services.AuthService.GetMe(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getMe").Msg("error getting profile")
		http.Error(w, "error getting profile", statusFromError(err))
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}
