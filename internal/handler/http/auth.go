package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/stocktree/stocktree-auth/internal/logger"
	"github.com/stocktree/stocktree-auth/internal/utils"
	"github.com/stocktree/stocktree-auth/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("error registering user")
		http.Error(w, "error registering user", statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.AuthService.Login(ctx, req, tracingFromRequest(r))
	if err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("error logging user in")
		http.Error(w, "error logging user in", statusFromError(err))
		return
	}

	w.Header().Set("Authorization", "Bearer "+result.AccessToken.Token)
	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.AuthService.Logout(ctx, userID); err != nil {
		log.Err(err).Str("func", "*Handler.logout").Msg("error logging user out")
		http.Error(w, "error logging user out", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.refresh").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.AuthService.RefreshAccessToken(ctx, req.RefreshToken, tracingFromRequest(r))
	if err != nil {
		log.Err(err).Str("func", "*Handler.refresh").Msg("error refreshing access token")
		http.Error(w, "error refreshing access token", statusFromError(err))
		return
	}

	w.Header().Set("Authorization", "Bearer "+result.AccessToken.Token)
	utils.WriteJSON(w, result, http.StatusOK)
}

// tracingFromRequest collects the client fingerprint recorded alongside
// refresh tokens. The remote address loses its port; proxy headers win over
// the raw connection address.
func tracingFromRequest(r *http.Request) models.Tracing {
	ip := r.Header.Get("X-Real-IP")
	if ip == "" {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			ip = strings.TrimSpace(strings.Split(forwarded, ",")[0])
		}
	}
	if ip == "" {
		ip = r.RemoteAddr
		if idx := strings.LastIndex(ip, ":"); idx != -1 {
			ip = ip[:idx]
		}
	}

	return models.Tracing{
		IPAddress:  ip,
		UserAgent:  r.UserAgent(),
		MacAddress: r.Header.Get("X-Mac-Address"),
	}
}
