package handler

import (
	"github.com/stocktree/stocktree-auth/internal/config"
	"github.com/stocktree/stocktree-auth/internal/handler/http"
	"github.com/stocktree/stocktree-auth/internal/logger"
	"github.com/stocktree/stocktree-auth/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
