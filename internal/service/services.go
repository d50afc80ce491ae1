package service

import (
	"github.com/stocktree/stocktree-auth/internal/config"
	"github.com/stocktree/stocktree-auth/internal/logger"
	"github.com/stocktree/stocktree-auth/internal/mailer"
	"github.com/stocktree/stocktree-auth/internal/store"
)

type Services struct {
	AuthService AuthService
}

func NewServices(storages *store.Storages, mail mailer.Mailer, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages, mail, cfg.Auth, logger),
	}
}
