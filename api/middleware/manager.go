package middleware

import (
	"github.com/MonkyMars/gecho"

	"kubwa_closet_server/database"
	"kubwa_closet_server/services"
	"kubwa_closet_server/structs"
)

type Middleware struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	authService  *services.AuthService
	cacheService *services.CacheService
}

func NewMiddleware(cfg *structs.Config, logger *gecho.Logger, db *database.DB) *Middleware {
	return &Middleware{
		logger:       logger,
		cfg:          cfg,
		authService:  services.NewAuthService(cfg, logger, db),
		cacheService: services.NewCacheService(logger, cfg),
	}
}
