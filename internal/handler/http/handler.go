package http

import (
	"github.com/edusync/statesync/internal/config"
	"github.com/edusync/statesync/internal/live"
	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/internal/service"
)

type Handler struct {
	services *service.Services
	hub      *live.Hub
	config   *config.StructuredConfig

	logger *logger.Logger
}

func NewHandler(services *service.Services, hub *live.Hub, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		hub:      hub,
		config:   cfg,
		logger:   logger,
	}
}
