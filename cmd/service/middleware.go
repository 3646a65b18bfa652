package main

import (
	"github.com/pdfdock/pdfdock/internal/config"
	"github.com/pdfdock/pdfdock/internal/logger"
	"github.com/pdfdock/pdfdock/internal/middleware"
)

// buildMiddleware creates and configures the middleware stack with logging and CORS.
func buildMiddleware(loggerSys logger.System, cfg *config.Config) middleware.System {
	middlewareSys := middleware.New()
	middlewareSys.Use(middleware.Logger(loggerSys.Logger()))
	middlewareSys.Use(middleware.CORS(&cfg.CORS))
	middlewareSys.Use(middleware.TrimSlash())
	return middlewareSys
}
