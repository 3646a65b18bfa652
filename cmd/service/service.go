package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/pdfdock/pdfdock/internal/annotations"
	"github.com/pdfdock/pdfdock/internal/assist"
	"github.com/pdfdock/pdfdock/internal/catalog"
	"github.com/pdfdock/pdfdock/internal/config"
	"github.com/pdfdock/pdfdock/internal/documents"
	"github.com/pdfdock/pdfdock/internal/logger"
	"github.com/pdfdock/pdfdock/internal/routes"
	"github.com/pdfdock/pdfdock/internal/server"
	"github.com/pdfdock/pdfdock/internal/storage"
)

// Service coordinates the lifecycle of all subsystems.
type Service struct {
	ctx        context.Context
	cancel     context.CancelFunc
	shutdownWg sync.WaitGroup

	logger        logger.System
	blobs         storage.System
	catalogStore  storage.System
	documents     documents.System
	annotations   *annotations.Model
	assistHandler *assist.Handler
	server        server.System
}

// NewService creates and initializes the service with all subsystems.
func NewService(cfg *config.Config) (*Service, error) {
	ctx, cancel := context.WithCancel(context.Background())

	loggerSys := logger.New(&cfg.Logging)
	log := loggerSys.Logger()

	blobs, err := storage.New(&cfg.Storage, log)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("blob store init failed: %w", err)
	}

	catalogBacking, err := storage.NewFilesystem(cfg.Catalog.BasePath, log)
	if err != nil {
		blobs.Close()
		cancel()
		return nil, fmt.Errorf("catalog store init failed: %w", err)
	}

	catalogStore := catalog.New(catalogBacking, log)
	documentSys := documents.New(catalogStore, blobs, log, cfg.Storage.MaxUploadSizeBytes())
	annotationModel := annotations.NewModel(log)

	assistSys := assist.New(cfg.Assist, log)
	assistHandler := assist.NewHandler(assistSys, documentSys, log)

	svc := &Service{
		ctx:           ctx,
		cancel:        cancel,
		logger:        loggerSys,
		blobs:         blobs,
		catalogStore:  catalogBacking,
		documents:     documentSys,
		annotations:   annotationModel,
		assistHandler: assistHandler,
	}

	routeSys := routes.New(log)
	registerRoutes(routeSys, svc)

	middlewareSys := buildMiddleware(loggerSys, cfg)
	handler := middlewareSys.Apply(routeSys.Build())

	svc.server = server.New(&cfg.Server, handler, log)
	return svc, nil
}

// Start begins all subsystems and returns when they are ready.
func (s *Service) Start() error {
	s.logger.Logger().Info("starting service")

	if err := s.server.Start(s.ctx, &s.shutdownWg); err != nil {
		return fmt.Errorf("server start failed: %w", err)
	}

	s.logger.Logger().Info("service started")
	return nil
}

// Shutdown gracefully stops all subsystems within the provided context deadline.
func (s *Service) Shutdown(ctx context.Context) error {
	s.logger.Logger().Info("initiating shutdown")

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.shutdownWg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}

	if err := s.blobs.Close(); err != nil {
		s.logger.Logger().Error("blob store close failed", "error", err)
	}
	if err := s.catalogStore.Close(); err != nil {
		s.logger.Logger().Error("catalog store close failed", "error", err)
	}

	s.logger.Logger().Info("all subsystems shut down successfully")
	return nil
}
