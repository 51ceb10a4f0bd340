package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"aqimon/internal/config"
	"aqimon/internal/fetchers"
	"aqimon/internal/forecast"
	"aqimon/internal/llm"
	"aqimon/internal/logger"
	"aqimon/internal/mocks"
	"aqimon/internal/reports"
	"aqimon/internal/storage"
)

// Server represents the main application server
type Server struct {
	Config    *config.Config
	Builder   *reports.Builder
	Generator *reports.Generator
	Storage   storage.StorageClient

	log           *logger.Logger
	generateMutex sync.Mutex
	httpServer    *http.Server
}

// NewServer creates a server instance with all components wired from
// the configuration. Mockup mode swaps the live WAQI fetcher for canned
// values.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	log := logger.GetGlobalLogger().WithComponent("server")

	mode := storage.ModeFromConfig(cfg)
	store, err := storage.NewStorageClient(ctx, mode, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", logger.Fields{"mode": string(mode)})

	var indexFetcher fetchers.IndexFetcher
	var advisoryFetcher reports.AdvisoryFetcher
	if cfg.MockupMode {
		log.Info("Mockup mode enabled, using canned AQI values", nil)
		indexFetcher = mocks.NewMockFetcher()
	} else {
		dataFetcher := fetchers.NewDataFetcher(cfg.WAQIAPIToken, cfg.WAQIBaseURL, cfg.AdvisoriesFeedURL)
		indexFetcher = dataFetcher
		if cfg.AdvisoriesFeedURL != "" {
			advisoryFetcher = dataFetcher
		}
	}

	projector := forecast.NewProjector(cfg.GrowthRate, cfg.ForecastDays)
	builder := reports.NewBuilder(indexFetcher, projector)

	var narrative reports.NarrativeClient
	if cfg.OpenAIAPIKey != "" {
		narrative = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		log.Info("LLM narrative enabled", logger.Fields{"model": cfg.OpenAIModel})
	}

	return &Server{
		Config:    cfg,
		Builder:   builder,
		Generator: reports.NewGenerator(builder, store, narrative, advisoryFetcher),
		Storage:   store,
		log:       log,
	}, nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/generate", s.HandleGenerate)
	mux.HandleFunc("/city", s.HandleCity)
	mux.HandleFunc("/reports", s.HandleListReports)
	mux.HandleFunc("/reports/", s.HandleFileProxy)
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}

// ListenAndServe starts the HTTP server and blocks until the context is
// cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Port,
		Handler:      s.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // Report generation is slow
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", logger.Fields{"addr": s.httpServer.Addr})
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("Shutting down HTTP server", nil)
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}
