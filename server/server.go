package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"tour-server/config"
	"tour-server/logger"
)

type TourHttpServer struct {
	router    *Router
	muxRouter *mux.Router
	cfg       config.ServerConfig
	logger    logger.Logger
}

func NewTourHttpServer(router *Router, muxRouter *mux.Router, cfg config.ServerConfig, log logger.Logger) *TourHttpServer {
	return &TourHttpServer{
		router:    router,
		muxRouter: muxRouter,
		cfg:       cfg,
		logger:    logger.Component(log, "TourHttpServer"),
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully within the
// configured timeout.
func (s *TourHttpServer) Start(ctx context.Context) error {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.muxRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", map[string]interface{}{"addr": s.cfg.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down the server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server exiting", nil)
	return nil
}
