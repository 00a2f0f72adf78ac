package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

func (a *App) runServices(ctx context.Context, deps *Dependencies) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Log.Info("starting http server",
			"host", a.Cfg.Server.Host,
			"port", a.Cfg.Server.Port)

		err := deps.HTTPServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return deps.Analytics.Run(gCtx)
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.Log.Info("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := deps.HTTPServer.Shutdown(shutdownCtx); err != nil {
			a.Log.Error("failed to shutdown http server", "error", err)
		}

		a.Log.Info("http server stopped")
		return nil
	})

	err := g.Wait()

	// Producer закрываем после воркера аналитики: он дописывает буфер при остановке
	if deps.Producer != nil {
		if err := deps.Producer.Close(); err != nil {
			a.Log.Error("failed to close kafka producer", "error", err)
		}
	}

	if err != nil {
		a.Log.Error("application error", "error", err)
		return err
	}

	a.Log.Info("application shutdown completed")
	return nil
}
