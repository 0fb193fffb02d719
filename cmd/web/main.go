package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crucial707/pfconsole/internal/apiclient"
	"github.com/crucial707/pfconsole/internal/config"
	"github.com/crucial707/pfconsole/internal/directory"
	"github.com/crucial707/pfconsole/internal/logging"
	"github.com/crucial707/pfconsole/internal/web"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

// newHandler wires the console against the backend at cfg.APIURL.
func newHandler(cfg config.Config, sessions *directory.Store) (http.Handler, error) {
	api := apiclient.New(cfg.APIURL, &http.Client{})
	srv, err := web.New(cfg, api, sessions)
	if err != nil {
		return nil, err
	}
	return srv.Routes(), nil
}

func run(ctx context.Context, cfg config.Config) error {
	sessions := directory.NewStore(cfg.SessionTTL)
	go func() {
		if err := directory.RunSweeper(ctx, sessions, directory.DefaultSweepSpec); err != nil {
			slog.Error("session sweeper", "err", err)
		}
	}()

	h, err := newHandler(cfg, sessions)
	if err != nil {
		return err
	}
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if cfg.TLSEnabled() {
			slog.Info("console running", "url", "https://localhost:"+cfg.Port, "api", cfg.APIURL)
			errCh <- server.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
			return
		}
		slog.Info("console running", "url", "http://localhost:"+cfg.Port, "api", cfg.APIURL)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("console shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
