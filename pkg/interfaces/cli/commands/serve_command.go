package commands

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/pcp/pkg/interfaces/api"
)

const shutdownTimeout = 5 * time.Second

func runServe(ctx context.Context, a *App, args []string) error {
	var opts Options
	var addr string
	fs := a.flagSet("serve", &opts)
	fs.StringVar(&addr, "addr", "", "Listen address (default: from config)")
	if help, err := parse(fs, args); help || err != nil {
		return err
	}

	env, err := a.setup(opts)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = env.Config.HTTP.Addr
	}
	if !opts.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(env.Service, env.Config.Planning.DefaultScenario, env.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		env.Logger.WithField("addr", addr).Info("planning API listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		env.Logger.Info("shutting down planning API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
