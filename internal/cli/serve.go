package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/drblury/wordgate/config"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand returns the command that runs the HTTP gateway until it
// receives SIGINT or SIGTERM.
func NewServeCommand(v *viper.Viper, configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, *configFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", "", "Listen address (server.addr)")
	flags.String("log-level", "", "Log level: debug, info, warn or error (log.level)")
	flags.String("log-format", "", "Log format: json or text (log.format)")
	flags.String("mirror-uri", "", "MongoDB URI for the frequency mirror (mirror.uri)")

	for key, name := range map[string]string{
		"server.addr": "addr",
		"log.level":   "log-level",
		"log.format":  "log-format",
		"mirror.uri":  "mirror-uri",
	} {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}

	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := cfg.Log.NewLogger(os.Stderr)

	app, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.close()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go app.runMirror(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("wordgate listening", "addr", cfg.Server.Addr, "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	app.wait()
	return nil
}
