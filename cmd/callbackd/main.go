package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"walletlink/internal/app"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var home, configPath, passphrase, listen string
	var verbose bool

	cmd := &cobra.Command{
		Use:          "callbackd",
		Short:        "Serve the redirect endpoint wallets return to",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(log.DebugLevel)
			} else {
				gin.SetMode(gin.ReleaseMode)
			}
			dir, err := app.ResolveHome(home)
			if err != nil {
				return err
			}
			cfg, err := app.LoadConfig(dir, configPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.ListenAddr = listen
			}
			w, err := app.NewWire(cfg, passphrase)
			if err != nil {
				return err
			}
			defer w.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg.ListenAddr, newEngine(w))
		},
	}
	cmd.Flags().StringVar(&home, "home", "", "config dir (default $"+app.HomeEnv+" or ~/.walletlink)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default <home>/"+app.ConfigFilename+")")
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase sealing the stored session")
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides listen_addr)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}

// serve runs h on addr until ctx is cancelled, then drains for up to five
// seconds.
func serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("callbackd listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
