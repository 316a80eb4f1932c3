package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"walletctl/internal/infrastructure/restapi"
	"walletctl/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose a read-only HTTP API over the custody wallets",
	Long: `Runs a long-lived read-only HTTP server with the wallet listing and
inspection endpoints plus a prometheus /metrics endpoint. No mutating
operation is reachable over HTTP.`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		// Bootstrap logging before the full config/logger stack exists.
		log := logrus.New()
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetOutput(os.Stdout)
		log.SetLevel(logrus.InfoLevel)

		a := newApp()
		defer a.zapLogger.Sync()

		// Route slog through zap for everything serve-mode logs.
		slogHandler := zapslog.NewHandler(a.zapLogger.Core())
		slog.SetDefault(slog.New(slogHandler))

		level, err := logrus.ParseLevel(a.cfg.Logging.Level)
		if err != nil {
			log.Warnf("Invalid log level in config: %s. Defaulting to Info.", a.cfg.Logging.Level)
			level = logrus.InfoLevel
		}
		log.SetLevel(level)

		gin.SetMode(gin.ReleaseMode)
		walletHandler := restapi.NewWalletHandler(a.wallets, logger.NewSlogAdapter())
		router := restapi.SetupRouter(walletHandler, a.zapLogger)

		srv := &http.Server{
			Addr:         fmt.Sprintf(":%s", a.cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(a.cfg.Server.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(a.cfg.Server.IdleTimeout) * time.Second,
		}

		go func() {
			a.zapLogger.Info("Server starting", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				a.zapLogger.Fatal("Failed to start server", zap.Error(err))
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		a.zapLogger.Info("Shutting down server...")

		ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()

		if err := srv.Shutdown(ctxShutdown); err != nil {
			a.zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
		}

		a.zapLogger.Info("Server exiting")
	},
}
