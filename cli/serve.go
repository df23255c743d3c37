package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pagelens/backend/middleware"
	"github.com/pagelens/backend/server"
	"github.com/pagelens/backend/service"
)

func newServeCmd() *cobra.Command {
	var (
		port    string
		dataDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the audit HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			loadEnv()
			setupGinMode()

			if port == "" {
				port = envOr("PORT", "8082")
			}
			if dataDir == "" {
				dataDir = envOr("DATA_DIR", "data")
			}

			svc, err := service.New(dataDir)
			if err != nil {
				return err
			}
			if raw := os.Getenv("CACHE_TTL"); raw != "" {
				ttl, err := time.ParseDuration(raw)
				if err != nil {
					return fmt.Errorf("invalid CACHE_TTL %q: %w", raw, err)
				}
				svc.SetCacheTTL(ttl)
			}

			// Flush stats and stop background work on interrupt.
			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigs
				log.Info().Msg("shutting down")
				if err := svc.Shutdown(); err != nil {
					log.Error().Err(err).Msg("shutdown failed")
				}
				os.Exit(0)
			}()

			limiter := middleware.NewRateLimiter(2, 5)
			return server.New(svc, limiter).Run(":" + port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (default $PORT or 8082)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "statistics directory (default $DATA_DIR or data)")

	return cmd
}

func loadEnv() {
	// .env.development wins for local work, then the regular .env.
	if err := godotenv.Load(".env.development"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Debug().Msg("no .env file found, using environment variables")
		}
	}
}

func setupGinMode() {
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
