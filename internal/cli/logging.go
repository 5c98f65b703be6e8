package cli

import (
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spendwise/backend/internal/config"
)

// setupLogging configures gin's mode and the global logger.
func setupLogging(cfg *config.Config) {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(ginMode)
	}

	// If the format is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if (cfg.Log.Format == "" && gin.IsDebugging()) || cfg.Log.Format == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(logLevel(cfg.Log.Level))
	log.Logger = log.Output(output).With().Timestamp().Logger()
}

func logLevel(configured string) zerolog.Level {
	if configured != "" {
		if level, err := zerolog.ParseLevel(configured); err == nil {
			return level
		}
	}

	if gin.IsDebugging() {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
