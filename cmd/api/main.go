package main

import (
	"context"
	"os"

	"github.com/clgres/resultapi/internal/pkg/logger"
	"github.com/clgres/resultapi/internal/server"
)

// @title Result API
// @version 1.0
// @description Looks up student results by roll number and derives SGPA, CGPA and backlogs

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /
// @schemes http https

func main() {
	// CONFIG_PATH or configs/config.yaml
	srv, err := server.NewServer(context.Background(), "")
	if err != nil {
		// Logged with the default logger from the logger package's init
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
