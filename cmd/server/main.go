package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/web-bootstrap/internal/config"
	"github.com/MKhiriev/web-bootstrap/internal/handler"
	"github.com/MKhiriev/web-bootstrap/internal/logger"
	"github.com/MKhiriev/web-bootstrap/internal/routes"
	"github.com/MKhiriev/web-bootstrap/internal/server"
	"github.com/MKhiriev/web-bootstrap/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := newBuildInfo()

	cmd := &cobra.Command{
		Use:          "web-server",
		Short:        "HTTP server for static assets and the API router",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, buildInfo)
		},
	}
	cmd.Version = fmt.Sprintf("%s (built %s, commit %s)",
		buildInfo.BuildVersion(), buildInfo.BuildDate(), buildInfo.BuildCommit())

	config.RegisterFlags(cmd.Flags())

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, buildInfo models.AppBuildInfo) error {
	dotEnvPath := config.DotEnvPath(cmd.Flags())
	dotEnvErr := config.LoadDotEnv(dotEnvPath)

	cfg, err := config.GetStructuredConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	log := logger.NewLogger("web-server", cfg.App.LogLevel)

	switch {
	case dotEnvErr == nil:
		log.Debug().Str("path", dotEnvPath).Msg("dotenv file loaded")
	case errors.Is(dotEnvErr, config.ErrDotEnvNotFound):
		log.Debug().Str("path", dotEnvPath).Msg("no dotenv file, using process environment")
	default:
		log.Warn().Err(dotEnvErr).Msg("dotenv file ignored")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	router := routes.New(buildInfo, cfg.App.Version, log)

	handlers, err := handler.NewHandlers(router, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("error creating handlers")
		return err
	}

	srv, err := server.NewServer(handlers, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("error creating server")
		return err
	}

	if err := srv.RunServer(context.Background()); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return err
	}

	return nil
}

func newBuildInfo() models.AppBuildInfo {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
