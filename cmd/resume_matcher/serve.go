package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/server"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing the analysis pipeline as a REST endpoint.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	if cfg.Port == 0 {
		cfg.Port = servePort
	}

	srv, err := server.New(server.Config{
		Port:         cfg.Port,
		APIKey:       cfg.APIKey,
		StageTimeout: cfg.StageTimeout(),
		ModelConfig:  modelConfig(cfg),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
