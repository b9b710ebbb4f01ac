package cli

import (
	"github.com/spf13/cobra"

	"github.com/veridex/veridex/internal/retrieve"
	"github.com/veridex/veridex/internal/server"
)

var serveAddr string

// serveCmd runs the HTTP API consumed by the canvas UI
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the evidence API over HTTP",
	Long: `Serve the retrieval operations as a JSON HTTP API for the explorer UI.

Endpoints:
  GET  /healthz
  GET  /api/v1/rights
  POST /api/v1/legal-framework   {"right", "scope", "subScope"}
  POST /api/v1/field-status      {"right", "scope", "subScope"}
  POST /api/v1/nexus             {"rightA", "rightB", "scope", "subScope"}
  POST /api/v1/semantic-match    {"term"}`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		log := newLogger()
		defer func() { _ = log.Sync() }()

		orchestrator := retrieve.New(newClient(cfg), cfg, log)
		return server.New(orchestrator, cfg.Server, log).Run()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}
