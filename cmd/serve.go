package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"docintake/internal/logger"
	"docintake/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the document intake HTTP API",
	Long: `Start the HTTP API exposing the intake pipeline over stored documents.

Endpoints:
  GET  /health                    - liveness probe
  POST /list_documents/{prefix}   - list stored documents under a prefix
  POST /read_and_classify         - read and classify a stored document
  POST /extract_fields            - extract fields from a classified document

Blob storage configuration is required; documents are referenced by their
stored path.`,
	Example: `  # Serve on the default address
  docintake serve

  # Serve on a specific port
  docintake serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8000", "Listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	addr, _ := cmd.Flags().GetString("addr")

	service, cleanup, err := buildPipeline(context.Background(), log)
	if err != nil {
		return err
	}
	defer cleanup()

	return server.New(service).Run(addr)
}
