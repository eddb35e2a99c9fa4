package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docintake/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "docintake",
	Short: "Document intake CLI - classify and extract Portuguese tax documents",
	Long: `Document intake CLI processes invoices and other tax relevant documents:
it reads native or scanned files, decodes SAF-T PT QR codes, classifies the
document with a language model and extracts its canonical field set.

Stored documents live in Google Cloud Storage buckets; local files can be
processed directly without storage configuration.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("Document intake CLI executed")

		fmt.Println("Welcome to the document intake CLI!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
