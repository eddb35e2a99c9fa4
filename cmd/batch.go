package cmd

import (
	"github.com/spf13/cobra"

	"docintake/internal/logger"
)

var batchCmd = &cobra.Command{
	Use:   "batch [prefix]",
	Short: "Process all stored documents under a prefix",
	Long: `Run the full intake pipeline (read, classify, extract) over every stored
document whose name starts with the given prefix. Documents are processed
concurrently; the first failure stops the batch.

Blob storage configuration is required.`,
	Example: `  # Process everything under a month folder with default concurrency
  docintake batch 2024/03/

  # Process a whole year, eight documents at a time
  docintake batch 2024/ --concurrency 8

  # Save all extraction envelopes to one file
  docintake batch 2024/03/ -o results.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	batchCmd.Flags().Int("concurrency", 4, "Number of documents processed in parallel")
	batchCmd.Flags().Int("timeout", 3600, "Batch timeout in seconds")
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("batch")

	outputPath, _ := cmd.Flags().GetString("output")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	prefix := ""
	if len(args) == 1 {
		prefix = args[0]
	}

	ctx, cancel := newCommandContext(timeoutSecs)
	defer cancel()

	service, cleanup, err := buildPipeline(ctx, log)
	if err != nil {
		return err
	}
	defer cleanup()

	listing, err := service.ListDocuments(ctx, prefix)
	if err != nil {
		return err
	}

	log.Info().
		Str("prefix", prefix).
		Int("documents", listing.Count).
		Int("concurrency", concurrency).
		Msg("Starting batch processing")

	results, err := service.ProcessBatch(ctx, listing.Documents, concurrency)
	if err != nil {
		log.Error().Err(err).Msg("Batch processing failed")
		return err
	}

	log.Info().
		Int("documents", len(results)).
		Msg("Batch processing completed")

	return writeJSONOutput(results, outputPath, log)
}
