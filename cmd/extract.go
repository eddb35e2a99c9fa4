package cmd

import (
	"github.com/spf13/cobra"

	"docintake/internal/logger"
)

var extractCmd = &cobra.Command{
	Use:   "extract [document]",
	Short: "Extract canonical fields from a tax document",
	Long: `Extract the canonical field set from a document with a language model.

The argument is a local file path by default, in which case the document is
read and classified first so extraction knows the document type. With
--remote the argument names a stored document whose classification artifacts
already exist; extraction runs directly on the rehydrated state.`,
	Example: `  # Read, classify and extract a local invoice
  docintake extract invoice.pdf

  # Extract from an already classified stored document
  docintake extract 2024/03/invoice-123.pdf --remote

  # Save the extraction envelope to a file
  docintake extract invoice.pdf -o fields.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().Bool("remote", false, "Treat the argument as a stored document path")
	extractCmd.Flags().String("url", "", "External document URL echoed into the result")
	extractCmd.Flags().Int("timeout", 300, "Processing timeout in seconds")
}

func runExtract(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("extract")

	outputPath, _ := cmd.Flags().GetString("output")
	remote, _ := cmd.Flags().GetBool("remote")
	fileURL, _ := cmd.Flags().GetString("url")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	path := args[0]

	log.Info().
		Str("document", path).
		Bool("remote", remote).
		Msg("Starting extraction")

	ctx, cancel := newCommandContext(timeoutSecs)
	defer cancel()

	service, cleanup, err := buildPipeline(ctx, log)
	if err != nil {
		return err
	}
	defer cleanup()

	if remote {
		d, err := service.LoadDocument(ctx, path, fileURL)
		if err != nil {
			return err
		}
		result, err := service.ExtractFields(ctx, d)
		if err != nil {
			log.Error().Err(err).Str("document", path).Msg("Extraction failed")
			return err
		}
		return writeJSONOutput(result, outputPath, log)
	}

	// Local files have no persisted classification, so run the full flow
	d, err := service.LoadDocumentFromFile(path, fileURL)
	if err != nil {
		return err
	}
	classified, err := service.ReadDocument(ctx, d)
	if err != nil {
		return err
	}
	classified, _, err = service.ClassifyDocument(ctx, classified)
	if err != nil {
		log.Error().Err(err).Str("document", path).Msg("Classification failed")
		return err
	}

	result, err := service.ExtractFields(ctx, classified)
	if err != nil {
		log.Error().Err(err).Str("document", path).Msg("Extraction failed")
		return err
	}

	log.Info().
		Str("document", path).
		Int("missing_mandatory", len(result.MissingMandatoryFields)).
		Int("missing_optional", len(result.MissingOptionalFields)).
		Msg("Extraction completed")

	return writeJSONOutput(result, outputPath, log)
}
