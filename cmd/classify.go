package cmd

import (
	"github.com/spf13/cobra"

	"docintake/internal/document"
	"docintake/internal/logger"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [document]",
	Short: "Read and classify a tax document",
	Long: `Read a document, decode any SAF-T PT QR code it carries and classify it
with a language model. Scanned documents and images are routed through OCR
before classification.

The argument is a local file path by default; with --remote it names a
stored document in the configured documents bucket.

Required environment variables:
  AZURE_OPENAI_ENDPOINT - Azure OpenAI resource endpoint
  AZURE_OPENAI_API_KEY - Azure OpenAI API key
  AZURE_OPENAI_CLASSIFIER_DEPLOYMENT - Classification model deployment
  AZURE_OPENAI_EXTRACTOR_DEPLOYMENT - Extraction model deployment
  GOOGLE_CLOUD_PROJECT - Google Cloud project ID
  DOCUMENT_AI_PROCESSOR_ID - OCR processor with barcode detection enabled`,
	Example: `  # Classify a local invoice to stdout (JSON format)
  docintake classify invoice.pdf

  # Classify a stored document
  docintake classify 2024/03/invoice-123.pdf --remote

  # Save the classification envelope to a file
  docintake classify invoice.pdf -o classification.json`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	classifyCmd.Flags().Bool("remote", false, "Treat the argument as a stored document path")
	classifyCmd.Flags().String("url", "", "External document URL echoed into the result")
	classifyCmd.Flags().Int("timeout", 300, "Processing timeout in seconds")
}

func runClassify(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("classify")

	outputPath, _ := cmd.Flags().GetString("output")
	remote, _ := cmd.Flags().GetBool("remote")
	fileURL, _ := cmd.Flags().GetString("url")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	path := args[0]

	log.Info().
		Str("document", path).
		Bool("remote", remote).
		Msg("Starting classification")

	ctx, cancel := newCommandContext(timeoutSecs)
	defer cancel()

	service, cleanup, err := buildPipeline(ctx, log)
	if err != nil {
		return err
	}
	defer cleanup()

	var d document.Document
	if remote {
		d, err = service.LoadDocument(ctx, path, fileURL)
	} else {
		d, err = service.LoadDocumentFromFile(path, fileURL)
	}
	if err != nil {
		return err
	}

	result, err := service.ReadAndClassify(ctx, d)
	if err != nil {
		log.Error().Err(err).Str("document", path).Msg("Classification failed")
		return err
	}

	log.Info().
		Str("document", path).
		Str("document_type", result.DocumentType).
		Bool("valid", result.ValidDocument).
		Str("has_atcud", result.HasATCUD).
		Msg("Classification completed")

	return writeJSONOutput(result, outputPath, log)
}
