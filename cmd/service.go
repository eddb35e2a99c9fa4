package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"docintake/internal/config"
	"docintake/internal/llm"
	"docintake/internal/ocr"
	"docintake/internal/pipeline"
	"docintake/internal/storage"
)

// buildPipeline constructs the pipeline service from environment
// configuration. The returned cleanup closes the underlying clients.
func buildPipeline(ctx context.Context, log zerolog.Logger) (*pipeline.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Configuration loading failed")
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	ocrService, err := ocr.NewDocumentAIService(ctx, ocr.DocumentAIConfig{
		ProjectID:        cfg.GoogleProject,
		Location:         cfg.GoogleLocation,
		ProcessorID:      cfg.ProcessorID,
		ProcessorVersion: cfg.ProcessorVersion,
	})
	if err != nil {
		log.Error().Err(err).Msg("Document AI client creation failed")
		return nil, nil, fmt.Errorf("creating Document AI client: %w", err)
	}

	classifier, err := llm.NewAzureClient(cfg.AzureOpenAIEndpoint, cfg.AzureOpenAIKey, cfg.AzureOpenAIVersion, cfg.ClassifierDeployment)
	if err != nil {
		return nil, nil, fmt.Errorf("creating classifier client: %w", err)
	}
	extractor, err := llm.NewAzureClient(cfg.AzureOpenAIEndpoint, cfg.AzureOpenAIKey, cfg.AzureOpenAIVersion, cfg.ExtractorDeployment)
	if err != nil {
		return nil, nil, fmt.Errorf("creating extractor client: %w", err)
	}

	var store pipeline.Store
	var blobStore *storage.BlobStore
	if cfg.HasStorage() {
		blobStore, err = storage.NewBlobStore(ctx, storage.BlobConfig{
			DocumentsBucket: cfg.DocumentsBucket,
			TextBucket:      cfg.TextBucket,
			QRBucket:        cfg.QRBucket,
			FieldsBucket:    cfg.FieldsBucket,
			CommentsBucket:  cfg.CommentsBucket,
		})
		if err != nil {
			log.Error().Err(err).Msg("Blob store creation failed")
			return nil, nil, fmt.Errorf("creating blob store: %w", err)
		}
		store = blobStore
	} else {
		log.Warn().Msg("No blob storage configured, artifacts will not be persisted")
	}

	cleanup := func() {
		if closer, ok := ocrService.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close Document AI client")
			}
		}
		if blobStore != nil {
			if err := blobStore.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close blob store")
			}
		}
	}

	return pipeline.NewService(ocrService, classifier, extractor, store), cleanup, nil
}

// newCommandContext creates a context honoring the timeout flag and SIGINT
// or SIGTERM.
func newCommandContext(timeoutSecs int) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	if timeoutSecs <= 0 {
		return ctx, stop
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSecs)*time.Second)
	return ctx, func() {
		cancel()
		stop()
	}
}

// writeJSONOutput writes v as indented JSON to outputPath, or stdout when
// the path is empty.
func writeJSONOutput(v any, outputPath string, log zerolog.Logger) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	data = append(data, '\n')

	if outputPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		log.Error().Err(err).Str("output", outputPath).Msg("Failed to write output file")
		return fmt.Errorf("writing output file: %w", err)
	}
	log.Info().Str("output", outputPath).Msg("Results written")
	return nil
}
