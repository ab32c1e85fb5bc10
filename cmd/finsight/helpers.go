package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finsight/receipt-pipeline/internal/classify"
	"github.com/finsight/receipt-pipeline/internal/common"
	"github.com/finsight/receipt-pipeline/internal/model"
	"github.com/finsight/receipt-pipeline/internal/ocr"
	"github.com/finsight/receipt-pipeline/internal/parser"
	"github.com/finsight/receipt-pipeline/internal/storage"
	"github.com/finsight/receipt-pipeline/internal/workflow"
	"github.com/spf13/viper"
)

// pipeline bundles the wired components plus their cleanup.
type pipeline struct {
	orchestrator *workflow.Orchestrator
	classifier   *classify.Classifier
	close        func()
}

// buildPipeline wires the orchestrator from configuration: a text-file OCR
// seam, the parser, and a classifier with an optional remote client and an
// optional persistent cache.
func buildPipeline(ctx context.Context) (*pipeline, error) {
	logger := slog.Default()

	store, closeStore, err := buildStore(ctx)
	if err != nil {
		return nil, err
	}

	var client classify.Client
	if apiKey := viper.GetString("openai.api_key"); apiKey != "" {
		client, err = classify.NewOpenAIClient(classify.ClientConfig{
			APIKey:  apiKey,
			BaseURL: viper.GetString("openai.base_url"),
			Model:   viper.GetString("openai.model"),
		})
		if err != nil {
			closeStore()
			return nil, fmt.Errorf("failed to create remote classifier: %w", err)
		}
	} else {
		logger.Debug("no OpenAI API key configured, remote escalation disabled")
	}

	classifier := classify.New(client, store, classify.Config{
		RemoteTimeout: viper.GetDuration("classifier.timeout"),
	}, logger)

	return &pipeline{
		orchestrator: workflow.New(ocr.TextFileEngine{}, parser.New(logger), classifier, logger),
		classifier:   classifier,
		close:        closeStore,
	}, nil
}

// buildStore picks the classification cache: SQLite when a path is
// configured, otherwise an in-memory store for the life of the process.
func buildStore(ctx context.Context) (classify.Store, func(), error) {
	dbPath := viper.GetString("cache.path")
	if dbPath == "" {
		store := classify.NewMemoryStore(15 * time.Minute)
		return store, func() { _ = store.Close() }, nil
	}

	store, err := storage.NewSQLiteStore(common.ExpandPath(dbPath))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open classification cache: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to migrate classification cache: %w", err)
	}
	return store, func() { _ = store.Close() }, nil
}

// activeThresholds resolves the configured preset.
func activeThresholds(preset string) (model.ConfidenceThresholds, error) {
	if preset == "" {
		preset = viper.GetString("classifier.thresholds")
	}
	thresholds, err := model.ThresholdsByName(preset)
	if err != nil {
		return model.ConfidenceThresholds{}, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}
	return thresholds, nil
}
