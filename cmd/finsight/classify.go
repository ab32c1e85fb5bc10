package main

import (
	"fmt"
	"strings"

	"github.com/finsight/receipt-pipeline/internal/classify"
	"github.com/finsight/receipt-pipeline/internal/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a merchant directly, without parsing a receipt",
		Long: `Run the hybrid category classifier on a merchant name and optional
description, bypassing text extraction.

Examples:
  finsight classify --merchant "Walmart Supercenter" --description groceries
  finsight classify --merchant "Corner Bistro" --amount 42.50 --thresholds lenient`,
		RunE: runClassify,
	}

	cmd.Flags().String("merchant", "", "Merchant name (required)")
	cmd.Flags().String("description", "", "Free-text purchase description")
	cmd.Flags().String("amount", "", "Purchase amount")
	cmd.Flags().String("thresholds", "", "Confidence thresholds preset (default, strict, lenient)")
	_ = cmd.MarkFlagRequired("merchant")

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	preset, _ := cmd.Flags().GetString("thresholds")
	thresholds, err := activeThresholds(preset)
	if err != nil {
		return err
	}

	merchant, _ := cmd.Flags().GetString("merchant")
	description, _ := cmd.Flags().GetString("description")
	if strings.TrimSpace(merchant) == "" {
		return fmt.Errorf("%w: merchant name is blank", common.ErrEmptyInput)
	}

	req := classify.Request{MerchantName: merchant, Description: description}
	if raw, _ := cmd.Flags().GetString("amount"); raw != "" {
		amount, parseErr := decimal.NewFromString(raw)
		if parseErr != nil {
			return fmt.Errorf("invalid amount %q: %w", raw, parseErr)
		}
		req.Amount = &amount
	}

	p, err := buildPipeline(ctx)
	if err != nil {
		return err
	}
	defer p.close()

	result := p.classifier.Classify(ctx, req, thresholds)

	cmd.Printf("category:   %s\n", result.Category)
	cmd.Printf("confidence: %.2f\n", result.Confidence)
	cmd.Printf("method:     %s\n", result.Method)
	if result.Reasoning != "" {
		cmd.Printf("reasoning:  %s\n", result.Reasoning)
	}
	return nil
}
