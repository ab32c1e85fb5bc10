package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/finsight/receipt-pipeline/internal/cli"
	"github.com/finsight/receipt-pipeline/internal/common"
	"github.com/finsight/receipt-pipeline/internal/model"
	"github.com/finsight/receipt-pipeline/internal/workflow"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <directory>",
		Short: "Process every receipt text file in a directory",
		Long: `Process all recognized-text files (*.txt) in a directory
sequentially, one result per file in name order. A bad file fails only its
own entry, never the batch.`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().Bool("no-classify", false, "Skip the classification stage")
	cmd.Flags().String("thresholds", "", "Confidence thresholds preset (default, strict, lenient)")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	preset, _ := cmd.Flags().GetString("thresholds")
	thresholds, err := activeThresholds(preset)
	if err != nil {
		return err
	}
	noClassify, _ := cmd.Flags().GetBool("no-classify")

	paths, err := collectTextFiles(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return common.NewUserError(fmt.Sprintf("no receipt text files (*.txt) found in %s", args[0]), nil)
	}

	p, err := buildPipeline(ctx)
	if err != nil {
		return err
	}
	defer p.close()

	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Processing receipts..."),
	)

	results := p.orchestrator.ProcessBatch(ctx, paths, workflow.Options{
		Thresholds:    thresholds,
		UseClassifier: !noClassify,
		OnResult: func(int, model.WorkflowResult) {
			_ = bar.Add(1)
		},
	})
	fmt.Fprintln(os.Stderr)

	var failed, review int
	for _, result := range results {
		if !result.Success {
			failed++
			fmt.Println(cli.ErrorStyle.Render(fmt.Sprintf("✗ %s: %s", filepath.Base(result.ImagePath), result.ErrorMessage)))
			continue
		}
		if result.NeedsReview(thresholds) {
			review++
		}
		summary := fmt.Sprintf("%s  confidence %.2f", filepath.Base(result.ImagePath), result.OverallConfidence())
		if result.Classification != nil {
			summary += "  " + result.Classification.Category
		}
		fmt.Println(summary)
	}

	fmt.Printf("\nprocessed %d receipts: %d ok, %d failed, %d need review\n",
		len(results), len(results)-failed, failed, review)
	common.LogInfo("batch complete", common.Fields{
		"directory":    args[0],
		"total":        len(results),
		"failed":       failed,
		"needs_review": review,
	})
	return nil
}

// collectTextFiles lists the directory's .txt files in name order.
func collectTextFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
