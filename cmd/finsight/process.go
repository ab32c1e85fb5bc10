package main

import (
	"log/slog"
	"os"

	"github.com/finsight/receipt-pipeline/internal/cli"
	"github.com/finsight/receipt-pipeline/internal/workflow"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <recognized-text-file>",
		Short: "Process one receipt through the full pipeline",
		Long: `Process a single receipt from its recognized text, producing a
structured record and spending category.

Examples:
  finsight process receipt.txt
  finsight process receipt.txt --no-classify
  finsight process receipt.txt --thresholds strict`,
		Args: cobra.ExactArgs(1),
		RunE: runProcess,
	}

	cmd.Flags().Bool("no-classify", false, "Skip the classification stage")
	cmd.Flags().String("thresholds", "", "Confidence thresholds preset (default, strict, lenient)")

	_ = viper.BindPFlag("process.no_classify", cmd.Flags().Lookup("no-classify"))

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	preset, _ := cmd.Flags().GetString("thresholds")
	thresholds, err := activeThresholds(preset)
	if err != nil {
		return err
	}

	p, err := buildPipeline(ctx)
	if err != nil {
		return err
	}
	defer p.close()

	result := p.orchestrator.Process(ctx, args[0], workflow.Options{
		Thresholds:    thresholds,
		UseClassifier: !viper.GetBool("process.no_classify"),
		Progress: func(stage workflow.Stage) {
			slog.Debug("pipeline stage", "stage", stage)
		},
	})

	cli.RenderResult(os.Stdout, result, thresholds)
	return nil
}
