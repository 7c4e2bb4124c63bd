package cmd

import (
	"fmt"
	"os"

	"github.com/MeKo-Tech/claimlens/internal/accuracy"
	"github.com/MeKo-Tech/claimlens/internal/document"
	"github.com/spf13/cobra"
)

// accuracyCmd compares a produced document against a ground truth file.
var accuracyCmd = &cobra.Command{
	Use:   "accuracy",
	Short: "Compare a structured document against a ground truth file",
	Long: `Compare a produced structured document against a ground truth JSON file
and print per-page and aggregate field accuracy: exact matches, normalized
matches, mean character error rate, and the full mismatch listing.

Mismatches are report content, not errors; a successful comparison always
exits zero.

Examples:
  claimlens accuracy --pred output/claim_form.json --truth truth/claim.json`,
	SilenceUsage: true,
	RunE:         runAccuracyCommand,
}

func init() {
	accuracyCmd.Flags().String("pred", "", "path to the produced document JSON")
	accuracyCmd.Flags().String("truth", "", "path to the ground truth JSON")
	_ = accuracyCmd.MarkFlagRequired("pred")
	_ = accuracyCmd.MarkFlagRequired("truth")

	rootCmd.AddCommand(accuracyCmd)
}

func runAccuracyCommand(cmd *cobra.Command, _ []string) error {
	predPath, _ := cmd.Flags().GetString("pred")
	truthPath, _ := cmd.Flags().GetString("truth")

	pred, err := loadDocument(predPath)
	if err != nil {
		return err
	}
	truth, err := loadDocument(truthPath)
	if err != nil {
		return err
	}

	report := accuracy.Evaluate(pred, truth)
	report.Render(cmd.OutOrStdout())
	return nil
}

func loadDocument(path string) (*document.StructuredDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	doc, err := document.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	return doc, nil
}
