package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MeKo-Tech/claimlens/internal/config"
	"github.com/MeKo-Tech/claimlens/internal/document"
	"github.com/MeKo-Tech/claimlens/internal/ingest"
	"github.com/spf13/cobra"
)

// processCmd runs one or more inputs through the ingestion pipeline.
var processCmd = &cobra.Command{
	Use:   "process [inputs...]",
	Short: "Process recognized claim form text into structured JSON",
	Long: `Process one or more inputs through the full ingestion pipeline and write
a structured JSON document per input.

Inputs may be page-marked text files (the recognition output with
"--- Page N ---" boundaries) or text-native PDFs. Each input produces
<stem>_form.json in the output directory, plus <stem>_detailed.json with the
verbatim detections when --detailed is set and tokens were involved.

Examples:
  claimlens process claim.txt
  claimlens process claims/*.txt --output results --format text
  claimlens process claim.pdf --detailed --workers 4`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runProcessCommand,
}

func init() {
	processCmd.Flags().StringP("output", "o", "", "output directory (default from config)")
	processCmd.Flags().String("format", "", "output format: json or text (default from config)")
	processCmd.Flags().Bool("detailed", false, "also write the verbatim detections artifact")
	processCmd.Flags().Int("workers", 0, "recognition worker pool size (0 = number of CPUs)")
	processCmd.Flags().Bool("no-normalize-artifacts", false, "disable recognition artifact corrections")

	rootCmd.AddCommand(processCmd)
}

func runProcessCommand(cmd *cobra.Command, args []string) error {
	cfg := processConfig(GetConfig(), cmd)

	inputs := make([]ingest.Input, 0, len(args))
	for _, arg := range args {
		in, err := loadInput(arg)
		if err != nil {
			return err
		}
		inputs = append(inputs, in)
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", cfg.Output.Dir, err)
	}

	coordinator := ingest.NewCoordinator(cfg, nil)
	outcomes := coordinator.ProcessAll(cmd.Context(), inputs)

	failed := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "FAILED %s: %v\n", outcome.Input, outcome.Err)
			continue
		}
		if err := writeResult(cmd, cfg, outcome); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Processed %d of %d document(s)\n", len(outcomes)-failed, len(outcomes))
	if failed == len(outcomes) {
		return fmt.Errorf("all %d document(s) failed", failed)
	}
	return nil
}

// processConfig applies command flag overrides on top of the loaded
// configuration.
func processConfig(cfg *config.Config, cmd *cobra.Command) *config.Config {
	if cmd.Flags().Changed("output") {
		cfg.Output.Dir, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("detailed") {
		cfg.Output.Detailed, _ = cmd.Flags().GetBool("detailed")
	}
	if cmd.Flags().Changed("workers") {
		cfg.Ingest.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if noFix, _ := cmd.Flags().GetBool("no-normalize-artifacts"); noFix {
		cfg.Normalizer.FixArtifacts = false
	}
	return cfg
}

// loadInput maps one argument to an ingestion input: PDFs go in by path,
// everything else is read as a page-marked text blob.
func loadInput(path string) (ingest.Input, error) {
	name := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return ingest.Input{Name: name, PDFPath: path}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ingest.Input{}, fmt.Errorf("failed to read input %q: %w", path, err)
	}
	return ingest.Input{Name: name, Text: string(data)}, nil
}

// writeResult persists one successful outcome per the output configuration.
func writeResult(cmd *cobra.Command, cfg *config.Config, outcome ingest.Outcome) error {
	stem := strings.TrimSuffix(outcome.Input, filepath.Ext(outcome.Input))
	doc := outcome.Result.Document

	switch cfg.Output.Format {
	case "text":
		path := filepath.Join(cfg.Output.Dir, stem+"_form.txt")
		if err := os.WriteFile(path, []byte(renderText(doc)), 0o644); err != nil {
			return fmt.Errorf("failed to write %q: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", outcome.Input, path)
	default:
		out, err := document.ToJSON(doc)
		if err != nil {
			return fmt.Errorf("failed to serialize %q: %w", outcome.Input, err)
		}
		path := filepath.Join(cfg.Output.Dir, stem+"_form.json")
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return fmt.Errorf("failed to write %q: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", outcome.Input, path)
	}

	if cfg.Output.Detailed && outcome.Result.Detections != nil {
		out, err := document.ToJSONDetections(outcome.Result.Detections)
		if err != nil {
			return fmt.Errorf("failed to serialize detections for %q: %w", outcome.Input, err)
		}
		path := filepath.Join(cfg.Output.Dir, stem+"_detailed.json")
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return fmt.Errorf("failed to write %q: %w", path, err)
		}
	}
	return nil
}

// renderText is the plain-text rendering: page headers plus the non-empty
// field maps.
func renderText(doc *document.StructuredDocument) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%d pages)\n", doc.Document.DocumentType, doc.Document.TotalPages)
	if doc.Document.EnvelopeID != "" {
		fmt.Fprintf(&sb, "Envelope: %s\n", doc.Document.EnvelopeID)
	}
	for _, page := range doc.Pages {
		fmt.Fprintf(&sb, "\n=== Page %d: %s ===\n", page.Page, page.Section)
		writeFields(&sb, "form_fields", page.FormFields)
		writeFields(&sb, "signatures", page.Signatures)
		writeFields(&sb, "part_b", page.PartB)
		writeFields(&sb, "tables", page.Tables)
		writeFields(&sb, "third_party_payment_form", page.ThirdParty)
	}
	return sb.String()
}

func writeFields(sb *strings.Builder, name string, fields document.FieldMap) {
	if len(fields) == 0 {
		return
	}
	fmt.Fprintf(sb, "[%s]\n", name)
	for _, key := range sortedFieldKeys(fields) {
		fmt.Fprintf(sb, "  %s: %v\n", key, fields[key])
	}
}

func sortedFieldKeys(fields document.FieldMap) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
