package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avernik/doctrina/internal/law"
	"github.com/avernik/doctrina/internal/llm"
	"github.com/avernik/doctrina/internal/loader"
	"github.com/avernik/doctrina/internal/report"
	"github.com/avernik/doctrina/internal/worker"
)

var (
	outJSON        string
	outYAML        string
	workers        int
	compareTimeout time.Duration
	llmEnabled     bool
	llmProvider    string
	llmModel       string
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <document>",
	Short: "Compare every pair of holdings in a document",
	Long: `Compare loads a YAML or JSON document of holdings and relates every
pair: contradiction, implication, or same meaning, each backed by an
assignment of generic terms that witnesses the relation. With a second
document, every holding of the first is compared to every holding of
the second.

Example:
  doctrina compare cases/oracle.yaml
  doctrina compare cases/oracle.yaml cases/lotus.yaml
  doctrina compare cases/oracle.yaml --json report.json
  doctrina compare cases/oracle.yaml --llm --llm-model gpt-4o-mini`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	compareCmd.Flags().StringVar(&outYAML, "yaml", "", "output YAML path")
	compareCmd.Flags().IntVar(&workers, "workers", 4, "concurrent comparison workers")
	compareCmd.Flags().DurationVar(&compareTimeout, "timeout", 2*time.Minute, "overall comparison timeout")

	compareCmd.Flags().BoolVar(&llmEnabled, "llm", false, "attach a generated summary to the report")
	compareCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	compareCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runCompare(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), compareTimeout)
	defer cancel()

	doc, err := loader.LoadFile(path)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d holdings from %s\n", len(doc.Holdings), path)
	}

	comparer := worker.NewComparer(workers)
	source := path
	holdings := doc.Holdings
	var comparisons []*worker.Comparison

	if len(args) == 2 {
		other, err := loader.LoadFile(args[1])
		if err != nil {
			return fmt.Errorf("load document: %w", err)
		}
		// Indexes in the report run through the first document's
		// holdings, then the second's.
		comparisons = comparer.CompareAcross(ctx, doc.Holdings, other.Holdings)
		for _, c := range comparisons {
			c.RightIndex += len(doc.Holdings)
		}
		holdings = append(append([]*law.Holding{}, doc.Holdings...), other.Holdings...)
		source = path + " vs " + args[1]
	} else {
		comparisons = comparer.CompareAll(ctx, doc.Holdings)
	}

	r := report.Build(source, holdings, comparisons)

	if llmEnabled {
		if err := attachSummary(ctx, r); err != nil {
			return err
		}
	}

	wrote := false
	if outJSON != "" {
		data, err := r.JSON()
		if err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if err := os.WriteFile(outJSON, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", outJSON, err)
		}
		wrote = true
	}
	if outYAML != "" {
		data, err := r.YAML()
		if err != nil {
			return fmt.Errorf("render YAML: %w", err)
		}
		if err := os.WriteFile(outYAML, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", outYAML, err)
		}
		wrote = true
	}
	if !wrote {
		fmt.Print(r.Text())
	}
	return nil
}

func attachSummary(ctx context.Context, r *report.Report) error {
	cfg := DefaultConfig().llmConfig(llmProvider, llmModel)
	if cfg.APIKey == "" && cfg.Provider == "openai" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return fmt.Errorf("configure LLM: %w", err)
	}
	if provider == nil {
		return nil
	}

	resp, err := provider.Summarize(ctx, llm.SummarizeRequest{Report: r})
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	r.LLM = &report.LLMSummary{
		Provider:  provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
	}
	return nil
}
