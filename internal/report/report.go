// Package report assembles the outcome of a comparison run into a
// serializable document.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/avernik/doctrina/internal/law"
	"github.com/avernik/doctrina/internal/worker"
)

// Report is the complete result of comparing every pair of holdings
// in a document.
type Report struct {
	Source      string    `json:"source" yaml:"source"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	Holdings []string `json:"holdings" yaml:"holdings"`
	Pairs    []Pair   `json:"pairs" yaml:"pairs"`
	Summary  Summary  `json:"summary" yaml:"summary"`

	// LLM holds an optional generated summary. It never affects the
	// comparisons above.
	LLM *LLMSummary `json:"llm,omitempty" yaml:"llm,omitempty"`
}

// Pair records the relation found for one pair of holdings, with the
// witness explanation when one exists.
type Pair struct {
	Left        int    `json:"left" yaml:"left"`
	Right       int    `json:"right" yaml:"right"`
	Relation    string `json:"relation" yaml:"relation"`
	Explanation string `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	Error       string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary counts the relations found.
type Summary struct {
	Holdings       int `json:"holdings" yaml:"holdings"`
	Pairs          int `json:"pairs" yaml:"pairs"`
	Contradictions int `json:"contradictions" yaml:"contradictions"`
	Implications   int `json:"implications" yaml:"implications"`
	SameMeaning    int `json:"same_meaning" yaml:"same_meaning"`
	Unrelated      int `json:"unrelated" yaml:"unrelated"`
}

// LLMSummary contains an optional model-generated narrative.
type LLMSummary struct {
	Provider  string   `json:"provider,omitempty" yaml:"provider,omitempty"`
	Model     string   `json:"model,omitempty" yaml:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty" yaml:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Build assembles a report from a comparison run.
func Build(source string, holdings []*law.Holding, comparisons []*worker.Comparison) *Report {
	r := &Report{
		Source:      source,
		GeneratedAt: time.Now().UTC(),
	}
	for _, h := range holdings {
		r.Holdings = append(r.Holdings, h.String())
	}
	for _, c := range comparisons {
		pair := Pair{
			Left:     c.LeftIndex,
			Right:    c.RightIndex,
			Relation: string(c.Relation),
		}
		if c.Explanation != nil {
			pair.Explanation = c.Explanation.String()
		}
		if c.Err != nil {
			pair.Error = c.Err.Error()
		}
		r.Pairs = append(r.Pairs, pair)
		switch c.Relation {
		case law.RelationContradiction:
			r.Summary.Contradictions++
		case law.RelationImplication, worker.RelationImpliedBy:
			r.Summary.Implications++
		case law.RelationSameMeaning:
			r.Summary.SameMeaning++
		default:
			r.Summary.Unrelated++
		}
	}
	r.Summary.Holdings = len(holdings)
	r.Summary.Pairs = len(comparisons)
	return r
}

// JSON renders the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// YAML renders the report as YAML.
func (r *Report) YAML() ([]byte, error) {
	return yaml.Marshal(r)
}

// Text renders the report for terminal output.
func (r *Report) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Comparison of %d holdings from %s\n", r.Summary.Holdings, r.Source)
	fmt.Fprintf(&b, "%d pairs: %d contradictions, %d implications, %d same meaning, %d unrelated\n",
		r.Summary.Pairs, r.Summary.Contradictions, r.Summary.Implications,
		r.Summary.SameMeaning, r.Summary.Unrelated)

	for i, holding := range r.Holdings {
		fmt.Fprintf(&b, "\nHolding %d:\n%s\n", i, indent(holding))
	}
	for _, pair := range r.Pairs {
		if pair.Relation == string(worker.RelationNone) && pair.Error == "" {
			continue
		}
		fmt.Fprintf(&b, "\nHolding %d %s Holding %d", pair.Left, pair.Relation, pair.Right)
		if pair.Error != "" {
			fmt.Fprintf(&b, " (error: %s)", pair.Error)
		}
		b.WriteString("\n")
		if pair.Explanation != "" {
			b.WriteString(indent(pair.Explanation))
			b.WriteString("\n")
		}
	}
	if r.LLM != nil && r.LLM.SummaryMD != "" {
		fmt.Fprintf(&b, "\nSummary (%s %s):\n%s\n", r.LLM.Provider, r.LLM.Model, r.LLM.SummaryMD)
	}
	return b.String()
}

func indent(text string) string {
	return "  " + strings.ReplaceAll(text, "\n", "\n  ")
}
