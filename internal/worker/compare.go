package worker

import (
	"context"
	"iter"
	"sort"

	"github.com/avernik/doctrina/internal/law"
)

// Relations reported for a pair beyond the ones the comparison
// methods themselves name.
const (
	RelationNone      law.Relation = "NO RELATION"
	RelationImpliedBy law.Relation = "IS IMPLIED BY"
)

// CompareJob relates one pair of holdings from a loaded document.
// The indexes identify the pair in the document's holding order.
type CompareJob struct {
	LeftIndex  int
	RightIndex int
	Left       *law.Holding
	Right      *law.Holding
}

// Comparison is the outcome for one pair. Explanation carries the
// first witness found for the reported relation, or nil for
// RelationNone.
type Comparison struct {
	LeftIndex   int
	RightIndex  int
	Relation    law.Relation
	Explanation *law.Explanation
	Err         error
}

// GetError returns the comparison's error, if any.
func (c *Comparison) GetError() error { return c.Err }

// Execute classifies the pair. Same meaning is checked before
// contradiction, and contradiction before implication, so the
// strongest relation wins.
func (j *CompareJob) Execute(ctx context.Context) Result {
	out := &Comparison{
		LeftIndex:  j.LeftIndex,
		RightIndex: j.RightIndex,
		Relation:   RelationNone,
	}
	if err := ctx.Err(); err != nil {
		out.Err = err
		return out
	}
	if expl := firstExplanation(j.Left.ExplanationsSameMeaning(j.Right, nil)); expl != nil {
		out.Relation = law.RelationSameMeaning
		out.Explanation = expl
		return out
	}
	if expl := j.Left.ExplainContradiction(j.Right); expl != nil {
		out.Relation = law.RelationContradiction
		out.Explanation = expl
		return out
	}
	if expl := j.Left.ExplainImplication(j.Right); expl != nil {
		out.Relation = law.RelationImplication
		out.Explanation = expl
		return out
	}
	if expl := j.Right.ExplainImplication(j.Left); expl != nil {
		out.Relation = RelationImpliedBy
		out.Explanation = expl
		return out
	}
	return out
}

func firstExplanation(seq iter.Seq[*law.Explanation]) *law.Explanation {
	for expl := range seq {
		return expl
	}
	return nil
}

// Comparer relates every pair of holdings in a document concurrently.
type Comparer struct {
	concurrency int
}

// NewComparer creates a comparer running at the given concurrency.
func NewComparer(concurrency int) *Comparer {
	return &Comparer{concurrency: concurrency}
}

// CompareAll relates every unordered pair of holdings and returns the
// comparisons sorted by pair position.
func (c *Comparer) CompareAll(ctx context.Context, holdings []*law.Holding) []*Comparison {
	if len(holdings) < 2 {
		return nil
	}
	return c.run(func(pool *Pool) {
		for i := range holdings {
			for j := i + 1; j < len(holdings); j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				pool.Submit(&CompareJob{
					LeftIndex:  i,
					RightIndex: j,
					Left:       holdings[i],
					Right:      holdings[j],
				})
			}
		}
	})
}

// CompareAcross relates every holding of left to every holding of
// right, for comparing two documents.
func (c *Comparer) CompareAcross(ctx context.Context, left, right []*law.Holding) []*Comparison {
	if len(left) == 0 || len(right) == 0 {
		return nil
	}
	return c.run(func(pool *Pool) {
		for i := range left {
			for j := range right {
				select {
				case <-ctx.Done():
					return
				default:
				}
				pool.Submit(&CompareJob{
					LeftIndex:  i,
					RightIndex: j,
					Left:       left[i],
					Right:      right[j],
				})
			}
		}
	})
}

// run submits jobs from one goroutine while draining results on the
// caller's, so a document with more pairs than the pool's channel
// buffers can never stall the pipeline.
func (c *Comparer) run(submit func(*Pool)) []*Comparison {
	pool := NewPool(c.concurrency)
	pool.Start()

	go func() {
		submit(pool)
		pool.Finish()
	}()

	var comparisons []*Comparison
	for result := range pool.Results() {
		comparisons = append(comparisons, result.(*Comparison))
	}
	sort.Slice(comparisons, func(a, b int) bool {
		if comparisons[a].LeftIndex != comparisons[b].LeftIndex {
			return comparisons[a].LeftIndex < comparisons[b].LeftIndex
		}
		return comparisons[a].RightIndex < comparisons[b].RightIndex
	})
	return comparisons
}
