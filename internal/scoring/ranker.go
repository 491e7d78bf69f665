package scoring

import (
	"fmt"
	"sort"
	"time"
)

// DefaultSuggestionLimit is how many tasks Suggest returns unless configured otherwise.
const DefaultSuggestionLimit = 3

// Explanation bands, checked highest first. The thresholds are fixed and do
// not follow Rules.
const (
	BandOverdue   = "Overdue task!"
	BandDueSoon   = "Due soon"
	BandImportant = "Important task"
)

// Suggestion pairs a scored task with a readable reason for its rank.
type Suggestion struct {
	Task        Task   `json:"task"`
	Explanation string `json:"explanation"`
}

// Explanation pairs a scored task with its factor breakdown.
type Explanation struct {
	Task         Task           `json:"task"`
	DaysUntilDue int            `json:"days_until_due"`
	Factors      []FactorResult `json:"factors"`
}

// Ranker validates, scores and orders batches of tasks. It is safe for
// concurrent use.
type Ranker struct {
	scorer *Scorer
	limit  int
}

// NewRanker creates a Ranker. A non-positive limit falls back to DefaultSuggestionLimit.
func NewRanker(s *Scorer, suggestionLimit int) *Ranker {
	if suggestionLimit <= 0 {
		suggestionLimit = DefaultSuggestionLimit
	}
	return &Ranker{scorer: s, limit: suggestionLimit}
}

// SuggestionLimit returns the maximum length of a Suggest result.
func (r *Ranker) SuggestionLimit() int { return r.limit }

type scoredTask struct {
	task   Task
	result Result
}

// score validates every task, then scores each one and orders the batch by
// score descending. Equal scores keep their batch order. The input is not
// modified.
func (r *Ranker) score(batch []Task, today time.Time) ([]scoredTask, error) {
	for i := range batch {
		if missing := batch[i].missingFields(); len(missing) > 0 {
			return nil, &ValidationError{Index: i, Fields: missing}
		}
	}

	out := make([]scoredTask, 0, len(batch))
	for i := range batch {
		res, err := r.scorer.Score(&batch[i], today)
		if err != nil {
			return nil, &ParseError{Index: i, Value: batch[i].DueDate.String(), Err: err}
		}
		out = append(out, scoredTask{task: batch[i].withScore(res.Score), result: res})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].result.Score > out[j].result.Score
	})
	return out, nil
}

// Rank returns every task of the batch with its score attached, highest first.
func (r *Ranker) Rank(batch []Task, today time.Time) ([]Task, error) {
	scored, err := r.score(batch, today)
	if err != nil {
		return nil, err
	}
	tasks := make([]Task, len(scored))
	for i, s := range scored {
		tasks[i] = s.task
	}
	return tasks, nil
}

// Suggest returns the highest-scoring tasks, at most SuggestionLimit of them,
// each with a band explanation.
func (r *Ranker) Suggest(batch []Task, today time.Time) ([]Suggestion, error) {
	scored, err := r.score(batch, today)
	if err != nil {
		return nil, err
	}
	if len(scored) > r.limit {
		scored = scored[:r.limit]
	}
	suggestions := make([]Suggestion, len(scored))
	for i, s := range scored {
		suggestions[i] = Suggestion{Task: s.task, Explanation: ExplainScore(s.result.Score)}
	}
	return suggestions, nil
}

// Explain ranks the batch like Rank and attaches each task's factor breakdown.
func (r *Ranker) Explain(batch []Task, today time.Time) ([]Explanation, error) {
	scored, err := r.score(batch, today)
	if err != nil {
		return nil, err
	}
	out := make([]Explanation, len(scored))
	for i, s := range scored {
		out[i] = Explanation{Task: s.task, DaysUntilDue: s.result.DaysUntilDue, Factors: s.result.Factors}
	}
	return out, nil
}

// Band maps a score to its explanation text.
func Band(score int) string {
	switch {
	case score >= 100:
		return BandOverdue
	case score >= 50:
		return BandDueSoon
	default:
		return BandImportant
	}
}

// ExplainScore formats the suggestion text for a score.
func ExplainScore(score int) string {
	return fmt.Sprintf("Priority score: %d - %s", score, Band(score))
}
