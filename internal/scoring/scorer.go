package scoring

import (
	"time"
)

// Result captures the complete scoring output for a single task.
type Result struct {
	Score        int            `json:"score"`
	DaysUntilDue int            `json:"days_until_due"`
	Factors      []FactorResult `json:"factors"`
}

// Scorer computes the additive priority score. It holds no state beyond its
// rules and never reads the clock; callers pass today explicitly.
type Scorer struct {
	rules Rules
}

// NewScorer creates a Scorer with the given rules.
func NewScorer(rules Rules) *Scorer {
	return &Scorer{rules: rules}
}

// Rules returns the point system in use.
func (s *Scorer) Rules() Rules { return s.rules }

// Score computes the full scoring result for one task. The task must carry a
// due date; an unparsable date text is returned as the time package's error.
func (s *Scorer) Score(t *Task, today time.Time) (Result, error) {
	due, err := t.DueDate.Date()
	if err != nil {
		return Result{}, err
	}
	days := DaysUntil(due, today)

	factors := []FactorResult{
		UrgencyFactor(days, s.rules),
		ImportanceFactor(t, s.rules),
		QuickWinFactor(t, s.rules),
	}

	var total int
	for _, f := range factors {
		total += f.Points
	}

	return Result{
		Score:        total,
		DaysUntilDue: days,
		Factors:      factors,
	}, nil
}

// Points is Score without the breakdown.
func (s *Scorer) Points(t *Task, today time.Time) (int, error) {
	r, err := s.Score(t, today)
	if err != nil {
		return 0, err
	}
	return r.Score, nil
}
