package scoring

import (
	"fmt"
)

// Rules holds the point values of the additive priority score.
type Rules struct {
	OverdueBonus         int
	DueSoonBonus         int
	DueSoonDays          int
	ImportanceMultiplier int
	QuickWinBonus        int
	QuickWinHours        float64

	// Applied when a task omits the field.
	DefaultImportance     int
	DefaultEstimatedHours float64
}

// DefaultRules returns the standard point system.
func DefaultRules() Rules {
	return Rules{
		OverdueBonus:          100,
		DueSoonBonus:          50,
		DueSoonDays:           3,
		ImportanceMultiplier:  5,
		QuickWinBonus:         10,
		QuickWinHours:         2,
		DefaultImportance:     5,
		DefaultEstimatedHours: 1,
	}
}

// Validate rejects rule sets whose windows cannot be evaluated.
func (r Rules) Validate() error {
	if r.DueSoonDays < 0 {
		return fmt.Errorf("due-soon window is %d days, must not be negative", r.DueSoonDays)
	}
	if r.QuickWinHours <= 0 {
		return fmt.Errorf("quick-win threshold is %.2f hours, must be positive", r.QuickWinHours)
	}
	return nil
}
