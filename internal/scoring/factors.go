package scoring

import (
	"fmt"
	"strconv"
	"time"
)

// FactorResult captures one term's contribution to the total score.
type FactorResult struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
	// Defaulted is true when the task omitted the field and the rule default applied.
	Defaulted bool   `json:"defaulted"`
	Reason    string `json:"reason"`
}

// DaysUntil returns the signed number of calendar days from today to due.
// Negative means overdue. Counting on Unix seconds keeps distant dates exact,
// where time.Duration saturates at about 292 years.
func DaysUntil(due, today time.Time) int {
	const secondsPerDay = 24 * 60 * 60
	return int((civilDate(due).Unix() - civilDate(today).Unix()) / secondsPerDay)
}

// --- Individual factor calculators ---

// UrgencyFactor awards the overdue bonus for past due dates and the due-soon
// bonus when the task is due within the window, today included.
func UrgencyFactor(days int, r Rules) FactorResult {
	switch {
	case days < 0:
		return FactorResult{Name: "urgency", Points: r.OverdueBonus, Reason: fmt.Sprintf("overdue by %d days", -days)}
	case days <= r.DueSoonDays:
		reason := "due today"
		if days > 0 {
			reason = fmt.Sprintf("due in %d days", days)
		}
		return FactorResult{Name: "urgency", Points: r.DueSoonBonus, Reason: reason}
	default:
		return FactorResult{Name: "urgency", Points: 0, Reason: fmt.Sprintf("due in %d days", days)}
	}
}

// ImportanceFactor scales the task's importance by the multiplier.
func ImportanceFactor(t *Task, r Rules) FactorResult {
	importance, defaulted := r.DefaultImportance, true
	if t.Importance != nil {
		importance, defaulted = *t.Importance, false
	}
	return FactorResult{
		Name:      "importance",
		Points:    importance * r.ImportanceMultiplier,
		Defaulted: defaulted,
		Reason:    fmt.Sprintf("importance %d x %d", importance, r.ImportanceMultiplier),
	}
}

// QuickWinFactor awards a flat bonus to tasks estimated below the threshold.
func QuickWinFactor(t *Task, r Rules) FactorResult {
	hours, defaulted := r.DefaultEstimatedHours, true
	if t.EstimatedHours != nil {
		hours, defaulted = *t.EstimatedHours, false
	}
	h := strconv.FormatFloat(hours, 'f', -1, 64)
	limit := strconv.FormatFloat(r.QuickWinHours, 'f', -1, 64)
	if hours < r.QuickWinHours {
		return FactorResult{Name: "quick_win", Points: r.QuickWinBonus, Defaulted: defaulted, Reason: h + "h is under " + limit + "h"}
	}
	return FactorResult{Name: "quick_win", Points: 0, Defaulted: defaulted, Reason: h + "h is not under " + limit + "h"}
}
