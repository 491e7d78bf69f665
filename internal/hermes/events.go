package hermes

import "time"

// BatchScoredEvent announces a batch that was scored successfully.
type BatchScoredEvent struct {
	BatchID   string    `json:"batch_id"`
	Endpoint  string    `json:"endpoint"`
	TaskCount int       `json:"task_count"`
	TopScore  int       `json:"top_score"`
	Returned  int       `json:"returned"`
	ScoredAt  time.Time `json:"scored_at"`
}
