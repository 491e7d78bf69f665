package hermes

const (
	StreamName   = "TRIAGE_EVENTS"
	StreamMaxAge = "168h" // 7 days

	// StreamSubjects covers every per-batch subject below.
	StreamSubjects = "triage.batch.>"
)

func SubjectBatchRanked(batchID string) string    { return "triage.batch." + batchID + ".ranked" }
func SubjectBatchSuggested(batchID string) string { return "triage.batch." + batchID + ".suggested" }
func SubjectBatchExplained(batchID string) string { return "triage.batch." + batchID + ".explained" }
