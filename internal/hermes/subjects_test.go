package hermes

import (
	"strings"
	"testing"
)

func TestSubjectsMatchStream(t *testing.T) {
	id := "0b6f3c1e-1111-4222-8333-944445555666"
	for _, s := range []string{SubjectBatchRanked(id), SubjectBatchSuggested(id), SubjectBatchExplained(id)} {
		if !strings.HasPrefix(s, "triage.batch."+id+".") {
			t.Errorf("subject %q outside stream subjects", s)
		}
	}
	if SubjectBatchRanked(id) == SubjectBatchSuggested(id) {
		t.Error("ranked and suggested subjects must differ")
	}
}
