package api

import (
	"net/http"

	"github.com/MikeSquared-Agency/Triage/internal/hermes"
)

// Explain handles POST /api/tasks/explain: the ranked batch with each task's
// factor breakdown.
func (h *TasksHandler) Explain(w http.ResponseWriter, r *http.Request) {
	batch, ok := h.readBatch(w, r, "explain")
	if !ok {
		return
	}

	explanations, err := h.ranker.Explain(batch, h.clock())
	if err != nil {
		h.fail(w, r, "explain", err)
		return
	}

	top := 0
	if len(explanations) > 0 {
		top = *explanations[0].Task.Score
	}
	h.publish(r, "explain", hermes.SubjectBatchExplained, len(batch), len(explanations), top)

	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": explanations})
}
