package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Triage/internal/hermes"
	"github.com/MikeSquared-Agency/Triage/internal/scoring"
)

type TasksHandler struct {
	ranker   *scoring.Ranker
	hermes   hermes.Client
	clock    func() time.Time
	maxBytes int64
	logger   *slog.Logger
}

func NewTasksHandler(rk *scoring.Ranker, h hermes.Client, clock func() time.Time, maxBytes int64, logger *slog.Logger) *TasksHandler {
	if clock == nil {
		clock = time.Now
	}
	return &TasksHandler{ranker: rk, hermes: h, clock: clock, maxBytes: maxBytes, logger: logger}
}

// Analyze handles POST /api/tasks/analyze: the whole batch, scored, highest first.
func (h *TasksHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	batch, ok := h.readBatch(w, r, "analyze")
	if !ok {
		return
	}

	ranked, err := h.ranker.Rank(batch, h.clock())
	if err != nil {
		h.fail(w, r, "analyze", err)
		return
	}

	top := 0
	for i, t := range ranked {
		taskScores.Observe(float64(*t.Score))
		if i == 0 {
			top = *t.Score
		}
	}
	h.publish(r, "analyze", hermes.SubjectBatchRanked, len(batch), len(ranked), top)

	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": ranked})
}

// Suggest handles POST /api/tasks/suggest: the top tasks with a band explanation.
func (h *TasksHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	batch, ok := h.readBatch(w, r, "suggest")
	if !ok {
		return
	}

	suggestions, err := h.ranker.Suggest(batch, h.clock())
	if err != nil {
		h.fail(w, r, "suggest", err)
		return
	}

	top := 0
	if len(suggestions) > 0 {
		top = *suggestions[0].Task.Score
	}
	h.publish(r, "suggest", hermes.SubjectBatchSuggested, len(batch), len(suggestions), top)

	writeJSON(w, http.StatusOK, map[string]interface{}{"suggestions": suggestions})
}

func (h *TasksHandler) readBatch(w http.ResponseWriter, r *http.Request, endpoint string) ([]scoring.Task, bool) {
	batch, err := decodeBatch(w, r, h.maxBytes)
	if err != nil {
		var re *requestError
		if errors.As(err, &re) {
			batchFailures.WithLabelValues(endpoint, "request").Inc()
			h.logger.Debug("rejected request",
				"endpoint", endpoint,
				"status", re.status,
				"message", re.message,
				"error", re.err,
			)
			writeError(w, re.status, re.message)
			return nil, false
		}
		h.fail(w, r, endpoint, err)
		return nil, false
	}
	batchSize.WithLabelValues(endpoint).Observe(float64(len(batch)))
	return batch, true
}

func (h *TasksHandler) fail(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	status, msg, reason := statusForError(err)
	batchFailures.WithLabelValues(endpoint, reason).Inc()
	attrs := []any{
		"endpoint", endpoint,
		"status", status,
		"error", err,
		"request_id", chiMiddleware.GetReqID(r.Context()),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("batch failed", attrs...)
	} else {
		h.logger.Debug("batch rejected", attrs...)
	}
	writeError(w, status, msg)
}

func (h *TasksHandler) publish(r *http.Request, endpoint string, subject func(string) string, count, returned, top int) {
	if h.hermes == nil {
		return
	}
	batchID := uuid.NewString()
	err := h.hermes.Publish(subject(batchID), hermes.BatchScoredEvent{
		BatchID:   batchID,
		Endpoint:  endpoint,
		TaskCount: count,
		TopScore:  top,
		Returned:  returned,
		ScoredAt:  time.Now().UTC(),
	})
	if err != nil {
		h.logger.Warn("failed to publish batch event",
			"endpoint", endpoint,
			"batch_id", batchID,
			"request_id", chiMiddleware.GetReqID(r.Context()),
			"error", err,
		)
	}
}

// statusForError maps a scoring failure to its HTTP status, client message
// and metrics reason.
func statusForError(err error) (int, string, string) {
	var ve *scoring.ValidationError
	var pe *scoring.ParseError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest,
			fmt.Sprintf("Missing required fields: %s (task %d)", strings.Join(ve.Fields, ", "), ve.Index),
			"validation"
	case errors.As(err, &pe):
		return http.StatusBadRequest,
			fmt.Sprintf("Invalid due_date %q for task %d: expected YYYY-MM-DD", pe.Value, pe.Index),
			"parse"
	default:
		return http.StatusInternalServerError, "Server error: " + err.Error(), "internal"
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
