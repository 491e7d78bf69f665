package scoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type dateKind int

const (
	dateUnset dateKind = iota
	dateValue
	dateText
)

// DueDate is a calendar date supplied either as a time value or as
// YYYY-MM-DD text. Text is only parsed when the task is scored.
type DueDate struct {
	kind  dateKind
	value time.Time
	text  string
}

// DateOf returns a DueDate holding the calendar date of t.
func DateOf(t time.Time) DueDate {
	return DueDate{kind: dateValue, value: t}
}

// DateText returns a DueDate holding unparsed ISO-8601 text.
func DateText(s string) DueDate {
	return DueDate{kind: dateText, text: s}
}

// IsZero reports whether no due date was supplied.
func (d DueDate) IsZero() bool { return d.kind == dateUnset }

// Date normalizes the due date to midnight UTC of its calendar day.
func (d DueDate) Date() (time.Time, error) {
	switch d.kind {
	case dateValue:
		return civilDate(d.value), nil
	case dateText:
		t, err := time.Parse(time.DateOnly, d.text)
		if err != nil {
			return time.Time{}, err
		}
		return t, nil
	default:
		return time.Time{}, ErrMissingField
	}
}

// String returns the text as supplied, or the value formatted as YYYY-MM-DD.
func (d DueDate) String() string {
	switch d.kind {
	case dateValue:
		return d.value.Format(time.DateOnly)
	case dateText:
		return d.text
	default:
		return ""
	}
}

func (d DueDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// civilDate drops the clock and zone of t, keeping the calendar date it
// shows in its own location.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Task is one record of a submitted batch. Fields the service does not know
// about are kept and written back unchanged.
type Task struct {
	Title          string
	DueDate        DueDate
	Importance     *int
	EstimatedHours *float64
	// Score is set on records returned by the Ranker. Input values are ignored.
	Score *int

	extra map[string]json.RawMessage
}

// missingFields lists the required fields t lacks, in a fixed order.
func (t *Task) missingFields() []string {
	var missing []string
	if t.Title == "" {
		missing = append(missing, "title")
	}
	if t.DueDate.IsZero() {
		missing = append(missing, "due_date")
	}
	return missing
}

func (t *Task) withScore(score int) Task {
	out := *t
	out.Score = &score
	return out
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = Task{}
	for key, val := range raw {
		if isNull(val) {
			if key != "score" && !isKnownField(key) {
				t.setExtra(key, val)
			}
			continue
		}
		switch key {
		case "title":
			if err := json.Unmarshal(val, &t.Title); err != nil {
				return &FieldError{Field: key, Err: errors.New("must be a string")}
			}
		case "due_date":
			var s string
			if err := json.Unmarshal(val, &s); err != nil {
				return &FieldError{Field: key, Err: errors.New("must be a YYYY-MM-DD string")}
			}
			t.DueDate = DateText(s)
		case "importance":
			n, err := decodeInt(val)
			if err != nil {
				return &FieldError{Field: key, Err: err}
			}
			t.Importance = &n
		case "estimated_hours":
			var h float64
			if err := json.Unmarshal(val, &h); err != nil {
				return &FieldError{Field: key, Err: errors.New("must be a number")}
			}
			t.EstimatedHours = &h
		case "score":
			// computed on output
		default:
			t.setExtra(key, val)
		}
	}
	return nil
}

func (t Task) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(t.extra)+5)
	for k, v := range t.extra {
		out[k] = v
	}
	out["title"] = t.Title
	out["due_date"] = t.DueDate
	if t.Importance != nil {
		out["importance"] = *t.Importance
	}
	if t.EstimatedHours != nil {
		out["estimated_hours"] = *t.EstimatedHours
	}
	if t.Score != nil {
		out["score"] = *t.Score
	}
	return json.Marshal(out)
}

func (t *Task) setExtra(key string, val json.RawMessage) {
	if t.extra == nil {
		t.extra = make(map[string]json.RawMessage)
	}
	t.extra[key] = val
}

func isKnownField(key string) bool {
	switch key {
	case "title", "due_date", "importance", "estimated_hours":
		return true
	}
	return false
}

func isNull(val json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(val), []byte("null"))
}

// decodeInt reads an integral JSON number without a float round trip, so
// large values echo back unchanged. Whole forms such as 7.0 are accepted.
func decodeInt(val json.RawMessage) (int, error) {
	dec := json.NewDecoder(bytes.NewReader(val))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, errors.New("must be a number")
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, errors.New("must be a number")
	}

	s := num.String()
	if whole, frac, found := strings.Cut(s, "."); found && strings.Trim(frac, "0") == "" {
		s = whole
	}
	n, err := strconv.ParseInt(s, 10, strconv.IntSize)
	if err == nil {
		return int(n), nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("out of range: %s", num)
	}

	// Exponent forms.
	f, err := strconv.ParseFloat(num.String(), 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("out of range: %s", num)
		}
		return 0, errors.New("must be a number")
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("must be an integer, got %s", num)
	}
	if f >= float64(math.MaxInt) || f < float64(math.MinInt) {
		return 0, fmt.Errorf("out of range: %s", num)
	}
	return int(f), nil
}
