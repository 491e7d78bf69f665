// submit_batch.go - standalone script that turns a TODO.md or JSON task file
// into a batch, checks it against the batch schema and posts it to Triage.
//
// Usage:
//
//	go run scripts/submit_batch.go -file /path/to/TODO.md -api http://localhost:8000 -endpoint suggest
//
// TODO.md items look like:
//
//	- [ ] 🔴 Renew certificates (due: 2025-01-05, hours: 1)
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const batchSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["tasks"],
  "properties": {
    "tasks": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["title", "due_date"],
        "properties": {
          "title": {"type": "string", "minLength": 1},
          "due_date": {"type": "string", "format": "date"},
          "importance": {"type": "integer"},
          "estimated_hours": {"type": "number"}
        }
      }
    }
  }
}`

type task struct {
	Title          string   `json:"title"`
	DueDate        string   `json:"due_date"`
	Importance     *int     `json:"importance,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	Section        string   `json:"section,omitempty"`
}

// Priority emoji to importance mapping
var importanceMap = map[string]int{
	"🔴": 10, // P0
	"🟠": 8,  // P1
	"🟡": 5,  // P2
	"🟢": 3,  // P3
}

var attrsPattern = regexp.MustCompile(`\(([^()]*:[^()]*)\)\s*$`)

func main() {
	file := flag.String("file", "TODO.md", "path to a TODO.md or JSON batch file")
	apiURL := flag.String("api", "http://localhost:8000", "Triage API base URL")
	endpoint := flag.String("endpoint", "analyze", "analyze, suggest or explain")
	dryRun := flag.Bool("dry-run", false, "validate and print the batch without posting")
	flag.Parse()

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read %s: %v", *file, err)
	}

	var payload []byte
	if strings.EqualFold(filepath.Ext(*file), ".json") {
		payload = data
	} else {
		tasks, err := parseTodo(bytes.NewReader(data))
		if err != nil {
			log.Fatalf("parse %s: %v", *file, err)
		}
		log.Printf("parsed %d open items from %s", len(tasks), *file)
		payload, _ = json.Marshal(map[string]interface{}{"tasks": tasks})
	}

	if err := validateBatch(payload); err != nil {
		log.Fatalf("invalid batch: %v", err)
	}

	if *dryRun {
		var pretty bytes.Buffer
		_ = json.Indent(&pretty, payload, "", "  ")
		fmt.Println(pretty.String())
		return
	}

	client := &http.Client{Timeout: 30 * time.Second}
	url := strings.TrimRight(*apiURL, "/") + "/api/tasks/" + *endpoint + "/"
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(pretty.String())
}

func validateBatch(payload []byte) error {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("batch.json", strings.NewReader(batchSchema)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("batch.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("decode batch: %w", err)
	}
	return schema.Validate(doc)
}

// parseTodo collects unchecked "- [ ]" items. Items without a due date are
// skipped since the service rejects them.
func parseTodo(r io.Reader) ([]task, error) {
	var tasks []task
	var currentSection string
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()

		// Detect section headers
		if strings.HasPrefix(line, "#") {
			currentSection = strings.TrimSpace(strings.TrimLeft(line, "# "))
			continue
		}

		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "- [ ] ") {
			continue
		}
		text := strings.TrimPrefix(trimmed, "- [ ] ")

		t := task{Section: currentSection}

		for emoji, importance := range importanceMap {
			if strings.Contains(text, emoji) {
				val := importance
				t.Importance = &val
				text = strings.TrimSpace(strings.ReplaceAll(text, emoji, ""))
				break
			}
		}

		if m := attrsPattern.FindStringSubmatchIndex(text); m != nil {
			if err := applyAttrs(&t, text[m[2]:m[3]]); err != nil {
				return nil, fmt.Errorf("%q: %w", trimmed, err)
			}
			text = strings.TrimSpace(text[:m[0]])
		}
		t.Title = text

		if t.DueDate == "" {
			log.Printf("skip %q: no due date", t.Title)
			continue
		}
		tasks = append(tasks, t)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func applyAttrs(t *task, attrs string) error {
	for _, part := range strings.Split(attrs, ",") {
		key, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		val = strings.TrimSpace(val)
		switch key {
		case "due":
			t.DueDate = val
		case "importance":
			n, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("importance %q: %w", val, err)
			}
			t.Importance = &n
		case "hours":
			h, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("hours %q: %w", val, err)
			}
			t.EstimatedHours = &h
		}
	}
	return nil
}
