package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// chatLine is one record of a chat-format JSONL dataset. Only assistant
// turns carry legal-code passages; user turns are example queries.
type chatLine struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LoadJSONL reads a chat-format JSONL file and returns the assistant-role
// contents as corpus documents, in file order.
func LoadJSONL(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var docs []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var rec chatLine
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("parse %s line %d: %w", path, lineNo, err)
		}
		if rec.Role == "assistant" && rec.Content != "" {
			docs = append(docs, rec.Content)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// ExpandPaths resolves glob patterns and keeps only .txt and .jsonl inputs.
func ExpandPaths(paths []string) []string {
	var out []string
	for _, p := range paths {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			lower := strings.ToLower(m)
			if strings.HasSuffix(lower, ".txt") || strings.HasSuffix(lower, ".jsonl") {
				out = append(out, m)
			}
		}
	}
	return out
}
