// Package prompts holds the model instructions as embedded JSON documents.
// Each file maps prompt names to template text; templates use {{.Key}}
// placeholders filled in by Format.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// parsed memoizes decoded prompt files so a file is unmarshaled at most
// once per process.
var (
	parsedMu sync.RWMutex
	parsed   = make(map[string]map[string]string)
)

// Get returns the prompt stored under key in the named embedded file.
func Get(filename, key string) (string, error) {
	doc, err := load(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := doc[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for prompts the pipeline cannot run without; a missing
// prompt is a build defect, not a runtime condition.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format substitutes {{.Key}} placeholders in a prompt template with values
// from data. Placeholders without a matching key are left in place.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{.%s}}", key), value)
	}
	return result
}

func load(filename string) (map[string]string, error) {
	parsedMu.RLock()
	doc, ok := parsed[filename]
	parsedMu.RUnlock()
	if ok {
		return doc, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	parsedMu.Lock()
	parsed[filename] = doc
	parsedMu.Unlock()
	return doc, nil
}

// ClearCache drops all memoized prompt files. Tests use it for isolation.
func ClearCache() {
	parsedMu.Lock()
	parsed = make(map[string]map[string]string)
	parsedMu.Unlock()
}
