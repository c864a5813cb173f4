// Package grounding adjudicates model-claimed resources against recorded
// search evidence: it builds the source registry from the tool trace,
// enforces grounding and static URL policy, and runs the reachability pass.
package grounding

import (
	"fmt"

	"github.com/careerlockin/careerlockin/internal/llm"
)

// Entry is one registered search result, addressable by its reference id.
type Entry struct {
	ID    string
	URL   string
	Title string
}

// Registry maps reference ids to the search results the model actually saw
// during one generation call. It is built once per call, is read-only after
// construction, and is never persisted. It is the single source of truth for
// "did the model see this URL via search".
type Registry struct {
	entries map[string]Entry
	order   []string
}

// BuildRegistry scans the ordered tool trace for search-source events and
// assigns each discovered URL a sequential reference id ("src_01", "src_02",
// ...), 1-indexed in encounter order across all matching events. Sources
// without a URL are skipped and do not consume an id. All other event kinds
// are ignored.
func BuildRegistry(trace []llm.ToolEvent) *Registry {
	r := &Registry{entries: make(map[string]Entry)}
	n := 0
	for _, ev := range trace {
		if ev.Kind != llm.EventSearchSources {
			continue
		}
		for _, src := range ev.Sources {
			if src.URL == "" {
				continue
			}
			n++
			id := fmt.Sprintf("src_%02d", n)
			r.entries[id] = Entry{ID: id, URL: src.URL, Title: src.Title}
			r.order = append(r.order, id)
		}
	}
	return r
}

// Lookup returns the entry for a reference id.
func (r *Registry) Lookup(id string) (Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	return len(r.order)
}

// IDs returns reference ids in assignment order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}
