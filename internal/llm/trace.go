package llm

// EventKind tags a tool-invocation event in a generation trace.
type EventKind string

// Event kinds the provider can emit. The grounding registry only consumes
// EventSearchSources; every other kind passes through untyped.
const (
	// EventSearchSources carries the source URLs a web-search invocation
	// returned to the model.
	EventSearchSources EventKind = "search_sources"
	// EventSearchQueries carries the queries the model issued to the search
	// tool. Recorded for diagnostics only.
	EventSearchQueries EventKind = "search_queries"
)

// SourceRef is one search result the model had access to.
type SourceRef struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// ToolEvent is one entry in the ordered tool-invocation trace of a
// generation call. Exactly the fields for its Kind are populated.
type ToolEvent struct {
	Kind    EventKind   `json:"kind"`
	Sources []SourceRef `json:"sources,omitempty"` // EventSearchSources
	Queries []string    `json:"queries,omitempty"` // EventSearchQueries
}

// Result is the raw outcome of a grounded generation call: the model's text
// output plus the ordered trace of tool invocations observed while
// producing it.
type Result struct {
	Text  string
	Trace []ToolEvent
}
