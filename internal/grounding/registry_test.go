package grounding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerlockin/careerlockin/internal/llm"
)

func TestBuildRegistry_AssignsSequentialIDs(t *testing.T) {
	trace := []llm.ToolEvent{
		{Kind: llm.EventSearchSources, Sources: []llm.SourceRef{
			{URL: "https://react.dev/learn", Title: "Quick Start"},
			{URL: "https://www.typescriptlang.org/docs/", Title: "TS Docs"},
		}},
	}

	reg := BuildRegistry(trace)
	require.Equal(t, 2, reg.Len())

	first, ok := reg.Lookup("src_01")
	require.True(t, ok)
	assert.Equal(t, "https://react.dev/learn", first.URL)
	assert.Equal(t, "Quick Start", first.Title)

	second, ok := reg.Lookup("src_02")
	require.True(t, ok)
	assert.Equal(t, "https://www.typescriptlang.org/docs/", second.URL)
}

func TestBuildRegistry_NumbersAcrossEvents(t *testing.T) {
	trace := []llm.ToolEvent{
		{Kind: llm.EventSearchSources, Sources: []llm.SourceRef{{URL: "https://a.example"}}},
		{Kind: llm.EventSearchSources, Sources: []llm.SourceRef{{URL: "https://b.example"}}},
	}

	reg := BuildRegistry(trace)
	assert.Equal(t, []string{"src_01", "src_02"}, reg.IDs())

	b, ok := reg.Lookup("src_02")
	require.True(t, ok)
	assert.Equal(t, "https://b.example", b.URL)
}

func TestBuildRegistry_SkipsSourcesWithoutURL(t *testing.T) {
	trace := []llm.ToolEvent{
		{Kind: llm.EventSearchSources, Sources: []llm.SourceRef{
			{URL: "", Title: "no url"},
			{URL: "https://a.example"},
		}},
	}

	reg := BuildRegistry(trace)
	require.Equal(t, 1, reg.Len())

	// The empty source must not consume an id.
	a, ok := reg.Lookup("src_01")
	require.True(t, ok)
	assert.Equal(t, "https://a.example", a.URL)
}

func TestBuildRegistry_IgnoresOtherEventKinds(t *testing.T) {
	trace := []llm.ToolEvent{
		{Kind: llm.EventSearchQueries, Queries: []string{"learn react 2026"}},
		{Kind: llm.EventSearchSources, Sources: []llm.SourceRef{{URL: "https://a.example"}}},
	}

	reg := BuildRegistry(trace)
	assert.Equal(t, 1, reg.Len())
}

func TestBuildRegistry_EmptyTrace(t *testing.T) {
	reg := BuildRegistry(nil)
	assert.Equal(t, 0, reg.Len())

	_, ok := reg.Lookup("src_01")
	assert.False(t, ok)
}

func TestBuildRegistry_ZeroPaddedIDs(t *testing.T) {
	var sources []llm.SourceRef
	for i := 0; i < 12; i++ {
		sources = append(sources, llm.SourceRef{URL: "https://example.com/" + string(rune('a'+i))})
	}
	reg := BuildRegistry([]llm.ToolEvent{{Kind: llm.EventSearchSources, Sources: sources}})

	ids := reg.IDs()
	assert.Equal(t, "src_01", ids[0])
	assert.Equal(t, "src_09", ids[8])
	assert.Equal(t, "src_10", ids[9])
	assert.Equal(t, "src_12", ids[11])
}
