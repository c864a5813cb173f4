package grounding

import (
	"github.com/careerlockin/careerlockin/internal/fallback"
	"github.com/careerlockin/careerlockin/internal/linkcheck"
	"github.com/careerlockin/careerlockin/internal/types"
)

// Enforce walks every resource of the roadmap and adjudicates the model's
// grounding claims against the registry, replacing failures with fallback
// resources. It is synchronous and performs no network I/O.
//
// Per resource:
//   - no reference id, unknown id, or registry URL not exactly matching the
//     claimed URL: not grounded. Replaced wholesale with a fallback and the
//     id cleared. A real, reachable URL cited under a wrong id is still
//     rejected: only URLs traceable to an actual search result are trusted.
//   - grounded but statically invalid URL: replaced with a fallback, keeping
//     the original id to record that grounding itself succeeded.
//   - grounded and valid: kept, tentatively verified until the reachability
//     pass finalizes the status.
func Enforce(roadmap *types.Roadmap, registry *Registry) {
	roadmap.EachResource(func(step *types.Step, res *types.Resource) {
		entry, ok := registry.Lookup(res.SourceID)
		if res.SourceID == "" || !ok || entry.URL != res.URL {
			substituteFallback(step, res, "")
			return
		}

		if v := linkcheck.Validate(res.URL); v.Status == linkcheck.StatusInvalid {
			substituteFallback(step, res, res.SourceID)
			return
		}

		res.Verification = types.StatusVerified
	})
}

// substituteFallback replaces a resource with the picker's substitute for its
// step. sourceID is what remains of the grounding claim: empty when grounding
// failed, the original id when only URL policy failed.
func substituteFallback(step *types.Step, res *types.Resource, sourceID string) {
	picked := fallback.Pick(step.Title, step.Description)
	*res = types.Resource{
		Title:        picked.Title,
		URL:          picked.URL,
		Publisher:    picked.Publisher,
		Type:         types.TypeDocs,
		IsFree:       true,
		SourceID:     sourceID,
		Verification: types.StatusFallback,
	}
}
