// Package types provides type definitions for structured data used throughout the careerlockin system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// VerificationStatus is the trust tier assigned to a resource after grounding
// and reachability checks.
type VerificationStatus string

// Verification status values, from most to least trusted.
const (
	// StatusVerified means the resource matched a real search result and passed
	// a live reachability check.
	StatusVerified VerificationStatus = "verified"
	// StatusUnverified means the resource matched a real search result but
	// reachability was inconclusive.
	StatusUnverified VerificationStatus = "unverified"
	// StatusFallback means the resource was substituted because grounding or
	// URL validation failed.
	StatusFallback VerificationStatus = "fallback"
)

// ResourceType values the model may emit. Fallback resources use TypeDocs.
const (
	TypeVideo       = "video"
	TypeCourse      = "course"
	TypePlaylist    = "playlist"
	TypeCertificate = "certificate"
	TypeDocs        = "docs"
)

// Resource is a single learning resource attached to a step.
type Resource struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Publisher string `json:"publisher"`
	Type      string `json:"type"`
	IsFree    bool   `json:"is_free"`
	// SourceID is the reference id ("src_01", "src_02", ...) the model cites to
	// claim the resource came from a specific search result. Empty for
	// fallback resources.
	SourceID string `json:"source_id"`
	// Verification is derived by the pipeline; the model never sets it.
	Verification VerificationStatus `json:"verification_status,omitempty"`
}

// Step is an actionable unit of learning within a phase.
type Step struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	EstimatedHours float64    `json:"estimated_hours"`
	Order          int        `json:"order"`
	Resources      []Resource `json:"resources"`
}

// Phase is a themed stage of a roadmap containing ordered steps.
type Phase struct {
	Title string `json:"title"`
	Order int    `json:"order"`
	Steps []Step `json:"steps"`
}

// Assumptions records the profile inputs a roadmap was generated against.
type Assumptions struct {
	WeeklyHours  int    `json:"weekly_hours"`
	SkillLevel   string `json:"skill_level"`
	HorizonWeeks int    `json:"horizon_weeks"`
}

// Roadmap is a generated career-learning roadmap. It exists only in memory
// during generation and is written to storage once, after the full pipeline
// has completed.
type Roadmap struct {
	TargetRole  string      `json:"target_role"`
	Assumptions Assumptions `json:"assumptions"`
	Phases      []Phase     `json:"phases"`
}

// EachResource invokes fn for every resource in phase/step order, passing a
// pointer so callers can update resources in place.
func (r *Roadmap) EachResource(fn func(step *Step, res *Resource)) {
	for pi := range r.Phases {
		for si := range r.Phases[pi].Steps {
			step := &r.Phases[pi].Steps[si]
			for ri := range step.Resources {
				fn(step, &step.Resources[ri])
			}
		}
	}
}

// AssertHTTPSOnly reports the URLs of any resources that do not use the https
// scheme. The pipeline calls this as a final sanity assertion before
// persisting; a non-empty result indicates a bug upstream.
func (r *Roadmap) AssertHTTPSOnly() []string {
	var bad []string
	r.EachResource(func(_ *Step, res *Resource) {
		if !strings.HasPrefix(res.URL, "https:") {
			bad = append(bad, res.URL)
		}
	})
	return bad
}
