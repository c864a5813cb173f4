// Package pipeline provides the top-level orchestration for roadmap
// generation: prompt building, the grounded model call, parsing and schema
// validation, grounding enforcement, the reachability pass, and transactional
// persistence. The stages run strictly forward; any failure maps to exactly
// one user-facing GenerationError.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careerlockin/careerlockin/internal/db"
	"github.com/careerlockin/careerlockin/internal/grounding"
	"github.com/careerlockin/careerlockin/internal/llm"
	"github.com/careerlockin/careerlockin/internal/prompts"
	"github.com/careerlockin/careerlockin/internal/schemas"
	"github.com/careerlockin/careerlockin/internal/types"
)

// invokeTimeout bounds the model call. The provider applies its own limits,
// but a generation request must never hang a worker indefinitely.
const invokeTimeout = 120 * time.Second

// ProfileStore returns the generation parameters for a user.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error)
}

// RoadmapStore persists completed roadmaps and answers ownership queries.
// When enforceSingle is set the store must re-check ownership inside the
// write transaction and return db.ErrRoadmapExists instead of writing a
// second roadmap.
type RoadmapStore interface {
	SaveRoadmap(ctx context.Context, userID uuid.UUID, modelName string, rm *types.Roadmap, enforceSingle bool) (uuid.UUID, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// EntitlementStore answers whether a user may generate unlimited roadmaps.
type EntitlementStore interface {
	HasUnlimitedGeneration(ctx context.Context, userID uuid.UUID) (bool, error)
}

// Result is the outcome of a successful generation.
type Result struct {
	RoadmapID uuid.UUID
	Roadmap   *types.Roadmap
	ModelName string
}

// Generator runs the roadmap generation pipeline. All collaborators are
// injected; the generator holds no hidden module-level state.
type Generator struct {
	llm          llm.Client
	profiles     ProfileStore
	roadmaps     RoadmapStore
	entitlements EntitlementStore
	verifier     grounding.URLVerifier
	validate     *validator.Validate
	log          zerolog.Logger
}

// NewGenerator wires a Generator from its collaborators.
func NewGenerator(client llm.Client, profiles ProfileStore, roadmaps RoadmapStore, entitlements EntitlementStore, verifier grounding.URLVerifier, log zerolog.Logger) *Generator {
	return &Generator{
		llm:          client,
		profiles:     profiles,
		roadmaps:     roadmaps,
		entitlements: entitlements,
		verifier:     verifier,
		validate:     validator.New(),
		log:          log,
	}
}

// Generate runs the full pipeline for one user. On failure it returns a
// *GenerationError whose message is safe to show to the user; the internal
// cause is logged here with a hint for common root causes.
func (g *Generator) Generate(ctx context.Context, userID uuid.UUID) (*Result, error) {
	runID := uuid.New()
	log := g.log.With().Str("run_id", runID.String()).Str("user_id", userID.String()).Logger()

	// Profile lookup and validation.
	profile, err := g.profiles.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, g.fail(log, "load_profile", newError(KindProfileMissing, err), "user has not completed onboarding")
		}
		return nil, g.fail(log, "load_profile", newError(KindUnknown, err), "profile store unavailable")
	}
	if err := g.validate.Struct(profile); err != nil {
		return nil, g.fail(log, "validate_profile", newError(KindProfileInvalid, err), "profile fields out of range")
	}

	// Eligibility gate. The store re-checks inside the write transaction;
	// this early check exists to refuse before paying for a model call.
	unlimited, err := g.entitlements.HasUnlimitedGeneration(ctx, userID)
	if err != nil {
		return nil, g.fail(log, "check_entitlement", newError(KindUnknown, err), "entitlement store unavailable")
	}
	if !unlimited {
		owned, err := g.roadmaps.CountByUser(ctx, userID)
		if err != nil {
			return nil, g.fail(log, "check_eligibility", newError(KindUnknown, err), "roadmap store unavailable")
		}
		if owned >= 1 {
			return nil, g.fail(log, "check_eligibility", newError(KindPolicyDenied, nil), "user already owns a roadmap")
		}
	}

	// BuildPrompt.
	system := prompts.MustGet("roadmap.json", "system")
	user := buildUserPrompt(profile)
	log.Info().Str("stage", "build_prompt").Str("target_role", profile.TargetRole).Msg("prompt assembled")

	// InvokeModel.
	invokeCtx, cancel := context.WithTimeout(ctx, invokeTimeout)
	defer cancel()
	modelResult, err := g.llm.GenerateGrounded(invokeCtx, system, user)
	if err != nil {
		genErr, hint := classifyProviderError(err)
		return nil, g.fail(log, "invoke_model", genErr, hint)
	}
	log.Info().Str("stage", "invoke_model").Int("trace_events", len(modelResult.Trace)).Msg("model responded")

	// ParseJSON: the grounded response may wrap the JSON body in prose.
	span, err := llm.ExtractJSONObject(llm.CleanJSONBlock(modelResult.Text))
	if err != nil {
		return nil, g.fail(log, "parse_json", newError(KindMalformedResponse, err), "model emitted no JSON object")
	}

	// SchemaValidate runs on the raw span, before decoding into the typed
	// struct, so a document that parses but breaks the contract (wrong
	// types included) surfaces as a schema violation with field paths
	// rather than a decode error.
	if err := schemas.ValidateRoadmap(span); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			genErr := newError(KindSchemaViolation, err)
			genErr.Violations = ve.Errors
			for _, v := range ve.Errors {
				log.Warn().Str("stage", "schema_validate").Str("field", v.Field).Msg(v.Message)
			}
			return nil, g.fail(log, "schema_validate", genErr, "model ignored the output contract")
		}
		// The span balanced its braces but is not parseable JSON.
		return nil, g.fail(log, "schema_validate", newError(KindMalformedResponse, err), "model emitted invalid JSON")
	}

	var roadmap types.Roadmap
	if err := json.Unmarshal([]byte(span), &roadmap); err != nil {
		return nil, g.fail(log, "parse_json", newError(KindMalformedResponse, err), "schema-valid document failed to decode")
	}

	// BuildRegistry, EnforceGrounding, VerifyReachability. These stages
	// cannot fail the run; substitution is the designed recovery mechanism.
	registry := grounding.BuildRegistry(modelResult.Trace)
	grounding.Enforce(&roadmap, registry)
	if err := grounding.VerifyReachability(ctx, &roadmap, g.verifier); err != nil {
		return nil, g.fail(log, "verify_reachability", newError(KindUnknown, err), "generation cancelled mid-flight")
	}
	logStatusCounts(log, &roadmap, registry)

	// Standalone https sanity assertion; unreachable through the pipeline.
	if bad := roadmap.AssertHTTPSOnly(); len(bad) > 0 {
		err := fmt.Errorf("non-https resource URLs survived the pipeline: %v", bad)
		return nil, g.fail(log, "assert_https", newError(KindUnknown, err), "grounding enforcement bug")
	}

	// Persist: one transaction, all-or-nothing.
	roadmapID, err := g.roadmaps.SaveRoadmap(ctx, userID, g.llm.ModelName(), &roadmap, !unlimited)
	if err != nil {
		if errors.Is(err, db.ErrRoadmapExists) {
			return nil, g.fail(log, "persist", newError(KindPolicyDenied, err), "concurrent generation lost the eligibility race")
		}
		genErr, hint := classifyPersistError(err)
		return nil, g.fail(log, "persist", genErr, hint)
	}

	log.Info().Str("stage", "done").Str("roadmap_id", roadmapID.String()).Msg("roadmap persisted")
	return &Result{RoadmapID: roadmapID, Roadmap: &roadmap, ModelName: g.llm.ModelName()}, nil
}

// fail logs a stage failure with its hint and returns the error unchanged.
func (g *Generator) fail(log zerolog.Logger, stage string, genErr *GenerationError, hint string) *GenerationError {
	ev := log.Error().Str("stage", stage).Str("kind", string(genErr.Kind)).Str("hint", hint)
	if genErr.Cause != nil {
		ev = ev.Err(genErr.Cause)
	}
	ev.Msg("generation failed")
	return genErr
}

// buildUserPrompt renders the per-user instruction from profile fields. Pure
// string assembly: no conditionals affect correctness beyond inclusion of
// the optional context lines.
func buildUserPrompt(profile *types.Profile) string {
	var optional strings.Builder
	if profile.TargetTimeline != "" {
		optional.WriteString("\nTarget timeline: " + profile.TargetTimeline)
	}
	if len(profile.PriorExposure) > 0 {
		optional.WriteString("\nPrior exposure: " + strings.Join(profile.PriorExposure, ", "))
	}
	if profile.LearningPreference != "" {
		optional.WriteString("\nLearning preference: " + profile.LearningPreference)
	}

	template := prompts.MustGet("roadmap.json", "generate")
	return prompts.Format(template, map[string]string{
		"TargetRole":      profile.TargetRole,
		"SkillLevel":      profile.SkillLevel,
		"WeeklyHours":     fmt.Sprintf("%d", profile.WeeklyHours),
		"HorizonWeeks":    fmt.Sprintf("%d", profile.HorizonWeeks),
		"Goal":            profile.Goal,
		"OptionalContext": optional.String(),
	})
}

// logStatusCounts records how grounding and reachability settled.
func logStatusCounts(log zerolog.Logger, roadmap *types.Roadmap, registry *grounding.Registry) {
	counts := map[types.VerificationStatus]int{}
	roadmap.EachResource(func(_ *types.Step, res *types.Resource) {
		counts[res.Verification]++
	})
	log.Info().
		Str("stage", "grounding").
		Int("registry_sources", registry.Len()).
		Int("verified", counts[types.StatusVerified]).
		Int("unverified", counts[types.StatusUnverified]).
		Int("fallback", counts[types.StatusFallback]).
		Msg("resource statuses finalized")
}
