package pipeline

import (
	"fmt"
	"strings"

	"github.com/careerlockin/careerlockin/internal/llm"
	"github.com/careerlockin/careerlockin/internal/schemas"
)

// ErrorKind classifies a generation failure for user-facing reporting.
type ErrorKind string

// Generation failure kinds.
const (
	KindPolicyDenied       ErrorKind = "policy_denied"
	KindProfileMissing     ErrorKind = "profile_missing"
	KindProfileInvalid     ErrorKind = "profile_invalid"
	KindModelUnavailable   ErrorKind = "model_unavailable"
	KindMalformedResponse  ErrorKind = "malformed_response"
	KindSchemaViolation    ErrorKind = "schema_violation"
	KindPersistenceFailure ErrorKind = "persistence_failure"
	KindUnknown            ErrorKind = "unknown"
)

// userMessages maps each kind to the one safe message shown to end users.
// Raw provider and database error text never leaves the process.
var userMessages = map[ErrorKind]string{
	KindPolicyDenied:       "You already have a roadmap. Upgrade to generate more.",
	KindProfileMissing:     "Complete onboarding before generating a roadmap.",
	KindProfileInvalid:     "Your profile has invalid settings. Review and try again.",
	KindModelUnavailable:   "Roadmap generation is not available right now. Try again later.",
	KindMalformedResponse:  "The generator returned an unexpected answer. Try again.",
	KindSchemaViolation:    "The generated roadmap was incomplete. Try again.",
	KindPersistenceFailure: "We could not save your roadmap. Try again in a moment.",
	KindUnknown:            "We could not create your roadmap.",
}

// GenerationError is the single error type the orchestrator returns. Message
// is always safe to show to the end user; Cause carries the internal detail
// for logging.
type GenerationError struct {
	Kind    ErrorKind
	Message string
	Cause   error
	// Violations holds the path-annotated schema violation list for
	// KindSchemaViolation, for internal diagnostics only.
	Violations []schemas.FieldError
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	}
	return string(e.Kind)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the safe end-user message for this failure.
func (e *GenerationError) UserMessage() string {
	return e.Message
}

func newError(kind ErrorKind, cause error) *GenerationError {
	return &GenerationError{Kind: kind, Message: userMessages[kind], Cause: cause}
}

// classifyProviderError maps an LLM provider failure onto the taxonomy.
// Every provider failure category surfaces as ModelUnavailable; the category
// distinction feeds the log hint, not the user message.
func classifyProviderError(err error) (*GenerationError, string) {
	hint := ""
	switch llm.Categorize(err) {
	case llm.CategoryAuth:
		hint = "check GEMINI_API_KEY"
	case llm.CategoryQuota:
		hint = "provider quota or rate limit hit"
	case llm.CategoryModelNotFound:
		hint = "configured model name does not exist"
	case llm.CategoryUnavailable:
		hint = "provider outage or timeout, likely transient"
	default:
		hint = "unclassified provider error"
	}
	return newError(KindModelUnavailable, err), hint
}

// classifyPersistError maps a storage failure onto the taxonomy. A missing
// column is the fingerprint of unapplied migrations and gets a dedicated
// hint.
func classifyPersistError(err error) (*GenerationError, string) {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "column") && strings.Contains(msg, "does not exist") {
		return newError(KindPersistenceFailure, err), "database schema out of date, run migrations"
	}
	return newError(KindPersistenceFailure, err), "database write failed"
}
