package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestUserMessages_CoverEveryKind(t *testing.T) {
	kinds := []ErrorKind{
		KindPolicyDenied,
		KindProfileMissing,
		KindProfileInvalid,
		KindModelUnavailable,
		KindMalformedResponse,
		KindSchemaViolation,
		KindPersistenceFailure,
		KindUnknown,
	}
	for _, kind := range kinds {
		msg, ok := userMessages[kind]
		require.True(t, ok, "kind %s has no user message", kind)
		assert.NotEmpty(t, msg)
	}
}

func TestGenerationError_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	genErr := newError(KindPersistenceFailure, cause)

	assert.ErrorIs(t, genErr, cause)
	assert.Contains(t, genErr.Error(), "persistence_failure")
	assert.Contains(t, genErr.Error(), "connection refused")
	assert.Equal(t, userMessages[KindPersistenceFailure], genErr.UserMessage())

	// Without a cause the string form is just the kind.
	bare := newError(KindPolicyDenied, nil)
	assert.Equal(t, "policy_denied", bare.Error())
}

func TestClassifyProviderError_Hints(t *testing.T) {
	cases := []struct {
		name string
		err  error
		hint string
	}{
		{"auth", genai.APIError{Code: 401, Message: "API key not valid"}, "check GEMINI_API_KEY"},
		{"quota", genai.APIError{Code: 429, Message: "resource exhausted"}, "provider quota or rate limit hit"},
		{"missing model", genai.APIError{Code: 404, Message: "model not found"}, "configured model name does not exist"},
		{"outage", fmt.Errorf("call: %w", genai.APIError{Code: 503, Message: "overloaded"}), "provider outage or timeout, likely transient"},
		{"opaque", errors.New("something odd"), "unclassified provider error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			genErr, hint := classifyProviderError(tc.err)
			assert.Equal(t, KindModelUnavailable, genErr.Kind)
			assert.Equal(t, tc.hint, hint)
		})
	}
}

func TestClassifyPersistError_MissingColumnHint(t *testing.T) {
	genErr, hint := classifyPersistError(errors.New(`ERROR: column "source_id" does not exist (SQLSTATE 42703)`))
	assert.Equal(t, KindPersistenceFailure, genErr.Kind)
	assert.Equal(t, "database schema out of date, run migrations", hint)

	genErr, hint = classifyPersistError(errors.New("connection reset by peer"))
	assert.Equal(t, KindPersistenceFailure, genErr.Kind)
	assert.Equal(t, "database write failed", hint)
}
