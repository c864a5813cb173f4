package llm

import (
	"errors"
	"strings"

	"google.golang.org/genai"
)

// ErrorCategory is a coarse classification of provider failures, used by the
// orchestrator to choose a user-facing message. Raw provider error text never
// reaches end users.
type ErrorCategory string

// Provider failure categories.
const (
	CategoryAuth          ErrorCategory = "auth"
	CategoryQuota         ErrorCategory = "quota"
	CategoryModelNotFound ErrorCategory = "model_not_found"
	CategoryUnavailable   ErrorCategory = "unavailable"
	CategoryUnknown       ErrorCategory = "unknown"
)

// Categorize classifies a provider error. Structured API error codes are
// inspected first; substring matching on the message is a documented
// best-effort fallback for errors the SDK surfaces as plain strings.
func Categorize(err error) ErrorCategory {
	if err == nil {
		return CategoryUnknown
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 401 || apiErr.Code == 403:
			return CategoryAuth
		case apiErr.Code == 429:
			return CategoryQuota
		case apiErr.Code == 404:
			return CategoryModelNotFound
		case apiErr.Code >= 500:
			return CategoryUnavailable
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") ||
		strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "unauthenticated") ||
		strings.Contains(msg, "permission denied"):
		return CategoryAuth
	case strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "resource exhausted") ||
		strings.Contains(msg, "too many requests"):
		return CategoryQuota
	case strings.Contains(msg, "not found") && strings.Contains(msg, "model"):
		return CategoryModelNotFound
	case strings.Contains(msg, "unavailable") ||
		strings.Contains(msg, "overloaded") ||
		strings.Contains(msg, "deadline exceeded") ||
		strings.Contains(msg, "timeout"):
		return CategoryUnavailable
	}

	return CategoryUnknown
}
