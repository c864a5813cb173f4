package server

import (
	"errors"
	"net/http"

	"github.com/careerlockin/careerlockin/internal/pipeline"
)

// statusForKind maps each generation failure kind to an HTTP status.
// Provider and storage outages are 503 so clients know to retry; model
// output defects are 502 because retrying may well succeed but the fault
// is upstream of this service.
func statusForKind(kind pipeline.ErrorKind) int {
	switch kind {
	case pipeline.KindPolicyDenied:
		return http.StatusPaymentRequired
	case pipeline.KindProfileMissing:
		return http.StatusConflict
	case pipeline.KindProfileInvalid:
		return http.StatusUnprocessableEntity
	case pipeline.KindMalformedResponse, pipeline.KindSchemaViolation:
		return http.StatusBadGateway
	case pipeline.KindModelUnavailable, pipeline.KindPersistenceFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeGenerationError renders a pipeline failure. Only the safe user
// message leaves the process; internal detail was already logged by the
// pipeline.
func (s *Server) writeGenerationError(w http.ResponseWriter, err error) {
	var genErr *pipeline.GenerationError
	if errors.As(err, &genErr) {
		s.jsonResponse(w, statusForKind(genErr.Kind), map[string]string{
			"error":   string(genErr.Kind),
			"message": genErr.UserMessage(),
		})
		return
	}
	s.errorResponse(w, http.StatusInternalServerError, "internal error")
}
