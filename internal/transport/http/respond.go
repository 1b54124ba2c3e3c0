package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "jobgate/pkg/domain-errors"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError translates domain error codes into HTTP statuses with a
// consistent JSON envelope.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeInternal
	var de *dErrors.Error
	if errors.As(err, &de) {
		code = de.Code
	}
	writeJSON(w, toStatus(code), map[string]string{
		"error":   string(code),
		"message": err.Error(),
	})
}

func toStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeAuthRejected:
		return http.StatusUnauthorized
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeNetwork, dErrors.CodeVerificationFetch:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
