package cli

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/robotops/ro1mon/internal/errors"
)

// Machine mode flag - when true, outputs JSON and suppresses human-friendly decorations
var machineMode bool

// MachineMode returns true if machine-readable output is enabled
func MachineMode() bool {
	return machineMode
}

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --json output should use this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

// Error codes for machine-readable output.
// These map to specific actions automation can take.
const (
	ErrCodeConfigNotFound   = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    = "CONFIG_INVALID"
	ErrCodeSDKUnreachable   = "SDK_UNREACHABLE"
	ErrCodeSDKAuthFailed    = "SDK_AUTH_FAILED"
	ErrCodeSDKRequestFailed = "SDK_REQUEST_FAILED"
	ErrCodeModbusFailed     = "MODBUS_FAILED"
	ErrCodeRESTFailed       = "REST_FAILED"
	ErrCodePresetInvalid    = "PRESET_INVALID"
	ErrCodeUnknown          = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	env := JSONEnvelope{
		Success: true,
		Data:    data,
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONError writes an error response to the writer.
func WriteJSONError(w io.Writer, code, message, suggestion string, details interface{}) error {
	env := JSONEnvelope{
		Success: false,
		Error: &JSONError{
			Code:       code,
			Message:    message,
			Suggestion: suggestion,
			Details:    details,
		},
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	env := JSONEnvelope{
		Success: false,
		Error:   ErrorToJSON(err),
	}
	return writeJSONEnvelope(w, env)
}

// writeJSONEnvelope writes the envelope with consistent formatting.
func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	// Check if it's our structured error type
	if roErr, ok := err.(*errors.Error); ok {
		return &JSONError{
			Code:       mapErrorCode(roErr.Code, roErr.Message),
			Message:    roErr.Message,
			Suggestion: roErr.Suggestion,
		}
	}

	// Generic error
	return &JSONError{
		Code:    ErrCodeUnknown,
		Message: err.Error(),
	}
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(internalCode, message string) string {
	switch internalCode {
	case errors.ErrConfig:
		// Distinguish between not found and invalid
		msgLower := strings.ToLower(message)
		if strings.Contains(msgLower, "not found") || strings.Contains(msgLower, "no .ro1mon") {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	case errors.ErrSDK:
		msgLower := strings.ToLower(message)
		switch {
		case strings.Contains(msgLower, "cannot reach"):
			return ErrCodeSDKUnreachable
		case strings.Contains(msgLower, "401") || strings.Contains(msgLower, "403"):
			return ErrCodeSDKAuthFailed
		}
		return ErrCodeSDKRequestFailed
	case errors.ErrModbus:
		return ErrCodeModbusFailed
	case errors.ErrREST:
		return ErrCodeRESTFailed
	case errors.ErrPreset:
		return ErrCodePresetInvalid
	}

	return ErrCodeUnknown
}
