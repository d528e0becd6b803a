package types

import "errors"

// Error codes surfaced to callers. Policy rejections deliberately reuse one
// generic code so a blocked user cannot tell a block from a fresh violation.
const (
	CodeAuthRequired   = "AUTH_REQUIRED"
	CodeCoordsRequired = "COORDS_REQUIRED"
	CodePrivacyBlocked = "PRIVACY_BLOCKED"
	CodeUnavailable    = "UNAVAILABLE"
)

// CodedError is a caller-facing error with a stable machine code. Suggestion
// is only set for privacy rejections (an anonymized rewrite of the input).
type CodedError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (e *CodedError) Error() string { return e.Code + ": " + e.Message }

var (
	ErrAuthRequired   = &CodedError{Code: CodeAuthRequired, Message: "user identity is required"}
	ErrCoordsRequired = &CodedError{Code: CodeCoordsRequired, Message: "valid coordinates are required"}
)

// PrivacyBlocked builds the generic policy rejection. The message is the same
// for every trigger: content match, PII match, or an active block.
func PrivacyBlocked(suggestion string) *CodedError {
	return &CodedError{
		Code:       CodePrivacyBlocked,
		Message:    "sua descrição não pôde ser publicada, revise o texto e tente novamente",
		Suggestion: suggestion,
	}
}

// Unavailable wraps exhausted-retry / infrastructure failures without leaking
// implementation detail to the caller.
func Unavailable() *CodedError {
	return &CodedError{Code: CodeUnavailable, Message: "serviço indisponível, tente novamente"}
}

// ErrCode extracts the machine code from an error chain, or "" when the error
// carries none.
func ErrCode(err error) string {
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
