package llm

import "strings"

const (
	// authFailureSignature is what the endpoint puts in the error body when
	// it does not recognize the API key.
	authFailureSignature = "User not found"

	authErrorMessage = "API Key is invalid or expired. Please check your OpenRouter API key."
)

// AuthError means the endpoint rejected the configured credential.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return authErrorMessage }

func (e *AuthError) Unwrap() error { return e.Err }

// TransportError is any other network or service failure. Its message is the
// underlying error's message, unchanged.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// ClassifyError wraps err as an *AuthError when its message carries the
// unrecognized-credential signature and as a *TransportError otherwise.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), authFailureSignature) {
		return &AuthError{Err: err}
	}
	return &TransportError{Err: err}
}
