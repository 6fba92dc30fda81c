package retry

import (
	"errors"
	"fmt"
)

// Kind classifies a remote-call failure for retry decisions.
type Kind string

const (
	// KindTransient covers network errors, timeouts, rate limits and
	// 5xx-class server errors. Retried with backoff.
	KindTransient Kind = "transient"
	// KindInvalidInput covers bad audio payloads and malformed
	// hand-offs. Never retried.
	KindInvalidInput Kind = "invalid_input"
	// KindAuthConfig covers missing or rejected credentials. Never retried.
	KindAuthConfig Kind = "auth_config"
	// KindOutputValidation covers unparsable or structurally invalid
	// model output. Retried like transient failures; the caller decides
	// what exhaustion means.
	KindOutputValidation Kind = "output_validation"
	// KindInfrastructure covers persistence failures. Never retried here.
	KindInfrastructure Kind = "infrastructure"
)

// Error is a remote-call failure tagged with its kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Transient wraps err as a retryable failure.
func Transient(err error) *Error { return &Error{Kind: KindTransient, Err: err} }

// InvalidInput wraps err as a permanent bad-input failure.
func InvalidInput(err error) *Error { return &Error{Kind: KindInvalidInput, Err: err} }

// AuthConfig wraps err as a permanent credential failure.
func AuthConfig(err error) *Error { return &Error{Kind: KindAuthConfig, Err: err} }

// OutputValidation wraps err as a retryable model-output failure.
func OutputValidation(err error) *Error { return &Error{Kind: KindOutputValidation, Err: err} }

// Infrastructure wraps err as a persistence failure.
func Infrastructure(err error) *Error { return &Error{Kind: KindInfrastructure, Err: err} }

// KindOf extracts the kind from err. Unclassified errors are treated as
// transient so that plain network failures from the HTTP stack still
// get retried.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindTransient
}

// Retryable reports whether a failure of this kind should be retried.
func (k Kind) Retryable() bool {
	return k == KindTransient || k == KindOutputValidation
}

// ExhaustedError is returned when all attempts failed. Attempts records
// how many invocations were made; the last failure is wrapped.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }
