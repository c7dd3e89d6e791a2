package genai

import (
	"errors"
	"fmt"
)

// FailureKind is the closed set of reasons a generation call can fail.
type FailureKind int

const (
	// TransportError covers network, status and decoding problems.
	TransportError FailureKind = iota
	// SafetyBlocked means the provider's safety filter withheld the output.
	SafetyBlocked
	// EmptyCompletion means the provider answered without any text.
	EmptyCompletion
)

func (k FailureKind) String() string {
	switch k {
	case SafetyBlocked:
		return "safety_blocked"
	case EmptyCompletion:
		return "empty_completion"
	default:
		return "transport_error"
	}
}

// Failure is returned by Client for every unsuccessful call.
type Failure struct {
	Kind   FailureKind
	Detail string
	Err    error
}

func (f *Failure) Error() string {
	msg := "genai: " + f.Kind.String()
	if f.Detail != "" {
		msg += ": " + f.Detail
	}
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	return msg
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

func transportFailure(step string, err error) *Failure {
	return &Failure{Kind: TransportError, Err: fmt.Errorf("%s: %w", step, err)}
}
