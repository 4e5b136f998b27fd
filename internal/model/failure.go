package model

import (
	"errors"
	"fmt"
)

// FailureKind identifies a terminal, non-retryable computation failure.
// These reflect invalid input or insufficient historical data, never
// transient faults, so callers should not retry.
type FailureKind string

const (
	InvalidWindow        FailureKind = "INVALID_WINDOW"
	OutOfSeason          FailureKind = "OUT_OF_SEASON"
	NoData               FailureKind = "NO_DATA"
	InsufficientBaseline FailureKind = "INSUFFICIENT_BASELINE"
	InvalidCommitment    FailureKind = "INVALID_COMMITMENT"
	UnsupportedDuration  FailureKind = "UNSUPPORTED_DURATION"
	MalformedSample      FailureKind = "MALFORMED_SAMPLE"
)

// Failure is a typed domain error. Details carries structured context
// (e.g. the number of qualifying days found) for the serving layer.
type Failure struct {
	Kind    FailureKind
	Message string
	Details map[string]interface{}
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func NewFailure(kind FailureKind, format string, args ...interface{}) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the failure kind from an error chain.
func KindOf(err error) (FailureKind, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind, true
	}
	return "", false
}
