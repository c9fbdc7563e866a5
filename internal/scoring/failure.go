package scoring

import (
	"errors"
	"fmt"
	"strings"
)

// ErrScoringFailed matches every *Failure returned by Client.Score.
var ErrScoringFailed = errors.New("scoring failed")

// Kind classifies why a scoring call produced no result.
type Kind string

const (
	// KindInput means the CV text was empty and no remote call was made.
	KindInput Kind = "input"
	// KindRemote covers transport errors, timeouts, and provider errors.
	KindRemote Kind = "remote"
	// KindEmpty means the provider answered with a blank body.
	KindEmpty Kind = "empty"
	// KindMalformed means the body was not JSON after envelope stripping.
	KindMalformed Kind = "malformed"
	// KindSchema means the body was JSON of the wrong shape.
	KindSchema Kind = "schema"
)

// Failure is the tagged error outcome of a scoring call.
type Failure struct {
	Kind Kind
	// Fields lists the offending JSON paths for KindSchema failures.
	Fields []string
	Err    error
}

func (f *Failure) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrScoringFailed, f.Kind)
	if len(f.Fields) > 0 {
		msg += " (" + strings.Join(f.Fields, "; ") + ")"
	}
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	return msg
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func (f *Failure) Is(target error) bool {
	return target == ErrScoringFailed
}

// KindOf returns the failure kind carried by err, or "" when err is not a scoring failure.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

func fail(kind Kind, err error) *Failure {
	return &Failure{Kind: kind, Err: err}
}
