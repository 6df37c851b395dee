package retry

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrExhausted         = errors.New("retry budget exhausted")
	ErrEmptyResponse     = errors.New("empty response")
	ErrFault             = errors.New("remote fault")
	ErrMalformedResponse = errors.New("response is not a tree")
)

// ExhaustedError is returned when every attempt of a call failed.
// It matches ErrExhausted and unwraps to the last failure.
type ExhaustedError struct {
	Operation string
	Attempts  int
	Last      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s: %d attempts failed, last: %v", e.Operation, e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() []error {
	return []error{ErrExhausted, e.Last}
}

// classify turns an attempt outcome into its failure, or nil for a usable result.
func classify(raw any, err error) error {
	if err != nil {
		return err
	}

	switch r := raw.(type) {
	case nil:
		return ErrEmptyResponse
	case Fault:
		if v := reflect.ValueOf(r); v.Kind() == reflect.Ptr && v.IsNil() {
			return ErrEmptyResponse
		}

		return fmt.Errorf("%w: %s", ErrFault, r.FaultString())
	case map[string]any:
		if r == nil {
			return ErrEmptyResponse
		}
	}

	return nil
}
