package generator

import (
	"errors"
	"fmt"
)

var ErrNoBackend = errors.New("no generation backend configured")

type Attempt struct {
	Backend string
	Err     error
}

// Result is the outcome of trying one or more backends in turn. Backend is
// empty when none of them produced text.
type Result struct {
	Text     string
	Backend  string
	Attempts []Attempt
}

func (r Result) OK() bool {
	return len(r.Backend) > 0
}

// Err describes why no backend answered. It is nil when one did.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}

	if len(r.Attempts) == 0 {
		return ErrNoBackend
	}

	errs := make([]error, 0, len(r.Attempts))
	for _, a := range r.Attempts {
		if a.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", a.Backend, a.Err))
		}
	}

	return errors.Join(errs...)
}

// LastErr is the error of the final failed attempt.
func (r Result) LastErr() error {
	for i := len(r.Attempts) - 1; i >= 0; i-- {
		if r.Attempts[i].Err != nil {
			return r.Attempts[i].Err
		}
	}
	if r.OK() {
		return nil
	}
	return ErrNoBackend
}
