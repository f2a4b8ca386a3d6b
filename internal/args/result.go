package args

import "github.com/herald-tools/herald/internal/usage"

// Result is the explicit success-or-error value returned by the *Result
// facade variants. Callers who prefer error returns use the plain variants.
type Result struct {
	Value any
	Err   *usage.Error
}

func ok(v any) Result {
	return Result{Value: v}
}

func fail(err *usage.Error) Result {
	return Result{Err: err}
}

// OK reports whether the extraction succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Unwrap converts the result into Go's (value, error) convention.
func (r Result) Unwrap() (any, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Value, nil
}
