package bolterr

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Errors accumulates the errors of a batch run.
// A nil *Errors holds no errors and is ready to use.
type Errors struct {
	errs []Error
}

func (r *Errors) With(err ...Error) *Errors {
	if r == nil {
		return &Errors{errs: err}
	}
	r.errs = append(r.errs, err...)
	return r
}

func (r *Errors) Merge(err *Errors) *Errors {
	if r == nil {
		return err
	}
	if err == nil {
		return r
	}
	if len(err.errs) == 0 {
		return r
	}
	return r.With(err.errs...)
}

func (r *Errors) Errors() []Error {
	if r == nil {
		return nil
	}
	return r.errs
}

func (r *Errors) HasError() bool {
	if r == nil {
		return false
	}
	return len(r.errs) > 0
}

// Error joins the messages of all accumulated errors, one per line
func (r *Errors) Error() string {
	lines := make([]string, len(r.Errors()))
	for i, err := range r.Errors() {
		lines[i] = FormatWithCode(err)
	}
	return strings.Join(lines, "\n")
}

// Unwrap exposes every accumulated error to errors.Is and errors.As
func (r *Errors) Unwrap() []error {
	errs := make([]error, len(r.Errors()))
	for i, err := range r.Errors() {
		errs[i] = err
	}
	return errs
}

// AsError returns r as an error, or nil if it holds no errors
func (r *Errors) AsError() error {
	if !r.HasError() {
		return nil
	}
	return r
}

func (r *Errors) LogValue() slog.Value {
	var vals []slog.Attr
	for i, v := range r.Errors() {
		vals = append(vals, slog.Attr{
			Key: fmt.Sprint("e", i),
			Value: slog.GroupValue(
				slog.Attr{
					Key:   "msg",
					Value: slog.StringValue(FormatWithCode(v)),
				},
			),
		})
	}
	return slog.GroupValue(vals...)
}

// Flatten returns the Error values inside err, looking through *Errors
// and anything else that wraps multiple errors
func Flatten(err error) []Error {
	if err == nil {
		return nil
	}
	var boltErr Error
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		var out []Error
		for _, e := range multi.Unwrap() {
			out = append(out, Flatten(e)...)
		}
		return out
	}
	if errors.As(err, &boltErr) {
		return []Error{boltErr}
	}
	return []Error{New(Unclassified{From: err})}
}
