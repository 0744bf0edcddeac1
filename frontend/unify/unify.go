// Package unify makes two types equal by extending a substitution
package unify

import (
	"context"
	"errors"
	"log/slog"

	"github.com/boltlang/bolt/frontend/bolterr"
	"github.com/boltlang/bolt/frontend/types"
	"github.com/boltlang/bolt/internal/log"
)

var logger = log.DefaultLogger.With("section", "check.unify")

// Unify returns the extension of s under which a and b are the same type.
//
// On failure it returns s unchanged together with a bolterr.UnificationError
// for the innermost pair of types which could not be unified. Parameters,
// tuple elements and record fields are unified left to right, each step
// seeing the bindings made by the previous ones.
func Unify(a, b types.Type, s types.Subst) (types.Subst, error) {
	res, err := unify(a, b, s)
	if err != nil {
		return s, err
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		logger.Debug("unified", "left", types.Slog(res.Apply(a)), "right", types.Slog(res.Apply(b)))
	}
	return res, nil
}

// mismatch reports a and b as the failing step sees them: a variable bound
// by s at the top is replaced by its binding, deeper ones are left as they are
func mismatch(a, b types.Type) error {
	return bolterr.New(bolterr.UnificationError{Left: a, Right: b})
}

func unify(a, b types.Type, s types.Subst) (types.Subst, error) {
	a = s.Resolve(a)
	b = s.Resolve(b)

	if va, ok := a.(types.Var); ok {
		return bindVar(va, b, s)
	}
	if vb, ok := b.(types.Var); ok {
		return bindVar(vb, a, s)
	}

	switch a := a.(type) {
	case types.Atom:
		if b, ok := b.(types.Atom); ok && a == b {
			return s, nil
		}
		return s, mismatch(a, b)

	case types.Function:
		b, ok := b.(types.Function)
		if !ok || len(a.Params) != len(b.Params) {
			return s, mismatch(a, b)
		}
		var err error
		for i := range a.Params {
			if s, err = unify(a.Params[i], b.Params[i], s); err != nil {
				return s, err
			}
		}
		return unify(a.Result, b.Result, s)

	case types.Tuple:
		b, ok := b.(types.Tuple)
		if !ok || len(a.Elements) != len(b.Elements) {
			return s, mismatch(a, b)
		}
		return unifyAll(a.Elements, b.Elements, s)

	case types.Record:
		b, ok := b.(types.Record)
		if !ok || a.Name != b.Name || a.Local != b.Local || len(a.Fields) != len(b.Fields) {
			return s, mismatch(a, b)
		}
		var err error
		for i := range a.Fields {
			if a.Fields[i].Name != b.Fields[i].Name {
				return s, mismatch(a, b)
			}
			if s, err = unify(a.Fields[i].Type, b.Fields[i].Type, s); err != nil {
				return s, err
			}
		}
		return s, nil
	}
	return s, mismatch(a, b)
}

func unifyAll(as, bs []types.Type, s types.Subst) (types.Subst, error) {
	var err error
	for i := range as {
		if s, err = unify(as[i], bs[i], s); err != nil {
			return s, err
		}
	}
	return s, nil
}

func bindVar(v types.Var, t types.Type, s types.Subst) (types.Subst, error) {
	res, err := s.Bind(v.ID, t)
	if err == nil {
		return res, nil
	}
	var occurs *types.OccursError
	if errors.As(err, &occurs) {
		return s, bolterr.New(bolterr.UnificationError{Left: v, Right: occurs.Type, Occurs: true})
	}
	return s, bolterr.New(bolterr.InternalError{Message: err.Error()})
}
