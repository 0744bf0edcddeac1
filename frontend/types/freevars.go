package types

import (
	"slices"

	"github.com/hashicorp/go-set/v3"
)

// FreeVars returns the type variables occurring in t
func FreeVars(t Type) *set.Set[VarID] {
	vars := set.New[VarID](0)
	collectFreeVars(t, vars)
	return vars
}

// FreeVarsInto adds the type variables occurring in t to vars
func FreeVarsInto(t Type, vars *set.Set[VarID]) {
	collectFreeVars(t, vars)
}

func collectFreeVars(t Type, into *set.Set[VarID]) {
	switch t := t.(type) {
	case Var:
		into.Insert(t.ID)
	case Function:
		for _, p := range t.Params {
			collectFreeVars(p, into)
		}
		collectFreeVars(t.Result, into)
	case Tuple:
		for _, e := range t.Elements {
			collectFreeVars(e, into)
		}
	case Record:
		for _, f := range t.Fields {
			collectFreeVars(f.Type, into)
		}
	}
}

// Occurs reports whether id occurs in t
func Occurs(id VarID, t Type) bool {
	switch t := t.(type) {
	case Var:
		return t.ID == id
	case Function:
		return slices.ContainsFunc(t.Params, func(p Type) bool { return Occurs(id, p) }) || Occurs(id, t.Result)
	case Tuple:
		return slices.ContainsFunc(t.Elements, func(e Type) bool { return Occurs(id, e) })
	case Record:
		return slices.ContainsFunc(t.Fields, func(f Field) bool { return Occurs(id, f.Type) })
	}
	return false
}

// sortedVars returns the contents of vars in ascending order
func sortedVars(vars *set.Set[VarID]) []VarID {
	if vars == nil {
		return nil
	}
	s := vars.Slice()
	slices.Sort(s)
	return s
}
