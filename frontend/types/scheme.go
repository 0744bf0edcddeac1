package types

import (
	"sort"
	"strings"

	"github.com/hashicorp/go-set/v3"
	xset "github.com/xtgo/set"
)

// Scheme is a type universally quantified over Vars.
//
// Schemes are only produced when generalizing let-bound functions;
// a Scheme with no Vars is a plain monomorphic type.
type Scheme struct {
	// Vars is sorted and without duplicates
	Vars []VarID
	Body Type
}

type varIDs []VarID

func (v varIDs) Len() int           { return len(v) }
func (v varIDs) Less(i, j int) bool { return v[i] < v[j] }
func (v varIDs) Swap(i, j int)      { v[i], v[j] = v[j], v[i] }

// Mono wraps t in a Scheme which quantifies nothing
func Mono(t Type) *Scheme {
	return &Scheme{Body: t}
}

// NewScheme quantifies body over vars, which may be unsorted and contain duplicates
func NewScheme(vars []VarID, body Type) *Scheme {
	sorted := varIDs(append([]VarID(nil), vars...))
	sort.Sort(sorted)
	n := xset.Uniq(sorted)
	return &Scheme{Vars: sorted[:n], Body: body}
}

// Generalize quantifies every variable of t which is not in envVars.
// t should have the current substitution applied to it already.
func Generalize(t Type, envVars *set.Set[VarID]) *Scheme {
	own := sortedVars(FreeVars(t))
	env := sortedVars(envVars)
	data := varIDs(append(own, env...))
	n := xset.Diff(data, len(own))
	if n == 0 {
		return Mono(t)
	}
	return &Scheme{Vars: append([]VarID(nil), data[:n]...), Body: t}
}

func (s *Scheme) IsMono() bool {
	return len(s.Vars) == 0
}

func (s *Scheme) quantifies(id VarID) bool {
	i := sort.Search(len(s.Vars), func(i int) bool { return s.Vars[i] >= id })
	return i < len(s.Vars) && s.Vars[i] == id
}

// FreeVars returns the variables of the body which are not quantified
func (s *Scheme) FreeVars() *set.Set[VarID] {
	vars := set.New[VarID](0)
	for v := range FreeVars(s.Body).Items() {
		if !s.quantifies(v) {
			vars.Insert(v)
		}
	}
	return vars
}

// Instantiate replaces the quantified variables with fresh ones
func (s *Scheme) Instantiate(f *Fresher) Type {
	if s.IsMono() {
		return s.Body
	}
	fresh := make(map[VarID]Type, len(s.Vars))
	for _, v := range s.Vars {
		fresh[v] = f.Fresh()
	}
	return Map(s.Body, func(v Var) Type {
		if replacement, ok := fresh[v.ID]; ok {
			return replacement
		}
		return v
	})
}

// Apply applies subst to the free variables of the scheme
func (s *Scheme) Apply(subst Subst) *Scheme {
	if subst.Len() == 0 {
		return s
	}
	body := Map(s.Body, func(v Var) Type {
		if s.quantifies(v.ID) {
			return v
		}
		return subst.Apply(v)
	})
	return &Scheme{Vars: s.Vars, Body: body}
}

func (s *Scheme) String() string {
	names := newNamer()
	if s.IsMono() {
		return names.show(s.Body)
	}
	vars := make([]string, len(s.Vars))
	for i, v := range s.Vars {
		vars[i] = names.nameOf(v)
	}
	return "forall " + strings.Join(vars, " ") + ". " + names.show(s.Body)
}
