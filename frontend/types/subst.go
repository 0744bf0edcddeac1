package types

import (
	"fmt"
	"iter"
	"strings"

	"github.com/benbjohnson/immutable"
)

// Subst maps type variables to types.
//
// Substitutions are immutable values: every operation returns a new Subst
// and leaves its receiver untouched, so keeping an old Subst around is a
// cheap snapshot.
//
// Every Subst built through Bind is idempotent: no variable bound by it
// occurs in any of the types it binds, so applying it once fully resolves a type.
type Subst struct {
	m *immutable.Map[VarID, Type]
}

type varIDHasher struct{}

func (varIDHasher) Hash(id VarID) uint32 {
	return uint32(id ^ id>>32)
}

func (varIDHasher) Equal(a, b VarID) bool {
	return a == b
}

// EmptySubst returns the substitution which binds nothing
func EmptySubst() Subst {
	return Subst{m: immutable.NewMap[VarID, Type](varIDHasher{})}
}

// OccursError is returned when binding a variable would create an infinite type
type OccursError struct {
	Var  Var
	Type Type
}

func (e *OccursError) Error() string {
	names := ShowAll(e.Var, e.Type)
	return fmt.Sprintf("type variable %s occurs in %s", names[0], names[1])
}

func (s Subst) isZero() bool {
	return s.m == nil
}

func (s Subst) Len() int {
	if s.isZero() {
		return 0
	}
	return s.m.Len()
}

// Lookup returns the type id is bound to
func (s Subst) Lookup(id VarID) (Type, bool) {
	if s.isZero() {
		return nil, false
	}
	return s.m.Get(id)
}

// All iterates over the bindings of s in no particular order
func (s Subst) All() iter.Seq2[VarID, Type] {
	return func(yield func(VarID, Type) bool) {
		if s.isZero() {
			return
		}
		itr := s.m.Iterator()
		for !itr.Done() {
			k, v, _ := itr.Next()
			if !yield(k, v) {
				return
			}
		}
	}
}

// Resolve replaces t by what it is bound to if t is a bound variable.
// It does not look inside t.
func (s Subst) Resolve(t Type) Type {
	if v, ok := t.(Var); ok {
		if bound, ok := s.Lookup(v.ID); ok {
			return bound
		}
	}
	return t
}

// Apply replaces every bound variable in t, leaving free variables and atoms untouched
func (s Subst) Apply(t Type) Type {
	if s.Len() == 0 {
		return t
	}
	return Map(t, func(v Var) Type {
		if bound, ok := s.Lookup(v.ID); ok {
			return bound
		}
		return v
	})
}

// Bind extends s with id := t.
//
// t is resolved through s first, and every existing binding mentioning id is
// rewritten to point at t, so the result stays idempotent.
// Bind fails with *OccursError if id occurs in t.
func (s Subst) Bind(id VarID, t Type) (Subst, error) {
	if s.isZero() {
		s = EmptySubst()
	}
	t = s.Apply(t)
	if v, ok := t.(Var); ok && v.ID == id {
		return s, nil
	}
	if Occurs(id, t) {
		return s, &OccursError{Var: Var{ID: id}, Type: t}
	}
	if existing, ok := s.Lookup(id); ok {
		return s, fmt.Errorf("type variable %v is already bound to %v", Var{ID: id}, existing)
	}
	single := EmptySubst()
	single.m = single.m.Set(id, t)
	return Compose(s, single), nil
}

// Compose returns the substitution equivalent to applying older, then newer:
// newer is applied to the range of older, then both are merged with newer
// winning when both bind the same variable.
func Compose(older, newer Subst) Subst {
	if older.isZero() {
		older = EmptySubst()
	}
	if newer.Len() == 0 {
		return older
	}
	m := older.m
	for k, v := range older.All() {
		m = m.Set(k, newer.Apply(v))
	}
	for k, v := range newer.All() {
		m = m.Set(k, v)
	}
	return Subst{m: m}
}

// Equal reports whether s and other bind the same variables to equal types
func (s Subst) Equal(other Subst) bool {
	if s.Len() != other.Len() {
		return false
	}
	for k, v := range s.All() {
		otherV, ok := other.Lookup(k)
		if !ok || !Equal(v, otherV) {
			return false
		}
	}
	return true
}

// IsIdempotent reports whether no variable bound by s occurs in the range of s
func (s Subst) IsIdempotent() bool {
	for _, v := range s.All() {
		for id := range FreeVars(v).Items() {
			if _, bound := s.Lookup(id); bound {
				return false
			}
		}
	}
	return true
}

func (s Subst) String() string {
	sb := &strings.Builder{}
	sb.WriteString("{")
	first := true
	for k, v := range s.All() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(fmt.Sprintf("%v := %v", Var{ID: k}, v))
	}
	sb.WriteString("}")
	return sb.String()
}
