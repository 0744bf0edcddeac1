package types

// Fresher hands out type variables. Each TypeChecker owns exactly one, so ids
// are unique within a checker and strictly increasing in allocation order.
type Fresher struct {
	freshCount VarID
}

func NewFresher() *Fresher {
	return &Fresher{}
}

func (f *Fresher) Fresh() Var {
	f.freshCount++
	return Var{ID: f.freshCount}
}

// FreshN returns n distinct fresh variables
func (f *Fresher) FreshN(n int) []Type {
	vars := make([]Type, n)
	for i := range vars {
		vars[i] = f.Fresh()
	}
	return vars
}

// Count returns how many variables were allocated so far
func (f *Fresher) Count() uint64 {
	return uint64(f.freshCount)
}
