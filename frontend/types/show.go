package types

import (
	"log/slog"
	"strconv"
)

// Show renders t with its type variables named a, b, c... in order of appearance
func Show(t Type) string {
	return newNamer().show(t)
}

// ShowAll renders ts sharing variable names between them, so that the same
// variable gets the same name in every element
func ShowAll(ts ...Type) []string {
	names := newNamer()
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = names.show(t)
	}
	return out
}

type namer struct {
	names map[VarID]string
}

func newNamer() *namer {
	return &namer{names: make(map[VarID]string)}
}

func (n *namer) nameOf(id VarID) string {
	if name, ok := n.names[id]; ok {
		return name
	}
	count := len(n.names)
	name := string(rune('a' + count%26))
	if count >= 26 {
		name += strconv.Itoa(count / 26)
	}
	n.names[id] = name
	return name
}

func (n *namer) show(t Type) string {
	switch t := t.(type) {
	case nil:
		return "<unset>"
	case Var:
		return n.nameOf(t.ID)
	case Atom:
		return t.String()
	case Function:
		return "fn(" + joinTypes(t.Params, ", ", n.show) + ") -> " + n.show(t.Result)
	case Tuple:
		return "(" + joinTypes(t.Elements, ", ", n.show) + ")"
	case Record:
		return t.Name
	}
	return "<?>"
}

// Slog wraps t as a slog.LogValuer so that it is only rendered when logged
func Slog(t Type) slog.LogValuer {
	return typeLogValuer{t}
}

type typeLogValuer struct{ t Type }

func (l typeLogValuer) LogValue() slog.Value {
	return slog.StringValue(Show(l.t))
}
