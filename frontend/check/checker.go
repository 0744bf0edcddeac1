// Package check infers the types of a Bolt program and reports type errors.
//
// A TypeChecker is fed source files one after the other with RegisterSourceFile.
// Declarations at the top level of a file are visible to the files registered
// after it.
package check

import (
	"fmt"
	"log/slog"

	"github.com/benbjohnson/immutable"
	"github.com/boltlang/bolt/frontend/ast"
	"github.com/boltlang/bolt/frontend/bolterr"
	"github.com/boltlang/bolt/frontend/diag"
	"github.com/boltlang/bolt/frontend/scope"
	"github.com/boltlang/bolt/frontend/types"
	"github.com/boltlang/bolt/frontend/unify"
	"github.com/boltlang/bolt/internal/log"
	"github.com/boltlang/bolt/util"
)

// Mode decides what the checker does once it finds an error
type Mode uint8

const (
	// FailFast stops at the first error, like a REPL wants
	FailFast Mode = iota
	// Collect keeps checking the next declaration after an error, so that
	// every error of a file is reported at once
	Collect
)

func (m Mode) String() string {
	switch m {
	case FailFast:
		return "fail-fast"
	case Collect:
		return "collect"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// ParseMode is the inverse of Mode.String
func ParseMode(s string) (Mode, error) {
	switch s {
	case "fail-fast", "":
		return FailFast, nil
	case "collect":
		return Collect, nil
	}
	return FailFast, fmt.Errorf("unknown mode %q: expected fail-fast or collect", s)
}

type Config struct {
	Mode Mode
	// Sink receives a diagnostic for every error found. It may be nil.
	Sink diag.Sink
	// Logger defaults to log.DefaultLogger
	Logger *slog.Logger
}

type TypeChecker struct {
	config  Config
	logger  *slog.Logger
	fresher *types.Fresher
	subst   types.Subst
	scope   *scope.Scope
	arena   *ast.Arena

	// pass counts calls to RegisterSourceFile
	pass      int
	nodeTypes *immutable.Map[ast.NodeID, nodeType]

	// functions holds the function bodies being checked, innermost last
	functions util.Stack[*fnContext]
	// inProgress holds the function declarations whose body is being checked
	inProgress map[ast.NodeID]bool
	// group holds the functions inferred on demand while the outermost
	// function of inProgress is checked. They are generalized again together
	// with it once it is done.
	group      []groupMember
	groupDepth int
	// failed holds the function declarations whose body failed in Collect
	// mode. It is not rolled back, so that their errors are reported once.
	failed map[ast.NodeID]bool

	errs *bolterr.Errors
}

type nodeType struct {
	t    types.Type
	pass int
}

type groupMember struct {
	decl  *ast.FunctionDecl
	depth int
	t     types.Type
}

type fnContext struct {
	result types.Type
}

type nodeIDHasher struct{}

func (nodeIDHasher) Hash(id ast.NodeID) uint32  { return uint32(id) }
func (nodeIDHasher) Equal(a, b ast.NodeID) bool { return a == b }

func New(config Config) *TypeChecker {
	logger := config.Logger
	if logger == nil {
		logger = log.DefaultLogger
	}
	c := &TypeChecker{
		config:     config,
		logger:     ast.NodeLogger(logger).With("section", "check"),
		fresher:    types.NewFresher(),
		subst:      types.EmptySubst(),
		nodeTypes:  immutable.NewMap[ast.NodeID, nodeType](nodeIDHasher{}),
		inProgress: make(map[ast.NodeID]bool),
		failed:     make(map[ast.NodeID]bool),
	}
	c.scope = scope.New(builtins(c.fresher))
	return c
}

// RegisterSourceFile infers the type of every node of file.
//
// In FailFast mode it returns the first error found, and the checker is left
// as it was before the call. In Collect mode the declarations which fail are
// skipped, and the returned error is a *bolterr.Errors holding every error.
// Every error is also sent to Config.Sink.
//
// All the files registered into one checker must be allocated by the same ast.Arena.
func (c *TypeChecker) RegisterSourceFile(file *ast.SourceFile) error {
	if file.Arena == nil {
		return c.fail(bolterr.New(bolterr.InternalError{Message: "source file has no arena"}))
	}
	if c.arena == nil {
		c.arena = file.Arena
	}
	if c.arena != file.Arena {
		return c.fail(bolterr.New(bolterr.InternalError{Message: "all source files registered into a checker must share one arena"}))
	}
	if !c.arena.Owns(file) {
		return c.fail(bolterr.New(bolterr.InternalError{Message: "source file was not allocated by its arena"}))
	}

	c.pass++
	c.errs = nil
	c.logger.Debug("registering source file", "path", file.Path, "pass", c.pass)

	start := c.snapshot()
	err := c.checkDeclarations(file.Elements)
	if err != nil {
		c.restore(start)
		return c.fail(err)
	}
	if err = c.setType(file, types.Unit); err != nil {
		return c.fail(err)
	}
	return c.errs.AsError()
}

// fail reports err, which aborts the current registration
func (c *TypeChecker) fail(err error) error {
	c.report(err)
	return err
}

func (c *TypeChecker) report(err error) {
	for _, e := range bolterr.Flatten(err) {
		c.logger.Debug("reporting error", "err", bolterr.FormatWithCode(e))
		c.errs = c.errs.With(e)
		if c.config.Sink != nil {
			c.config.Sink.Add(diag.FromError(e))
		}
	}
}

// Errors returns the errors found by the last call to RegisterSourceFile
func (c *TypeChecker) Errors() *bolterr.Errors {
	return c.errs
}

type snapshot struct {
	subst     types.Subst
	frames    []scope.Frame
	nodeTypes *immutable.Map[ast.NodeID, nodeType]
}

func (c *TypeChecker) snapshot() snapshot {
	return snapshot{
		subst:     c.subst,
		frames:    c.scope.Snapshot(),
		nodeTypes: c.nodeTypes,
	}
}

func (c *TypeChecker) restore(s snapshot) {
	c.subst = s.subst
	c.scope.Restore(s.frames)
	c.nodeTypes = s.nodeTypes
}

// isolate runs check. In Collect mode an error of check is reported, and the
// checker goes back to the state it had before check ran.
func (c *TypeChecker) isolate(check func() error) (failed bool, err error) {
	if c.config.Mode != Collect {
		return false, check()
	}
	before := c.snapshot()
	if err := check(); err != nil {
		c.restore(before)
		c.report(err)
		return true, nil
	}
	return false, nil
}

// setType caches the type of n. It may only be set once per registration.
func (c *TypeChecker) setType(n ast.Node, t types.Type) error {
	if existing, ok := c.nodeTypes.Get(n.ID()); ok && existing.pass == c.pass {
		return bolterr.New(bolterr.InternalError{
			Message: fmt.Sprintf("type of %v node %d set twice", n.Kind(), n.ID()),
		})
	}
	c.nodeTypes = c.nodeTypes.Set(n.ID(), nodeType{t: t, pass: c.pass})
	return nil
}

// TypeOf returns the type inferred for node, or nil if node was not checked.
// Type variables which were resolved by later declarations are resolved in
// the result too.
func (c *TypeChecker) TypeOf(node ast.Node) types.Type {
	entry, ok := c.nodeTypes.Get(node.ID())
	if !ok {
		return nil
	}
	return c.subst.Apply(entry.t)
}

// Resolve applies everything the checker learned so far to t
func (c *TypeChecker) Resolve(t types.Type) types.Type {
	return c.subst.Apply(t)
}

func (c *TypeChecker) IsIntType(t types.Type) bool      { return types.IsInt(c.Resolve(t)) }
func (c *TypeChecker) IsStringType(t types.Type) bool   { return types.IsString(c.Resolve(t)) }
func (c *TypeChecker) IsBoolType(t types.Type) bool     { return types.IsBool(c.Resolve(t)) }
func (c *TypeChecker) IsFunctionType(t types.Type) bool { return types.IsFunction(c.Resolve(t)) }
func (c *TypeChecker) IsTupleType(t types.Type) bool    { return types.IsTuple(c.Resolve(t)) }
func (c *TypeChecker) IsRecordType(t types.Type) bool   { return types.IsRecord(c.Resolve(t)) }
func (c *TypeChecker) IsUnitType(t types.Type) bool     { return types.IsUnit(c.Resolve(t)) }

// unify makes a and b equal, blaming at if they cannot be
func (c *TypeChecker) unify(a, b types.Type, at ast.Node) error {
	s, err := unify.Unify(a, b, c.subst)
	if err != nil {
		return bolterr.At(err, at)
	}
	c.subst = s
	return nil
}
