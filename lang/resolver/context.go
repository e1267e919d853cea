package resolver

import "github.com/sylph-lang/sylph/lang/ast"

// Mode is a set of bit flags configuring a resolve pass. IDE-plugin mode
// continues past the first error to report as many diagnostics as
// possible; the default strict mode stops the batch at the first
// CompileError.
type Mode uint

const (
	// NameBlocks assigns every block a unique debug name, useful when
	// printing a resolved AST. Off by default so it never costs anything
	// in the hot path.
	NameBlocks Mode = 1 << iota

	// ContinueOnError keeps resolving past the first error instead of
	// aborting the chunk, accumulating every diagnostic it can find. This
	// is IDE-plugin mode; the default (bit
	// unset) is strict batch-compile mode, which stops at the first
	// unrecoverable error in a chunk.
	ContinueOnError
)

// Context carries the configuration and cross-cutting collaborators a
// resolve pass needs: which names are supplied by the host
// environment, which are language built-ins, and the optional hook that
// performs switch/match pattern resolution. Injected as a
// function value, not a direct import, so this package never depends on
// package switchres.
type Context struct {
	Mode Mode

	// IsPredeclared and IsUniversal classify a name as coming from the
	// embedding host environment or from the language's built-in set,
	// respectively, when it isn't found in any enclosing block.
	IsPredeclared func(name string) bool
	IsUniversal   func(name string) bool

	// ResolveSwitch performs full pattern validation, reachability and
	// coverage analysis for a SwitchExpr, in addition to the
	// baseline binding-variable resolution this package always performs.
	// If nil, switch expressions still resolve correctly (bindings,
	// guards, result types) but without reachability/coverage diagnostics.
	ResolveSwitch func(r *Resolver, sw *ast.SwitchExpr)
}

func (c *Context) isPredeclared(name string) bool {
	if c.IsPredeclared == nil {
		return false
	}
	return c.IsPredeclared(name)
}

func (c *Context) isUniversal(name string) bool {
	if c.IsUniversal == nil {
		return false
	}
	return c.IsUniversal(name)
}
