package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/sylph-lang/sylph/lang/ast"
	"github.com/sylph-lang/sylph/lang/resolver"
	"github.com/sylph-lang/sylph/lang/switchcompile"
)

func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	var mode resolver.Mode
	if c.IDEMode {
		mode |= resolver.ContinueOnError
	}
	return printError(stdio, CompileFixture(stdio, mode, args[0]))
}

// CompileFixture runs the resolve pipeline (ResolveFixture) over the
// fixture at path, then lowers every SwitchExpr found anywhere in the
// resolved tree with package switchcompile, printing each one's emitted
// instruction trace after the annotated tree.
//
// A real backend would plug in its own Emitter; this driver uses
// switchcompile.TraceEmitter, the same textual trace the package's own
// tests assert against, so the demonstration output is exactly what a
// test failure diff would show.
func CompileFixture(stdio mainer.Stdio, mode resolver.Mode, path string) error {
	chunk, rerr := ResolveFixture(stdio, mode, path)
	if chunk == nil {
		return rerr
	}

	var switches []*ast.SwitchExpr
	var collect ast.VisitorFunc
	collect = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir != ast.VisitEnter {
			return nil
		}
		if sw, ok := n.(*ast.SwitchExpr); ok {
			switches = append(switches, sw)
		}
		return collect
	}
	ast.Walk(collect, chunk)

	for i, sw := range switches {
		em := switchcompile.NewTraceEmitter()
		switchcompile.Compile(em, sw)
		fmt.Fprintf(stdio.Stdout, "--- switch #%d ---\n%s\n", i, em.String())
	}

	return rerr
}
