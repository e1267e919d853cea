package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/sylph-lang/sylph/internal/fixture"
	"github.com/sylph-lang/sylph/lang/ast"
	"github.com/sylph-lang/sylph/lang/classes"
	"github.com/sylph-lang/sylph/lang/resolver"
	"github.com/sylph-lang/sylph/lang/switchres"
	"github.com/sylph-lang/sylph/lang/token"
)

func (c *Cmd) Resolve(ctx context.Context, stdio mainer.Stdio, args []string) error {
	var mode resolver.Mode
	mode |= resolver.NameBlocks
	if c.IDEMode {
		mode |= resolver.ContinueOnError
	}
	_, err := ResolveFixture(stdio, mode, args[0])
	return printError(stdio, err)
}

// ResolveFixture loads the YAML fixture at path and runs it through the
// resolver wired with package switchres, the way a real compiler front
// end would chain the two passes. It prints the annotated tree to
// stdio.Stdout. The tree is still printed when the resolver reports an
// error, since IDE mode exists precisely to hand back a best-effort
// annotated tree.
func ResolveFixture(stdio mainer.Stdio, mode resolver.Mode, path string) (*ast.Chunk, error) {
	fset := token.NewFileSet()
	chunk, err := fixture.Load(fset, path)
	if err != nil {
		return nil, fmt.Errorf("loading fixture: %w", err)
	}

	registry := classes.NewRegistry(nil)
	resolveCtx := &resolver.Context{
		Mode:          mode,
		ResolveSwitch: switchres.Resolve,
	}

	rerr := resolver.ResolveChunk(fset, chunk, resolveCtx, registry)

	printer := ast.NewPrinter(stdio.Stdout)
	printer.Print(chunk)

	return chunk, rerr
}
