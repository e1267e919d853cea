// Much of this package's block-stack scope model and Scope/Binding
// vocabulary is adapted from the Starlark-go resolver:
// https://github.com/google/starlark-go/tree/master/resolve
//
// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolver binds every identifier in a parsed AST to a VarDecl,
// infers the static type of every expression, synthesizes the
// named-argument wrapper functions and class init machinery the runtime
// needs, and folds compile-time constants.
//
// # Scopes
//
// A binding is Local to the function it is declared in, becomes a Cell
// when a nested function closes over it, and is seen as Free from
// inside that nested function. A name that resolves to neither a block
// binding nor a function parameter is Predeclared (supplied by the
// embedding host) or Universal (a language built-in); anything else is
// Undefined, which is an error.
//
// # Bindings
//
// VarDeclStmt, Param, ForInStmt loop variables, the regex-match
// capture-array variable, and switch binding-variable patterns all
// introduce a new VarDecl. FuncDeclStmt and ClassDeclStmt bind their own
// name in the enclosing block before their body is resolved, so
// recursive definitions work; a name is bound only once its statement is
// reached, so a body cannot refer to a function declared after it.
package resolver

import (
	"fmt"

	"github.com/sylph-lang/sylph/lang/ast"
	"github.com/sylph-lang/sylph/lang/classes"
	"github.com/sylph-lang/sylph/lang/token"
	"github.com/sylph-lang/sylph/lang/types"
)

// Resolver holds the state of one resolve pass over a single chunk. Its
// exported methods are the seam package switchres uses to perform switch
// pattern resolution without this package importing switchres (see
// Context.ResolveSwitch).
type Resolver struct {
	file   *token.File
	errors token.ErrorList

	ctx      *Context
	registry *classes.Registry

	env  *block // innermost block currently being resolved
	root *block

	globals map[string]*VarDecl // predeclared/universal names, resolved at most once

	// stopped is set once an error has been reported outside IDE mode:
	// the default strict mode stops the batch at the first CompileError.
	// Every statement loop checks it so the rest of the chunk is left
	// unresolved rather than running on top of inconsistent bindings.
	stopped bool
}

// ResolveChunk resolves chunk in place: every IdentExpr is bound, every
// expression's Attrs.Type is filled in, class descriptors are built and
// registered, and wrapper functions are synthesized. The returned error,
// if non-nil, is a token.ErrorList.
//
// registry accumulates every ClassDescriptor this chunk declares; pass
// the same *classes.Registry across chunks of one compilation unit so
// later chunks can reference earlier ones' classes.
func ResolveChunk(fset *token.FileSet, chunk *ast.Chunk, ctx *Context, registry *classes.Registry) error {
	if ctx == nil {
		ctx = &Context{}
	}
	if registry == nil {
		registry = classes.NewRegistry(ctx.isUniversal)
	}

	r := &Resolver{
		ctx:      ctx,
		registry: registry,
		globals:  make(map[string]*VarDecl),
	}

	start, _ := chunk.Span()
	r.file = fset.File(start)
	if r.file == nil {
		// Fall back to a throwaway file for fixtures built without a real
		// FileSet entry (e.g. table-driven unit tests).
		f := fset.AddFile(chunk.Name, -1, int(chunk.EOF)+1)
		r.file = f
	}

	r.block(chunk.Block, chunk)

	if ctx.Mode&NameBlocks != 0 {
		r.nameBlocks()
	}

	r.errors.Sort()
	return r.errors.Err()
}

func (r *Resolver) push(b *block) {
	if r.env == nil {
		r.root = b
	} else {
		r.env.children = append(r.env.children, b)
		if b.fn == nil {
			b.fn = r.env.fn
		}
	}
	b.parent = r.env
	b.bindings = make(map[string]*VarDecl)
	r.env = b
}

func (r *Resolver) pop() { r.env = r.env.parent }

// PushBlock opens a new child scope of the current one. Exported for
// package switchres, which needs one fresh scope per switch case, each
// case resolving its patterns and result in its own child scope.
func (r *Resolver) PushBlock() { r.push(new(block)) }

// PopBlock closes the scope opened by the matching PushBlock.
func (r *Resolver) PopBlock() { r.pop() }

func (r *Resolver) errorf(pos token.Pos, format string, args ...interface{}) {
	r.errors.Add(r.file.Position(pos), fmt.Sprintf(format, args...))
	if r.ctx.Mode&ContinueOnError == 0 {
		r.stopped = true
	}
}

// Errorf reports a resolve error at pos. Exported for package switchres.
func (r *Resolver) Errorf(pos token.Pos, format string, args ...interface{}) {
	r.errorf(pos, format, args...)
}

// CurrentFunc returns the FunDecl of the function scope currently being
// resolved.
func (r *Resolver) CurrentFunc() *FunDecl { return r.env.fn }

// ResolveExpr resolves e in the current scope. Exported for package
// switchres, to resolve a case's guard and result expressions.
func (r *Resolver) ResolveExpr(e ast.Expr) { r.expr(e) }

// block resolves every statement of b in a new child scope, tracking
// loop nesting so break/continue can be validated.
func (r *Resolver) block(b *ast.Block, from ast.Node) {
	var blk block
	blk.astBlock = b
	isLoop := false

	switch v := from.(type) {
	case *ast.Chunk:
		blk.fn = &FunDecl{Definition: v}
	case ast.Stmt:
		if lp, ok := v.(interface{ IsLoop() bool }); ok {
			isLoop = lp.IsLoop()
		}
	}
	blk.isLoop = isLoop

	r.push(&blk)
	if isLoop {
		blk.fn.loops++
	}

	for b.ResolvingIndex = 0; b.ResolvingIndex < len(b.Stmts) && !r.stopped; b.ResolvingIndex++ {
		r.stmt(b.Stmts[b.ResolvingIndex])
	}

	if isLoop {
		blk.fn.loops--
	}
	r.pop()
}

func (r *Resolver) declare(id *ast.IdentExpr, isConst bool, typ types.Type, decl ast.Node) *VarDecl {
	if _, dup := r.env.bindings[id.Name]; dup {
		r.errorf(id.Start, "%s redeclared in this block", id.Name)
	}
	vd := &VarDecl{Name: id.Name, Scope: Local, Type: typ, IsConst: isConst, Decl: decl}
	if r.env.fn != nil {
		vd.Index = len(r.env.fn.Locals)
		r.env.fn.Locals = append(r.env.fn.Locals, vd)
	}
	r.env.bindings[id.Name] = vd
	id.Binding = vd
	id.MarkResolved(typ)
	return vd
}

// Declare introduces a new local binding named by id in the current
// scope. Exported for package switchres (binding-variable patterns).
func (r *Resolver) Declare(id *ast.IdentExpr, isConst bool, typ types.Type) *VarDecl {
	return r.declare(id, isConst, typ, id)
}

// lookup resolves name against the block stack, promoting a Local found
// in an enclosing function to Cell there and threading a chained Free
// binding through every function scope crossed to reach it here
// (closure capture, i.e. heap-local promotion). A variable captured
// through F -> H -> G gets a Free link in both H and G, not just G: H's
// link lets the runtime forward the heap-local cell to G without H
// itself needing to close over the value it never otherwise uses.
func (r *Resolver) lookup(name string) *VarDecl {
	startFn := r.env.fn
	fnChain := []*FunDecl{startFn}
	for b := r.env; b != nil; b = b.parent {
		if b.fn != nil && b.fn != fnChain[len(fnChain)-1] {
			fnChain = append(fnChain, b.fn)
		}
		if vd, ok := b.bindings[name]; ok {
			return r.threadCapture(fnChain, vd)
		}
	}

	if vd, ok := r.globals[name]; ok {
		return vd
	}
	switch {
	case r.ctx.isPredeclared(name):
		vd := &VarDecl{Name: name, Scope: Predeclared}
		r.globals[name] = vd
		return vd
	case r.ctx.isUniversal(name):
		vd := &VarDecl{Name: name, Scope: Universal}
		r.globals[name] = vd
		return vd
	default:
		return nil
	}
}

// threadCapture returns the VarDecl that the function at the front of
// fnChain (the one actually holding the identifier) should bind to. If
// fnChain has only one entry, vd was found in the same function and no
// capture crosses a boundary. Otherwise it marks vd heap-local and
// synthesizes a Free VarDecl in every function from the declaring one
// (fnChain's last entry) down to the referencing one (fnChain's first
// entry), chaining each link's ParentVarDecl to the next link closer to
// vd so the whole path back to the heap-local's owner is walkable.
func (r *Resolver) threadCapture(fnChain []*FunDecl, vd *VarDecl) *VarDecl {
	if len(fnChain) <= 1 {
		return vd
	}
	if vd.Scope == Local {
		vd.Scope = Cell
	}
	vd.IsHeapLocal = true

	parent := vd
	for i := len(fnChain) - 2; i >= 0; i-- {
		fn := fnChain[i]
		if fn.heapLocalsByName == nil {
			fn.heapLocalsByName = make(map[string]*VarDecl)
		}
		link, ok := fn.heapLocalsByName[vd.Name]
		if !ok {
			link = &VarDecl{
				Name: vd.Name, Scope: Free, Type: vd.Type, IsConst: vd.IsConst, Decl: vd.Decl,
				IsPassedAsHeapLocal: true, ParentVarDecl: parent, OriginalVarDecl: vd,
			}
			link.Index = len(fn.FreeVars)
			fn.FreeVars = append(fn.FreeVars, link)
			fn.heapLocalsByName[vd.Name] = link
		}
		parent = link
	}
	return parent
}

// Lookup resolves name against the current scope stack without
// declaring anything. Exported for package switchres's identifier-reuse
// check (subsequent uses of a name already bound in this case's
// patterns).
func (r *Resolver) Lookup(name string) (*VarDecl, bool) {
	vd := r.lookup(name)
	return vd, vd != nil
}
