package switchcompile

import (
	"github.com/sylph-lang/sylph/lang/ast"
)

// tuple is one flattened (pattern, guard, result) triple, in the exact
// textual order the patterns were written across every case of the
// switch. Several tuples share
// the same Result whenever a case lists more than one alternative
// pattern.
type tuple struct {
	pattern ast.Pattern
	guard   ast.Expr
	result  ast.Expr
}

// subject is how a pattern test loads the value it matches against: the
// switch's shared itVar at the top level, or a destructuring temporary
// slot once a List/Map/Constructor pattern has recursed into an element.
type subject struct {
	load func(em Emitter)
}

func itVarSubject(sw *ast.SwitchExpr) subject {
	return subject{load: func(em Emitter) { em.LoadVar(sw.ItVar) }}
}

func localSubject(slot int) subject {
	return subject{load: func(em Emitter) { em.LoadLocal(slot) }}
}

// compiler holds the per-switch state threaded through the lowering: the
// emitter, the result-expression dedup table, and the destructuring
// temporary-slot allocator, a counter that hands out a fresh slot per
// temporary and never releases one within a switch.
type compiler struct {
	em       Emitter
	sw       *ast.SwitchExpr
	endLabel Label
	dedup    map[ast.Expr]Label
	nextSlot int
}

// Compile lowers sw, already validated and annotated by package resolver
// and package switchres, driving em to emit the dispatch sequence.
// sw.ItVar is the opaque *resolver.VarDecl the resolver allocated to
// hold the once-evaluated subject.
func Compile(em Emitter, sw *ast.SwitchExpr) {
	em.Compile(sw.Subject)
	em.StoreVar(sw.ItVar)

	c := &compiler{em: em, sw: sw, dedup: map[ast.Expr]Label{}}
	tuples := flatten(sw)

	// Mint every jump target up front: one "test start" label per
	// tuple (a failed test or failed batch member falls through to the
	// next tuple's label), one for the default clause, and one for the
	// switch's overall end.
	testLabels := make([]Label, len(tuples)+1)
	for i := range testLabels {
		testLabels[i] = em.Label()
	}
	defaultLabel := testLabels[len(tuples)]
	c.endLabel = em.Label()

	i := 0
	for i < len(tuples) {
		em.LabelHere(testLabels[i])
		if isSimpleLiteral(tuples[i].pattern) && tuples[i].guard == nil {
			j := i
			for j < len(tuples) && isSimpleLiteral(tuples[j].pattern) && tuples[j].guard == nil {
				j++
			}
			run := tuples[i:j]
			if len(run) > 2 {
				c.emitBatchedDispatch(run, testLabels[i:j+1])
				i = j
				continue
			}
			for k, t := range run {
				if k > 0 {
					em.LabelHere(testLabels[i+k])
				}
				c.emitOneTest(t, testLabels[i+k+1])
			}
			i = j
		} else {
			c.emitOneTest(tuples[i], testLabels[i+1])
			i++
		}
	}

	em.LabelHere(defaultLabel)
	em.Compile(sw.Default)
	em.Jump(c.endLabel)

	for _, e := range dedupOrder(tuples, c.dedup) {
		em.LabelHere(c.dedup[e])
		em.Compile(e)
		em.Jump(c.endLabel)
	}

	em.LabelHere(c.endLabel)
}

// flatten walks sw.Cases in textual order, producing one tuple per
// (pattern, guard) pair; every tuple of a case shares that case's Result.
func flatten(sw *ast.SwitchExpr) []tuple {
	var out []tuple
	for _, c := range sw.Cases {
		for _, cp := range c.Patterns {
			out = append(out, tuple{pattern: cp.Pattern, guard: cp.Guard, result: c.Result})
		}
	}
	return out
}

// dedupOrder returns the distinct non-trivial result expressions that
// were assigned a dedup label, in first-occurrence order, so emission is
// deterministic.
func dedupOrder(tuples []tuple, dedup map[ast.Expr]Label) []ast.Expr {
	var out []ast.Expr
	seen := map[ast.Expr]bool{}
	for _, t := range tuples {
		if _, ok := dedup[t.result]; ok && !seen[t.result] {
			seen[t.result] = true
			out = append(out, t.result)
		}
	}
	return out
}

// isSimpleLiteral reports whether p is a non-null literal pattern: a
// constant, not matched against null. The no-guard requirement is
// checked by the caller against the tuple, since a guard belongs to the
// tuple, not the pattern.
func isSimpleLiteral(p ast.Pattern) bool {
	lp, ok := p.(*ast.LiteralPattern)
	if !ok {
		return false
	}
	return lp.Value.Kind != ast.LitNull
}

// isSimpleResult reports whether e is cheap enough to inline at every
// call site instead of being deduplicated to a labelled tail.
func isSimpleResult(e ast.Expr) bool {
	switch e.(type) {
	case *ast.LiteralExpr, *ast.IdentExpr:
		return true
	default:
		return false
	}
}

// emitResult emits t's value and jumps to the switch's end. Non-trivial
// expressions are deduplicated to one shared labelled tail per distinct
// expression; the tail's body is emitted once, in Compile's
// final pass over c.dedup, not here.
func (c *compiler) emitResult(e ast.Expr) {
	if isSimpleResult(e) {
		c.em.Compile(e)
		c.em.Jump(c.endLabel)
		return
	}
	l, ok := c.dedup[e]
	if !ok {
		l = c.em.Label()
		c.dedup[e] = l
	}
	c.em.Jump(l)
}

// allocSlot reserves the next destructuring temporary slot;
// slots are scoped to one case and conceptually released at the case's
// terminator label, so reusing the same counter from 0 for independent
// cases would also be correct, but a monotonic counter across the whole
// switch keeps slot numbering simple and collision-free without the
// emitter needing to track liveness itself.
func (c *compiler) allocSlot() int {
	s := c.nextSlot
	c.nextSlot++
	return s
}
