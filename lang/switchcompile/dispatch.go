package switchcompile

import (
	"fmt"
	"hash/fnv"

	"github.com/sylph-lang/sylph/lang/ast"
	"github.com/sylph-lang/sylph/lang/token"
	"github.com/sylph-lang/sylph/lang/types"
	"golang.org/x/exp/slices"
)

// emitBatchedDispatch emits one of the two direct-dispatch strategies
// for a run of more than two consecutive simple literal patterns.
// labels has len(run)+1 entries: labels[0] is the run's test start,
// already placed by Compile; labels[k] (0 < k < len(run)) is where control
// lands when run[k]'s literal matches, and labels[len(run)] ("noMatch")
// is where control falls through when nothing in the run matches (the
// next tuple's test, or the default clause). run[0] gets a fresh label to
// land on.
func (c *compiler) emitBatchedDispatch(run []tuple, labels []Label) {
	noMatch := labels[len(run)]
	labels = append([]Label{c.em.Label()}, labels[1:len(run)]...)
	subjectType := ast.TypeOf(c.sw.Subject)

	allIntegral := true
	vals := make([]int64, len(run))
	for i, t := range run {
		lp := t.pattern.(*ast.LiteralPattern)
		if lp.Value.Kind != ast.LitByte && lp.Value.Kind != ast.LitInt {
			allIntegral = false
			continue
		}
		vals[i] = intLiteralValue(lp.Value)
	}

	if allIntegral {
		min, max := vals[0], vals[0]
		for _, v := range vals[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		runSize := int64(len(run))
		if max-min+1 <= 5*runSize {
			c.emitDenseTable(run, vals, min, max, noMatch, labels, subjectType)
			return
		}
		// Range too sparse for a table to pay for itself: fall through
		// to hashed dispatch like any other literal kind.
	}
	c.emitHashedDispatch(run, noMatch, labels)
}

// emitDenseTable emits a jump table indexed by value-min over [min,max].
// When the subject's static type is Any, it is first coerced to Int via
// a runtime helper that routes a non-numeric value straight to noMatch.
func (c *compiler) emitDenseTable(run []tuple, vals []int64, min, max int64, noMatch Label, labels []Label, subjectType types.Type) {
	em := c.em
	em.LoadVar(c.sw.ItVar)
	switch {
	case subjectType.Kind == types.Any:
		em.InvokeMethod(runtimeClass, "toIntOrNull", types.TAny)
		em.JumpIf("null", noMatch)
	case subjectType.Unboxed().Kind != types.Int:
		em.ConvertTo(types.TInt, nil, false, token.NoPos)
	}

	table := make([]Label, max-min+1)
	for i := range table {
		table[i] = noMatch
	}
	for k, v := range vals {
		table[v-min] = labels[k]
	}
	em.TableSwitch(min, max, noMatch, table)

	for k, t := range run {
		em.LabelHere(labels[k])
		c.emitResult(t.result)
	}
}

// emitHashedDispatch emits a sparse dispatch keyed by the subject's
// semantic hashCode: literals in the run are grouped into buckets by
// hash, LookupSwitch jumps to the right bucket, and each bucket chains
// per-literal semantic-equality tests (same-kind equality with numeric
// widening; structural equality for list/map is not needed here since
// only scalar literals ever form a dispatch run).
func (c *compiler) emitHashedDispatch(run []tuple, noMatch Label, labels []Label) {
	em := c.em
	em.LoadVar(c.sw.ItVar)
	em.Box()
	em.InvokeMethod(runtimeClass, "hashCode", types.TAny)

	buckets := map[int64][]int{}
	var order []int64
	for k, t := range run {
		lp := t.pattern.(*ast.LiteralPattern)
		h := literalHash(lp.Value)
		// order is kept sorted as we go, so a new distinct hash can be
		// located (or shown absent) with a binary search instead of a
		// second map lookup (golang.org/x/exp/slices.BinarySearchFunc).
		pos, found := slices.BinarySearchFunc(order, h, func(a, b int64) int {
			switch {
			case a < b:
				return -1
			case a > b:
				return 1
			default:
				return 0
			}
		})
		if !found {
			order = slices.Insert(order, pos, h)
		}
		buckets[h] = append(buckets[h], k)
	}

	bucketLabels := make([]Label, len(order))
	for i := range bucketLabels {
		bucketLabels[i] = labels[buckets[order[i]][0]]
	}
	em.LookupSwitch(noMatch, order, bucketLabels)

	for _, h := range order {
		idxs := buckets[h]
		memberLabels := make([]Label, len(idxs))
		memberLabels[0] = labels[idxs[0]]
		for i := 1; i < len(idxs); i++ {
			memberLabels[i] = em.Label()
		}
		for i, k := range idxs {
			em.LabelHere(memberLabels[i])
			lp := run[k].pattern.(*ast.LiteralPattern)
			failTarget := noMatch
			if i+1 < len(idxs) {
				failTarget = memberLabels[i+1]
			}
			em.LoadVar(c.sw.ItVar)
			em.LoadConst(lp.Value.Value)
			em.InvokeMethod(runtimeClass, "switchEquals", types.TAny, types.TAny)
			em.JumpIf("false", failTarget)
			c.emitResult(run[k].result)
		}
	}
}

// intLiteralValue extracts an integral literal's Go value as int64,
// handling both the byte and int literal representations the parser
// produces.
func intLiteralValue(lit *ast.LiteralExpr) int64 {
	switch v := lit.Value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int8:
		return int64(v)
	case byte:
		return int64(v)
	default:
		return 0
	}
}

// literalHash computes a deterministic bucket key for a scalar literal
// value, standing in for the host VM's semantic hashCode.
// Numeric literals that would be switchEquals to one another (e.g. the
// int 1 and the long 1) must hash identically, so the hash is computed
// over the literal's value only, never its static kind.
func literalHash(lit *ast.LiteralExpr) int64 {
	h := fnv.New64a()
	switch v := lit.Value.(type) {
	case bool:
		fmt.Fprintf(h, "b:%v", v)
	case string:
		fmt.Fprintf(h, "s:%s", v)
	case float64:
		fmt.Fprintf(h, "n:%v", v)
	default:
		fmt.Fprintf(h, "n:%d", intLiteralValue(lit))
	}
	return int64(h.Sum64())
}
