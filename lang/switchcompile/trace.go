package switchcompile

import (
	"fmt"
	"strings"

	"github.com/sylph-lang/sylph/lang/ast"
	"github.com/sylph-lang/sylph/lang/token"
	"github.com/sylph-lang/sylph/lang/types"
)

// TraceEmitter is an Emitter, used by this package's tests and by the
// CLI's compile command, that records a human-readable
// instruction trace instead of driving a real bytecode backend, a
// pseudo-assembly serialization of a compiled program used to make
// compiler output golden-diffable without a VM. It never executes
// anything; Compile descends into AST nodes just far enough to log what
// a real emitter would have been asked to do with them.
type TraceEmitter struct {
	lines      []string
	nextLabel  int
	nextLocal  int
	labelNames map[Label]string
}

// NewTraceEmitter returns a ready-to-use TraceEmitter.
func NewTraceEmitter() *TraceEmitter {
	return &TraceEmitter{labelNames: map[Label]string{}}
}

// Lines returns the recorded trace, one instruction per entry, in
// emission order.
func (t *TraceEmitter) Lines() []string { return append([]string(nil), t.lines...) }

// String joins the trace with newlines, for convenient golden-style
// assertions in tests.
func (t *TraceEmitter) String() string { return strings.Join(t.lines, "\n") }

func (t *TraceEmitter) emit(format string, args ...interface{}) {
	t.lines = append(t.lines, fmt.Sprintf(format, args...))
}

func (t *TraceEmitter) labelName(l Label) string {
	if name, ok := t.labelNames[l]; ok {
		return name
	}
	name := fmt.Sprintf("L%d", t.nextLabel)
	t.nextLabel++
	t.labelNames[l] = name
	return name
}

func (t *TraceEmitter) Compile(expr ast.Expr) {
	t.emit("compile %s", describeExpr(expr))
}

func (t *TraceEmitter) LoadVar(v interface{})   { t.emit("loadvar %v", v) }
func (t *TraceEmitter) StoreVar(v interface{})  { t.emit("storevar %v", v) }
func (t *TraceEmitter) LoadLocal(slot int)      { t.emit("loadlocal %d", slot) }
func (t *TraceEmitter) StoreLocal(slot int)     { t.emit("storelocal %d", slot) }
func (t *TraceEmitter) LoadConst(v interface{}) { t.emit("loadconst %v", v) }
func (t *TraceEmitter) LoadDefaultValue(typ types.Type) {
	t.emit("loaddefault %s", typ)
}

func (t *TraceEmitter) EmitLength(at token.Pos) { t.emit("length") }
func (t *TraceEmitter) UnsafeLoadElem(parentType types.Type, at token.Pos) {
	t.emit("loadelem %s", parentType)
}

func (t *TraceEmitter) IsInstanceOf(typ interface{}) { t.emit("instanceof %v", typ) }
func (t *TraceEmitter) CheckCast(typ types.Type)     { t.emit("checkcast %s", typ) }

func (t *TraceEmitter) Box()    { t.emit("box") }
func (t *TraceEmitter) Unbox()  { t.emit("unbox") }
func (t *TraceEmitter) DupVal() { t.emit("dup") }
func (t *TraceEmitter) PopVal() { t.emit("pop") }
func (t *TraceEmitter) Swap()   { t.emit("swap") }

func (t *TraceEmitter) InvokeMethod(class, methodName string, paramTypes ...types.Type) {
	t.emit("invoke %s.%s/%d", class, methodName, len(paramTypes))
}
func (t *TraceEmitter) ConvertTo(typ types.Type, atNode ast.Node, allowLoss bool, at token.Pos) {
	t.emit("convertto %s loss=%v", typ, allowLoss)
}

func (t *TraceEmitter) EmitIf(maybeAsync bool, kind string, thenBlock, elseBlock, finallyBlock func()) {
	t.emit("if %s async=%v", kind, maybeAsync)
	if thenBlock != nil {
		thenBlock()
	}
	if elseBlock != nil {
		t.emit("else")
		elseBlock()
	}
	if finallyBlock != nil {
		t.emit("finally")
		finallyBlock()
	}
	t.emit("endif")
}

func (t *TraceEmitter) Label() Label {
	l := new(int)
	t.labelName(l)
	return l
}
func (t *TraceEmitter) LabelHere(l Label) { t.emit("%s:", t.labelName(l)) }
func (t *TraceEmitter) Jump(l Label)      { t.emit("jmp %s", t.labelName(l)) }
func (t *TraceEmitter) JumpIf(cond string, l Label) {
	t.emit("jumpif %s %s", cond, t.labelName(l))
}

func (t *TraceEmitter) TableSwitch(min, max int64, defaultLabel Label, labels []Label) {
	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = t.labelName(l)
	}
	t.emit("tableswitch [%d,%d] default=%s %s", min, max, t.labelName(defaultLabel), strings.Join(names, " "))
}

func (t *TraceEmitter) LookupSwitch(defaultLabel Label, keys []int64, labels []Label) {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%d:%s", k, t.labelName(labels[i]))
	}
	t.emit("lookupswitch default=%s %s", t.labelName(defaultLabel), strings.Join(parts, " "))
}

var _ Emitter = (*TraceEmitter)(nil)

func describeExpr(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.LiteralExpr:
		return fmt.Sprintf("lit(%v)", e.Value)
	case *ast.IdentExpr:
		return fmt.Sprintf("ident(%s)", e.Name)
	default:
		return fmt.Sprintf("%T", e)
	}
}
