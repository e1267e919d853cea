package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer dumps a tree of Nodes as indented S-expression-like text, for
// test fixtures and debugging. It exists to make `go test -run ... -v`
// output and failure diffs legible, not to round-trip source.
type Printer struct {
	w      io.Writer
	indent int
}

// NewPrinter returns a Printer that writes to w.
func NewPrinter(w io.Writer) *Printer { return &Printer{w: w} }

// Print writes a dump of node to the printer's writer.
func (p *Printer) Print(node Node) {
	var visit VisitorFunc
	visit = func(n Node, dir VisitDirection) Visitor {
		switch dir {
		case VisitEnter:
			p.line(n)
			p.indent++
		case VisitExit:
			p.indent--
		}
		return visit
	}
	Walk(visit, node)
}

func (p *Printer) line(n Node) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.indent), describe(n))
}

func describe(n Node) string {
	switch n := n.(type) {
	case *IdentExpr:
		return fmt.Sprintf("Ident(%s)", n.Name)
	case *LiteralExpr:
		return fmt.Sprintf("Literal(%v)", n.Value)
	case *BinOpExpr:
		return fmt.Sprintf("BinOp(%s)", n.Op)
	case *UnaryOpExpr:
		return fmt.Sprintf("UnaryOp(%s)", n.Op)
	case *CallExpr:
		return "Call"
	case *TypeExpr:
		return fmt.Sprintf("Type(%s)", n.Name)
	case *VarDeclStmt:
		names := make([]string, len(n.Names))
		for i, id := range n.Names {
			names[i] = id.Name
		}
		return fmt.Sprintf("VarDecl(%s)", strings.Join(names, ", "))
	case *AssignStmt:
		return "Assign"
	case *IfStmt:
		return "If"
	case *WhileStmt:
		return "While"
	case *ForInStmt:
		return "ForIn"
	case *ReturnStmt:
		return "Return"
	case *FuncDeclStmt:
		return fmt.Sprintf("FuncDecl(%s)", n.Name.Name)
	case *ClassDeclStmt:
		return fmt.Sprintf("ClassDecl(%s)", n.Name.Name)
	case *SwitchExpr:
		return fmt.Sprintf("Switch(%d cases, default=%v)", len(n.Cases), n.HasExplicitDefault)
	case *Block:
		return fmt.Sprintf("Block(%d stmts)", len(n.Stmts))
	case *Chunk:
		return fmt.Sprintf("Chunk(%s)", n.Name)
	default:
		return fmt.Sprintf("%T", n)
	}
}
