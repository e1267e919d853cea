// Package fixture loads a small YAML-described AST and turns it into the
// real *ast.Chunk the resolver/switchres/switchcompile pipeline consumes.
//
// There is no lexer or parser here, so internal/maincmd cannot accept
// source text directly. It accepts a fixture file instead, described
// declaratively rather than in the language's own syntax, and decodes it
// with gopkg.in/yaml.v3.
package fixture

import (
	"fmt"
	"os"

	"github.com/sylph-lang/sylph/lang/ast"
	"github.com/sylph-lang/sylph/lang/token"
	"gopkg.in/yaml.v3"
)

// Chunk is the YAML shape of one compilation unit: a name and a flat list
// of top-level statements.
type Chunk struct {
	Name  string `yaml:"name"`
	Stmts []Stmt `yaml:"statements"`
}

// Stmt is a tagged union of the statement kinds the fixture format
// supports. Only the fields relevant to Kind are populated.
type Stmt struct {
	Kind string `yaml:"kind"` // "vardecl" | "expr" | "if"

	// vardecl
	Names []string `yaml:"names"`
	Const bool     `yaml:"const"`
	Right []Expr   `yaml:"values"`

	// expr
	Expr *Expr `yaml:"expr"`

	// if
	Cond  *Expr  `yaml:"cond"`
	Then  []Stmt `yaml:"then"`
	Else  []Stmt `yaml:"else"`
}

// Expr is a tagged union of the expression kinds the fixture format
// supports: literals, identifiers, and switch expressions, which is
// enough surface to exercise the whole pipeline (resolver binding/typing,
// switchres reachability/coverage, switchcompile dispatch lowering)
// without a real parser.
type Expr struct {
	Kind string `yaml:"kind"` // "literal" | "ident" | "switch"

	// literal
	Type  string      `yaml:"type"` // "bool" | "int" | "long" | "double" | "string" | "null"
	Value interface{} `yaml:"value"`

	// ident
	Name string `yaml:"name"`

	// switch
	Subject *Expr        `yaml:"subject"`
	Cases   []SwitchCase `yaml:"cases"`
	Default *Expr        `yaml:"default"`
}

// SwitchCase is one "case p1, p2 -> result" arm. Patterns support literal
// values, "_" (underscore, unconditional) and plain identifiers (bound as
// a fresh binding variable the first time they're seen in the case).
type SwitchCase struct {
	Patterns []Pattern `yaml:"patterns"`
	Result   Expr      `yaml:"result"`
}

// Pattern is a tagged union of the pattern kinds the fixture format
// supports.
type Pattern struct {
	Kind  string      `yaml:"kind"` // "literal" | "underscore" | "binding"
	Type  string      `yaml:"type"`
	Value interface{} `yaml:"value"`
	Name  string       `yaml:"name"`
}

// Load reads and decodes a YAML fixture file into a *ast.Chunk, registered
// in fset under path. The returned Chunk is ready to pass to
// resolver.ResolveChunk.
func Load(fset *token.FileSet, path string) (*ast.Chunk, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fx Chunk
	if err := yaml.Unmarshal(b, &fx); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return build(fset, path, &fx)
}

// build turns a decoded fixture.Chunk into a *ast.Chunk. Every node is
// given the file's single synthetic position (offset 0): the fixture
// format has no textual coordinates to assign byte-accurate ones, and
// nothing downstream relies on distinct positions for correctness, only
// for error message locations.
func build(fset *token.FileSet, path string, fx *Chunk) (*ast.Chunk, error) {
	size := len(fx.Stmts) + 1
	f := fset.AddFile(path, -1, size)
	f.SetLinesForContent([]byte(path))
	pos := f.Pos(0)

	b := &builder{pos: pos}
	stmts, err := b.stmts(fx.Stmts)
	if err != nil {
		return nil, err
	}

	name := fx.Name
	if name == "" {
		name = path
	}
	return &ast.Chunk{
		Name:  name,
		Block: &ast.Block{Start: pos, End: pos, Stmts: stmts},
		EOF:   pos,
	}, nil
}

// builder threads the single synthetic position used for every
// constructed node, and numbers each distinct binding-variable name
// within a switch case so the first occurrence becomes a
// BindingVarPattern and later occurrences become an IdentifierPattern
// referring back to it.
type builder struct {
	pos token.Pos
}

func (b *builder) stmts(in []Stmt) ([]ast.Stmt, error) {
	out := make([]ast.Stmt, 0, len(in))
	for _, s := range in {
		st, err := b.stmt(s)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func (b *builder) stmt(s Stmt) (ast.Stmt, error) {
	switch s.Kind {
	case "vardecl":
		names := make([]*ast.IdentExpr, len(s.Names))
		for i, n := range s.Names {
			names[i] = &ast.IdentExpr{Start: b.pos, Name: n}
		}
		right := make([]ast.Expr, len(s.Right))
		for i, e := range s.Right {
			ex, err := b.expr(e)
			if err != nil {
				return nil, err
			}
			right[i] = ex
		}
		kind := ast.DeclVar
		if s.Const {
			kind = ast.DeclConst
		}
		return &ast.VarDeclStmt{Start: b.pos, Kind: kind, Names: names, Right: right}, nil

	case "expr":
		if s.Expr == nil {
			return nil, fmt.Errorf("expr statement missing 'expr'")
		}
		ex, err := b.expr(*s.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Expr: ex}, nil

	case "if":
		if s.Cond == nil {
			return nil, fmt.Errorf("if statement missing 'cond'")
		}
		cond, err := b.expr(*s.Cond)
		if err != nil {
			return nil, err
		}
		thenStmts, err := b.stmts(s.Then)
		if err != nil {
			return nil, err
		}
		st := &ast.IfStmt{
			Cond: cond,
			True: &ast.Block{Start: b.pos, End: b.pos, Stmts: thenStmts},
		}
		if len(s.Else) > 0 {
			elseStmts, err := b.stmts(s.Else)
			if err != nil {
				return nil, err
			}
			st.False = &ast.Block{Start: b.pos, End: b.pos, Stmts: elseStmts}
		}
		return st, nil

	default:
		return nil, fmt.Errorf("unknown statement kind %q", s.Kind)
	}
}

func (b *builder) expr(e Expr) (ast.Expr, error) {
	switch e.Kind {
	case "literal":
		kind, val, err := literalKindValue(e.Type, e.Value)
		if err != nil {
			return nil, err
		}
		return &ast.LiteralExpr{Kind: kind, Start: b.pos, Raw: fmt.Sprint(val), Value: val}, nil

	case "ident":
		if e.Name == "" {
			return nil, fmt.Errorf("ident expr missing 'name'")
		}
		return &ast.IdentExpr{Start: b.pos, Name: e.Name}, nil

	case "switch":
		return b.switchExpr(e)

	default:
		return nil, fmt.Errorf("unknown expression kind %q", e.Kind)
	}
}

func (b *builder) switchExpr(e Expr) (ast.Expr, error) {
	if e.Subject == nil {
		return nil, fmt.Errorf("switch expr missing 'subject'")
	}
	subject, err := b.expr(*e.Subject)
	if err != nil {
		return nil, err
	}

	sw := &ast.SwitchExpr{Start: b.pos, Subject: subject, End: b.pos}

	for _, c := range e.Cases {
		bound := map[string]bool{}
		var cps []*ast.CasePattern
		for _, p := range c.Patterns {
			pat, err := b.pattern(p, bound)
			if err != nil {
				return nil, err
			}
			cps = append(cps, &ast.CasePattern{Pattern: pat})
		}
		result, err := b.expr(c.Result)
		if err != nil {
			return nil, err
		}
		sw.Cases = append(sw.Cases, &ast.SwitchCase{Patterns: cps, Arrow: b.pos, Result: result})
	}

	if e.Default != nil {
		def, err := b.expr(*e.Default)
		if err != nil {
			return nil, err
		}
		sw.Default = def
		sw.HasExplicitDefault = true
	}

	return sw, nil
}

func (b *builder) pattern(p Pattern, bound map[string]bool) (ast.Pattern, error) {
	switch p.Kind {
	case "underscore":
		return &ast.UnderscorePattern{Pos: b.pos}, nil

	case "literal":
		kind, val, err := literalKindValue(p.Type, p.Value)
		if err != nil {
			return nil, err
		}
		lit := &ast.LiteralExpr{Kind: kind, Start: b.pos, Raw: fmt.Sprint(val), Value: val}
		return &ast.LiteralPattern{Value: lit}, nil

	case "binding":
		if p.Name == "" {
			return nil, fmt.Errorf("binding pattern missing 'name'")
		}
		id := &ast.IdentExpr{Start: b.pos, Name: p.Name}
		if bound[p.Name] {
			return &ast.IdentifierPattern{Name: id}, nil
		}
		bound[p.Name] = true
		return &ast.BindingVarPattern{Name: id}, nil

	default:
		return nil, fmt.Errorf("unknown pattern kind %q", p.Kind)
	}
}

func literalKindValue(typ string, raw interface{}) (ast.LiteralKind, interface{}, error) {
	switch typ {
	case "bool", "boolean":
		v, ok := raw.(bool)
		if !ok {
			return 0, nil, fmt.Errorf("literal type bool needs a bool value")
		}
		return ast.LitBool, v, nil
	case "byte":
		v, err := toInt64(raw)
		if err != nil {
			return 0, nil, err
		}
		return ast.LitByte, int8(v), nil
	case "int":
		v, err := toInt64(raw)
		if err != nil {
			return 0, nil, err
		}
		return ast.LitInt, v, nil
	case "long":
		v, err := toInt64(raw)
		if err != nil {
			return 0, nil, err
		}
		return ast.LitLong, v, nil
	case "double":
		v, ok := raw.(float64)
		if !ok {
			if iv, err := toInt64(raw); err == nil {
				v = float64(iv)
			} else {
				return 0, nil, fmt.Errorf("literal type double needs a numeric value")
			}
		}
		return ast.LitDouble, v, nil
	case "string":
		v, ok := raw.(string)
		if !ok {
			return 0, nil, fmt.Errorf("literal type string needs a string value")
		}
		return ast.LitString, v, nil
	case "null", "":
		return ast.LitNull, nil, nil
	default:
		return 0, nil, fmt.Errorf("unknown literal type %q", typ)
	}
}

func toInt64(raw interface{}) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	default:
		return 0, fmt.Errorf("expected an integer value, got %T", raw)
	}
}
