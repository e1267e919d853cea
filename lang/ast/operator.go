package ast

import "github.com/sylph-lang/sylph/lang/types"

// BinOp identifies a binary operator token. It is distinct
// from types.Operator, which groups operators into the coarser categories
// the type lattice cares about (arithmetic, comparison, ...); BinOp keeps
// the exact surface-syntax operator so error messages and the switch
// compiler's dispatch logic can refer to the precise spelling used.
type BinOp uint8

const (
	BAdd BinOp = iota
	BSub
	BMul
	BDiv
	BIntDiv
	BMod
	BBitAnd
	BBitOr
	BBitXor
	BShl
	BShr
	BLogicalAnd
	BLogicalOr
	BEquals
	BNotEquals
	BLess
	BLessEq
	BGreater
	BGreaterEq
	BDot       // .
	BSafeDot   // ?.
	BIndex     // [
	BSafeIndex // ?[
	BInstanceOf
	BNotInstanceOf
	BAs
	BRegexMatch    // ~=
	BRegexNotMatch // !~=
)

var binOpNames = map[BinOp]string{
	BAdd: "+", BSub: "-", BMul: "*", BDiv: "/", BIntDiv: "//", BMod: "%",
	BBitAnd: "&", BBitOr: "|", BBitXor: "^", BShl: "<<", BShr: ">>",
	BLogicalAnd: "&&", BLogicalOr: "||", BEquals: "==", BNotEquals: "!=",
	BLess: "<", BLessEq: "<=", BGreater: ">", BGreaterEq: ">=",
	BDot: ".", BSafeDot: "?.", BIndex: "[", BSafeIndex: "?[",
	BInstanceOf: "instanceof", BNotInstanceOf: "!instanceof", BAs: "as",
	BRegexMatch: "~=", BRegexNotMatch: "!~=",
}

func (op BinOp) String() string {
	if s, ok := binOpNames[op]; ok {
		return s
	}
	return "<unknown binop>"
}

// LatticeOp maps a BinOp to the types.Operator category Result expects.
func (op BinOp) LatticeOp() types.Operator {
	switch op {
	case BAdd:
		return types.OpAdd
	case BSub:
		return types.OpSub
	case BMul:
		return types.OpMul
	case BDiv:
		return types.OpDiv
	case BIntDiv:
		return types.OpIntDiv
	case BMod:
		return types.OpMod
	case BBitAnd:
		return types.OpBitAnd
	case BBitOr:
		return types.OpBitOr
	case BBitXor:
		return types.OpBitXor
	case BShl:
		return types.OpShl
	case BShr:
		return types.OpShr
	case BLogicalAnd:
		return types.OpLogicalAnd
	case BLogicalOr:
		return types.OpLogicalOr
	case BEquals, BRegexMatch:
		return types.OpEquals
	case BNotEquals, BRegexNotMatch:
		return types.OpNotEquals
	case BLess:
		return types.OpLess
	case BLessEq:
		return types.OpLessEq
	case BGreater:
		return types.OpGreater
	case BGreaterEq:
		return types.OpGreaterEq
	case BDot:
		return types.OpDot
	case BSafeDot:
		return types.OpSafeDot
	case BIndex:
		return types.OpIndex
	case BSafeIndex:
		return types.OpSafeIndex
	case BInstanceOf, BNotInstanceOf:
		return types.OpInstanceOf
	case BAs:
		return types.OpAs
	default:
		return types.OpAdd
	}
}

// IsFieldOrIndex reports whether op is one of '.', '?.', '[', '?['.
func (op BinOp) IsFieldOrIndex() bool {
	switch op {
	case BDot, BSafeDot, BIndex, BSafeIndex:
		return true
	default:
		return false
	}
}

// IsSafe reports whether op is a null-propagating accessor ('?.' or '?[').
func (op BinOp) IsSafe() bool { return op == BSafeDot || op == BSafeIndex }

// UnaryOp identifies a unary operator.
type UnaryOp uint8

const (
	UNeg UnaryOp = iota
	UNot
	UBitNot
	UTry  // "try" call wrapper
	UMust // "must" call wrapper
)

func (op UnaryOp) String() string {
	switch op {
	case UNeg:
		return "-"
	case UNot:
		return "!"
	case UBitNot:
		return "~"
	case UTry:
		return "try"
	case UMust:
		return "must"
	default:
		return "<unknown unop>"
	}
}
