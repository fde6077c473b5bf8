package parser

import "github.com/leapstack-labs/formulate/pkg/core"

// itemKind discriminates the entries of the postfix stack, the intermediate
// form between recognition and tree reassembly.
type itemKind int

const (
	itemAtom   itemKind = iota // leaf: literal, identifier, or constant
	itemBinary                 // binary operator: + - * / ^ = ==
	itemUnary                  // UNARY-
	itemFuncOpen
	itemFuncClose
	itemArrayOpen
	itemArrayClose
	itemName // callee or array name, pushed after its close sentinel
)

// item is one postfix-stack entry. Recognition pushes arguments before
// operators; function and array invocations wrap their argument lists in
// open/close sentinels with the name pushed last.
type item struct {
	kind itemKind
	val  string        // operator or name
	atom core.AtomKind // valid when kind == itemAtom
}

func atomItem(kind core.AtomKind, val string) item {
	return item{kind: itemAtom, val: val, atom: kind}
}
