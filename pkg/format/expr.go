package format

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/formulate/pkg/core"
	"github.com/leapstack-labs/formulate/pkg/dialect"
)

type printer struct {
	d *dialect.Dialect
}

// expr renders a subtree. Infix nodes come back wrapped in one pair of
// grouping parentheses; callers strip them where the surface syntax makes
// them redundant.
func (p *printer) expr(e core.Expr) (string, error) {
	switch n := e.(type) {
	case *core.Atom:
		return p.d.Atom(n), nil

	case *core.Call:
		args, err := p.argList(n.Args)
		if err != nil {
			return "", err
		}
		name := p.d.Operator(n.Name)
		return name + p.d.FuncLPar + strings.Join(args, p.d.FuncDelim) + p.d.FuncRPar, nil

	case *core.Index:
		args, err := p.argList(n.Args)
		if err != nil {
			return "", err
		}
		name := p.d.Operator(n.Name)
		return name + p.d.ArrayLPar + strings.Join(args, p.d.ArrayDelim) + p.d.ArrayRPar, nil

	case *core.Infix:
		left, err := p.expr(n.Left)
		if err != nil {
			return "", err
		}
		right, err := p.expr(n.Right)
		if err != nil {
			return "", err
		}
		// Brackets may be dropped for associative chains, and always around
		// the right-hand side of an assignment.
		if associative(n, n.Left) {
			left = p.stripPar(left)
		}
		if associative(n, n.Right) || n.Op == core.OpAssign {
			right = p.stripPar(right)
		}
		op := p.d.Operator(n.Op)
		if n.Op == core.OpAssign {
			op = p.d.CanonicalAssign()
		}
		return p.d.LPar + left + " " + op + " " + right + p.d.RPar, nil

	case *core.Prefix:
		arg, err := p.expr(n.Arg)
		if err != nil {
			return "", err
		}
		op := p.d.Operator(n.Op)
		if n.Op == core.OpNeg {
			return op + arg, nil
		}
		return op + p.d.FuncLPar + p.stripPar(arg) + p.d.FuncRPar, nil

	case nil:
		return "", &InternalError{Message: "nil expression"}

	default:
		return "", &InternalError{Message: fmt.Sprintf("unknown node type %T", e)}
	}
}

// argList renders call or index arguments with their outermost grouping
// parentheses stripped.
func (p *printer) argList(args []core.Expr) ([]string, error) {
	out := make([]string, len(args))
	for i, a := range args {
		s, err := p.expr(a)
		if err != nil {
			return nil, err
		}
		out[i] = p.stripPar(s)
	}
	return out, nil
}

// associative reports whether the child's grouping parentheses are
// redundant under the parent: both are the same + or * chain.
func associative(parent *core.Infix, child core.Expr) bool {
	if parent.Op != core.OpAdd && parent.Op != core.OpMul {
		return false
	}
	in, ok := child.(*core.Infix)
	return ok && in.Op == parent.Op
}

// stripPar removes one pair of surrounding grouping parentheses. Infix
// rendering always wraps completely, so a leading bracket implies a
// matching trailing one.
func (p *printer) stripPar(s string) string {
	if strings.HasPrefix(s, p.d.LPar) && strings.HasSuffix(s, p.d.RPar) {
		return strings.TrimSpace(s[len(p.d.LPar) : len(s)-len(p.d.RPar)])
	}
	return strings.TrimSpace(s)
}
