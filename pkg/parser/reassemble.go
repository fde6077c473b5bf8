package parser

import (
	"github.com/leapstack-labs/formulate/pkg/core"
)

// reassembler consumes the postfix stack from the back and produces the
// nested tree.
type reassembler struct {
	s []item
}

// reassemble builds the tree from a completed postfix stack. Errors here
// indicate a recognition bug, not bad input.
func reassemble(stack []item) (core.Expr, error) {
	if len(stack) == 0 {
		return nil, &InternalError{Message: "postfix stack is empty"}
	}
	r := &reassembler{s: stack}
	e, arrayEnd, funcEnd, err := r.next(false, false)
	if err != nil {
		return nil, err
	}
	if arrayEnd || funcEnd {
		return nil, &InternalError{Message: "unbalanced bracket sentinel on postfix stack"}
	}
	if len(r.s) != 0 {
		return nil, &InternalError{Message: "leftover entries on postfix stack"}
	}
	return e, nil
}

func (r *reassembler) pop() (item, error) {
	if len(r.s) == 0 {
		return item{}, &InternalError{Message: "postfix stack underflow"}
	}
	it := r.s[len(r.s)-1]
	r.s = r.s[:len(r.s)-1]
	return it, nil
}

func (r *reassembler) top() (item, bool) {
	if len(r.s) == 0 {
		return item{}, false
	}
	return r.s[len(r.s)-1], true
}

// next pops one node worth of entries. The flags mark that the scan is
// inside an argument list; hitting the matching open sentinel reports the
// end of that list instead of a node.
func (r *reassembler) next(inArray, inFunc bool) (core.Expr, bool, bool, error) {
	it, err := r.pop()
	if err != nil {
		return nil, false, false, err
	}

	if inFunc && it.kind == itemFuncOpen {
		return nil, false, true, nil
	}
	if inArray && it.kind == itemArrayOpen {
		return nil, true, false, nil
	}

	switch it.kind {
	case itemUnary:
		arg, _, _, err := r.next(false, false)
		if err != nil {
			return nil, false, false, err
		}
		return &core.Prefix{Op: core.OpNeg, Arg: arg}, false, false, nil

	case itemBinary:
		right, _, _, err := r.next(false, false)
		if err != nil {
			return nil, false, false, err
		}
		left, _, _, err := r.next(false, false)
		if err != nil {
			return nil, false, false, err
		}
		// E^x collapses to the cheaper prefix exponential.
		if it.val == core.OpPow {
			if a, ok := left.(*core.Atom); ok && a.Kind == core.AtomConst && a.Value == core.ConstE {
				return &core.Prefix{Op: core.OpExp, Arg: right}, false, false, nil
			}
		}
		return &core.Infix{Op: it.val, Left: left, Right: right}, false, false, nil

	case itemName:
		top, ok := r.top()
		if !ok {
			return nil, false, false, &InternalError{Message: "name entry without bracket sentinel"}
		}
		switch top.kind {
		case itemFuncClose:
			if _, err := r.pop(); err != nil {
				return nil, false, false, err
			}
			args, err := r.args(func() (core.Expr, bool, error) {
				e, _, done, err := r.next(inArray, true)
				return e, done, err
			})
			if err != nil {
				return nil, false, false, err
			}
			return &core.Call{Name: it.val, Args: args}, false, false, nil

		case itemArrayClose:
			if _, err := r.pop(); err != nil {
				return nil, false, false, err
			}
			args, err := r.args(func() (core.Expr, bool, error) {
				e, done, _, err := r.next(true, inFunc)
				return e, done, err
			})
			if err != nil {
				return nil, false, false, err
			}
			return &core.Index{Name: it.val, Args: args}, false, false, nil

		default:
			return nil, false, false, &InternalError{Message: "name entry without bracket sentinel"}
		}

	case itemAtom:
		return &core.Atom{Kind: it.atom, Value: it.val}, false, false, nil

	default:
		return nil, false, false, &InternalError{Message: "unexpected postfix entry"}
	}
}

// args collects argument subtrees until the open sentinel, restoring their
// textual order (the backward scan yields them reversed).
func (r *reassembler) args(scan func() (core.Expr, bool, error)) ([]core.Expr, error) {
	var args []core.Expr
	for {
		e, done, err := scan()
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		args = append(args, e)
	}
	for i, j := 0, len(args)-1; i < j; i, j = i+1, j-1 {
		args[i], args[j] = args[j], args[i]
	}
	return args, nil
}
