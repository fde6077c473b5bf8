package optimize

import "github.com/leapstack-labs/formulate/pkg/core"

// IndexKey is the cost-table key for array indexing, which is priced by
// node kind rather than by name.
const IndexKey = "array"

// CostModel prices the operators of a program and controls when a shared
// subexpression is worth lifting into a temporary.
type CostModel struct {
	// Costs maps canonical operators to their estimated cost. Operators
	// absent from the map use Default.
	Costs map[string]float64

	// Default is the cost of an unknown named function.
	Default float64

	// Threshold is the least saving that justifies a rewrite.
	Threshold float64

	// TempFormat names the minted temporaries; it receives the counter.
	TempFormat string
}

// DefaultCostModel returns the built-in operator prices.
func DefaultCostModel() *CostModel {
	return &CostModel{
		Costs: map[string]float64{
			core.OpNeg: 0.0,
			IndexKey:   0.0,
			core.OpAdd: 1.0,
			core.OpSub: 1.0,
			core.OpMul: 1.0,
			core.OpDiv: 2.0,
			core.OpAssign: 2.0,
			core.OpPow: 5.0,
			core.OpExp: 3.0,
		},
		Default:    10.0,
		Threshold:  5.0,
		TempFormat: "t_%d",
	}
}

// cost returns the own (non-recursive) cost of one operator node.
func (m *CostModel) cost(e core.Expr) float64 {
	var key string
	switch n := e.(type) {
	case *core.Infix:
		key = n.Op
	case *core.Prefix:
		key = n.Op
	case *core.Call:
		key = n.Name
	case *core.Index:
		key = IndexKey
	default:
		return 0.0
	}
	if c, ok := m.Costs[key]; ok {
		return c
	}
	return m.Default
}

// assignCost is the price of the statement a rewrite introduces.
func (m *CostModel) assignCost() float64 {
	if c, ok := m.Costs[core.OpAssign]; ok {
		return c
	}
	return m.Default
}
