// Package optimize implements common-subexpression elimination over parsed
// programs.
//
// Every subtree is annotated with an arithmetic cost estimate and a
// structural hash; repeated subtrees are lifted into temporary-variable
// assignments, most expensive first, until no rewrite saves more than the
// model's threshold.
package optimize

import (
	"fmt"

	"github.com/leapstack-labs/formulate/pkg/core"
)

// Optimizer rewrites programs using one cost model. It carries the
// temporary-variable counter for a run and is not safe for concurrent use.
type Optimizer struct {
	model     *CostModel
	tempCount int
}

// New creates an optimizer; a nil model selects the defaults.
func New(model *CostModel) *Optimizer {
	if model == nil {
		model = DefaultCostModel()
	}
	return &Optimizer{model: model}
}

// TempCount returns the number of temporaries minted by the last run.
func (o *Optimizer) TempCount() int {
	return o.tempCount
}

// Annotate attaches cost and structural hash to every node of the program
// and returns the total cost. It is idempotent.
func (o *Optimizer) Annotate(prog core.Program) float64 {
	total := 0.0
	for _, line := range prog {
		c, _ := o.annotate(line)
		total += c
	}
	return total
}

// annotate computes (cost, hash) for one subtree, storing both on operator
// nodes. Atom cost is zero; atom hashes are derived from the value.
func (o *Optimizer) annotate(e core.Expr) (float64, uint64) {
	switch n := e.(type) {
	case *core.Atom:
		return 0.0, hashAtom(n)

	case *core.Infix:
		lc, lh := o.annotate(n.Left)
		rc, rh := o.annotate(n.Right)
		n.Cost = o.model.cost(n) + lc + rc
		n.Hash = hashNode("i", n.Op, []uint64{lh, rh})
		return n.Cost, n.Hash

	case *core.Prefix:
		ac, ah := o.annotate(n.Arg)
		n.Cost = o.model.cost(n) + ac
		n.Hash = hashNode("p", n.Op, []uint64{ah})
		return n.Cost, n.Hash

	case *core.Call:
		n.Cost, n.Hash = o.annotateArgs("c", n.Name, o.model.cost(n), n.Args)
		return n.Cost, n.Hash

	case *core.Index:
		n.Cost, n.Hash = o.annotateArgs("x", n.Name, o.model.cost(n), n.Args)
		return n.Cost, n.Hash

	default:
		return 0.0, 0
	}
}

func (o *Optimizer) annotateArgs(tag, name string, own float64, args []core.Expr) (float64, uint64) {
	cost := own
	hashes := make([]uint64, len(args))
	for i, a := range args {
		c, h := o.annotate(a)
		cost += c
		hashes[i] = h
	}
	return cost, hashNode(tag, name, hashes)
}

// Optimize rewrites the program until no profitable shared subexpression
// remains. The input is cloned; an already-minimal program comes back
// structurally unchanged.
func (o *Optimizer) Optimize(prog core.Program) core.Program {
	o.tempCount = 0
	lines := prog.Clone()

	for {
		rewritten, saved := o.optimizeOnce(lines.Clone())
		if saved > o.model.Threshold {
			o.tempCount++
			lines = rewritten
		} else {
			return lines
		}
	}
}

// optimizeOnce performs one annotate / pick / rewrite cycle. It returns the
// rewritten program and the realized saving, or the input and zero when no
// candidate clears the threshold.
func (o *Optimizer) optimizeOnce(lines core.Program) (core.Program, float64) {
	cost := o.Annotate(lines)
	if cost < o.model.Threshold {
		return lines, 0.0
	}

	tally := o.tallySubexpressions(lines)
	best, ok := tally.pick()
	if !ok {
		return lines, 0.0
	}
	if tally.costs[best]-o.model.assignCost() < o.model.Threshold {
		return lines, 0.0
	}

	temp := fmt.Sprintf(o.model.TempFormat, o.tempCount)

	// Replace every occurrence, remembering the first line that used the
	// subexpression and one copy of it for the definition.
	var definition core.Expr
	firstLine := -1
	rewritten := make(core.Program, len(lines))
	for i, line := range lines {
		replaced := false
		rewritten[i], replaced = o.replace(line, best, temp, &definition)
		if replaced && firstLine < 0 {
			firstLine = i
		}
	}
	if firstLine < 0 || definition == nil {
		// The tally promised at least two occurrences.
		return lines, 0.0
	}

	// Define the temporary immediately before its first use.
	def := &core.Infix{Op: core.OpAssign, Left: core.Ident(temp), Right: definition}
	result := make(core.Program, 0, len(rewritten)+1)
	result = append(result, rewritten[:firstLine]...)
	result = append(result, def)
	result = append(result, rewritten[firstLine:]...)

	return result, cost - o.Annotate(result)
}

// tally accumulates occurrence counts and summed costs per structural hash,
// preserving first-encounter order for deterministic tie-breaking.
type tally struct {
	costs  map[uint64]float64
	counts map[uint64]int
	order  []uint64
}

func (o *Optimizer) tallySubexpressions(lines core.Program) *tally {
	t := &tally{
		costs:  make(map[uint64]float64),
		counts: make(map[uint64]int),
	}
	for _, line := range lines {
		t.walk(line)
	}
	return t
}

// walk visits every operator node; bare atoms are never candidates.
func (t *tally) walk(e core.Expr) {
	annot, children := nodeParts(e)
	if annot == nil {
		return
	}
	if _, seen := t.counts[annot.Hash]; !seen {
		t.order = append(t.order, annot.Hash)
	}
	t.costs[annot.Hash] += annot.Cost
	t.counts[annot.Hash]++
	for _, c := range children {
		t.walk(c)
	}
}

// pick selects the hash with the maximum summed cost among those occurring
// at least twice; ties keep the earliest encountered.
func (t *tally) pick() (uint64, bool) {
	var best uint64
	found := false
	for _, h := range t.order {
		if t.counts[h] < 2 {
			continue
		}
		if !found || t.costs[h] > t.costs[best] {
			best = h
			found = true
		}
	}
	return best, found
}

// replace substitutes every subtree with the chosen hash by a reference to
// the temporary, matching topmost occurrences first. The first removed
// subtree is retained as the definition.
func (o *Optimizer) replace(e core.Expr, hash uint64, temp string, definition *core.Expr) (core.Expr, bool) {
	annot, children := nodeParts(e)
	if annot == nil {
		return e, false
	}
	if annot.Hash == hash {
		if *definition == nil {
			*definition = e
		}
		return core.Ident(temp), true
	}
	replaced := false
	for i, c := range children {
		sub, ok := o.replace(c, hash, temp, definition)
		if ok {
			replaced = true
			children[i] = sub
		}
	}
	if replaced {
		setChildren(e, children)
	}
	return e, replaced
}

// nodeParts returns the annotation and child slice of an operator node, or
// (nil, nil) for atoms.
func nodeParts(e core.Expr) (*core.Annot, []core.Expr) {
	switch n := e.(type) {
	case *core.Infix:
		return &n.Annot, []core.Expr{n.Left, n.Right}
	case *core.Prefix:
		return &n.Annot, []core.Expr{n.Arg}
	case *core.Call:
		return &n.Annot, n.Args
	case *core.Index:
		return &n.Annot, n.Args
	default:
		return nil, nil
	}
}

func setChildren(e core.Expr, children []core.Expr) {
	switch n := e.(type) {
	case *core.Infix:
		n.Left, n.Right = children[0], children[1]
	case *core.Prefix:
		n.Arg = children[0]
	case *core.Call:
		n.Args = children
	case *core.Index:
		n.Args = children
	}
}
