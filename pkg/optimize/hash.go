package optimize

import (
	"hash/fnv"
	"strconv"

	"github.com/leapstack-labs/formulate/pkg/core"
)

// Structural hashing: a node's fingerprint is the FNV-1a hash of a string
// composed of a node-kind tag, the operator or name, and the stringified
// hashes of the children in order. The kind tag keeps a function call and
// an array reference with equal names from colliding. The hash is stable
// across runs, so the optimization order is reproducible.

func hashAtom(a *core.Atom) uint64 {
	return sum64("a|" + strconv.Itoa(int(a.Kind)) + "|" + a.Value)
}

func hashNode(tag, op string, children []uint64) uint64 {
	s := tag + "|" + op
	for _, h := range children {
		s += "|" + strconv.FormatUint(h, 10)
	}
	return sum64(s)
}

func sum64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
