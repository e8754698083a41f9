package logic

// A pass holds the working state of one evaluation refresh. The memo maps
// every fully resolved input pin to its value for the pass's tick; busy
// marks pins whose resolution is still on the call stack. Both are discarded
// with the pass: no value survives into the next tick.
type pass struct {
	g    *Graph
	tick uint64
	memo map[inPin]bool
	busy map[inPin]bool
}

func newPass(g *Graph, tick uint64) *pass {
	return &pass{
		g:    g,
		tick: tick,
		memo: make(map[inPin]bool),
		busy: make(map[inPin]bool),
	}
}

// pinValue computes the value present at an input pin. A pin with several
// sources resolves to the logical OR of their values; a pin with none reads
// false.
//
// Cycle policy: re-entering a pin whose resolution is already in progress on
// the current stack yields false. A feedback edge therefore contributes no
// signal within the tick it is cut on, which bounds recursion depth by the
// longest acyclic dependency chain.
func (p *pass) pinValue(at inPin) bool {
	if v, ok := p.memo[at]; ok {
		return v
	}
	if p.busy[at] {
		return false
	}
	p.busy[at] = true
	v := false
	for _, src := range p.g.conns[at] {
		// no short-circuit: every source resolves (and memoizes) each tick.
		if p.nodeValue(src) {
			v = true
		}
	}
	delete(p.busy, at)
	p.memo[at] = v
	return v
}

// nodeValue computes the value fanned out on a node's output pin.
func (p *pass) nodeValue(id NodeID) bool {
	n := p.g.nodes[id]
	if n == nil {
		// Remove scrubs edges, so a dead source means a broken invariant.
		panic("logic: connection from removed node")
	}
	switch n.kind {
	case KindInput:
		return n.value
	case KindClock:
		return p.tick%2 == 0
	case KindBuffer:
		return p.pinValue(inPin{id, 0})
	case KindNot:
		return !p.pinValue(inPin{id, 0})
	case KindOutput:
		// Connect rejects zero-output sources.
		panic("logic: output node used as a signal source")
	}
	op := binaryOps[n.kind]
	a := p.pinValue(inPin{id, 0})
	b := p.pinValue(inPin{id, 1})
	return op(a, b)
}

// PinValue computes the boolean value present at the given input pin at the
// given tick, resolving feedback cycles as documented on Graph.Refresh. A
// stale handle or an input index with no meaning for the node reads false.
func (g *Graph) PinValue(id NodeID, input int, tick uint64) bool {
	if _, ok := g.nodes[id]; !ok {
		return false
	}
	return newPass(g, tick).pinValue(inPin{id, input})
}

// Refresh evaluates the input pin of every Output node at the given tick and
// stores the result in the node's payload. A single memo spans the whole
// refresh, so sub-expressions shared between outputs evaluate exactly once.
//
// Feedback cycles never recurse unboundedly: a pin re-entered while still
// unresolved reads false for the remainder of the tick (see pinValue). The
// refresh therefore always terminates, and for constant external inputs the
// observable outputs reach a stable fixed point.
func (g *Graph) Refresh(tick uint64) {
	p := newPass(g, tick)
	// Walk outputs in handle order: on a cyclic graph the first evaluation
	// decides where a feedback loop is cut, so the order must be stable.
	for _, id := range g.IDs() {
		n := g.nodes[id]
		if n.kind != KindOutput {
			continue
		}
		n.value = p.pinValue(inPin{id, 0})
	}
}
