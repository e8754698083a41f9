package logic

import (
	"sort"

	"github.com/pkg/errors"
)

// Errors returned at the graph mutation boundary. Wrapped values keep these
// as their cause, so callers can match with errors.Cause.
var (
	// ErrUnknownNode is returned when an operation references a handle that
	// is not (or no longer) part of the graph.
	ErrUnknownNode = errors.New("unknown node")
	// ErrInvalidConnection is returned by Connect when the requested edge
	// violates pin arity: the input index is out of range for the target, or
	// the source kind has no output pin.
	ErrInvalidConnection = errors.New("invalid connection")
	// ErrNoPayload is returned when setting the payload of a kind that does
	// not carry one.
	ErrNoPayload = errors.New("node carries no payload")
)

// A NodeID is an opaque handle to a node within a Graph. Handles are unique
// within their graph and never reused while the node is live.
type NodeID int

// InvalidNodeID is never assigned to a node.
const InvalidNodeID NodeID = -1

// A Position places a node on an editor canvas. The engine stores it for the
// editor's benefit and never interprets it.
type Position struct {
	X, Y float64
}

type node struct {
	kind  Kind
	pos   Position
	value bool // payload; meaningful only when kind.HasPayload()
}

// An inPin addresses an input pin as a (node, input index) pair. It is the
// key of both the connection table and the evaluator's per-tick memo.
type inPin struct {
	node  NodeID
	input int
}

// A Graph owns the nodes of a circuit and the connections between their
// pins. Edges run from a node's single output to a specific input pin of
// another node. Fan-out (one output driving many pins) and fan-in (many
// outputs driving one pin) are both allowed; a fanned-in pin resolves to the
// logical OR of its sources. Cycles are allowed and are resolved by the
// evaluator, not rejected here.
//
// A Graph is not safe for concurrent use. Mutation, evaluation and clock
// advancement are expected to run on a single goroutine driven by the host
// loop.
type Graph struct {
	nodes map[NodeID]*node
	conns map[inPin][]NodeID // incoming edges per input pin
	next  NodeID
}

// NewGraph returns an empty circuit graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[NodeID]*node),
		conns: make(map[inPin][]NodeID),
	}
}

// Insert adds a node of the given kind at the given editor position and
// returns its handle. Insert panics if kind is not one of the defined kinds;
// a well formed insertion never fails.
func (g *Graph) Insert(pos Position, kind Kind) NodeID {
	if !kind.Valid() {
		panic("logic: insert of invalid kind " + kind.String())
	}
	id := g.next
	g.next++
	g.nodes[id] = &node{kind: kind, pos: pos}
	return id
}

// Remove deletes the node and every connection referencing it, whether as a
// source or as a target. Removing a stale handle is a no-op.
func (g *Graph) Remove(id NodeID) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	delete(g.nodes, id)
	for at, srcs := range g.conns {
		if at.node == id {
			delete(g.conns, at)
			continue
		}
		for i := 0; i < len(srcs); {
			if srcs[i] == id {
				srcs = append(srcs[:i], srcs[i+1:]...)
				continue
			}
			i++
		}
		if len(srcs) == 0 {
			delete(g.conns, at)
		} else {
			g.conns[at] = srcs
		}
	}
}

// Connect wires the output of src to the given input pin of dst. Connecting
// an already existing edge is a no-op. Connect fails with ErrUnknownNode for
// stale handles and ErrInvalidConnection when src has no output pin or the
// input index is out of range for dst.
func (g *Graph) Connect(src, dst NodeID, input int) error {
	sn, ok := g.nodes[src]
	if !ok {
		return errors.Wrapf(ErrUnknownNode, "source %d", src)
	}
	dn, ok := g.nodes[dst]
	if !ok {
		return errors.Wrapf(ErrUnknownNode, "target %d", dst)
	}
	if sn.kind.Outputs() == 0 {
		return errors.Wrapf(ErrInvalidConnection, "%s node %d has no output pin", sn.kind, src)
	}
	if input < 0 || input >= dn.kind.Inputs() {
		return errors.Wrapf(ErrInvalidConnection, "input %d out of range for %s node %d", input, dn.kind, dst)
	}
	at := inPin{dst, input}
	for _, s := range g.conns[at] {
		if s == src {
			return nil
		}
	}
	g.conns[at] = append(g.conns[at], src)
	return nil
}

// Disconnect removes the edge from src to the given input pin of dst. It is
// a no-op if the edge does not exist.
func (g *Graph) Disconnect(dst NodeID, input int, src NodeID) {
	at := inPin{dst, input}
	srcs := g.conns[at]
	for i, s := range srcs {
		if s != src {
			continue
		}
		srcs = append(srcs[:i], srcs[i+1:]...)
		if len(srcs) == 0 {
			delete(g.conns, at)
		} else {
			g.conns[at] = srcs
		}
		return
	}
}

// Sources returns the handles of all nodes currently feeding the given input
// pin. Order is unspecified; the OR fan-in rule makes it immaterial. The
// returned slice is a copy and may be retained by the caller.
func (g *Graph) Sources(dst NodeID, input int) []NodeID {
	srcs := g.conns[inPin{dst, input}]
	if len(srcs) == 0 {
		return nil
	}
	out := make([]NodeID, len(srcs))
	copy(out, srcs)
	return out
}

// Payload returns the boolean payload of an Input or Output node. The second
// result is false for stale handles and for kinds that carry no payload.
func (g *Graph) Payload(id NodeID) (value, ok bool) {
	n, ok := g.nodes[id]
	if !ok || !n.kind.HasPayload() {
		return false, false
	}
	return n.value, true
}

// SetPayload sets the boolean payload of an Input or Output node.
func (g *Graph) SetPayload(id NodeID, value bool) error {
	n, ok := g.nodes[id]
	if !ok {
		return errors.Wrapf(ErrUnknownNode, "node %d", id)
	}
	if !n.kind.HasPayload() {
		return errors.Wrapf(ErrNoPayload, "%s node %d", n.kind, id)
	}
	n.value = value
	return nil
}

// TogglePayload flips the boolean payload of an Input or Output node. This
// is what an editor checkbox calls.
func (g *Graph) TogglePayload(id NodeID) error {
	n, ok := g.nodes[id]
	if !ok {
		return errors.Wrapf(ErrUnknownNode, "node %d", id)
	}
	if !n.kind.HasPayload() {
		return errors.Wrapf(ErrNoPayload, "%s node %d", n.kind, id)
	}
	n.value = !n.value
	return nil
}

// Kind returns the kind of the node. ok is false for stale handles.
func (g *Graph) Kind(id NodeID) (kind Kind, ok bool) {
	n, ok := g.nodes[id]
	if !ok {
		return 0, false
	}
	return n.kind, true
}

// Position returns the editor position of the node.
func (g *Graph) Position(id NodeID) (pos Position, ok bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Position{}, false
	}
	return n.pos, true
}

// SetPosition moves the node on the editor canvas. Stale handles are
// ignored.
func (g *Graph) SetPosition(id NodeID, pos Position) {
	if n, ok := g.nodes[id]; ok {
		n.pos = pos
	}
}

// Len returns the number of live nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// IDs returns the handles of all live nodes in ascending order.
func (g *Graph) IDs() []NodeID {
	ids := make([]NodeID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
