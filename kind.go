package logic

import "strconv"

// A Kind identifies a node's gate variant. Every node of a given kind has a
// fixed number of input and output pins; all output pins of a node carry the
// same fanned-out value.
type Kind int

// Node kinds.
const (
	KindInput  Kind = iota // externally set value, 1 output
	KindOutput             // records the value on its single input
	KindClock              // free running source, true on even ticks
	KindBuffer             // passthrough
	KindNot
	KindAnd
	KindOr
	KindXor
	KindNor
	KindXnor
	KindNand

	kindCount
)

var kindNames = [kindCount]string{
	"Input", "Output", "Clock", "Buffer", "Not",
	"And", "Or", "Xor", "Nor", "Xnor", "Nand",
}

func (k Kind) String() string {
	if !k.Valid() {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Valid reports whether k names one of the defined kinds.
func (k Kind) Valid() bool { return k >= 0 && k < kindCount }

// Inputs returns the number of input pins on a node of kind k.
func (k Kind) Inputs() int {
	switch k {
	case KindInput, KindClock:
		return 0
	case KindOutput, KindBuffer, KindNot:
		return 1
	default:
		return 2
	}
}

// Outputs returns the number of output pins on a node of kind k.
func (k Kind) Outputs() int {
	if k == KindOutput {
		return 0
	}
	return 1
}

// HasPayload reports whether nodes of kind k carry a boolean payload.
// Only Input and Output nodes do; every other kind is a pure function of its
// input pins and the current tick.
func (k Kind) HasPayload() bool { return k == KindInput || k == KindOutput }

// binaryOps maps the two-input kinds to their boolean operator.
var binaryOps = [kindCount]func(a, b bool) bool{
	KindAnd:  func(a, b bool) bool { return a && b },
	KindOr:   func(a, b bool) bool { return a || b },
	KindXor:  func(a, b bool) bool { return a && !b || !a && b },
	KindNor:  func(a, b bool) bool { return !(a || b) },
	KindXnor: func(a, b bool) bool { return a && b || !a && !b },
	KindNand: func(a, b bool) bool { return !(a && b) },
}
