// Package idl implements the lenient, single-pass Smithy IDL and JSON-like
// node parser. It never panics: malformed input is folded into Err nodes
// and statements plus an aggregated error list, so editor features always
// have something to navigate even over half-typed text.
package idl

import "github.com/shopspring/decimal"

// NodeKind discriminates the JSON-like value variants produced by
// ParseNode and by node literals inside IDL statements (trait values,
// metadata values, default values, node members).
type NodeKind int

const (
	NodeObj NodeKind = iota
	NodeKvps
	NodeKvp
	NodeArr
	NodeStr
	NodeIdent
	NodeNum
	NodeErr
)

func (k NodeKind) String() string {
	switch k {
	case NodeObj:
		return "Obj"
	case NodeKvps:
		return "Kvps"
	case NodeKvp:
		return "Kvp"
	case NodeArr:
		return "Arr"
	case NodeStr:
		return "Str"
	case NodeIdent:
		return "Ident"
	case NodeNum:
		return "Num"
	case NodeErr:
		return "Err"
	default:
		return "Unknown"
	}
}

// Node is a tagged union over every node.Kind variant. Only the fields
// relevant to Kind are populated; the rest are zero values. Start/End are
// absolute character offsets captured at parse time.
type Node struct {
	Kind     NodeKind
	Start    int
	End      int

	// Obj wraps a Kvps node.
	Body *Node

	// Kvps holds an ordered Kvp sequence; Arr holds an ordered Node
	// sequence.
	Items []*Node

	// Kvp.
	Key      *Node
	ColonPos int // -1 if the colon is absent
	Value    *Node

	// Str / Ident. Text is the source lexeme; for Str the surrounding
	// quotes (or the triple quotes of a text block) are stripped and escape
	// sequences are kept as written.
	Text        string
	IsTextBlock bool
	IsIdent     bool

	// Num.
	Number decimal.Decimal

	// Err.
	Message string
}

// Span returns the node's [Start, End) offsets.
func (n *Node) Span() (int, int) {
	if n == nil {
		return 0, 0
	}
	return n.Start, n.End
}

func errNode(start, end int, message string) *Node {
	return &Node{Kind: NodeErr, Start: start, End: end, Message: message}
}
