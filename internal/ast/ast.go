// Package ast defines the syntax tree model that stylecraft walks and
// rewrites. Nodes are tagged variants: each Kind enumerates the child
// slots it owns (scalars, single nodes, or ordered sequences), so the
// walk over a tree is driven by the kind rather than by reflection.
//
// Trees are produced per source file by internal/parser (or built
// directly by a host pipeline), owned by the transformation pass for
// that file, and mutated in place.
package ast

import (
	"strconv"
	"strings"
)

// Kind tags a Node with its variant.
type Kind uint8

const (
	// Raw is a verbatim source fragment the parser did not interpret.
	// It renders back byte-for-byte and is never modified.
	Raw Kind = iota
	// Ident is an identifier reference.
	Ident
	// String is a string literal with a cooked value.
	String
	// Template is a template literal: either a single static segment or
	// exactly one ternary whose consequent and alternate are strings.
	Template
	// Call is a call expression with a callee and ordered arguments.
	Call
	// Function is an inline function (ordinary or arrow) whose result is
	// its Body node.
	Function
	// Object is an object literal holding an ordered property sequence.
	Object
	// Property is a key/value pair inside an Object.
	Property
	// Fragment is an ordered run of mixed nodes: a file root, or a call
	// argument the parser could only partially interpret.
	Fragment
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case Raw:
		return "raw"
	case Ident:
		return "ident"
	case String:
		return "string"
	case Template:
		return "template"
	case Call:
		return "call"
	case Function:
		return "function"
	case Object:
		return "object"
	case Property:
		return "property"
	case Fragment:
		return "fragment"
	}
	return "unknown"
}

// Loc is a node's position in its source file. Offset and End are byte
// offsets; Line and Col are 1-based.
type Loc struct {
	Offset int
	End    int
	Line   int
	Col    int
}

// Node is one syntax tree node. Only the slots belonging to the node's
// Kind are populated; all others stay zero.
type Node struct {
	Kind Kind
	Loc  Loc

	// Scalar slots.
	Text    string // Raw: verbatim source; Ident: identifier name
	Value   string // String: cooked value; Template: static segment
	RawForm string // String: original quoted form, dropped on rewrite
	Arrow   bool   // Function: arrow form
	Params  string // Function: verbatim parameter list, parens included

	// Single-node slots.
	Callee *Node // Call
	Body   *Node // Function
	Key    *Node // Property: Ident
	Val    *Node // Property
	Cond   *Node // Template: ternary condition (Raw, never modified)
	Cons   *Node // Template: ternary consequent (String)
	Alt    *Node // Template: ternary alternate (String)

	// Sequence slots.
	Args  []*Node // Call
	Props []*Node // Object
	Nodes []*Node // Fragment
}

// NewRaw returns a verbatim source fragment node.
func NewRaw(text string) *Node {
	return &Node{Kind: Raw, Text: text}
}

// NewIdent returns an identifier node.
func NewIdent(name string) *Node {
	return &Node{Kind: Ident, Text: name}
}

// NewString returns a string literal node with the given cooked value.
func NewString(value string) *Node {
	return &Node{Kind: String, Value: value}
}

// NewObject returns an object literal node.
func NewObject(props ...*Node) *Node {
	return &Node{Kind: Object, Props: props}
}

// NewProperty returns a property node with an identifier key.
func NewProperty(key string, val *Node) *Node {
	return &Node{Kind: Property, Key: NewIdent(key), Val: val}
}

// NewCall returns a call node with an identifier callee.
func NewCall(callee string, args ...*Node) *Node {
	return &Node{Kind: Call, Callee: NewIdent(callee), Args: args}
}

// NewArrowFunction returns a parameterless arrow function around body.
func NewArrowFunction(body *Node) *Node {
	return &Node{Kind: Function, Arrow: true, Params: "()", Body: body}
}

// NewFunction returns a parameterless ordinary function returning body.
func NewFunction(body *Node) *Node {
	return &Node{Kind: Function, Params: "()", Body: body}
}

// NewStaticTemplate returns a template literal with one static segment.
func NewStaticTemplate(segment string) *Node {
	return &Node{Kind: Template, Value: segment}
}

// NewTernaryTemplate returns a template literal embedding a single
// ternary. The condition is kept as verbatim source text.
func NewTernaryTemplate(cond, cons, alt string) *Node {
	return &Node{
		Kind: Template,
		Cond: NewRaw(cond),
		Cons: NewString(cons),
		Alt:  NewString(alt),
	}
}

// NewFragment groups sibling nodes under one parent, preserving their
// order. Parsed files are fragments of raw runs and call expressions.
func NewFragment(nodes ...*Node) *Node {
	return &Node{Kind: Fragment, Nodes: nodes}
}

// Kind predicates, mirroring what a tree provider exposes.

// IsCall reports whether the node is a call expression.
func (n *Node) IsCall() bool { return n != nil && n.Kind == Call }

// IsIdent reports whether the node is an identifier.
func (n *Node) IsIdent() bool { return n != nil && n.Kind == Ident }

// IsObject reports whether the node is an object literal.
func (n *Node) IsObject() bool { return n != nil && n.Kind == Object }

// IsStringLit reports whether the node is a string literal.
func (n *Node) IsStringLit() bool { return n != nil && n.Kind == String }

// IsTemplate reports whether the node is a template literal.
func (n *Node) IsTemplate() bool { return n != nil && n.Kind == Template }

// IsFunction reports whether the node is an inline function.
func (n *Node) IsFunction() bool { return n != nil && n.Kind == Function }

// HasTernary reports whether a template embeds a ternary expression.
func (n *Node) HasTernary() bool {
	return n != nil && n.Kind == Template && n.Cond != nil
}

// SetString rewrites a string literal's value in place. The original
// quoted form is dropped so the node renders from the new value.
func (n *Node) SetString(value string) {
	n.Value = value
	n.RawForm = ""
}

// GenericChildren returns the children the generic tree walk descends
// into. Object literals return none: their property sequence is
// interpreted exclusively by the style transformer, keeping object
// interpretation centralized and preventing double-processing.
func (n *Node) GenericChildren() []*Node {
	switch n.Kind {
	case Call:
		children := make([]*Node, 0, len(n.Args)+1)
		if n.Callee != nil {
			children = append(children, n.Callee)
		}
		return append(children, n.Args...)
	case Function:
		if n.Body != nil {
			return []*Node{n.Body}
		}
	case Template:
		var children []*Node
		for _, c := range []*Node{n.Cond, n.Cons, n.Alt} {
			if c != nil {
				children = append(children, c)
			}
		}
		return children
	case Property:
		var children []*Node
		for _, c := range []*Node{n.Key, n.Val} {
			if c != nil {
				children = append(children, c)
			}
		}
		return children
	case Fragment:
		return n.Nodes
	}
	return nil
}

// Clone returns a deep copy of the node. Shared structure between the
// original and the copy would let a mutation at one call site leak into
// another, so every descendant is copied.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Kind:    n.Kind,
		Loc:     n.Loc,
		Text:    n.Text,
		Value:   n.Value,
		RawForm: n.RawForm,
		Arrow:   n.Arrow,
		Params:  n.Params,
		Callee:  n.Callee.Clone(),
		Body:    n.Body.Clone(),
		Key:     n.Key.Clone(),
		Val:     n.Val.Clone(),
		Cond:    n.Cond.Clone(),
		Cons:    n.Cons.Clone(),
		Alt:     n.Alt.Clone(),
	}
	c.Args = cloneSeq(n.Args)
	c.Props = cloneSeq(n.Props)
	c.Nodes = cloneSeq(n.Nodes)
	return c
}

func cloneSeq(nodes []*Node) []*Node {
	if nodes == nil {
		return nil
	}
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// String renders the node back to source text. Raw fragments and
// untouched string literals render verbatim; everything else renders
// canonically, which may normalize whitespace inside rewritten call
// sites.
func (n *Node) String() string {
	var b strings.Builder
	n.render(&b)
	return b.String()
}

func (n *Node) render(b *strings.Builder) {
	if n == nil {
		return
	}
	switch n.Kind {
	case Raw, Ident:
		b.WriteString(n.Text)
	case String:
		if n.RawForm != "" {
			b.WriteString(n.RawForm)
			return
		}
		b.WriteString(strconv.Quote(n.Value))
	case Template:
		b.WriteByte('`')
		if n.Cond != nil {
			b.WriteString("${")
			n.Cond.render(b)
			b.WriteString(" ? ")
			n.Cons.render(b)
			b.WriteString(" : ")
			n.Alt.render(b)
			b.WriteByte('}')
		} else {
			b.WriteString(n.Value)
		}
		b.WriteByte('`')
	case Call:
		n.Callee.render(b)
		b.WriteByte('(')
		for i, arg := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			arg.render(b)
		}
		b.WriteByte(')')
	case Function:
		if n.Arrow {
			b.WriteString(n.Params)
			b.WriteString(" => (")
			n.Body.render(b)
			b.WriteByte(')')
			return
		}
		b.WriteString("function")
		b.WriteString(n.Params)
		b.WriteString(" { return ")
		n.Body.render(b)
		b.WriteString("; }")
	case Object:
		if len(n.Props) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{ ")
		for i, prop := range n.Props {
			if i > 0 {
				b.WriteString(", ")
			}
			prop.render(b)
		}
		b.WriteString(" }")
	case Property:
		n.Key.render(b)
		b.WriteString(": ")
		n.Val.render(b)
	case Fragment:
		for _, child := range n.Nodes {
			child.render(b)
		}
	}
}
