package stylecraft

import "github.com/stylecraft/stylecraft/internal/ast"

// Walk visits every node reachable from root through named-child and
// sequence-child edges, each node exactly once. The traversal uses an
// explicit stack, so its depth does not depend on call-stack limits.
//
// Object literals contribute no children to the walk: their property
// sequences are interpreted exclusively by the style transformer (see
// ast.Node.GenericChildren), which keeps object interpretation in one
// place and prevents double-processing.
//
// A node's children are read after visit returns. A visit that splices
// a replacement subtree in place therefore has the replacement walked
// rather than the original. Visit order is unconstrained: call-site
// transformations are local and independent, so any order that yields
// full single coverage is valid.
func Walk(root *ast.Node, visit func(*ast.Node)) {
	if root == nil {
		return
	}
	stack := []*ast.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(n)
		stack = append(stack, n.GenericChildren()...)
	}
}
