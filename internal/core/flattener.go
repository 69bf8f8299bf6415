package core

import "mvnorder/internal/types"

// Flatten walks the graph in pre-order (a node before its descendants,
// children left to right) and returns the visited nodes. The root is only
// included when it has dependencies; a root without children flattens to an
// empty sequence.
//
// Nodes repeated on different paths are visited once per path; a node that
// reappears among its own ancestors is not descended into again.
func Flatten(root *types.DependencyNode) []*types.DependencyNode {
	if root == nil || len(root.Children) == 0 {
		return []*types.DependencyNode{}
	}
	onPath := map[*types.DependencyNode]struct{}{}
	return appendPreOrder(nil, root, onPath)
}

func appendPreOrder(out []*types.DependencyNode, node *types.DependencyNode, onPath map[*types.DependencyNode]struct{}) []*types.DependencyNode {
	if node == nil {
		return out
	}
	if _, cyclic := onPath[node]; cyclic {
		return out
	}
	out = append(out, node)
	onPath[node] = struct{}{}
	for _, child := range node.Children {
		out = appendPreOrder(out, child, onPath)
	}
	delete(onPath, node)
	return out
}
