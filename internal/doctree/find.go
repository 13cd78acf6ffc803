package doctree

// FindGroup returns the first GROUP or FRAME named name in pre-order.
func FindGroup(node *Node, name string) (*Node, bool) {
	if node == nil {
		return nil, false
	}
	if node.Name == name && node.IsContainer() {
		return node, true
	}
	for _, child := range node.Children {
		if found, ok := FindGroup(child, name); ok {
			return found, true
		}
	}
	return nil, false
}
