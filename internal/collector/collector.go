package collector

import (
	"github.com/dgallion1/cragmap/internal/doctree"
)

// Collect walks the located container and returns one Shape per VECTOR child,
// in pre-order. rootName is the container's own name; it never becomes a sector.
// inherited seeds the sector for shapes directly under node.
func Collect(node *doctree.Node, rootName string, inherited *string) []doctree.Shape {
	var shapes []doctree.Shape
	if node == nil {
		return shapes
	}
	walkNode(node, rootName, inherited, &shapes)
	return shapes
}

// walkNode threads the current sector down the tree, appending into shapes.
func walkNode(node *doctree.Node, rootName string, sector *string, shapes *[]doctree.Shape) {
	if node.IsContainer() && node.Name != rootName {
		name := node.Name
		sector = &name
	}

	for _, child := range node.Children {
		if child == nil {
			continue
		}
		if child.Type == doctree.TypeVector {
			*shapes = append(*shapes, newShape(child, sector))
		}
		if child.HasChildren() {
			walkNode(child, rootName, sector, shapes)
		}
	}
}

func newShape(node *doctree.Node, sector *string) doctree.Shape {
	s := doctree.Shape{
		Name:   node.Name,
		Sector: copyString(sector),
		NodeID: node.ID,
	}
	if node.Box != nil {
		s.X = node.Box.X
		s.Y = node.Box.Y
		s.Width = node.Box.Width
		s.Height = node.Box.Height
	}
	return s
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// NodeIDs returns the shapes' node ids in collection order.
func NodeIDs(shapes []doctree.Shape) []string {
	ids := make([]string, 0, len(shapes))
	for _, s := range shapes {
		ids = append(ids, s.NodeID)
	}
	return ids
}
