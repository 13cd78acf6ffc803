package doctree

// NodeType is the design-tool node kind.
type NodeType string

const (
	TypeGroup  NodeType = "GROUP"
	TypeFrame  NodeType = "FRAME"
	TypeVector NodeType = "VECTOR"
)

// Node is a recursive node of the design document tree.
type Node struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Type     NodeType     `json:"type"`
	Box      *BoundingBox `json:"absoluteBoundingBox,omitempty"`
	Children []*Node      `json:"children,omitempty"` // nil when the key is absent
}

// BoundingBox is a node's absolute position and size. Any field may be missing.
type BoundingBox struct {
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
}

// IsContainer reports whether the node is a GROUP or FRAME.
func (n *Node) IsContainer() bool {
	return n.Type == TypeGroup || n.Type == TypeFrame
}

// HasChildren reports whether the node carries a children list, even an empty one.
func (n *Node) HasChildren() bool {
	return n.Children != nil
}

// Shape is a vector leaf collected from the tree, ready for export.
type Shape struct {
	Name   string
	Sector *string // nearest named container, nil at the top level
	X      *float64
	Y      *float64
	Width  *float64
	Height *float64
	NodeID string
	Path   string // SVG path data, empty until fetched
}

// SectorName returns the sector or "" when there is none.
func (s Shape) SectorName() string {
	if s.Sector == nil {
		return ""
	}
	return *s.Sector
}
