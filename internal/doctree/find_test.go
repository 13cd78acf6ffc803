package doctree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindGroup_FirstPreOrderMatch(t *testing.T) {
	first := &Node{ID: "1", Name: "Crags", Type: TypeFrame}
	second := &Node{ID: "2", Name: "Crags", Type: TypeGroup}
	root := &Node{
		Name: "Document",
		Type: "DOCUMENT",
		Children: []*Node{
			{Name: "Page", Type: "CANVAS", Children: []*Node{
				{Name: "Wrapper", Type: TypeGroup, Children: []*Node{first}},
			}},
			second,
		},
	}

	got, ok := FindGroup(root, "Crags")
	require.True(t, ok)
	assert.Same(t, first, got)
}

func TestFindGroup_IgnoresNonContainerTypes(t *testing.T) {
	root := &Node{Name: "Document", Children: []*Node{
		{ID: "v", Name: "Crags", Type: TypeVector},
		{ID: "g", Name: "Crags", Type: TypeGroup},
	}}

	got, ok := FindGroup(root, "Crags")
	require.True(t, ok)
	assert.Equal(t, "g", got.ID)
}

func TestFindGroup_MatchesRoot(t *testing.T) {
	root := &Node{Name: "Crags", Type: TypeFrame}
	got, ok := FindGroup(root, "Crags")
	require.True(t, ok)
	assert.Same(t, root, got)
}

func TestFindGroup_NotFound(t *testing.T) {
	root := &Node{Name: "Document", Children: []*Node{{Name: "Other", Type: TypeFrame}}}
	got, ok := FindGroup(root, "Crags")
	assert.False(t, ok)
	assert.Nil(t, got)

	_, ok = FindGroup(nil, "Crags")
	assert.False(t, ok)
}

func TestNode_DecodeDistinguishesAbsentChildren(t *testing.T) {
	var n Node
	raw := `{"name":"A","type":"FRAME","children":[{"name":"B","type":"GROUP","children":[]},{"id":"1:2","name":"V","type":"VECTOR","absoluteBoundingBox":{"x":1.5,"y":2,"width":3,"height":4}}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &n))

	require.Len(t, n.Children, 2)
	assert.True(t, n.Children[0].HasChildren())
	assert.False(t, n.Children[1].HasChildren())
	require.NotNil(t, n.Children[1].Box)
	assert.Equal(t, 1.5, *n.Children[1].Box.X)
	assert.Equal(t, 4.0, *n.Children[1].Box.Height)
}
