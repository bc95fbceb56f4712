package node

// decode_test.go — Tests for order-preserving model decoding.

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// JSON
// ---------------------------------------------------------------------------

func TestDecodeJSONPreservesKeyOrder(t *testing.T) {
	const doc = `{
		"id": "root",
		"type": "Model",
		"zeta": 1,
		"alpha": 2,
		"mid": 3
	}`
	obj, err := DecodeJSON(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "root", obj.ID)
	assert.Equal(t, "Model", obj.Type)
	assert.Equal(t, []string{"id", "type", "zeta", "alpha", "mid"}, obj.Keys())
}

func TestDecodeJSONNestedTree(t *testing.T) {
	const doc = `{
		"id": "root",
		"type": "Model",
		"elements": [
			{"id": "w1", "type": "Wall", "height": 3.5},
			{"id": "d1", "type": "Door", "open": true}
		]
	}`
	obj, err := DecodeJSON(strings.NewReader(doc))
	require.NoError(t, err)

	children := obj.Children()
	require.Len(t, children, 2)
	assert.Equal(t, "w1", children[0].ID)
	assert.Equal(t, "Wall", children[0].Type)

	h, ok := children[0].Get("height")
	require.True(t, ok)
	assert.Equal(t, 3.5, h)

	open, _ := children[1].Get("open")
	assert.Equal(t, true, open)
}

func TestDecodeJSONRejectsNonObjectRoot(t *testing.T) {
	_, err := DecodeJSON(strings.NewReader(`[1, 2, 3]`))
	assert.Error(t, err)
}

func TestDecodeJSONNullProperty(t *testing.T) {
	obj, err := DecodeJSON(strings.NewReader(`{"id": "a", "type": "Wall", "mark": null}`))
	require.NoError(t, err)

	v, ok := obj.Get("mark")
	assert.True(t, ok)
	assert.Nil(t, v)
}

// ---------------------------------------------------------------------------
// YAML
// ---------------------------------------------------------------------------

func TestDecodeYAMLPreservesKeyOrder(t *testing.T) {
	const doc = `
id: root
type: Model
zeta: 1
alpha: 2
`
	obj, err := DecodeYAML([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "type", "zeta", "alpha"}, obj.Keys())
}

func TestDecodeYAMLNestedTree(t *testing.T) {
	const doc = `
id: root
type: Model
elements:
  - id: w1
    type: Wall
    height: 3.5
`
	obj, err := DecodeYAML([]byte(doc))
	require.NoError(t, err)

	children := obj.Children()
	require.Len(t, children, 1)
	assert.Equal(t, "Wall", children[0].Type)
	h, _ := children[0].Get("height")
	assert.Equal(t, 3.5, h)
}

func TestDecodeYAMLRejectsScalarRoot(t *testing.T) {
	_, err := DecodeYAML([]byte(`just a string`))
	assert.Error(t, err)
}
