package command

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType_Accepts(t *testing.T) {
	var testCases = []struct {
		description string
		paramType   Type
		value       any
		expect      bool
	}{
		{description: "any", paramType: TypeAny, value: struct{}{}, expect: true},
		{description: "string", paramType: TypeString, value: "geo", expect: true},
		{description: "string rejects number", paramType: TypeString, value: 1, expect: false},
		{description: "number from json", paramType: TypeNumber, value: json.Number("1.5"), expect: true},
		{description: "number rejects string", paramType: TypeNumber, value: "1.5", expect: false},
		{description: "integer", paramType: TypeInteger, value: json.Number("3"), expect: true},
		{description: "integer rejects fraction", paramType: TypeInteger, value: 3.5, expect: false},
		{description: "boolean", paramType: TypeBoolean, value: true, expect: true},
		{description: "object", paramType: TypeObject, value: map[string]any{"tx": 1}, expect: true},
		{description: "object rejects array", paramType: TypeObject, value: []any{1}, expect: false},
		{description: "array", paramType: TypeArray, value: []any{1, 2, 3}, expect: true},
		{description: "unknown type", paramType: Type("vector"), value: 1, expect: false},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, testCase.paramType.Accepts(testCase.value), testCase.description)
	}
}

func TestSpec_Validate(t *testing.T) {
	spec := &Spec{Name: "set_material", Params: []*Param{
		{Name: "node_path", Type: TypeString, Required: true},
		{Name: "material_type", Type: TypeString, Default: "principledshader"},
		{Name: "parameters", Type: TypeObject},
	}}

	params, err := spec.Validate(map[string]any{"node_path": "/obj/box1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"node_path": "/obj/box1", "material_type": "principledshader"}, params)

	params, err = spec.Validate(map[string]any{"node_path": "/obj/box1", "material_type": "mtlxstandard_surface", "parameters": nil})
	require.NoError(t, err)
	assert.Equal(t, "mtlxstandard_surface", params["material_type"])
	_, has := params["parameters"]
	assert.False(t, has)

	_, err = spec.Validate(map[string]any{"node_path": "/obj/box1", "zeta": 1, "alpha": 2})
	assert.EqualError(t, err, "Unexpected parameter: alpha")
	assert.True(t, errors.Is(err, ErrInvalidParams))

	_, err = spec.Validate(map[string]any{"node_path": "/obj/box1", "parameters": "roughness=1"})
	assert.EqualError(t, err, "Invalid parameter parameters: expected object")

	assert.Equal(t, []string{"node_path"}, spec.Required())
	assert.Nil(t, spec.Param("missing"))
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	noop := func(ctx context.Context, params map[string]any) (any, error) { return nil, nil }

	require.NoError(t, registry.RegisterFunc(&Spec{Name: "save_scene"}, noop))
	require.NoError(t, registry.RegisterFunc(&Spec{Name: "create_node"}, noop))
	assert.Error(t, registry.RegisterFunc(&Spec{Name: "create_node"}, noop))
	assert.Error(t, registry.RegisterFunc(&Spec{}, noop))
	assert.Error(t, registry.Register(&Spec{Name: "x"}, nil))

	registry.Freeze()
	assert.True(t, registry.Frozen())
	err := registry.RegisterFunc(&Spec{Name: "delete_node"}, noop)
	assert.True(t, errors.Is(err, ErrFrozen))

	registry.Thaw()
	require.NoError(t, registry.RegisterFunc(&Spec{Name: "delete_node"}, noop))

	var names []string
	for _, spec := range registry.Specs() {
		names = append(names, spec.Name)
	}
	assert.Equal(t, []string{"create_node", "delete_node", "save_scene"}, names)
	assert.Equal(t, 3, registry.Len())
	_, ok := registry.Lookup("save_scene")
	assert.True(t, ok)
}
