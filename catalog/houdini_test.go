package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoudini(t *testing.T) {
	var testCases = []struct {
		description  string
		assetLibrary bool
		expectCount  int
		expectAssets bool
	}{
		{description: "default catalog", expectCount: 9},
		{description: "asset library enabled", assetLibrary: true, expectCount: 12, expectAssets: true},
	}
	for _, testCase := range testCases {
		specs := Houdini(testCase.assetLibrary)
		assert.Len(t, specs, testCase.expectCount, testCase.description)
		assert.Equal(t, testCase.expectAssets, Lookup(specs, SearchAssets) != nil, testCase.description)
		names := map[string]bool{}
		for _, spec := range specs {
			assert.False(t, names[spec.Name], "duplicate %v", spec.Name)
			names[spec.Name] = true
			assert.NotEmpty(t, spec.Description, spec.Name)
		}
	}
}

func TestHoudini_Contracts(t *testing.T) {
	specs := Houdini(false)
	createNode := Lookup(specs, CreateNode)
	require.NotNil(t, createNode)
	assert.Equal(t, []string{"node_type"}, createNode.Required())
	assert.Equal(t, DefaultParentPath, createNode.Param("parent_path").Default)

	setMaterial := Lookup(specs, SetMaterial)
	require.NotNil(t, setMaterial)
	assert.Equal(t, []string{"node_path"}, setMaterial.Required())
	assert.Equal(t, DefaultMaterialType, setMaterial.Param("material_type").Default)

	params, err := createNode.Validate(map[string]any{"node_type": "geo"})
	require.NoError(t, err)
	assert.Equal(t, "/obj", params["parent_path"])
}
