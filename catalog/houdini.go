package catalog

import "github.com/viant/houdinimcp/command"

// Houdini command names
const (
	GetSceneInfo       = "get_scene_info"
	CreateNode         = "create_node"
	ModifyNode         = "modify_node"
	DeleteNode         = "delete_node"
	GetNodeInfo        = "get_node_info"
	ExecuteCode        = "execute_code"
	SetMaterial        = "set_material"
	GetAssetLibStatus  = "get_asset_lib_status"
	SaveScene          = "save_scene"
	GetAssetCategories = "get_asset_categories"
	SearchAssets       = "search_assets"
	ImportAsset        = "import_asset"
)

// DefaultParentPath is used when create_node omits parent_path
const DefaultParentPath = "/obj"

// DefaultMaterialType is used when set_material omits material_type
const DefaultMaterialType = "principledshader"

// Houdini returns the command catalog shared by the host and the bridge.
// Asset library commands are included only when assetLibrary is enabled.
func Houdini(assetLibrary bool) []*command.Spec {
	ret := []*command.Spec{
		{
			Name:        GetSceneInfo,
			Description: "Returns basic information about the current scene file and up to ten top level nodes.",
		},
		{
			Name:        CreateNode,
			Description: "Creates a new node under the parent network.",
			Params: []*command.Param{
				{Name: "node_type", Type: command.TypeString, Required: true, Description: "node type name, for example geo or box"},
				{Name: "parent_path", Type: command.TypeString, Default: DefaultParentPath, Description: "parent network path"},
				{Name: "name", Type: command.TypeString, Description: "node name, generated when omitted"},
				{Name: "position", Type: command.TypeArray, Description: "network editor position as [x, y]"},
				{Name: "parameters", Type: command.TypeObject, Description: "parameter values keyed by parameter name"},
			},
		},
		{
			Name:        ModifyNode,
			Description: "Renames, moves or sets parameters on an existing node.",
			Params: []*command.Param{
				{Name: "path", Type: command.TypeString, Required: true, Description: "node path"},
				{Name: "parameters", Type: command.TypeObject, Description: "parameter values keyed by parameter name"},
				{Name: "position", Type: command.TypeArray, Description: "network editor position as [x, y]"},
				{Name: "name", Type: command.TypeString, Description: "new node name"},
			},
		},
		{
			Name:        DeleteNode,
			Description: "Deletes a node from the scene.",
			Params: []*command.Param{
				{Name: "path", Type: command.TypeString, Required: true, Description: "node path"},
			},
		},
		{
			Name:        GetNodeInfo,
			Description: "Returns detailed information about a single node.",
			Params: []*command.Param{
				{Name: "path", Type: command.TypeString, Required: true, Description: "node path"},
			},
		},
		{
			Name:        ExecuteCode,
			Description: "Executes arbitrary code inside the host environment.",
			Params: []*command.Param{
				{Name: "code", Type: command.TypeString, Required: true, Description: "code to execute"},
			},
		},
		{
			Name:        SetMaterial,
			Description: "Creates or reuses a material and assigns it to an object level node.",
			Params: []*command.Param{
				{Name: "node_path", Type: command.TypeString, Required: true, Description: "object level node path"},
				{Name: "material_type", Type: command.TypeString, Default: DefaultMaterialType, Description: "material node type"},
				{Name: "name", Type: command.TypeString, Description: "material name, defaults to <material_type>_auto"},
				{Name: "parameters", Type: command.TypeObject, Description: "material parameter overrides"},
			},
		},
		{
			Name:        GetAssetLibStatus,
			Description: "Reports whether asset library commands are enabled.",
		},
		{
			Name:        SaveScene,
			Description: "Saves the scene graph to a file or storage URL.",
			Params: []*command.Param{
				{Name: "url", Type: command.TypeString, Required: true, Description: "destination file path or storage URL"},
			},
		},
	}
	if assetLibrary {
		ret = append(ret, AssetLibrary()...)
	}
	return ret
}

// AssetLibrary returns the asset library commands
func AssetLibrary() []*command.Spec {
	return []*command.Spec{
		{Name: GetAssetCategories, Description: "Lists asset library categories."},
		{
			Name:        SearchAssets,
			Description: "Searches the asset library.",
			Params: []*command.Param{
				{Name: "query", Type: command.TypeString, Description: "search phrase"},
				{Name: "category", Type: command.TypeString, Description: "category filter"},
			},
		},
		{
			Name:        ImportAsset,
			Description: "Imports an asset into the scene.",
			Params: []*command.Param{
				{Name: "asset_id", Type: command.TypeString, Description: "asset identifier"},
			},
		},
	}
}

// Lookup returns a spec by name
func Lookup(specs []*command.Spec, name string) *command.Spec {
	for _, spec := range specs {
		if spec.Name == name {
			return spec
		}
	}
	return nil
}
