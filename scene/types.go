package scene

// Node categories
const (
	CategoryManager = "Manager"
	CategoryObject  = "Object"
	CategorySop     = "Sop"
	CategoryVop     = "Vop"
	CategoryShop    = "Shop"
	CategoryDriver  = "Driver"
)

// Parameter template types
const (
	ParmFloat  = "Float"
	ParmInt    = "Int"
	ParmToggle = "Toggle"
	ParmString = "String"
)

// ParmTemplate describes a node parameter
type ParmTemplate struct {
	Name    string
	Label   string
	Type    string
	Default any
}

// NodeType describes what a node of a given type looks like
type NodeType struct {
	Name string
	// Children is the category of nodes this type may contain, empty when it cannot contain any
	Children string
	// Flags reports whether display and render flags apply
	Flags bool
	Parms []*ParmTemplate
}

// Parm returns a template by name
func (t *NodeType) Parm(name string) *ParmTemplate {
	for _, parm := range t.Parms {
		if parm.Name == name {
			return parm
		}
	}
	return nil
}

func floats(names []string, labels []string, value float64) []*ParmTemplate {
	ret := make([]*ParmTemplate, 0, len(names))
	for i, name := range names {
		ret = append(ret, &ParmTemplate{Name: name, Label: labels[i], Type: ParmFloat, Default: value})
	}
	return ret
}

func transform() []*ParmTemplate {
	labels := []string{"Translate X", "Translate Y", "Translate Z", "Rotate X", "Rotate Y", "Rotate Z"}
	ret := floats([]string{"tx", "ty", "tz", "rx", "ry", "rz"}, labels, 0)
	ret = append(ret, floats([]string{"sx", "sy", "sz"}, []string{"Scale X", "Scale Y", "Scale Z"}, 1)...)
	return append(ret, &ParmTemplate{Name: "scale", Label: "Uniform Scale", Type: ParmFloat, Default: 1.0})
}

func concat(groups ...[]*ParmTemplate) []*ParmTemplate {
	var ret []*ParmTemplate
	for _, group := range groups {
		ret = append(ret, group...)
	}
	return ret
}

// types lists known node types per category
var types = map[string]map[string]*NodeType{
	CategoryManager: {
		"obj":  {Name: "obj", Children: CategoryObject},
		"mat":  {Name: "mat", Children: CategoryVop},
		"shop": {Name: "shop", Children: CategoryShop},
		"out":  {Name: "out", Children: CategoryDriver},
	},
	CategoryObject: {
		"geo": {Name: "geo", Children: CategorySop, Flags: true, Parms: concat(transform(), []*ParmTemplate{
			{Name: "shop_materialpath", Label: "Material", Type: ParmString, Default: ""},
			{Name: "display", Label: "Display", Type: ParmToggle, Default: true},
		})},
		"null":   {Name: "null", Flags: true, Parms: transform()},
		"subnet": {Name: "subnet", Children: CategoryObject, Flags: true, Parms: transform()},
		"cam": {Name: "cam", Flags: true, Parms: concat(transform(), []*ParmTemplate{
			{Name: "resx", Label: "Resolution X", Type: ParmInt, Default: 1920},
			{Name: "resy", Label: "Resolution Y", Type: ParmInt, Default: 1080},
			{Name: "focal", Label: "Focal Length", Type: ParmFloat, Default: 50.0},
		})},
		"hlight": {Name: "hlight", Flags: true, Parms: concat(transform(), []*ParmTemplate{
			{Name: "light_intensity", Label: "Intensity", Type: ParmFloat, Default: 1.0},
			{Name: "light_type", Label: "Light Type", Type: ParmString, Default: "point"},
		})},
	},
	CategorySop: {
		"box": {Name: "box", Flags: true, Parms: concat(
			floats([]string{"sizex", "sizey", "sizez"}, []string{"Size X", "Size Y", "Size Z"}, 1),
			floats([]string{"tx", "ty", "tz"}, []string{"Center X", "Center Y", "Center Z"}, 0),
			[]*ParmTemplate{{Name: "divrate", Label: "Axis Divisions", Type: ParmInt, Default: 4}},
		)},
		"sphere": {Name: "sphere", Flags: true, Parms: concat(
			floats([]string{"radx", "rady", "radz"}, []string{"Radius X", "Radius Y", "Radius Z"}, 1),
			[]*ParmTemplate{
				{Name: "type", Label: "Primitive Type", Type: ParmString, Default: "polygon"},
				{Name: "freq", Label: "Frequency", Type: ParmInt, Default: 2},
			},
		)},
		"grid": {Name: "grid", Flags: true, Parms: concat(
			floats([]string{"sizex", "sizey"}, []string{"Size X", "Size Y"}, 10),
			[]*ParmTemplate{
				{Name: "rows", Label: "Rows", Type: ParmInt, Default: 10},
				{Name: "cols", Label: "Columns", Type: ParmInt, Default: 10},
			},
		)},
		"transform": {Name: "transform", Flags: true, Parms: transform()},
		"merge":     {Name: "merge", Flags: true},
		"null":      {Name: "null", Flags: true},
		"file": {Name: "file", Flags: true, Parms: []*ParmTemplate{
			{Name: "file", Label: "Geometry File", Type: ParmString, Default: "default.bgeo"},
		}},
		"material": {Name: "material", Flags: true, Parms: []*ParmTemplate{
			{Name: "shop_materialpath1", Label: "Material", Type: ParmString, Default: ""},
		}},
	},
	CategoryVop: {
		"principledshader": {Name: "principledshader", Parms: concat(
			floats([]string{"basecolorr", "basecolorg", "basecolorb"}, []string{"Base Color R", "Base Color G", "Base Color B"}, 0.8),
			[]*ParmTemplate{
				{Name: "rough", Label: "Roughness", Type: ParmFloat, Default: 0.3},
				{Name: "metallic", Label: "Metallic", Type: ParmFloat, Default: 0.0},
				{Name: "ior", Label: "IOR", Type: ParmFloat, Default: 1.5},
			},
		)},
		"mtlxstandard_surface": {Name: "mtlxstandard_surface", Parms: []*ParmTemplate{
			{Name: "base", Label: "Base", Type: ParmFloat, Default: 1.0},
			{Name: "specular_roughness", Label: "Specular Roughness", Type: ParmFloat, Default: 0.2},
			{Name: "metalness", Label: "Metalness", Type: ParmFloat, Default: 0.0},
		}},
		"materialbuilder": {Name: "materialbuilder", Children: CategoryVop},
	},
	CategoryShop: {
		"principledshader": {Name: "principledshader", Parms: []*ParmTemplate{
			{Name: "rough", Label: "Roughness", Type: ParmFloat, Default: 0.3},
		}},
	},
	CategoryDriver: {
		"mantra": {Name: "mantra", Parms: []*ParmTemplate{
			{Name: "camera", Label: "Camera", Type: ParmString, Default: "/obj/cam1"},
			{Name: "vm_picture", Label: "Output Picture", Type: ParmString, Default: "$HIP/render/$HIPNAME.$OS.$F4.exr"},
		}},
		"karma": {Name: "karma", Parms: []*ParmTemplate{
			{Name: "camera", Label: "Camera", Type: ParmString, Default: "/obj/cam1"},
			{Name: "picture", Label: "Output Picture", Type: ParmString, Default: "$HIP/render/$HIPNAME.$OS.$F4.exr"},
		}},
		"geometry": {Name: "geometry", Parms: []*ParmTemplate{
			{Name: "soppath", Label: "SOP Path", Type: ParmString, Default: ""},
			{Name: "sopoutput", Label: "Output File", Type: ParmString, Default: "$HIP/geo/$HIPNAME.$OS.$F.bgeo.sc"},
		}},
	},
}

// LookupType returns a node type within a category
func LookupType(category, name string) (*NodeType, bool) {
	ret, ok := types[category][name]
	return ret, ok
}
