package scene

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"

	"github.com/viant/afs"
	"github.com/viant/houdinimcp/catalog"
	"github.com/viant/houdinimcp/command"
	"github.com/viant/houdinimcp/internal/conv"
)

const (
	maxSceneNodes = 10
	maxNodeParms  = 20
)

// sceneInfoContexts lists contexts sampled by get_scene_info in order
var sceneInfoContexts = []string{"obj", "shop", "out", "ch", "vex", "stage"}

// Host implements the Houdini catalog against a Graph
type Host struct {
	graph        *Graph
	runner       CodeRunner
	fs           afs.Service
	assetLibrary bool
}

// Graph returns the scene graph
func (h *Host) Graph() *Graph {
	return h.graph
}

// Close releases the code runner when it holds resources
func (h *Host) Close() error {
	if closer, ok := h.runner.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// AssetLibrary returns true when asset library commands are enabled
func (h *Host) AssetLibrary() bool {
	return h.assetLibrary
}

// Register binds handlers for every catalog command
func (h *Host) Register(registry *command.Registry) error {
	handlers := h.handlers()
	for _, spec := range catalog.Houdini(h.assetLibrary) {
		handler, ok := handlers[spec.Name]
		if !ok {
			return fmt.Errorf("no scene handler for %v", spec.Name)
		}
		if err := registry.RegisterFunc(spec, handler); err != nil {
			return err
		}
	}
	return nil
}

type handlerFunc = func(ctx context.Context, params map[string]any) (any, error)

func (h *Host) handlers() map[string]handlerFunc {
	return map[string]handlerFunc{
		catalog.GetSceneInfo:       h.getSceneInfo,
		catalog.CreateNode:         h.createNode,
		catalog.ModifyNode:         h.modifyNode,
		catalog.DeleteNode:         h.deleteNode,
		catalog.GetNodeInfo:        h.getNodeInfo,
		catalog.ExecuteCode:        h.executeCode,
		catalog.SetMaterial:        h.setMaterial,
		catalog.GetAssetLibStatus:  h.getAssetLibStatus,
		catalog.SaveScene:          h.saveScene,
		catalog.GetAssetCategories: placeholder(catalog.GetAssetCategories),
		catalog.SearchAssets:       placeholder(catalog.SearchAssets),
		catalog.ImportAsset:        placeholder(catalog.ImportAsset),
	}
}

func (h *Host) getSceneInfo(ctx context.Context, params map[string]any) (any, error) {
	name := "Untitled"
	if h.graph.FilePath != "" {
		name = path.Base(h.graph.FilePath)
	}
	var nodes []map[string]any
	for _, contextName := range sceneInfoContexts {
		network := h.graph.Root().Child(contextName)
		if network == nil {
			continue
		}
		for _, node := range network.Children() {
			if len(nodes) >= maxSceneNodes {
				break
			}
			nodes = append(nodes, map[string]any{
				"name":     node.Name,
				"path":     node.Path(),
				"type":     node.Type.Name,
				"category": contextName,
			})
		}
	}
	if nodes == nil {
		nodes = []map[string]any{}
	}
	return map[string]any{
		"name":        name,
		"filepath":    h.graph.FilePath,
		"node_count":  h.graph.Root().SubChildCount(),
		"nodes":       nodes,
		"fps":         h.graph.FPS,
		"start_frame": h.graph.StartFrame,
		"end_frame":   h.graph.EndFrame,
	}, nil
}

func (h *Host) createNode(ctx context.Context, params map[string]any) (any, error) {
	position, err := positionParam(params)
	if err != nil {
		return nil, err
	}
	parameters, _ := params["parameters"].(map[string]any)
	node, err := h.graph.Create(conv.AsString(params["parent_path"]), conv.AsString(params["node_type"]), conv.AsString(params["name"]))
	if err != nil {
		return nil, fmt.Errorf("Failed to create node: %w", err)
	}
	if position != nil {
		node.Position = *position
	}
	if _, err = applyParms(node, parameters); err != nil {
		_, _ = h.graph.Delete(node.Path())
		return nil, fmt.Errorf("Failed to create node: %w", err)
	}
	return map[string]any{
		"id":       node.Name,
		"name":     node.Name,
		"path":     node.Path(),
		"type":     node.Type.Name,
		"position": []float64{node.Position[0], node.Position[1]},
	}, nil
}

func (h *Host) modifyNode(ctx context.Context, params map[string]any) (any, error) {
	nodePath := conv.AsString(params["path"])
	node := h.graph.Node(nodePath)
	if node == nil {
		return nil, fmt.Errorf("Node not found: %v", nodePath)
	}
	position, err := positionParam(params)
	if err != nil {
		return nil, err
	}
	changes := []string{}
	if name := conv.AsString(params["name"]); name != "" && name != node.Name {
		oldName := node.Name
		if err = h.graph.Rename(node, name); err != nil {
			return nil, err
		}
		changes = append(changes, fmt.Sprintf("Renamed from %v to %v", oldName, name))
	}
	if position != nil {
		node.Position = *position
		changes = append(changes, fmt.Sprintf("Position set to [%v, %v]", position[0], position[1]))
	}
	parameters, _ := params["parameters"].(map[string]any)
	parmChanges, err := applyParms(node, parameters)
	changes = append(changes, parmChanges...)
	if err != nil {
		return nil, err
	}
	return map[string]any{"path": node.Path(), "changes": changes}, nil
}

func (h *Host) deleteNode(ctx context.Context, params map[string]any) (any, error) {
	node, err := h.graph.Delete(conv.AsString(params["path"]))
	if err != nil {
		return nil, err
	}
	return map[string]any{"deleted": path.Join(node.Parent().Path(), node.Name), "name": node.Name}, nil
}

func (h *Host) getNodeInfo(ctx context.Context, params map[string]any) (any, error) {
	nodePath := conv.AsString(params["path"])
	node := h.graph.Node(nodePath)
	if node == nil {
		return nil, fmt.Errorf("Node not found: %v", nodePath)
	}
	info := map[string]any{
		"uid":          node.UID,
		"name":         node.Name,
		"path":         node.Path(),
		"type":         node.Type.Name,
		"category":     node.Category,
		"position":     []float64{node.Position[0], node.Position[1]},
		"color":        nil,
		"is_bypassed":  node.Bypassed,
		"is_displayed": nil,
		"is_rendered":  nil,
	}
	if node.Color != nil {
		info["color"] = node.Color
	}
	if node.Type.Flags {
		info["is_displayed"] = node.Display
		info["is_rendered"] = node.Render
	}
	parms := []map[string]any{}
	for i, parm := range node.Parms() {
		if i >= maxNodeParms {
			break
		}
		value, _ := node.Parm(parm.Name)
		parms = append(parms, map[string]any{
			"name":      parm.Name,
			"label":     parm.Label,
			"value":     conv.AsString(value),
			"raw_value": value,
			"type":      parm.Type,
		})
	}
	info["parameters"] = parms
	inputs := []map[string]any{}
	for i, input := range node.Inputs() {
		if input == nil {
			continue
		}
		inputs = append(inputs, map[string]any{"index": i, "name": input.Name, "path": input.Path(), "type": input.Type.Name})
	}
	info["inputs"] = inputs
	outputs := []map[string]any{}
	for i, connection := range h.graph.Outputs(node) {
		outputs = append(outputs, map[string]any{
			"index":       i,
			"name":        connection.Node.Name,
			"path":        connection.Node.Path(),
			"type":        connection.Node.Type.Name,
			"input_index": connection.InputIndex,
		})
	}
	info["outputs"] = outputs
	return info, nil
}

func (h *Host) executeCode(ctx context.Context, params map[string]any) (any, error) {
	output, err := h.runner.Run(ctx, conv.AsString(params["code"]))
	if err != nil {
		return nil, fmt.Errorf("Code execution error: %w", err)
	}
	return map[string]any{"executed": true, "output": output}, nil
}

func (h *Host) setMaterial(ctx context.Context, params map[string]any) (any, error) {
	nodePath := conv.AsString(params["node_path"])
	target := h.graph.Node(nodePath)
	if target == nil {
		return nil, fmt.Errorf("Node not found: %v", nodePath)
	}
	if target.Category != CategoryObject {
		return nil, fmt.Errorf("Node %v is not an OBJ-level node and cannot accept direct materials.", nodePath)
	}
	network := "/mat"
	if h.graph.Node(network) == nil {
		network = "/shop"
		if h.graph.Node(network) == nil {
			return nil, fmt.Errorf("No /mat or /shop context found to create materials.")
		}
	}
	materialType := conv.AsString(params["material_type"])
	name := conv.AsString(params["name"])
	if name == "" {
		name = materialType + "_auto"
	}
	material := h.graph.Node(path.Join(network, name))
	if material == nil {
		var err error
		if material, err = h.graph.Create(network, materialType, name); err != nil {
			return nil, err
		}
	}
	parameters, _ := params["parameters"].(map[string]any)
	if _, err := applyParms(material, parameters); err != nil {
		return nil, err
	}
	if err := h.assignMaterial(target, material); err != nil {
		return nil, err
	}
	return map[string]any{"material_node": material.Path(), "applied_to": target.Path()}, nil
}

// assignMaterial sets shop_materialpath on target, or on a material1 Material SOP
// inside its geometry network when the object has no such parameter
func (h *Host) assignMaterial(target, material *Node) error {
	if target.HasParm("shop_materialpath") {
		return target.SetParm("shop_materialpath", material.Path())
	}
	geometry := target.Child("geometry")
	if geometry == nil {
		return fmt.Errorf("No 'geometry' node found inside OBJ to apply material to.")
	}
	materialSOP := geometry.Child("material1")
	if materialSOP == nil {
		var displayed *Node
		for _, child := range geometry.Children() {
			if child.Display {
				displayed = child
				break
			}
		}
		var err error
		if materialSOP, err = h.graph.Create(geometry.Path(), "material", "material1"); err != nil {
			return err
		}
		if displayed != nil {
			if err = materialSOP.SetInput(0, displayed); err != nil {
				return err
			}
		}
		materialSOP.Display, materialSOP.Render = true, true
	}
	if !materialSOP.HasParm("shop_materialpath1") {
		return fmt.Errorf("No shop_materialpath1 on Material SOP to assign the material.")
	}
	return materialSOP.SetParm("shop_materialpath1", material.Path())
}

func (h *Host) getAssetLibStatus(ctx context.Context, params map[string]any) (any, error) {
	message := "Asset library usage is disabled."
	if h.assetLibrary {
		message = "Asset library usage is enabled."
	}
	return map[string]any{"enabled": h.assetLibrary, "message": message}, nil
}

func (h *Host) saveScene(ctx context.Context, params map[string]any) (any, error) {
	URL := conv.AsString(params["url"])
	size, err := Save(ctx, h.fs, URL, h.graph)
	if err != nil {
		return nil, err
	}
	return map[string]any{"saved": URL, "bytes": size, "node_count": h.graph.Root().SubChildCount()}, nil
}

func placeholder(name string) handlerFunc {
	return func(ctx context.Context, params map[string]any) (any, error) {
		return map[string]any{"error": name + " not implemented"}, nil
	}
}

// applyParms sets known parameters in name order, unknown names are ignored
func applyParms(node *Node, parameters map[string]any) ([]string, error) {
	names := make([]string, 0, len(parameters))
	for name := range parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	var changes []string
	for _, name := range names {
		oldValue, ok := node.Parm(name)
		if !ok {
			continue
		}
		if err := node.SetParm(name, parameters[name]); err != nil {
			return changes, err
		}
		newValue, _ := node.Parm(name)
		changes = append(changes, fmt.Sprintf("Parameter %v changed from %v to %v", name, conv.AsString(oldValue), conv.AsString(newValue)))
	}
	return changes, nil
}

// positionParam returns nil when position is absent or shorter than two values
func positionParam(params map[string]any) (*[2]float64, error) {
	value, ok := params["position"]
	if !ok || value == nil {
		return nil, nil
	}
	values, ok := conv.ToFloats(value)
	if !ok {
		return nil, command.InvalidParamsf("Invalid parameter position: expected numbers")
	}
	if len(values) < 2 {
		return nil, nil
	}
	return &[2]float64{values[0], values[1]}, nil
}

// Option configures a Host
type Option func(h *Host)

// WithGraph sets the scene graph
func WithGraph(graph *Graph) Option {
	return func(h *Host) {
		h.graph = graph
	}
}

// WithCodeRunner sets the execute_code runner
func WithCodeRunner(runner CodeRunner) Option {
	return func(h *Host) {
		h.runner = runner
	}
}

// WithFileSystem sets the storage used by save_scene
func WithFileSystem(fs afs.Service) Option {
	return func(h *Host) {
		h.fs = fs
	}
}

// WithAssetLibrary toggles asset library commands
func WithAssetLibrary(enabled bool) Option {
	return func(h *Host) {
		h.assetLibrary = enabled
	}
}

// NewHost creates a scene host, code execution is disabled unless a runner is supplied
func NewHost(options ...Option) *Host {
	ret := &Host{}
	for _, option := range options {
		option(ret)
	}
	if ret.graph == nil {
		ret.graph = New()
	}
	if ret.runner == nil {
		ret.runner = disabledRunner{}
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}
