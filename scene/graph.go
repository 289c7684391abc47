package scene

import (
	"fmt"
	"strings"
)

// Contexts created for every new graph
var Contexts = []string{"obj", "mat", "shop", "out"}

// Graph represents an in-memory scene
type Graph struct {
	root       *Node
	FilePath   string
	FPS        float64
	StartFrame float64
	EndFrame   float64
}

// Root returns the root node
func (g *Graph) Root() *Node {
	return g.root
}

// Node returns a node by absolute path, nil if it does not exist
func (g *Graph) Node(nodePath string) *Node {
	if !strings.HasPrefix(nodePath, "/") {
		return nil
	}
	ret := g.root
	for _, name := range strings.Split(strings.Trim(nodePath, "/"), "/") {
		if name == "" {
			continue
		}
		if ret = ret.Child(name); ret == nil {
			return nil
		}
	}
	return ret
}

// Create adds a node of typeName under parentPath, an empty name generates one
func (g *Graph) Create(parentPath, typeName, name string) (*Node, error) {
	parent := g.Node(parentPath)
	if parent == nil {
		return nil, fmt.Errorf("Parent path not found: %v", parentPath)
	}
	if parent.Type.Children == "" {
		return nil, fmt.Errorf("Cannot create nodes inside %v", parent.Path())
	}
	nodeType, ok := LookupType(parent.Type.Children, typeName)
	if !ok {
		return nil, fmt.Errorf("Invalid node type name: %v", typeName)
	}
	if name == "" {
		name = uniqueName(parent, typeName)
	} else if err := g.checkName(parent, name); err != nil {
		return nil, err
	}
	node := newNode(name, parent.Type.Children, nodeType)
	node.parent = parent
	node.Position = [2]float64{0, float64(-len(parent.children))}
	if node.Display {
		for _, sibling := range parent.children {
			sibling.Display, sibling.Render = false, false
		}
	}
	parent.children = append(parent.children, node)
	return node, nil
}

// Rename changes a node name keeping it unique within its parent
func (g *Graph) Rename(node *Node, name string) error {
	if node.parent == nil || node.parent == g.root {
		return fmt.Errorf("Cannot rename %v", node.Path())
	}
	if name == node.Name {
		return nil
	}
	if err := g.checkName(node.parent, name); err != nil {
		return err
	}
	node.Name = name
	return nil
}

// Delete removes a node, its children and any connection to it
func (g *Graph) Delete(nodePath string) (*Node, error) {
	node := g.Node(nodePath)
	if node == nil {
		return nil, fmt.Errorf("Node not found: %v", nodePath)
	}
	if node.parent == nil || node.parent == g.root {
		return nil, fmt.Errorf("Cannot delete %v", node.Path())
	}
	parent := node.parent
	siblings := parent.children[:0]
	for _, sibling := range parent.children {
		if sibling == node {
			continue
		}
		for i, input := range sibling.inputs {
			if input == node {
				sibling.inputs[i] = nil
			}
		}
		siblings = append(siblings, sibling)
	}
	parent.children = siblings
	return node, nil
}

// Outputs returns nodes that use node as an input
func (g *Graph) Outputs(node *Node) []Connection {
	var ret []Connection
	if node.parent == nil {
		return ret
	}
	for _, sibling := range node.parent.children {
		for i, input := range sibling.inputs {
			if input == node {
				ret = append(ret, Connection{Node: sibling, InputIndex: i})
			}
		}
	}
	return ret
}

// Connection represents an output connection
type Connection struct {
	Node       *Node
	InputIndex int
}

// Walk visits every node below the root depth first
func (g *Graph) Walk(visitor func(node *Node) bool) {
	var walk func(node *Node) bool
	walk = func(node *Node) bool {
		for _, child := range node.children {
			if !visitor(child) || !walk(child) {
				return false
			}
		}
		return true
	}
	walk(g.root)
}

func (g *Graph) checkName(parent *Node, name string) error {
	if !validName(name) {
		return fmt.Errorf("Invalid node name: %q", name)
	}
	if parent.Child(name) != nil {
		return fmt.Errorf("Node already exists: %v/%v", strings.TrimSuffix(parent.Path(), "/"), name)
	}
	return nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-', r == '.':
		default:
			return false
		}
	}
	return true
}

func uniqueName(parent *Node, typeName string) string {
	for i := 1; ; i++ {
		name := fmt.Sprintf("%v%d", typeName, i)
		if parent.Child(name) == nil {
			return name
		}
	}
}

// New creates a graph with the standard contexts
func New() *Graph {
	root := newNode("", CategoryManager, &NodeType{Name: "root", Children: CategoryManager})
	for _, name := range Contexts {
		nodeType, _ := LookupType(CategoryManager, name)
		child := newNode(name, CategoryManager, nodeType)
		child.parent = root
		root.children = append(root.children, child)
	}
	return &Graph{root: root, FPS: 24, StartFrame: 1, EndFrame: 240}
}
