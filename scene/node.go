package scene

import (
	"fmt"
	"path"

	"github.com/viant/houdinimcp/internal/conv"
)

// Node represents a scene graph node
type Node struct {
	UID      string
	Name     string
	Type     *NodeType
	Category string
	Position [2]float64
	Color    []float64
	Bypassed bool
	Display  bool
	Render   bool

	parent   *Node
	children []*Node
	inputs   []*Node
	values   map[string]any
}

// Path returns the absolute node path
func (n *Node) Path() string {
	if n.parent == nil {
		return "/"
	}
	return path.Join(n.parent.Path(), n.Name)
}

// Parent returns the parent node, nil for the root
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns direct children in creation order
func (n *Node) Children() []*Node {
	return n.children
}

// Child returns a direct child by name
func (n *Node) Child(name string) *Node {
	for _, child := range n.children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// Inputs returns connected input nodes, a nil entry is an unconnected input
func (n *Node) Inputs() []*Node {
	return n.inputs
}

// SetInput connects source to the input at index
func (n *Node) SetInput(index int, source *Node) error {
	if index < 0 {
		return fmt.Errorf("invalid input index: %v", index)
	}
	if source != nil && source.parent != n.parent {
		return fmt.Errorf("cannot connect %v to %v: nodes are in different networks", source.Path(), n.Path())
	}
	for len(n.inputs) <= index {
		n.inputs = append(n.inputs, nil)
	}
	n.inputs[index] = source
	return nil
}

// SubChildCount returns the number of descendants
func (n *Node) SubChildCount() int {
	count := 0
	for _, child := range n.children {
		count += 1 + child.SubChildCount()
	}
	return count
}

// Parms returns parameter templates in declaration order
func (n *Node) Parms() []*ParmTemplate {
	if n.Type == nil {
		return nil
	}
	return n.Type.Parms
}

// Parm returns a parameter value
func (n *Node) Parm(name string) (any, bool) {
	if n.Type == nil || n.Type.Parm(name) == nil {
		return nil, false
	}
	return n.values[name], true
}

// HasParm returns true if the node type declares name
func (n *Node) HasParm(name string) bool {
	_, ok := n.Parm(name)
	return ok
}

// SetParm assigns a parameter value converted to the template type
func (n *Node) SetParm(name string, value any) error {
	if n.Type == nil {
		return fmt.Errorf("node %v has no parameters", n.Path())
	}
	template := n.Type.Parm(name)
	if template == nil {
		return fmt.Errorf("parameter not found: %v on %v", name, n.Path())
	}
	converted, err := coerce(template, value)
	if err != nil {
		return err
	}
	n.values[name] = converted
	return nil
}

func coerce(template *ParmTemplate, value any) (any, error) {
	switch template.Type {
	case ParmFloat:
		if f, ok := conv.ToFloat(value); ok && !isString(value) {
			return f, nil
		}
	case ParmInt:
		if i, ok := conv.ToInt(value); ok && !isString(value) {
			return i, nil
		}
	case ParmToggle:
		if b, ok := value.(bool); ok {
			return b, nil
		}
		if i, ok := conv.ToInt(value); ok && !isString(value) {
			return i != 0, nil
		}
	case ParmString:
		if s, ok := value.(string); ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("invalid value for parameter %v: expected %v, got %T", template.Name, template.Type, value)
}

func isString(value any) bool {
	_, ok := value.(string)
	return ok
}

func newNode(name string, category string, nodeType *NodeType) *Node {
	ret := &Node{UID: newUID(), Name: name, Type: nodeType, Category: category, values: map[string]any{}}
	for _, parm := range nodeType.Parms {
		ret.values[parm.Name] = parm.Default
	}
	if nodeType.Flags {
		ret.Display = true
		ret.Render = true
	}
	return ret
}
