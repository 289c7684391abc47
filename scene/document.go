package scene

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Document represents a serialized graph
type Document struct {
	FPS        float64         `json:"fps" yaml:"fps"`
	StartFrame float64         `json:"startFrame" yaml:"startFrame"`
	EndFrame   float64         `json:"endFrame" yaml:"endFrame"`
	Nodes      []*NodeDocument `json:"nodes" yaml:"nodes"`
}

// NodeDocument represents a serialized node, parents precede their children
type NodeDocument struct {
	UID        string         `json:"uid,omitempty" yaml:"uid,omitempty"`
	Path       string         `json:"path" yaml:"path"`
	Type       string         `json:"type" yaml:"type"`
	Position   []float64      `json:"position,omitempty" yaml:"position,omitempty"`
	Color      []float64      `json:"color,omitempty" yaml:"color,omitempty"`
	Bypassed   bool           `json:"bypassed,omitempty" yaml:"bypassed,omitempty"`
	Display    bool           `json:"display,omitempty" yaml:"display,omitempty"`
	Render     bool           `json:"render,omitempty" yaml:"render,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Inputs     []string       `json:"inputs,omitempty" yaml:"inputs,omitempty"`
}

// Document returns a serializable snapshot of the graph
func (g *Graph) Document() *Document {
	ret := &Document{FPS: g.FPS, StartFrame: g.StartFrame, EndFrame: g.EndFrame}
	g.Walk(func(node *Node) bool {
		if node.Category == CategoryManager {
			return true
		}
		doc := &NodeDocument{
			UID:        node.UID,
			Path:       node.Path(),
			Type:       node.Type.Name,
			Position:   []float64{node.Position[0], node.Position[1]},
			Color:      node.Color,
			Bypassed:   node.Bypassed,
			Display:    node.Display,
			Render:     node.Render,
			Parameters: map[string]any{},
		}
		for _, parm := range node.Parms() {
			if value := node.values[parm.Name]; value != parm.Default {
				doc.Parameters[parm.Name] = value
			}
		}
		for _, input := range node.inputs {
			if input == nil {
				doc.Inputs = append(doc.Inputs, "")
				continue
			}
			doc.Inputs = append(doc.Inputs, input.Path())
		}
		ret.Nodes = append(ret.Nodes, doc)
		return true
	})
	return ret
}

// FromDocument rebuilds a graph
func FromDocument(doc *Document) (*Graph, error) {
	ret := New()
	if doc.FPS > 0 {
		ret.FPS = doc.FPS
	}
	if doc.EndFrame > 0 {
		ret.StartFrame, ret.EndFrame = doc.StartFrame, doc.EndFrame
	}
	nodes := make([]*Node, len(doc.Nodes))
	for i, nodeDoc := range doc.Nodes {
		parentPath, name := path.Split(strings.TrimSuffix(nodeDoc.Path, "/"))
		node, err := ret.Create(parentPath, nodeDoc.Type, name)
		if err != nil {
			return nil, fmt.Errorf("failed to restore %v: %w", nodeDoc.Path, err)
		}
		if nodeDoc.UID != "" {
			node.UID = nodeDoc.UID
		}
		nodes[i] = node
	}
	for i, nodeDoc := range doc.Nodes {
		node := nodes[i]
		if len(nodeDoc.Position) >= 2 {
			node.Position = [2]float64{nodeDoc.Position[0], nodeDoc.Position[1]}
		}
		node.Color = nodeDoc.Color
		node.Bypassed, node.Display, node.Render = nodeDoc.Bypassed, nodeDoc.Display, nodeDoc.Render
		for name, value := range nodeDoc.Parameters {
			if err := node.SetParm(name, value); err != nil {
				return nil, fmt.Errorf("failed to restore %v: %w", nodeDoc.Path, err)
			}
		}
		for index, inputPath := range nodeDoc.Inputs {
			if inputPath == "" {
				continue
			}
			input := ret.Node(inputPath)
			if input == nil {
				return nil, fmt.Errorf("failed to restore %v: input not found: %v", nodeDoc.Path, inputPath)
			}
			if err := node.SetInput(index, input); err != nil {
				return nil, fmt.Errorf("failed to restore %v: %w", nodeDoc.Path, err)
			}
		}
	}
	return ret, nil
}

// Save writes the graph to URL, the extension selects YAML or JSON
func Save(ctx context.Context, fs afs.Service, URL string, graph *Graph) (int, error) {
	doc := graph.Document()
	var data []byte
	var err error
	if isYAML(URL) {
		data, err = yaml.Marshal(doc)
	} else {
		data, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to encode scene: %w", err)
	}
	if err = fs.Upload(ctx, URL, 0644, bytes.NewReader(data)); err != nil {
		return 0, fmt.Errorf("failed to save scene %v: %w", URL, err)
	}
	graph.FilePath = URL
	return len(data), nil
}

// Load reads a graph saved with Save
func Load(ctx context.Context, fs afs.Service, URL string) (*Graph, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %v: %w", URL, err)
	}
	doc := &Document{}
	if isYAML(URL) {
		err = yaml.Unmarshal(data, doc)
	} else {
		err = json.Unmarshal(data, doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode scene %v: %w", URL, err)
	}
	ret, err := FromDocument(doc)
	if err != nil {
		return nil, err
	}
	ret.FilePath = URL
	return ret, nil
}

func isYAML(URL string) bool {
	switch strings.ToLower(path.Ext(URL)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
