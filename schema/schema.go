package schema

import (
	"github.com/viant/houdinimcp/command"
	mcpschema "github.com/viant/mcp-protocol/schema"
)

// FromParams returns an MCP tool input schema for command parameters
func FromParams(params []*command.Param) mcpschema.ToolInputSchema {
	ret := mcpschema.ToolInputSchema{Type: "object", Properties: mcpschema.ToolInputSchemaProperties{}}
	for _, param := range params {
		ret.Properties[param.Name] = property(param)
		if param.Required {
			ret.Required = append(ret.Required, param.Name)
		}
	}
	return ret
}

func property(param *command.Param) map[string]interface{} {
	ret := map[string]interface{}{}
	switch param.Type {
	case command.TypeAny:
	case command.TypeArray:
		ret["type"] = string(param.Type)
		ret["items"] = map[string]interface{}{}
	case command.TypeObject:
		ret["type"] = string(param.Type)
		ret["additionalProperties"] = true
	default:
		ret["type"] = string(param.Type)
	}
	if param.Description != "" {
		ret["description"] = param.Description
	}
	if param.Default != nil {
		ret["default"] = param.Default
	}
	return ret
}

// Tool returns an MCP tool for a command spec
func Tool(spec *command.Spec) mcpschema.Tool {
	ret := mcpschema.Tool{Name: spec.Name, InputSchema: FromParams(spec.Params)}
	if spec.Description != "" {
		description := spec.Description
		ret.Description = &description
	}
	return ret
}

// Tools returns MCP tools for command specs
func Tools(specs []*command.Spec) []mcpschema.Tool {
	ret := make([]mcpschema.Tool, 0, len(specs))
	for _, spec := range specs {
		ret = append(ret, Tool(spec))
	}
	return ret
}
