package command

import (
	"sort"

	"github.com/viant/houdinimcp/internal/conv"
)

// Type represents a parameter value type
type Type string

const (
	TypeAny     Type = ""
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
)

// Param declares a single command parameter
type Param struct {
	Name        string `json:"name" yaml:"name"`
	Type        Type   `json:"type,omitempty" yaml:"type,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
}

// Spec declares a command name and its parameter contract
type Spec struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Params      []*Param `json:"params,omitempty" yaml:"params,omitempty"`
}

// Param returns a parameter by name
func (s *Spec) Param(name string) *Param {
	for _, param := range s.Params {
		if param.Name == name {
			return param
		}
	}
	return nil
}

// Required returns required parameter names in declaration order
func (s *Spec) Required() []string {
	var ret []string
	for _, param := range s.Params {
		if param.Required {
			ret = append(ret, param.Name)
		}
	}
	return ret
}

// Validate checks params against the contract and returns a copy with defaults applied.
// A null value is treated as an absent one.
func (s *Spec) Validate(params map[string]any) (map[string]any, error) {
	var unexpected []string
	for name := range params {
		if s.Param(name) == nil {
			unexpected = append(unexpected, name)
		}
	}
	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		return nil, unexpectedParameter(unexpected[0])
	}
	ret := make(map[string]any, len(s.Params))
	for _, param := range s.Params {
		value, ok := params[param.Name]
		if !ok || value == nil {
			if param.Required {
				return nil, missingParameter(param.Name)
			}
			if param.Default != nil {
				ret[param.Name] = param.Default
			}
			continue
		}
		if !param.Type.Accepts(value) {
			return nil, invalidParameter(param.Name, param.Type)
		}
		ret[param.Name] = value
	}
	return ret, nil
}

// Accepts returns true if value is compatible with the type
func (t Type) Accepts(value any) bool {
	switch t {
	case TypeAny:
		return true
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeNumber:
		return conv.IsNumber(value)
	case TypeInteger:
		return conv.IsInteger(value)
	case TypeBoolean:
		_, ok := value.(bool)
		return ok
	case TypeObject:
		_, ok := value.(map[string]any)
		return ok
	case TypeArray:
		_, ok := value.([]any)
		return ok
	}
	return false
}
