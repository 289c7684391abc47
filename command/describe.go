package command

import "context"

// DescribeCommand lists the commands a registry serves, peers use it to discover the catalog
const DescribeCommand = "list_commands"

// RegisterDescribe registers DescribeCommand, its result is {"commands": [...specs]}
// and reflects the registry at call time
func RegisterDescribe(registry *Registry) error {
	spec := &Spec{Name: DescribeCommand, Description: "Lists commands served by the host with their parameters."}
	return registry.RegisterFunc(spec, func(ctx context.Context, params map[string]any) (any, error) {
		return map[string]any{"commands": registry.Specs()}, nil
	})
}
