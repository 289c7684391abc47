package scene

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/gosh"
	"github.com/viant/gosh/runner/local"
)

// CodeRunner executes code submitted with execute_code
type CodeRunner interface {
	Run(ctx context.Context, code string) (string, error)
}

// ShellRunner runs code in a local shell session
type ShellRunner struct {
	service *gosh.Service
}

// Run executes code, a non zero exit code is reported as an error carrying the output
func (r *ShellRunner) Run(ctx context.Context, code string) (string, error) {
	output, exitCode, err := r.service.Run(ctx, code)
	if err != nil {
		return output, err
	}
	if exitCode != 0 {
		return output, fmt.Errorf("exit code %d: %v", exitCode, strings.TrimSpace(output))
	}
	return output, nil
}

// Close terminates the shell session
func (r *ShellRunner) Close() error {
	return r.service.Close()
}

// NewShellRunner starts a local shell session
func NewShellRunner(ctx context.Context) (*ShellRunner, error) {
	service, err := gosh.New(ctx, local.New())
	if err != nil {
		return nil, fmt.Errorf("failed to start shell: %w", err)
	}
	return &ShellRunner{service: service}, nil
}

// disabledRunner rejects code execution
type disabledRunner struct{}

func (disabledRunner) Run(ctx context.Context, code string) (string, error) {
	return "", fmt.Errorf("code execution is disabled")
}
