package bridge

import (
	"context"
	"fmt"

	"github.com/jessevdk/go-flags"
	"github.com/viant/houdinimcp/catalog"
	"github.com/viant/houdinimcp/config"
	"github.com/viant/houdinimcp/internal/logging"
	"github.com/viant/houdinimcp/server"
	"github.com/viant/mcp-protocol/schema"
)

// Version is reported to MCP clients
var Version = "0.1.0"

const instructions = "Tools operate on the scene of a running Houdini session. " +
	"Start the command server in Houdini before calling them."

// Run parses args and serves MCP over stdio until stdin closes
func Run(args []string) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return err
	}
	ctx := context.Background()
	cfg, err := loadConfig(ctx, options)
	if err != nil {
		return err
	}
	logging.ConfigureRuntime(&cfg.Logging)
	logger := logging.Logger("bridge")

	relay := NewRelay(cfg.Endpoint(), WithTimeout(cfg.Timeout()), WithMaxMessageSize(cfg.MaxMessageSize))
	defer relay.Close()
	service := NewService(relay, catalog.Houdini(cfg.AssetLibrary))
	if err := relay.Ping(ctx); err != nil {
		logger.Warn().Err(err).Msg("Houdini is not reachable yet, tools will fail until it is")
	} else if err = service.Refresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("using the built-in Houdini catalog")
	}

	srv, err := server.New(
		server.WithImplementation(schema.Implementation{Name: "HoudiniMCP", Version: Version}),
		server.WithInstructions(instructions),
		server.WithToolset(service),
	)
	if err != nil {
		return err
	}
	logger.Info().Str("endpoint", relay.Endpoint()).Msg("serving MCP over stdio")
	return srv.Stdio(ctx).ListenAndServe()
}

func loadConfig(ctx context.Context, options *Options) (*config.Bridge, error) {
	cfg := &config.Bridge{}
	if options.ConfigURL != "" {
		if err := config.Load(ctx, options.ConfigURL, cfg); err != nil {
			return nil, err
		}
	}
	options.apply(cfg)
	cfg.Init()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bridge config: %w", err)
	}
	return cfg, nil
}
