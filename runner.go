package houdinimcp

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/viant/houdinimcp/config"
	"github.com/viant/houdinimcp/internal/logging"
)

// Run parses args, starts the command server and serves until SIGINT or SIGTERM
func Run(args []string) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg := &config.Host{}
	if options.ConfigURL != "" {
		if err := config.Load(ctx, options.ConfigURL, cfg); err != nil {
			return err
		}
	}
	options.apply(cfg)
	cfg.Init()
	logging.ConfigureRuntime(&cfg.Logging)
	if err := Start(ctx, cfg); err != nil {
		return err
	}
	<-ctx.Done()
	return Stop()
}
