package houdinimcp

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/houdinimcp/command"
	"github.com/viant/houdinimcp/config"
	"github.com/viant/houdinimcp/host"
	"github.com/viant/houdinimcp/internal/logging"
	"github.com/viant/houdinimcp/scene"
)

// Plugin wires the scene, the dispatcher and its executor for one command server run
type Plugin struct {
	config     *config.Host
	scene      *scene.Host
	executor   command.Executor
	dispatcher *command.Dispatcher
	cancel     context.CancelFunc
}

// Scene returns the scene host
func (p *Plugin) Scene() *scene.Host {
	return p.scene
}

// Dispatcher returns the command dispatcher
func (p *Plugin) Dispatcher() *command.Dispatcher {
	return p.dispatcher
}

// Close stops the executor, queued commands are abandoned, then releases the scene
func (p *Plugin) Close() error {
	if p.cancel != nil {
		p.cancel()
	}
	var err error
	if closer, ok := p.executor.(io.Closer); ok {
		err = closer.Close()
	}
	return errors.Join(err, p.scene.Close())
}

// NewPlugin builds a plugin for cfg, cfg must be initialized
func NewPlugin(ctx context.Context, cfg *config.Host) (*Plugin, error) {
	fs := afs.New()
	options := []scene.Option{scene.WithFileSystem(fs), scene.WithAssetLibrary(cfg.AssetLibrary)}
	if cfg.Scene != "" {
		graph, err := scene.Load(ctx, fs, cfg.Scene)
		if err != nil {
			return nil, err
		}
		options = append(options, scene.WithGraph(graph))
	}
	if cfg.ExecuteCode {
		runner, err := scene.NewShellRunner(ctx)
		if err != nil {
			return nil, err
		}
		options = append(options, scene.WithCodeRunner(runner))
	}
	ret := &Plugin{config: cfg, scene: scene.NewHost(options...)}
	registry := command.NewRegistry()
	if err := ret.scene.Register(registry); err != nil {
		return nil, errors.Join(err, ret.scene.Close())
	}
	if err := command.RegisterDescribe(registry); err != nil {
		return nil, errors.Join(err, ret.scene.Close())
	}
	switch strings.ToLower(cfg.Dispatch) {
	case config.DispatchPoll:
		poller := command.NewPoller(0)
		runCtx, cancel := context.WithCancel(context.Background())
		ret.cancel = cancel
		go poller.Run(runCtx, cfg.PollInterval())
		ret.executor = poller
	default:
		ret.executor = command.NewWorker(0)
	}
	ret.dispatcher = command.NewDispatcher(registry, ret.executor, command.WithLogger(logging.Logger("dispatcher")))
	return ret, nil
}

var (
	mux     sync.Mutex
	running *Plugin
)

// Start starts the process wide command server, it fails with host.ErrAlreadyRunning
// when a server is already running and with host.ErrAddressInUse when the port is taken
func Start(ctx context.Context, cfg *config.Host) error {
	mux.Lock()
	defer mux.Unlock()
	if running != nil {
		return host.ErrAlreadyRunning
	}
	cfg.Init()
	if err := cfg.Validate(); err != nil {
		return err
	}
	plugin, err := NewPlugin(ctx, cfg)
	if err != nil {
		return err
	}
	if err = host.Default().Start(cfg.Endpoint(), plugin.dispatcher, host.WithConfig(cfg)); err != nil {
		return errors.Join(err, plugin.Close())
	}
	running = plugin
	logger := logging.Logger("host")
	logger.Info().Str("endpoint", cfg.Endpoint()).Str("dispatch", cfg.Dispatch).Msg("command server started")
	return nil
}

// Stop stops the process wide command server, it is a no-op when nothing runs
func Stop() error {
	mux.Lock()
	defer mux.Unlock()
	if running == nil {
		return nil
	}
	err := host.Default().Stop()
	err = errors.Join(err, running.Close())
	running = nil
	logger := logging.Logger("host")
	logger.Info().Msg("command server stopped")
	return err
}

// State returns the state of the process wide command server
func State() host.State {
	return host.Default().State()
}
