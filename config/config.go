package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/viant/houdinimcp/internal/logging"
	"github.com/viant/houdinimcp/protocol"
)

const (
	DefaultAddress       = "127.0.0.1"
	DefaultPort          = 9876
	DefaultTimeoutMs     = 15000
	DefaultIdleTimeoutMs = 5 * 60 * 1000
	DefaultGracePeriodMs = 2000
	DefaultPollMs        = 100
)

// Dispatch modes
const (
	DispatchWorker = "worker"
	DispatchPoll   = "poll"
)

// Host represents command server configuration
type Host struct {
	Address        string         `yaml:"address" json:"address" toml:"address"`
	Port           int            `yaml:"port" json:"port" toml:"port"`
	MaxMessageSize int            `yaml:"maxMessageSize" json:"maxMessageSize" toml:"maxMessageSize"`
	IdleTimeoutMs  int            `yaml:"idleTimeoutMs" json:"idleTimeoutMs" toml:"idleTimeoutMs"` // negative disables
	GracePeriodMs  int            `yaml:"gracePeriodMs" json:"gracePeriodMs" toml:"gracePeriodMs"`
	Dispatch       string         `yaml:"dispatch" json:"dispatch" toml:"dispatch"`
	PollMs         int            `yaml:"pollMs" json:"pollMs" toml:"pollMs"`
	AssetLibrary   bool           `yaml:"assetLibrary" json:"assetLibrary" toml:"assetLibrary"`
	ExecuteCode    bool           `yaml:"executeCode" json:"executeCode" toml:"executeCode"`
	Scene          string         `yaml:"scene" json:"scene" toml:"scene"`
	Logging        logging.Config `yaml:"logging" json:"logging" toml:"logging"`
}

// Init applies defaults
func (h *Host) Init() {
	if h.Address == "" {
		h.Address = DefaultAddress
	}
	if h.Port == 0 {
		h.Port = DefaultPort
	}
	if h.MaxMessageSize == 0 {
		h.MaxMessageSize = protocol.DefaultMaxMessageSize
	}
	if h.IdleTimeoutMs == 0 {
		h.IdleTimeoutMs = DefaultIdleTimeoutMs
	}
	if h.GracePeriodMs == 0 {
		h.GracePeriodMs = DefaultGracePeriodMs
	}
	if h.Dispatch == "" {
		h.Dispatch = DispatchWorker
	}
	if h.PollMs == 0 {
		h.PollMs = DefaultPollMs
	}
}

// Validate checks configuration
func (h *Host) Validate() error {
	if err := validateEndpoint(h.Address, h.Port); err != nil {
		return err
	}
	if h.MaxMessageSize < 0 || h.GracePeriodMs < 0 || h.PollMs < 0 {
		return fmt.Errorf("host config: negative limits are not supported")
	}
	switch strings.ToLower(h.Dispatch) {
	case DispatchWorker, DispatchPoll:
	default:
		return fmt.Errorf("host config: unsupported dispatch mode: %v", h.Dispatch)
	}
	return nil
}

// Endpoint returns address:port
func (h *Host) Endpoint() string {
	return net.JoinHostPort(h.Address, strconv.Itoa(h.Port))
}

// IdleTimeout returns the session idle timeout, a negative idleTimeoutMs disables it
func (h *Host) IdleTimeout() time.Duration {
	if h.IdleTimeoutMs < 0 {
		return 0
	}
	return time.Duration(h.IdleTimeoutMs) * time.Millisecond
}

func (h *Host) GracePeriod() time.Duration {
	return time.Duration(h.GracePeriodMs) * time.Millisecond
}

func (h *Host) PollInterval() time.Duration {
	return time.Duration(h.PollMs) * time.Millisecond
}

// Bridge represents relay configuration
type Bridge struct {
	Address        string         `yaml:"address" json:"address" toml:"address"`
	Port           int            `yaml:"port" json:"port" toml:"port"`
	TimeoutMs      int            `yaml:"timeoutMs" json:"timeoutMs" toml:"timeoutMs"`
	MaxMessageSize int            `yaml:"maxMessageSize" json:"maxMessageSize" toml:"maxMessageSize"`
	AssetLibrary   bool           `yaml:"assetLibrary" json:"assetLibrary" toml:"assetLibrary"`
	Logging        logging.Config `yaml:"logging" json:"logging" toml:"logging"`
}

// Init applies defaults
func (b *Bridge) Init() {
	if b.Address == "" {
		b.Address = DefaultAddress
	}
	if b.Port == 0 {
		b.Port = DefaultPort
	}
	if b.TimeoutMs == 0 {
		b.TimeoutMs = DefaultTimeoutMs
	}
	if b.MaxMessageSize == 0 {
		b.MaxMessageSize = protocol.DefaultMaxMessageSize
	}
}

// Validate checks configuration
func (b *Bridge) Validate() error {
	if err := validateEndpoint(b.Address, b.Port); err != nil {
		return err
	}
	if b.TimeoutMs < 0 || b.MaxMessageSize < 0 {
		return fmt.Errorf("bridge config: negative limits are not supported")
	}
	return nil
}

// Endpoint returns address:port
func (b *Bridge) Endpoint() string {
	return net.JoinHostPort(b.Address, strconv.Itoa(b.Port))
}

func (b *Bridge) Timeout() time.Duration {
	return time.Duration(b.TimeoutMs) * time.Millisecond
}

func validateEndpoint(address string, port int) error {
	if strings.TrimSpace(address) == "" {
		return fmt.Errorf("address is required")
	}
	if port < 0 || port > 65535 {
		return fmt.Errorf("invalid port: %v", port)
	}
	return nil
}
