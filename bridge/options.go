package bridge

import "github.com/viant/houdinimcp/config"

// Options represents command line options, set values override the config file
type Options struct {
	Address      string `short:"a" long:"address" description:"Houdini command server address"`
	Port         int    `short:"p" long:"port" description:"Houdini command server port"`
	TimeoutMs    int    `short:"t" long:"timeout" description:"per command timeout in milliseconds"`
	ConfigURL    string `short:"c" long:"config" description:"config file URL (yaml, toml or json)"`
	AssetLibrary bool   `long:"asset-library" description:"expose asset library tools"`
	LogLevel     string `short:"l" long:"log-level" description:"log level" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error"`
}

func (o *Options) apply(cfg *config.Bridge) {
	if o.Address != "" {
		cfg.Address = o.Address
	}
	if o.Port != 0 {
		cfg.Port = o.Port
	}
	if o.TimeoutMs != 0 {
		cfg.TimeoutMs = o.TimeoutMs
	}
	if o.AssetLibrary {
		cfg.AssetLibrary = true
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
}
