package houdinimcp

import "github.com/viant/houdinimcp/config"

// Options represents houdini-host command line options, set values override the config file
type Options struct {
	Address      string `short:"a" long:"address" description:"listen address"`
	Port         int    `short:"p" long:"port" description:"listen port"`
	ConfigURL    string `short:"c" long:"config" description:"config file URL (yaml, toml or json)"`
	Scene        string `short:"s" long:"scene" description:"scene document URL loaded on start"`
	Dispatch     string `short:"d" long:"dispatch" description:"dispatch mode" choice:"worker" choice:"poll"`
	ExecuteCode  bool   `long:"execute-code" description:"run execute_code in a local shell"`
	AssetLibrary bool   `long:"asset-library" description:"register asset library commands"`
	LogLevel     string `short:"l" long:"log-level" description:"log level" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error"`
}

func (o *Options) apply(cfg *config.Host) {
	if o.Address != "" {
		cfg.Address = o.Address
	}
	if o.Port != 0 {
		cfg.Port = o.Port
	}
	if o.Scene != "" {
		cfg.Scene = o.Scene
	}
	if o.Dispatch != "" {
		cfg.Dispatch = o.Dispatch
	}
	if o.ExecuteCode {
		cfg.ExecuteCode = true
	}
	if o.AssetLibrary {
		cfg.AssetLibrary = true
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
}
