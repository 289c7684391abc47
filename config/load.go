package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Load reads URL into target, the extension selects YAML, TOML or JSON decoding
func Load(ctx context.Context, URL string, target any) error {
	return LoadWith(ctx, afs.New(), URL, target)
}

// LoadWith reads URL using fs
func LoadWith(ctx context.Context, fs afs.Service, URL string, target any) error {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", URL, err)
	}
	if err = Decode(path.Ext(URL), data, target); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", URL, err)
	}
	return nil
}

// Decode decodes data by file extension
func Decode(ext string, data []byte, target any) error {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		return yaml.Unmarshal(data, target)
	case "toml":
		_, err := toml.NewDecoder(bytes.NewReader(data)).Decode(target)
		return err
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		return decoder.Decode(target)
	}
	return fmt.Errorf("unsupported config format: %q", ext)
}
