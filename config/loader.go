package config

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// LoadTOML reads and decodes a TOML file. A missing file yields (nil, nil) so
// callers can distinguish absence from a decode failure; a decode failure
// carries the underlying parser message.
func LoadTOML(ctx context.Context, location string) (Document, error) {
	fs := afs.New()
	if ok, _ := fs.Exists(ctx, location); !ok {
		return nil, nil
	}
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", location, err)
	}
	doc := Document{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", location, err)
	}
	return doc, nil
}

// LoadYAML reads and decodes a YAML file with the same absence and failure
// semantics as LoadTOML.
func LoadYAML(ctx context.Context, location string) (Document, error) {
	fs := afs.New()
	if ok, _ := fs.Exists(ctx, location); !ok {
		return nil, nil
	}
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", location, err)
	}
	doc := Document{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", location, err)
	}
	return doc, nil
}
