package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Loader reads manifests from the filesystem. The format is chosen by file
// extension: YAML (.yaml, .yml) or TOML (.toml).
type Loader struct{}

// NewLoader creates a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads, parses, and validates the manifest at path.
func (l *Loader) Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewNotFoundError(path)
		}
		return nil, err
	}

	manifest, err := l.parse(path, data)
	if err != nil {
		return nil, err
	}

	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (l *Loader) parse(path string, data []byte) (*Manifest, error) {
	var manifest Manifest

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &manifest); err != nil {
			return nil, NewParseError(path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &manifest); err != nil {
			return nil, NewParseError(path, err)
		}
	default:
		return nil, NewUnsupportedFormatError(path)
	}

	return &manifest, nil
}
