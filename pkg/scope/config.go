package scope

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	navErr "github.com/odvcencio/navkit/pkg/errors"
)

// Config is the declarative form of the scope and container tables.
// Builders are functions and cannot live in a config file, so container
// entries name a builder that must be registered in code.
//
// Example:
//
//	scopes:
//	  library:
//	    - playlist
//	    - album
//	containers:
//	  - kind: playlist
//	    scope: library
//	    builder: library-tabs
//	    initial_index: 0
type Config struct {
	Scopes     map[string][]string `yaml:"scopes"`
	Containers []ContainerConfig   `yaml:"containers"`
}

// ContainerConfig declares one destination kind's container requirement.
type ContainerConfig struct {
	Kind         string `yaml:"kind"`
	Scope        string `yaml:"scope"`
	Builder      string `yaml:"builder"`
	InitialIndex int    `yaml:"initial_index"`
}

// ParseConfig decodes a YAML scope/container declaration.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, navErr.Wrap(err, navErr.ErrCodeInvalidInput, "failed to parse scope config")
	}
	return &cfg, nil
}

// LoadConfig reads and decodes a YAML scope/container declaration from
// a file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scope config: %w", err)
	}
	return ParseConfig(data)
}

// BuildRegistries materializes the declared tables, resolving builder
// names against the code-registered builder set. Every container entry
// must name a known builder.
func (c *Config) BuildRegistries(builders map[string]Builder) (*Table, *ContainerTable, error) {
	scopes := NewTable(c.Scopes)

	containers := NewContainerTable()
	for _, entry := range c.Containers {
		if entry.Kind == "" {
			return nil, nil, navErr.New(navErr.ErrCodeInvalidInput, "container entry missing kind")
		}
		build, ok := builders[entry.Builder]
		if !ok {
			return nil, nil, navErr.Newf(navErr.ErrCodeInvalidInput,
				"container for kind %q names unknown builder %q", entry.Kind, entry.Builder)
		}
		containers.Register(entry.Kind, ContainerInfo{
			ScopeKey:     entry.Scope,
			InitialIndex: entry.InitialIndex,
			Build:        build,
		})
	}

	return scopes, containers, nil
}
