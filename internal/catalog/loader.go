package catalog

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a yaml catalog. An empty path returns the built-in catalog.
func LoadFile(path string, loc *time.Location) (*Catalog, error) {
	if path == "" {
		return New(DefaultDefinitions(), loc)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(b, loc)
}

func Parse(b []byte, loc *time.Location) (*Catalog, error) {
	var defs Definitions
	if err := yaml.Unmarshal(b, &defs); err != nil {
		return nil, err
	}

	return New(defs, loc)
}
