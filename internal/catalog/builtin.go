package catalog

import (
	_ "embed"
	"fmt"
)

//go:embed templates.yaml
var builtinYAML []byte

// Builtin returns the catalog compiled into the binary.
func Builtin() (Catalog, error) {
	c, err := Parse(builtinYAML)
	if err != nil {
		return nil, fmt.Errorf("builtin catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("builtin catalog: %w", err)
	}
	return c, nil
}

// Load returns the catalog at path, or the builtin catalog when path is empty.
func Load(path string) (Catalog, error) {
	if path == "" {
		return Builtin()
	}
	return LoadFile(path)
}
