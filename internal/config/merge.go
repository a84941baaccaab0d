package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNilConfig is returned when ShallowMergeYAML is given no target.
var ErrNilConfig = errors.New("nil target *Config")

// sectionDecoders maps each top-level YAML key to the Config section it replaces.
//
//nolint:gochecknoglobals // Fixed lookup table.
var sectionDecoders = map[string]func(target *Config, node *yaml.Node) error{
	"api": func(target *Config, node *yaml.Node) error {
		return decodeSection(node, Default().API, &target.API)
	},
	"display": func(target *Config, node *yaml.Node) error {
		return decodeSection(node, Default().Display, &target.Display)
	},
	"logging": func(target *Config, node *yaml.Node) error {
		return decodeSection(node, Default().Logging, &target.Logging)
	},
}

// ShallowMergeYAML overlays the top-level sections found in path onto target.
//
// A section present in the file replaces the target's section as a whole, and
// fields the section omits take their built-in defaults. Sections absent from the
// file are left unchanged. Unknown keys are ignored.
func ShallowMergeYAML(target *Config, path string) error {
	if target == nil {
		return ErrNilConfig
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	var sections map[string]yaml.Node
	if err = yaml.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("parsing config YAML from %s: %w", path, err)
	}

	for key, node := range sections {
		decode, ok := sectionDecoders[key]
		if !ok {
			continue
		}
		if err = decode(target, &node); err != nil {
			return fmt.Errorf("config section %q in %s: %w", key, path, err)
		}
	}
	return nil
}

// decodeSection decodes node over a copy of base and stores the result in dst.
// dst is untouched on error.
func decodeSection[T any](node *yaml.Node, base T, dst *T) error {
	if err := node.Decode(&base); err != nil {
		return err
	}
	*dst = base
	return nil
}
