package grid

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gridfit/pkg/errors"
)

// LoadFile reads a grid spec from a TOML or YAML file, applies
// WithDefaults, and validates the result.
func LoadFile(path string) (InvariantSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return InvariantSpec{}, err
	}
	return Decode(data, filepath.Ext(path))
}

// Decode parses a grid spec in the format named by ext (".toml", ".yaml"
// or ".yml").
func Decode(data []byte, ext string) (InvariantSpec, error) {
	var s InvariantSpec
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
			return InvariantSpec{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml grid spec")
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return InvariantSpec{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml grid spec")
		}
	default:
		return InvariantSpec{}, errors.New(errors.ErrCodeUnsupported, "unsupported grid spec extension %q", ext)
	}

	s = s.WithDefaults()
	if err := s.Validate(); err != nil {
		return InvariantSpec{}, err
	}
	return s, nil
}
