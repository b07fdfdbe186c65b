package configs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a config file encoding, chosen by file extension.
type Format int

const (
	FormatJSON Format = iota
	FormatTOML
	FormatYAML
)

// FormatFor returns the format for path's extension. Anything unrecognised
// is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "json"
	}
}

// SaveFile writes data to filePath in the format its extension selects.
func SaveFile(filePath string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return err
	}

	var (
		out []byte
		err error
	)
	switch FormatFor(filePath) {
	case FormatTOML:
		var b strings.Builder
		err = toml.NewEncoder(&b).Encode(data)
		out = []byte(b.String())
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		out, err = json.MarshalIndent(data, "", "    ")
		out = append(out, '\n')
	}
	if err != nil {
		return err
	}

	return os.WriteFile(filePath, out, 0600)
}

// LoadFile decodes filePath into data in the format its extension selects.
func LoadFile(filePath string, data interface{}) error {
	switch FormatFor(filePath) {
	case FormatTOML:
		_, err := toml.DecodeFile(filePath, data)
		return err
	}

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	if FormatFor(filePath) == FormatYAML {
		return yaml.Unmarshal(raw, data)
	}
	return json.Unmarshal(raw, data)
}
