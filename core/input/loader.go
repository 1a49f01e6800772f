// Package input loads programme definitions from disk. Definitions can
// be written as strict JSON (the API wire format) or as HCL; both decode
// into the same ProgrammeConfig.
package input

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/hashicorp/hcl/v2/hclsimple"

	"programme-cost/core/types"
	"programme-cost/internal/errors"
)

// LoadProgramme reads a programme definition file, dispatching on the
// file extension (.json or .hcl).
func LoadProgramme(path string) (*types.ProgrammeConfig, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadJSON(path)
	case ".hcl":
		return loadHCL(path)
	}
	return nil, errors.Configf("unsupported programme file extension %q (want .json or .hcl)", filepath.Ext(path))
}

// ParseJSON decodes a JSON programme definition. Unknown fields are
// rejected so a mistyped module identifier fails loudly instead of
// silently disabling the module.
func ParseJSON(data []byte) (*types.ProgrammeConfig, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var cfg types.ProgrammeConfig
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "invalid programme definition", err)
	}
	return &cfg, nil
}

func loadJSON(path string) (*types.ProgrammeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "read programme file", err)
	}
	return ParseJSON(data)
}

func loadHCL(path string) (*types.ProgrammeConfig, error) {
	var cfg types.ProgrammeConfig
	if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "invalid programme definition", err)
	}
	return &cfg, nil
}
