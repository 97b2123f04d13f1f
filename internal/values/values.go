// Package values reads template patch values from the command line or from files.
package values

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrRange is returned for values that do not fit in 32 bits.
var ErrRange = errors.New("value does not fit in 32 bits")

// File is the layout of a values file:
//
//	values: [16, 0x20, -1]
//
// or, in TOML,
//
//	values = [16, 0x20, -1]
type File struct {
	Values []int64 `yaml:"values" toml:"values"`
}

// Load reads a YAML or TOML values file, picked by extension.
// Anything that is not .toml is read as YAML, which also covers JSON.
func Load(fs afero.Fs, path string) ([]int32, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, errors.Wrapf(err, "decoding %s", path)
		}
	default:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrapf(err, "decoding %s", path)
		}
	}

	out := make([]int32, len(f.Values))
	for i, v := range f.Values {
		if out[i], err = ToInt32(v); err != nil {
			return nil, errors.Wrapf(err, "%s: value %d", path, i+1)
		}
	}
	return out, nil
}

// ParseList converts command-line values ("16", "0x20", "-1") in order.
func ParseList(list []string) ([]int32, error) {
	out := make([]int32, 0, len(list))
	for _, s := range list {
		v, err := strconv.ParseInt(strings.TrimSpace(s), 0, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid value %q", s)
		}
		n, err := ToInt32(v)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", s)
		}
		out = append(out, n)
	}
	return out, nil
}

// ToInt32 accepts signed 32-bit values and unsigned ones up to 0xFFFFFFFF,
// which wrap to their two's complement form, the same as source immediates.
func ToInt32(v int64) (int32, error) {
	if v < math.MinInt32 || v > math.MaxUint32 {
		return 0, ErrRange
	}
	return int32(uint32(v)), nil
}
