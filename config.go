package gufunc

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ParseOptions parses Options from YAML, on top of DefaultOptions. Unknown fields are an error.
//
// Example:
//
//	min_side: 1
//	max_side: 3
//	max_dims_extra: 2
//	dim_sides:
//	  n: {min: 2, max: 2}
//	excluded: [1]
func ParseOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, errors.Wrap(err, "failed to parse gufunc options")
	}
	return opts, nil
}

// LoadOptions reads Options from a YAML file. See ParseOptions.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, errors.Wrapf(err, "failed to read gufunc options from %q", path)
	}
	opts, err := ParseOptions(data)
	if err != nil {
		return Options{}, errors.WithMessagef(err, "in file %q", path)
	}
	return opts, nil
}
