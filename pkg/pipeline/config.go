package pipeline

import (
	"bytes"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pearls/pkg/errors"
)

// A sketch file is a TOML document holding Options:
//
//	rows = 8
//	cols = 12
//	density = 0.4
//	seed = 7
//	palette = "dusk"
//	formats = ["svg", "png"]

// LoadConfig reads a sketch file on top of [DefaultOptions].
func LoadConfig(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "sketch file %s", path)
	}
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return DecodeConfig(bytes.NewReader(data), DefaultOptions())
}

// DecodeConfig decodes TOML from r over base. Unknown keys are rejected so
// typos do not silently fall back to defaults.
func DecodeConfig(r io.Reader, base Options) (Options, error) {
	opts := base
	// The decoder writes arrays into existing backing storage.
	opts.Colors = slices.Clone(base.Colors)
	opts.Formats = slices.Clone(base.Formats)
	md, err := toml.NewDecoder(r).Decode(&opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse sketch")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Options{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	// A palette named in the file wins over inherited colors, unless the
	// file also lists colors itself.
	if md.IsDefined("palette") {
		if !md.IsDefined("colors") {
			opts.Colors = nil
		}
		if !md.IsDefined("background") {
			opts.Background = ""
		}
	}
	return opts, nil
}

// WriteConfig writes opts as a sketch file.
func WriteConfig(w io.Writer, opts Options) error {
	opts.Refresh = false
	if err := toml.NewEncoder(w).Encode(opts); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode sketch")
	}
	return nil
}
