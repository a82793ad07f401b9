// Package pathutil contains flag values to parse and validate paths
// provided on the command line.
package pathutil

import (
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"golang.org/x/xerrors"
)

// ErrIsNotDirectory is an error returned when a path
// is expected to point to a directory but doesn't
var ErrIsNotDirectory = xerrors.New("path is not a directory")

// DirPathValue represents a Flag value to be parsed by spf13/pflag.
// The path must point to an existing directory; relative paths are made
// absolute at parse time.
type DirPathValue struct {
	defaultValue string
	userValue    string
}

// NewDirPathFlagWithDefault returns a new Flag value that holds a valid
// path to an existing directory, falling back to defaultPath when the
// flag isn't provided.
func NewDirPathFlagWithDefault(defaultPath string) pflag.Value {
	return &DirPathValue{
		defaultValue: defaultPath,
	}
}

// Type returns the type of the flag as needed by the pflag interface
func (v *DirPathValue) Type() string {
	return "dirPath"
}

// String returns the current value of the flag
func (v *DirPathValue) String() string {
	if v.userValue != "" {
		return v.userValue
	}
	return v.defaultValue
}

// Set validates and sets the value of the flag.
// ErrIsNotDirectory is returned if the path exists but isn't a directory
func (v *DirPathValue) Set(value string) error {
	abs, err := filepath.Abs(value)
	if err != nil {
		return xerrors.Errorf("could not resolve %s: %w", value, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return xerrors.Errorf("%s: %w", value, ErrIsNotDirectory)
	}

	v.userValue = abs
	return nil
}
