package feeders

import (
	"reflect"

	"github.com/BurntSushi/toml"
)

// TomlFeeder reads configuration from a TOML file.
type TomlFeeder struct {
	verbose
	Path     string
	priority int
}

// NewTomlFeeder creates a feeder for the TOML file at filePath.
func NewTomlFeeder(filePath string) *TomlFeeder {
	return &TomlFeeder{Path: filePath}
}

// WithPriority sets the priority of the feeder.
func (f *TomlFeeder) WithPriority(priority int) *TomlFeeder {
	f.priority = priority
	return f
}

// Priority returns the priority of the feeder.
func (f *TomlFeeder) Priority() int {
	return f.priority
}

// Feed decodes the whole file into structure.
func (f *TomlFeeder) Feed(structure any) error {
	f.debug("TomlFeeder: Starting feed process", "filePath", f.Path, "structureType", reflect.TypeOf(structure))

	if _, err := toml.DecodeFile(f.Path, structure); err != nil {
		return wrapFileError(ErrDecodingFile, f.Path, err)
	}

	f.debug("TomlFeeder: Feed completed successfully", "filePath", f.Path)
	return nil
}

// FeedKey decodes the table named key into structure. A missing table
// leaves structure untouched.
func (f *TomlFeeder) FeedKey(key string, structure any) error {
	f.debug("TomlFeeder: Starting FeedKey process", "filePath", f.Path, "key", key)

	var sections map[string]toml.Primitive
	md, err := toml.DecodeFile(f.Path, &sections)
	if err != nil {
		return wrapFileError(ErrDecodingFile, f.Path, err)
	}

	section, ok := sections[key]
	if !ok {
		f.debug("TomlFeeder: Key not found in TOML file", "filePath", f.Path, "key", key)
		return nil
	}
	if err := md.PrimitiveDecode(section, structure); err != nil {
		return wrapFileError(ErrDecodingFile, f.Path, err)
	}

	f.debug("TomlFeeder: FeedKey completed successfully", "filePath", f.Path, "key", key)
	return nil
}
