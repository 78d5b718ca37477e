package feeders

import (
	"os"
	"reflect"

	"gopkg.in/yaml.v3"
)

// YamlFeeder reads configuration from a YAML file.
type YamlFeeder struct {
	verbose
	Path     string
	priority int
}

// NewYamlFeeder creates a feeder for the YAML file at filePath.
func NewYamlFeeder(filePath string) *YamlFeeder {
	return &YamlFeeder{Path: filePath}
}

// WithPriority sets the priority of the feeder.
func (f *YamlFeeder) WithPriority(priority int) *YamlFeeder {
	f.priority = priority
	return f
}

// Priority returns the priority of the feeder.
func (f *YamlFeeder) Priority() int {
	return f.priority
}

// Feed decodes the whole file into structure.
func (f *YamlFeeder) Feed(structure any) error {
	f.debug("YamlFeeder: Starting feed process", "filePath", f.Path, "structureType", reflect.TypeOf(structure))

	content, err := os.ReadFile(f.Path)
	if err != nil {
		return wrapFileError(ErrReadingFile, f.Path, err)
	}
	if err := yaml.Unmarshal(content, structure); err != nil {
		return wrapFileError(ErrDecodingFile, f.Path, err)
	}

	f.debug("YamlFeeder: Feed completed successfully", "filePath", f.Path)
	return nil
}

// FeedKey decodes the top-level section named key into structure. A
// missing section leaves structure untouched.
func (f *YamlFeeder) FeedKey(key string, structure any) error {
	f.debug("YamlFeeder: Starting FeedKey process", "filePath", f.Path, "key", key)

	content, err := os.ReadFile(f.Path)
	if err != nil {
		return wrapFileError(ErrReadingFile, f.Path, err)
	}

	var sections map[string]yaml.Node
	if err := yaml.Unmarshal(content, &sections); err != nil {
		return wrapFileError(ErrDecodingFile, f.Path, err)
	}

	node, ok := sections[key]
	if !ok {
		f.debug("YamlFeeder: Key not found in YAML file", "filePath", f.Path, "key", key)
		return nil
	}
	if err := node.Decode(structure); err != nil {
		return wrapFileError(ErrDecodingFile, f.Path, err)
	}

	f.debug("YamlFeeder: FeedKey completed successfully", "filePath", f.Path, "key", key)
	return nil
}
