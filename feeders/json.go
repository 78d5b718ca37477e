package feeders

import (
	"encoding/json"
	"os"
	"reflect"
)

// JSONFeeder reads configuration from a JSON file.
type JSONFeeder struct {
	verbose
	Path     string
	priority int
}

// NewJSONFeeder creates a feeder for the JSON file at filePath.
func NewJSONFeeder(filePath string) *JSONFeeder {
	return &JSONFeeder{Path: filePath}
}

// WithPriority sets the priority of the feeder.
func (f *JSONFeeder) WithPriority(priority int) *JSONFeeder {
	f.priority = priority
	return f
}

// Priority returns the priority of the feeder.
func (f *JSONFeeder) Priority() int {
	return f.priority
}

// Feed decodes the whole file into structure.
func (f *JSONFeeder) Feed(structure any) error {
	f.debug("JSONFeeder: Starting feed process", "filePath", f.Path, "structureType", reflect.TypeOf(structure))

	content, err := os.ReadFile(f.Path)
	if err != nil {
		return wrapFileError(ErrReadingFile, f.Path, err)
	}
	if err := json.Unmarshal(content, structure); err != nil {
		return wrapFileError(ErrDecodingFile, f.Path, err)
	}

	f.debug("JSONFeeder: Feed completed successfully", "filePath", f.Path)
	return nil
}

// FeedKey decodes the top-level member named key into structure. A missing
// member leaves structure untouched.
func (f *JSONFeeder) FeedKey(key string, structure any) error {
	f.debug("JSONFeeder: Starting FeedKey process", "filePath", f.Path, "key", key)

	content, err := os.ReadFile(f.Path)
	if err != nil {
		return wrapFileError(ErrReadingFile, f.Path, err)
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(content, &sections); err != nil {
		return wrapFileError(ErrDecodingFile, f.Path, err)
	}

	raw, ok := sections[key]
	if !ok {
		f.debug("JSONFeeder: Key not found in JSON file", "filePath", f.Path, "key", key)
		return nil
	}
	if err := json.Unmarshal(raw, structure); err != nil {
		return wrapFileError(ErrDecodingFile, f.Path, err)
	}

	f.debug("JSONFeeder: FeedKey completed successfully", "filePath", f.Path, "key", key)
	return nil
}
