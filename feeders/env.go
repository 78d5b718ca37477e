package feeders

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/golobby/cast"
)

// EnvFeeder populates struct fields tagged `env:"NAME"` from environment
// variables. Untagged struct fields are walked recursively; slices take a
// comma-separated value.
type EnvFeeder struct {
	verbose
	priority int
}

// NewEnvFeeder creates an environment variable feeder.
func NewEnvFeeder() *EnvFeeder {
	return &EnvFeeder{}
}

// WithPriority sets the priority of the feeder.
func (f *EnvFeeder) WithPriority(priority int) *EnvFeeder {
	f.priority = priority
	return f
}

// Priority returns the priority of the feeder.
func (f *EnvFeeder) Priority() int {
	return f.priority
}

// Feed fills structure from the environment.
func (f *EnvFeeder) Feed(structure any) error {
	f.debug("EnvFeeder: Starting feed process", "structureType", reflect.TypeOf(structure))
	return feedEnv(structure, "", "", &f.verbose)
}

// AffixedEnvFeeder is an EnvFeeder whose variable names are wrapped in a
// prefix and suffix: a field tagged `env:"HOST"` with prefix "PROD_" and
// suffix "_ENV" reads PROD_HOST_ENV. The name is upper-cased as a whole.
type AffixedEnvFeeder struct {
	verbose
	Prefix   string
	Suffix   string
	priority int
}

// NewAffixedEnvFeeder creates an affixed environment variable feeder.
func NewAffixedEnvFeeder(prefix, suffix string) *AffixedEnvFeeder {
	return &AffixedEnvFeeder{Prefix: prefix, Suffix: suffix}
}

// WithPriority sets the priority of the feeder.
func (f *AffixedEnvFeeder) WithPriority(priority int) *AffixedEnvFeeder {
	f.priority = priority
	return f
}

// Priority returns the priority of the feeder.
func (f *AffixedEnvFeeder) Priority() int {
	return f.priority
}

// Feed fills structure from the environment using the configured affixes.
func (f *AffixedEnvFeeder) Feed(structure any) error {
	f.debug("AffixedEnvFeeder: Starting feed process", "structureType", reflect.TypeOf(structure), "prefix", f.Prefix, "suffix", f.Suffix)
	return feedEnv(structure, f.Prefix, f.Suffix, &f.verbose)
}

// EnvVarName returns the variable name read for a field tagged name.
func EnvVarName(prefix, name, suffix string) string {
	return strings.ToUpper(prefix + name + suffix)
}

func feedEnv(structure any, prefix, suffix string, v *verbose) error {
	rv := reflect.ValueOf(structure)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotAPointerToStruct
	}
	return fillStruct(rv.Elem(), prefix, suffix, v)
}

func fillStruct(rv reflect.Value, prefix, suffix string, v *verbose) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		fieldValue := rv.Field(i)
		if !field.IsExported() || !fieldValue.CanSet() {
			continue
		}

		tag, hasTag := field.Tag.Lookup("env")
		if !hasTag {
			if err := fillNested(fieldValue, prefix, suffix, v); err != nil {
				return err
			}
			continue
		}

		name := EnvVarName(prefix, tag, suffix)
		value, ok := os.LookupEnv(name)
		if !ok {
			v.debug("Env: variable not set", "field", field.Name, "envVar", name)
			continue
		}

		if err := setField(fieldValue, value); err != nil {
			return fmt.Errorf("%w %s for field %s: %w", ErrEnvConversion, name, field.Name, err)
		}
		v.debug("Env: field populated", "field", field.Name, "envVar", name)
	}
	return nil
}

func fillNested(fieldValue reflect.Value, prefix, suffix string, v *verbose) error {
	switch fieldValue.Kind() {
	case reflect.Struct:
		return fillStruct(fieldValue, prefix, suffix, v)
	case reflect.Ptr:
		if !fieldValue.IsNil() && fieldValue.Elem().Kind() == reflect.Struct {
			return fillStruct(fieldValue.Elem(), prefix, suffix, v)
		}
	}
	return nil
}

func setField(fieldValue reflect.Value, value string) error {
	target := fieldValue.Type()
	isPtr := target.Kind() == reflect.Ptr
	if isPtr {
		target = target.Elem()
	}

	var converted any
	var err error
	if target.Kind() == reflect.Slice {
		converted, err = cast.FromType(value, target)
	} else {
		// Named types such as `type Level string` convert via their kind.
		converted, err = cast.FromString(value, target.Kind().String())
	}
	if err != nil {
		return err
	}
	cv := reflect.ValueOf(converted)
	if !cv.Type().ConvertibleTo(target) {
		return fmt.Errorf("cannot assign %s to %s", cv.Type(), target)
	}
	cv = cv.Convert(target)

	if isPtr {
		ptr := reflect.New(target)
		ptr.Elem().Set(cv)
		fieldValue.Set(ptr)
		return nil
	}
	fieldValue.Set(cv)
	return nil
}
