package feeders

import "reflect"

// CoreAffixedEnvFeeder reads environment variables whose prefix and suffix
// are derived from a core's multiton key. It is meant to be used through
// FeedKey with the core key:
//
//	f := feeders.NewCoreAffixedEnvFeeder(
//		func(key string) string { return key + "_" },
//		func(string) string { return "" },
//	)
//	err := f.FeedKey("shell", &coreCfg) // reads SHELL_PROXIES, ...
type CoreAffixedEnvFeeder struct {
	*AffixedEnvFeeder
	PrefixFunc func(key string) string
	SuffixFunc func(key string) string
}

// NewCoreAffixedEnvFeeder creates a feeder that derives affixes from the
// key passed to FeedKey. Either function may be nil.
func NewCoreAffixedEnvFeeder(prefix, suffix func(key string) string) *CoreAffixedEnvFeeder {
	return &CoreAffixedEnvFeeder{
		AffixedEnvFeeder: NewAffixedEnvFeeder("", ""),
		PrefixFunc:       prefix,
		SuffixFunc:       suffix,
	}
}

// WithPriority sets the priority of the feeder.
func (f *CoreAffixedEnvFeeder) WithPriority(priority int) *CoreAffixedEnvFeeder {
	f.AffixedEnvFeeder.WithPriority(priority)
	return f
}

// Feed does nothing: without a core key there are no affixes. Config calls
// FeedKey for keyed targets.
func (f *CoreAffixedEnvFeeder) Feed(structure any) error {
	f.debug("CoreAffixedEnvFeeder: Feed called without core key, skipping", "structureType", reflect.TypeOf(structure))
	return nil
}

// FeedKey fills structure from variables affixed for the core key.
func (f *CoreAffixedEnvFeeder) FeedKey(key string, structure any) error {
	prefix, suffix := f.affixes(key)
	f.debug("CoreAffixedEnvFeeder: FeedKey called", "key", key, "structureType", reflect.TypeOf(structure), "prefix", prefix, "suffix", suffix)

	err := feedEnv(structure, prefix, suffix, &f.verbose)
	if err != nil {
		f.debug("CoreAffixedEnvFeeder: FeedKey completed with error", "key", key, "error", err)
		return err
	}
	f.debug("CoreAffixedEnvFeeder: FeedKey completed successfully", "key", key)
	return nil
}

func (f *CoreAffixedEnvFeeder) affixes(key string) (prefix, suffix string) {
	if f.PrefixFunc != nil {
		prefix = f.PrefixFunc(key)
	}
	if f.SuffixFunc != nil {
		suffix = f.SuffixFunc(key)
	}
	return prefix, suffix
}
