package watchdog

// Section is the configuration section name the watchdog client reads
// (see internal/wdconfig for a concrete YAML-backed ConfigSource).
const Section = "SvcWatchDogClient"

// ConfigSource is the core's only view of configuration: typed,
// keyed-by-section lookups with a caller-supplied default for absent
// values. It is read-only from the core's perspective.
type ConfigSource interface {
	Bool(section, key string, def bool) bool
	Int(section, key string, def int) int
}

// defaultConfigSource answers every lookup with the caller's default; used
// when Initialize is called with a nil ConfigSource.
type defaultConfigSource struct{}

func (defaultConfigSource) Bool(_, _ string, def bool) bool { return def }
func (defaultConfigSource) Int(_, _ string, def int) int    { return def }
