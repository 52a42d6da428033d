package driven

// ConfigStore provides persistent key-value configuration.
// Keys use dot notation for nested values (e.g. "sources.normative").
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if not found or not a string.
	GetString(key string) string

	// Set stores a configuration value and persists immediately.
	Set(key string, value any) error

	// Load reads configuration from the backing store.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
