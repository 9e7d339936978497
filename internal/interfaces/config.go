package interfaces

// ConfigStore persists small key/value settings between invocations,
// such as the path of the active properties file
type ConfigStore interface {
	// Get returns the value stored under key, or "" when unset
	Get(key string) string

	// Persisted returns the value last written for key, ignoring
	// environment overrides
	Persisted(key string) string

	// Set stores value under key in memory
	Set(key string, value string)

	// Unset removes key in memory
	Unset(key string)

	// Write persists the in-memory settings
	Write() error
}
