package config

import (
	"os"

	"provardx-cli/internal/interfaces"
)

// ActivePath returns the properties file recorded in store and whether it
// names an existing regular file. An unset pointer and a dangling one are
// reported the same way.
func ActivePath(store interfaces.ConfigStore) (string, bool) {
	path := store.Get(PropertiesFilePathKey)
	if path == "" {
		return "", false
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return path, false
	}
	return path, true
}
