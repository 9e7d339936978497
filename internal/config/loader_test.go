package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivePath(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "props.json")
	require.NoError(t, os.WriteFile(existing, []byte(`{}`), 0644))

	tests := []struct {
		name       string
		stored     string
		wantPath   string
		wantExists bool
	}{
		{name: "never set", stored: "", wantPath: "", wantExists: false},
		{name: "dangling", stored: filepath.Join(dir, "gone.json"), wantPath: filepath.Join(dir, "gone.json"), wantExists: false},
		{name: "directory", stored: dir, wantPath: dir, wantExists: false},
		{name: "existing", stored: existing, wantPath: existing, wantExists: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(t.TempDir())
			if tt.stored != "" {
				store.Set(PropertiesFilePathKey, tt.stored)
			}

			path, exists := ActivePath(store)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantExists, exists)
		})
	}
}
