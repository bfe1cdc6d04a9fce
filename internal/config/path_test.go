package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabasePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name       string
		configured string
		want       string
	}{
		{
			name:       "empty falls back to default",
			configured: "",
			want:       filepath.Join(home, ".local/share/pesaflow/pesaflow.db"),
		},
		{
			name:       "blank falls back to default",
			configured: "   ",
			want:       filepath.Join(home, ".local/share/pesaflow/pesaflow.db"),
		},
		{
			name:       "absolute path passes through",
			configured: "/var/lib/pesaflow/pesaflow.db",
			want:       "/var/lib/pesaflow/pesaflow.db",
		},
		{
			name:       "tilde is expanded",
			configured: "~/pesaflow.db",
			want:       filepath.Join(home, "pesaflow.db"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DatabasePath(tt.configured))
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("PESAFLOW_TEST_DIR", "/data")

	assert.Equal(t, "/data/pesaflow.db", ExpandPath("$PESAFLOW_TEST_DIR/pesaflow.db"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "db/pesaflow.db"), ExpandPath("~/db/pesaflow.db"))
	assert.Equal(t, "", ExpandPath(""))
}
