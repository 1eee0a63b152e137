package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", "http://localhost:8080"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "flag with equals",
			args:         []string{"-config=alt.yaml", "-a", "x"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=alt.yaml"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "-y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept",
			args:         []string{"-d"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d"},
		},
		{
			name:         "next dash-starting token is not a value",
			args:         []string{"-a", "-i", "10"},
			allowedFlags: []string{"-a", "-i"},
			want:         []string{"-a", "-i", "10"},
		},
		{
			name:         "several allowed flags keep their order",
			args:         []string{"-i", "5", "-p", "https://randomuser.me/api", "-q", "3", "-a", "http://kv"},
			allowedFlags: []string{"-a", "-i", "-p"},
			want:         []string{"-i", "5", "-p", "https://randomuser.me/api", "-a", "http://kv"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	t.Run("short -c", func(t *testing.T) {
		assert.Equal(t, "/etc/postkeeper.json", ConfigFileFlag([]string{"-c", "/etc/postkeeper.json"}))
	})

	t.Run("long -config", func(t *testing.T) {
		assert.Equal(t, "kv.yaml", ConfigFileFlag([]string{"-a", ":8080", "-config", "kv.yaml"}))
	})

	t.Run("none given", func(t *testing.T) {
		assert.Empty(t, ConfigFileFlag([]string{"-a", ":8080"}))
	})

	t.Run("last wins", func(t *testing.T) {
		assert.Equal(t, "2.json", ConfigFileFlag([]string{"-c", "1.json", "-config", "2.json"}))
	})
}
