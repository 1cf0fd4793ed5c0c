package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		allowed  []string
		expected []string
	}{
		{
			name:     "keeps allowed flag with separate value",
			args:     []string{"-a", ":8080", "-x", "junk"},
			allowed:  []string{"-a"},
			expected: []string{"-a", ":8080"},
		},
		{
			name:     "keeps allowed flag with equals value",
			args:     []string{"-d=postgres://dsn", "-a", ":8080"},
			allowed:  []string{"-d"},
			expected: []string{"-d=postgres://dsn"},
		},
		{
			name:     "flag followed by another flag has no value",
			args:     []string{"-a", "-d", "dsn"},
			allowed:  []string{"-a"},
			expected: []string{"-a"},
		},
		{
			name:     "nothing allowed",
			args:     []string{"-a", ":8080"},
			allowed:  []string{"-z"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	t.Run("short flag", func(t *testing.T) {
		os.Args = []string{"cmd", "-c", "/path/short.json"}
		assert.Equal(t, "/path/short.json", JsonConfigFlags())
	})

	t.Run("long flag", func(t *testing.T) {
		os.Args = []string{"cmd", "-config", "/path/long.json"}
		assert.Equal(t, "/path/long.json", JsonConfigFlags())
	})

	t.Run("absent", func(t *testing.T) {
		os.Args = []string{"cmd", "-d", "dsn"}
		assert.Empty(t, JsonConfigFlags())
	})
}
