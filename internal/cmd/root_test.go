package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd(testConfig(t, ""), testLogger(), "1.0.0")

	assert.Equal(t, "pyfind", cmd.Use)
	assert.True(t, cmd.SilenceUsage)

	for _, name := range []string{"find", "list", "doctor", "cache", "completion", "version"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			assert.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}
