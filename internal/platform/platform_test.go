package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrent(t *testing.T) {
	p := Current()
	assert.Equal(t, OS(runtime.GOOS), p.OS)
	assert.Equal(t, runtime.GOARCH, p.Arch)
	assert.Equal(t, runtime.GOOS == "windows", p.IsWindows())
}

func TestExeSuffix(t *testing.T) {
	assert.Equal(t, ".exe", Windows().ExeSuffix())
	assert.Equal(t, "", Unix().ExeSuffix())
}

func TestHasPathSeparator(t *testing.T) {
	tests := []struct {
		name     string
		platform Platform
		input    string
		want     bool
	}{
		{"unix slash", Unix(), "/usr/bin/python3", true},
		{"unix bare name", Unix(), "python3.10", false},
		{"unix backslash is a name", Unix(), `dir\python`, false},
		{"windows backslash", Windows(), `C:\Python312\python.exe`, true},
		{"windows slash", Windows(), "C:/Python312/python.exe", true},
		{"windows bare name", Windows(), "python.exe", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.platform.HasPathSeparator(tt.input))
		})
	}
}

func TestListSeparator(t *testing.T) {
	assert.Equal(t, ";", Windows().ListSeparator())
	assert.Equal(t, ":", Unix().ListSeparator())
}

func TestString(t *testing.T) {
	assert.Equal(t, "windows/amd64", Windows().String())
}
