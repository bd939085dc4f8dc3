package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/endiangen/errors"
	"github.com/wippyai/endiangen/gen"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, gen.DefaultRuntime, c.Runtime)
	assert.Equal(t, []string{"."}, c.Packages)
	assert.False(t, c.UncheckedBool)
	assert.Empty(t, c.Output)
	assert.Equal(t, "wire_endian.go", c.OutputName("wire"))
	require.NoError(t, c.Validate())
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
output: codec_gen.go
unchecked_bool: true
tags: [linux, wire]
`), "test.yaml")
	require.NoError(t, err)

	assert.Equal(t, "codec_gen.go", c.Output)
	assert.Equal(t, "codec_gen.go", c.OutputName("wire"))
	assert.True(t, c.UncheckedBool)
	assert.Equal(t, []string{"linux", "wire"}, c.Tags)
	assert.Equal(t, gen.DefaultRuntime, c.Runtime, "unset keys keep their defaults")
	assert.Equal(t, []string{"."}, c.Packages)

	opts := c.GenOptions()
	assert.True(t, opts.UncheckedBool)
	assert.Equal(t, gen.DefaultRuntime, opts.Runtime)
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse([]byte("\n  \n"), "empty.yaml")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "outptu: x.go\n"},
		{"bad yaml", "output: [unterminated\n"},
		{"output with directory", "output: sub/x.go\n"},
		{"output not go", "output: x.txt\n"},
		{"output is test", "output: x_test.go\n"},
		{"bad tag", "tags: [\"a,b\"]\n"},
		{"blank runtime", "runtime: \" \"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), "bad.yaml")
			require.Error(t, err)
			assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseConfig})
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("runtime: example.com/rt/endian\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "example.com/rt/endian", c.Runtime)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindNotFound})
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()

	c, path, err := Discover(dir)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), c)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("unchecked_bool: true\n"), 0o644))
	c, path, err = Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)
	assert.True(t, c.UncheckedBool)
}
