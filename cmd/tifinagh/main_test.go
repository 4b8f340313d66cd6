package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestModes(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{name: "latin args", args: []string{"azul", "fellawen"}, want: "ⴰⵣⵓⵍ ⴼⴻⵍⵍⴰⵡⴻⵏ\n"},
		{name: "latin stdin", stdin: "tamazight\nazul\n", want: "ⵜⴰⵎⴰⵣⵉⵖⵜ\nⴰⵣⵓⵍ\n"},
		{name: "talatint", args: []string{"-mode", "talatint", "ⵜⴰⵎⴰⵣⵉⵖⵜ"}, want: "tamazight\n"},
		{name: "arabic", args: []string{"-mode", "arabic", "ازول"}, want: "ⴰⵣⵓⵍ\n"},
		{name: "auto", args: []string{"-mode", "auto", "azul ازول"}, want: "ⴰⵣⵓⵍ ⴰⵣⵓⵍ\n"},
		{name: "keys", args: []string{"-mode", "keys"}, stdin: "ShaT\n", want: "ⵛⴰⵟ\n"},
		{name: "keys with backspace", args: []string{"-mode", "keys"}, stdin: "azx\bul\n", want: "ⴰⵣⵓⵍ\n"},
		{name: "keys with tab", args: []string{"-mode", "keys"}, stdin: "a\tb\n", want: "ⴰ\tⴱ\n"},
		{name: "keys with no-break space", args: []string{"-mode", "keys"}, stdin: "s\u00a0\n", want: "ⵙ\u00a0\n"},
		{name: "keys without flush", args: []string{"-mode", "keys", "-flush=false"}, stdin: "aS\n", want: "ⴰS\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCmd(t, tt.stdin, tt.args...)
			assert.Equal(t, 0, code, errOut)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestUnknownMode(t *testing.T) {
	code, _, errOut := runCmd(t, "", "-mode", "klingon", "x")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown mode")
}

func TestBadFlag(t *testing.T) {
	code, _, errOut := runCmd(t, "", "-nonsense")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "Usage: tifinagh")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "kab.toml", "name = \"mini\"\n\n[latin]\na = \"ⴰ\"\nz = \"ⵥ\"\n")
	tomlCfg := writeFile(t, dir, "tifinagh.toml", "mode = \"latin\"\nlayout = \"kab.toml\"\n")
	yamlCfg := writeFile(t, dir, "tifinagh.yaml", "mode: talatint\n")

	code, out, errOut := runCmd(t, "", "-config", tomlCfg, "azul")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "ⴰⵥul\n", out)

	code, out, errOut = runCmd(t, "", "-config", yamlCfg, "ⴰⵣⵓⵍ")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "azul\n", out)

	// flags override the file
	code, out, errOut = runCmd(t, "", "-config", yamlCfg, "-mode", "latin", "azul")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "ⴰⵣⵓⵍ\n", out)
}

func TestConfigErrors(t *testing.T) {
	dir := t.TempDir()
	code, _, errOut := runCmd(t, "", "-config", filepath.Join(dir, "missing.toml"), "x")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error loading config")

	broken := writeFile(t, dir, "broken.toml", "mode = \n")
	code, _, _ = runCmd(t, "", "-config", broken, "x")
	assert.Equal(t, 1, code)

	code, _, errOut = runCmd(t, "", "-layout", filepath.Join(dir, "nolayout.toml"), "x")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "open layout")
}

func TestWatchLayout(t *testing.T) {
	code, _, errOut := runCmd(t, "", "-watch", "x")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "watch requires a layout file")

	dir := t.TempDir()
	kab := writeFile(t, dir, "kab.toml", "[latin]\nz = \"ⵥ\"\n")
	code, out, errOut := runCmd(t, "zaz\n", "-watch", "-layout", kab)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "ⵥaⵥ\n", out)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	dir := t.TempDir()
	path := writeFile(t, dir, "settings", "mode: keys\nflush: false\n")
	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ModeKeys, cfg.Mode)
	assert.False(t, cfg.Flush)
}
