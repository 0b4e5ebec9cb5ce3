package main

import (
	"bytes"
	"errors"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs rootCmd with args and stdin, after restoring every flag to
// its default so earlier runs in the same process do not leak into this one.
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeBuffer(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestRender(t *testing.T) {
	in := writeBuffer(t, "rect 10 10 20 20\nbogus\n")
	out := filepath.Join(t.TempDir(), "out.png")

	_, stderr, err := execute(t, "", "render", in, "-o", out, "--width", "50", "--height", "40")
	require.NoError(t, err)
	assert.Contains(t, stderr, "line 2:")
	assert.Contains(t, stderr, "1 shape(s) written to "+out)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())
}

func TestRender_Stdin(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.png")

	_, stderr, err := execute(t, "circle 5 5 2\nline 0 0 9 9", "render", "-", "-o", out, "--width", "10", "--height", "10")
	require.NoError(t, err)
	assert.Contains(t, stderr, "2 shape(s) written")
	assert.FileExists(t, out)
}

func TestRender_Strict(t *testing.T) {
	in := writeBuffer(t, "circle 1 1 1\ncircle 1 1\n")
	out := filepath.Join(t.TempDir(), "out.png")

	_, stderr, err := execute(t, "", "render", in, "-o", out, "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 malformed line(s)")
	assert.Contains(t, stderr, "line 2:")

	_, statErr := os.Stat(out)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist), "no image is written in strict mode")
}

func TestRender_StrictCleanBuffer(t *testing.T) {
	in := writeBuffer(t, "# a comment\n\nline 0 0 4 4\n")
	out := filepath.Join(t.TempDir(), "out.png")

	_, _, err := execute(t, "", "render", in, "-o", out, "--strict", "--width", "8", "--height", "8")
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestRender_Errors(t *testing.T) {
	dir := t.TempDir()
	in := writeBuffer(t, "rect 0 0 1 1")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing file", []string{"render", filepath.Join(dir, "nope.txt"), "-o", filepath.Join(dir, "a.png")}, "reading commands"},
		{"zero width", []string{"render", in, "-o", filepath.Join(dir, "b.png"), "--width", "0"}, "invalid canvas size"},
		{"named background", []string{"render", in, "-o", filepath.Join(dir, "c.png"), "--background", "white"}, "invalid background colour"},
		{"bad foreground digits", []string{"render", in, "-o", filepath.Join(dir, "d.png"), "--foreground", "#12345"}, "invalid foreground colour"},
		{"output directory missing", []string{"render", in, "-o", filepath.Join(dir, "sub", "e.png")}, "creating output"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestHexColour(t *testing.T) {
	for _, c := range []string{"#fff", "fff", "#ffff", "#a0B1c2", "A0B1C2FF"} {
		assert.True(t, hexColour.MatchString(c), c)
	}
	for _, c := range []string{"", "#", "white", "#ff", "#12345", "#1234567", "#gggggg", "#ffffff0"} {
		assert.False(t, hexColour.MatchString(c), c)
	}
}
