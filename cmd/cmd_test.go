package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/guruai/internal/config"
	"github.com/abhisek/guruai/internal/llm"
	"github.com/abhisek/guruai/internal/profile"
)

func newFlagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	c.Flags().String("db", "", "")
	c.Flags().String("name", "", "")
	c.Flags().String("grade", "", "")
	c.Flags().String("board", "", "")
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestPresetProfile(t *testing.T) {
	p, err := presetProfile(newFlagCmd(t, "--name", "Arjun Rao", "--grade", "8", "--board", "state"))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, profile.Profile{Name: "Arjun Rao", Grade: profile.Grade8, Board: profile.BoardState}, *p)
}

func TestPresetProfile_NoName(t *testing.T) {
	p, err := presetProfile(newFlagCmd(t, "--grade", "9th"))
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPresetProfile_Invalid(t *testing.T) {
	_, err := presetProfile(newFlagCmd(t, "--name", "Arjun", "--grade", "11th", "--board", "CBSE"))
	assert.ErrorIs(t, err, profile.ErrInvalidProfile)
}

func TestResolveDBPath(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { cfg = nil })

	flag := filepath.Join(dir, "flag", "guru.db")
	got, err := resolveDBPath(newFlagCmd(t, "--db", flag))
	require.NoError(t, err)
	assert.Equal(t, flag, got)
	assert.DirExists(t, filepath.Dir(flag))

	cfg = &config.Config{DBPath: filepath.Join(dir, "cfg", "guru.db")}
	got, err = resolveDBPath(newFlagCmd(t))
	require.NoError(t, err)
	assert.Equal(t, cfg.DBPath, got)

	cfg = nil
	t.Setenv("GURU_DB", filepath.Join(dir, "env", "guru.db"))
	got, err = resolveDBPath(newFlagCmd(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "env", "guru.db"), got)
}

func runVersion(t *testing.T, short bool) string {
	t.Helper()
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionShort = short
	t.Cleanup(func() { versionShort = false })

	require.NoError(t, versionCmd.RunE(versionCmd, nil))
	return out.String()
}

func TestVersion(t *testing.T) {
	version, commit = "v0.3.1", "a1b2c3d"
	saved := cfg
	cfg = &config.Config{LLM: llm.Config{Provider: "gemini"}}
	t.Cleanup(func() {
		version, commit = "", ""
		cfg = saved
	})

	got := runVersion(t, false)
	assert.True(t, strings.HasPrefix(got, "GuruAI v0.3.1 (a1b2c3d) go"), got)
	assert.Contains(t, got, "provider: gemini")

	assert.Equal(t, "v0.3.1\n", runVersion(t, true))
}
