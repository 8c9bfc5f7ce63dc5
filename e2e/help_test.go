//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	// Not through a PTY since it exits quickly
	cmd := exec.Command(binPath, "--help")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "Help command should run without error")

	output := string(out)
	require.Greater(t, len(output), 50, "Help should produce substantial output")

	for _, want := range []string{"--dir", "--watch", "search", "list", "check", "config"} {
		require.True(t, strings.Contains(output, want), "Help should mention %s", want)
	}
}

func TestSearchCommand(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateGallery()
	require.NoError(t, err)

	cmd := exec.Command(binPath, "search", "--plain", "-d", workspace, "tim")
	cmd.Env = append(os.Environ(), "HOME="+tf.home, "XDG_CONFIG_HOME="+tf.home)
	out, err := cmd.Output()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 1)
	require.Contains(t, lines[0], "timer")
}

func TestVersionFlag(t *testing.T) {
	t.Parallel()

	out, err := exec.Command(binPath, "--version").CombinedOutput()
	require.NoError(t, err)
	require.Contains(t, string(out), "dev")
}
