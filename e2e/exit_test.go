//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateGallery()
	require.NoError(t, err, "Failed to create test workspace")

	require.NoError(t, tf.StartApp("-d", workspace), "Failed to start app")
	require.True(t, tf.Ready(), "Should draw the gallery")
	require.True(t, tf.SeePlain("showcase"), "Should show showcase title")

	require.NoError(t, tf.Quit())
	if exited, exitErr := tf.Exited(1500 * time.Millisecond); exited {
		require.NoError(t, exitErr, "q should exit cleanly")
		return
	}

	t.Logf("'q' didn't work within 1.5 seconds, using Ctrl+C")
	_ = tf.SendCtrlC()
	if exited, exitErr := tf.Exited(750 * time.Millisecond); exited {
		t.Errorf("Process only exited with Ctrl+C (exit code: %v)", exitErr)
		return
	}
	tf.DumpTailOnFail(t, "exit-failure", 4096)
	t.Error("Application did not exit within total timeout")
}

func TestCtrlCExitsWhileSearching(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateGallery()
	require.NoError(t, err)

	require.NoError(t, tf.StartApp("-d", workspace))
	require.True(t, tf.Ready())
	require.NoError(t, tf.Search("tim"))

	// q is text while the finder has focus, ctrl+c always quits
	require.NoError(t, tf.SendCtrlC())
	if exited, _ := tf.Exited(2 * time.Second); !exited {
		tf.DumpTailOnFail(t, "ctrlc-failure", 4096)
		t.Fatal("app did not exit after ctrl+c")
	}
}

func TestMissingExamplesDirFails(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err)

	require.NoError(t, tf.StartApp("-d", workspace+"/nope"))

	exited, exitErr := tf.Exited(5 * time.Second)
	require.True(t, exited, "app should fail fast without examples")
	require.Error(t, exitErr, "should exit non-zero")
	require.True(t, tf.SeePlain("failed to"), "should print the error")
}
