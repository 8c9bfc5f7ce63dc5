//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSourcePager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	_, err = tf.CreateExample("hello_world", "The smallest program",
		WithSource("package main\n\n// pager marker\nfunc main() {}\n"))
	require.NoError(t, err)

	require.NoError(t, tf.StartApp("-d", workspace))
	require.True(t, tf.Ready())

	mark := tf.Mark()
	require.NoError(t, tf.OpenPager())
	require.True(t, tf.SeePlainSince(mark, "pager marker"), "Pager should redraw the source")

	// Quit the pager and make sure the gallery comes back
	time.Sleep(200 * time.Millisecond)
	mark = tf.Mark()
	require.NoError(t, tf.Quit())
	require.True(t, tf.SeePlainSince(mark, "? help"), "Should return to the gallery after closing the pager")
}
