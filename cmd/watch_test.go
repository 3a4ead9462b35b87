package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosirrah/mdx/internal/document"
)

// syncBuffer guards a bytes.Buffer against the watch loop's concurrent
// status writer.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchLoop_ProcessesOnChange(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "exam.mdx")
	output := filepath.Join(dir, "exam.md")
	require.NoError(t, os.WriteFile(input, []byte("@prob:one v1\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	pl := document.NewPipeline(document.Config{Diagnostics: io.Discard})

	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, &out, pl, document.FormatMarkdown, input, output, 50*time.Millisecond)
	}()

	// The loop processes once before any change arrives
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(output)
		return err == nil && string(data) == "1 v1\n"
	}, 2*time.Second, 20*time.Millisecond, "initial run should write the output")

	// An edit triggers a reprocess after the debounce window
	require.NoError(t, os.WriteFile(input, []byte("@prob:one v2 edited\n"), 0644))
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(output)
		return err == nil && string(data) == "1 v2 edited\n"
	}, 2*time.Second, 20*time.Millisecond, "change should be reprocessed")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch loop did not stop on context cancellation")
	}

	logged := ansi.Strip(out.String())
	assert.Contains(t, logged, "Watching "+input)
	assert.Contains(t, logged, " ok ")
}

func TestWatchLoop_KeepsRunningAfterFailure(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "exam.mdx")
	output := filepath.Join(dir, "exam.md")
	require.NoError(t, os.WriteFile(input, []byte("See #ghost.\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	pl := document.NewPipeline(document.Config{Diagnostics: io.Discard})

	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, &out, pl, document.FormatMarkdown, input, output, 50*time.Millisecond)
	}()

	// The initial run fails and writes nothing
	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(ansi.Strip(out.String())), []byte(" fail "))
	}, 2*time.Second, 20*time.Millisecond, "failed run should report a status line")
	assert.NoFileExists(t, output)

	// Fixing the document recovers without restarting the loop
	require.NoError(t, os.WriteFile(input, []byte("@ghost fixed\nSee #ghost.\n"), 0644))
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(output)
		return err == nil && string(data) == "1 fixed\nSee 1.\n"
	}, 2*time.Second, 20*time.Millisecond, "loop should keep processing after a failure")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch loop did not stop on context cancellation")
	}
}
