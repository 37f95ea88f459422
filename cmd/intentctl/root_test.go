package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/intentbot/intentbot-go/internal/responder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	missing := filepath.Join(t.TempDir(), "missing.txt")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--corpus", missing, "--log-level", "error"}, args...))
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestClassifyCmd(t *testing.T) {
	out := run(t, "", "classify", "turn", "on", "the", "lights")
	assert.True(t, strings.HasPrefix(out, "home\t"), out)
}

func TestRespondCmd(t *testing.T) {
	out := run(t, "", "respond", "turn off the tv")
	assert.Equal(t, "📺 Turning off the TV.\n", out)
}

func TestCorpusCmd(t *testing.T) {
	out := run(t, "", "corpus")
	assert.Contains(t, out, "built-in default")
	assert.Contains(t, out, "weather")
}

func TestCorpusCmd_FileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte("hola,greet\nadios,farewell\n"), 0o644))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--corpus", path, "--log-level", "error", "corpus"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), path)
	assert.Contains(t, out.String(), "examples: 2")
}

func TestEvalCmd(t *testing.T) {
	out := run(t, "", "eval")
	assert.Contains(t, out, "total")
	assert.Contains(t, out, "100.0%")
	assert.NotContains(t, out, "misses:")
}

func TestChatCmd(t *testing.T) {
	out := run(t, "\nthank you\ngoodbye\nthis line is never read\n", "chat")

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Contains(t, responder.Replies("gratitude"), strings.TrimPrefix(lines[0], "> > "))
	assert.Contains(t, responder.Replies("farewell"), strings.TrimPrefix(lines[1], "> "))
}

func TestClassifyCmd_RequiresText(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"classify"})
	assert.Error(t, cmd.Execute())
}
