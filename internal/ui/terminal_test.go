package ui_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goetz-markgraf/maach-et/internal/runner"
	"github.com/goetz-markgraf/maach-et/internal/ui"
)

var _ runner.View = (*ui.Terminal)(nil)

func TestPlainTerminal(t *testing.T) {
	var out, errOut bytes.Buffer
	term, err := ui.New(&out, &errOut, ui.Options{})
	require.NoError(t, err)

	term.Prompt()
	term.Thinking()
	term.Reply("**hi**")
	term.ToolFeedback("File a.txt:\nx")
	term.Diagnostic("error: boom")
	term.Info("Using Model: %s", "qwen")

	assert.Equal(t, "/USER/ Thinking...\n/ASSISTANT/ **hi**\n/TOOL/ File a.txt:\nx\nUsing Model: qwen\n", out.String())
	assert.Equal(t, "error: boom\n", errOut.String())
}

func TestRenderedTerminal(t *testing.T) {
	var out bytes.Buffer
	term, err := ui.New(&out, &out, ui.Options{Render: true, WordWrap: 40})
	require.NoError(t, err)

	term.Reply("# Title\n\nsome *text*")

	assert.Contains(t, out.String(), "/ASSISTANT/")
	assert.Contains(t, out.String(), "Title")
	assert.Contains(t, out.String(), "text")
}
