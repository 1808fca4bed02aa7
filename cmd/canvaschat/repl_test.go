package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdobrica/canvaschat/internal/canvaschat/executor"
	"github.com/bdobrica/canvaschat/internal/canvaschat/host"
	"github.com/bdobrica/canvaschat/internal/canvaschat/session"
)

const replSeed = `
components:
  - id: card
    type: card
    children:
      - id: title
        type: heading
`

func TestREPL(t *testing.T) {
	ws, err := host.LoadWorkspace([]byte(replSeed))
	require.NoError(t, err)
	exec, err := executor.New(executor.Config{Data: ws, Sink: ws, Settings: ws})
	require.NoError(t, err)
	sessions, err := session.New(session.Config{Executor: exec, Selector: ws})
	require.NoError(t, err)

	in := strings.NewReader(strings.Join([]string{
		":tree",
		":select nope",
		":select title",
		"make it bold",
		":deselect",
		"frobnicate",
		":quit",
		"never read",
	}, "\n"))
	var out bytes.Buffer
	require.NoError(t, runREPL(context.Background(), in, &out, sessions, ws))

	text := out.String()
	assert.Contains(t, text, "card (card)\n  title (heading)\n")
	assert.Contains(t, text, "No single component matches that selection.")
	assert.Contains(t, text, "[title]> ")
	assert.Contains(t, text, executor.MissMessage)
	assert.NotContains(t, text, "never read")

	title, _ := ws.Component("title")
	assert.Equal(t, "700", title.Style["fontWeight"])
}
