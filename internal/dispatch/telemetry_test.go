package dispatch_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goetz-markgraf/maach-et/internal/dispatch"
	"github.com/goetz-markgraf/maach-et/internal/invocation"
	"github.com/goetz-markgraf/maach-et/internal/telemetry"
	"github.com/goetz-markgraf/maach-et/tools"
)

func toolExecEvents(t *testing.T, dir string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "events.jsonl"))
	require.NoError(t, err)
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		if m["event"] == "tool_exec" {
			out = append(out, m)
		}
	}
	return out
}

func TestDispatch_EmitsToolExecWithoutPayloads(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MAACHET_ARTIFACTS_DIR", dir)
	t.Setenv("MAACHET_OBSERVE_JSON", "1")

	defs := []tools.ToolDefinition{
		{Indicator: "save", Function: func(context.Context, *string, string) (tools.Result, error) {
			return tools.Result{}, errors.New("secret-content failed")
		}},
		{Indicator: "read", Function: func(context.Context, *string, string) (tools.Result, error) {
			return tools.Output("secret-output"), nil
		}},
	}
	param := "notes.txt"
	in := []invocation.Invocation{
		{Name: "save", Parameter: &param, Content: "secret-content"},
		{Name: "read", Parameter: &param},
	}
	ctx := telemetry.WithTurnID(context.Background(), "turn-test")

	dispatch.Dispatch(ctx, in, defs)

	events := toolExecEvents(t, dir)
	require.Len(t, events, 2)

	assert.Equal(t, "save", events[0]["tool_name"])
	assert.Equal(t, "tool error", events[0]["error"])
	assert.EqualValues(t, len("secret-content"), events[0]["input_size"])
	assert.EqualValues(t, len(param), events[0]["param_size"])
	assert.Equal(t, "turn-test", events[0]["turn_id"])

	assert.Equal(t, "read", events[1]["tool_name"])
	assert.Nil(t, events[1]["error"])
	assert.EqualValues(t, len("secret-output"), events[1]["output_size"])

	raw, err := os.ReadFile(filepath.Join(dir, "events.jsonl"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
}
