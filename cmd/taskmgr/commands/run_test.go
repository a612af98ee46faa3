package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/taskmgr"
	"github.com/viant/taskmgr/internal/clock"
	"github.com/viant/taskmgr/internal/idgen"
	"github.com/viant/taskmgr/model"
)

func TestParseStep(t *testing.T) {
	tests := []struct {
		input string
		op    string
		arg   string
		err   bool
	}{
		{input: "add", op: "add"},
		{input: "ADD:High", op: "add", arg: "High"},
		{input: "kill:t-1", op: "kill", arg: "t-1"},
		{input: "kill-group:low", op: "kill-group", arg: "low"},
		{input: "kill-all", op: "kill-all"},
		{input: "reset-mode:fifo", op: "reset-mode", arg: "fifo"},
		{input: "reset-capacity:3", op: "reset-capacity", arg: "3"},
		{input: "list", op: "list"},
		{input: "kill", err: true},
		{input: "reset-mode:", err: true},
		{input: "suspend:t-1", err: true},
	}
	for _, tt := range tests {
		got, err := parseStep(tt.input)
		if tt.err {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.op, got.op, tt.input)
		assert.Equal(t, tt.arg, got.arg, tt.input)
	}
}

func TestExecuteSteps(t *testing.T) {
	ctx := context.Background()
	srv := taskmgr.New(taskmgr.WithIDGenerator(idgen.Sequence("t")), taskmgr.WithClock(clock.Counter(1)))
	capacity, mode := 2, model.ModePriority
	require.NoError(t, srv.Initialize(ctx, &capacity, &mode))

	steps, err := parseSteps([]string{
		"add:low", "add:medium", "add:low", "add:high", "add:urgent", "list",
		"kill:t-1", "kill:t-2", "kill-group:high", "reset-capacity:zero",
		"add", "reset-mode:default", "reset-mode:lifo", "kill-all",
	})
	require.NoError(t, err)
	results := executeSteps(ctx, srv, steps)

	var outcomes []string
	for _, result := range results {
		if result.Error != "" {
			outcomes = append(outcomes, "error")
			continue
		}
		outcomes = append(outcomes, result.Outcome)
	}
	assert.Equal(t, []string{
		"added t-1", "added t-2", "skipped", "added t-3", "error", "[t-2 t-3]",
		"not found", "killed t-2", "killed 1", "error",
		"added t-4", "mode default, cleared 1", "error", "killed 0",
	}, outcomes)
	assert.Contains(t, results[4].Error, "task priority must be in [low, medium, high]")
	assert.Contains(t, results[9].Error, "task capacity must be positive integer")
}

func TestRunCommand_JSON(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"run", "--capacity", "2", "--mode", "fifo", "--json", "add:high", "add", "add:medium", "list"})
	defer rootCmd.SetArgs(nil)
	require.NoError(t, rootCmd.Execute())

	report := &runReport{}
	require.NoError(t, json.Unmarshal(out.Bytes(), report))
	require.Len(t, report.Steps, 4)
	assert.Equal(t, "add:high", report.Steps[0].Step)
	assert.Equal(t, model.ModeFIFO, report.Snapshot.Mode)
	assert.Equal(t, 2, report.Snapshot.Capacity)
	require.Len(t, report.Snapshot.Items, 2)
	assert.Equal(t, model.PriorityLow, report.Snapshot.Items[0].Priority)
	assert.Equal(t, model.PriorityMedium, report.Snapshot.Items[1].Priority)
	assert.Equal(t, 3, report.Stats.Admitted)
	assert.Equal(t, 1, report.Stats.Evicted)
}
