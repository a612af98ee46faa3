package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/taskmgr"
	"github.com/viant/taskmgr/model"
)

var runCmd = &cobra.Command{
	Use:   "run [step...]",
	Short: "Run a scripted sequence of registry operations",
	Long: `Run builds a registry and executes each step in order. Steps:

  add[:low|medium|high]     admit a task (priority defaults to low)
  kill:<id>                 remove a task by id
  kill-group:<priority>     remove every task with priority
  kill-all                  remove every task
  reset-mode:<mode>         switch mode and clear the registry
  reset-capacity:<n>        set capacity and clear the registry
  list                      record the current task ids

Operation errors are reported per step and do not stop the run.`,
	Example: `  taskmgr run --capacity 2 --mode priority add:low add:medium add:high list`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		return runSteps(cmd, args, jsonOutput)
	},
}

func init() {
	runCmd.Flags().Bool("json", false, "Output as JSON")
	rootCmd.AddCommand(runCmd)
}

type step struct {
	raw string
	op  string
	arg string
}

// stepResult is the outcome of one step.
type stepResult struct {
	Step    string `json:"step"`
	Outcome string `json:"outcome,omitempty"`
	Error   string `json:"error,omitempty"`
}

func runSteps(cmd *cobra.Command, args []string, jsonOutput bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	steps, err := parseSteps(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	srv, err := taskmgr.NewFromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = srv.Shutdown(ctx) }()

	results := executeSteps(ctx, srv, steps)
	if jsonOutput {
		return renderRunJSON(cmd.OutOrStdout(), srv, results)
	}
	return renderRunHuman(cmd.OutOrStdout(), srv, results)
}

func parseSteps(args []string) ([]*step, error) {
	var ret []*step
	for _, arg := range args {
		s, err := parseStep(arg)
		if err != nil {
			return nil, err
		}
		ret = append(ret, s)
	}
	return ret, nil
}

func parseStep(raw string) (*step, error) {
	op, arg, _ := strings.Cut(strings.TrimSpace(raw), ":")
	ret := &step{raw: raw, op: strings.ToLower(op), arg: arg}
	switch ret.op {
	case "add", "kill-all", "list":
	case "kill", "kill-group", "reset-mode", "reset-capacity":
		if arg == "" {
			return nil, fmt.Errorf("step %q requires an argument", raw)
		}
	default:
		return nil, fmt.Errorf("unknown step %q", raw)
	}
	return ret, nil
}

func executeSteps(ctx context.Context, srv *taskmgr.Service, steps []*step) []*stepResult {
	ret := make([]*stepResult, 0, len(steps))
	for _, s := range steps {
		outcome, err := executeStep(ctx, srv, s)
		result := &stepResult{Step: s.raw, Outcome: outcome}
		if err != nil {
			result.Error = err.Error()
		}
		ret = append(ret, result)
	}
	return ret
}

func executeStep(ctx context.Context, srv *taskmgr.Service, s *step) (string, error) {
	switch s.op {
	case "add":
		priority, err := model.ParsePriority(s.arg)
		if err != nil {
			return "", err
		}
		task, err := srv.Add(ctx, priority)
		if err != nil {
			return "", err
		}
		if task == nil {
			return "skipped", nil
		}
		return "added " + task.ID(), nil
	case "kill":
		if srv.Kill(ctx, s.arg) {
			return "killed " + s.arg, nil
		}
		return "not found", nil
	case "kill-group":
		priority, err := model.ParsePriority(s.arg)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("killed %d", srv.KillGroup(ctx, priority)), nil
	case "kill-all":
		return fmt.Sprintf("killed %d", srv.KillAll(ctx)), nil
	case "reset-mode":
		mode, err := model.ParseMode(s.arg)
		if err != nil {
			return "", err
		}
		count, err := srv.ResetMode(ctx, mode)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("mode %v, cleared %d", mode, count), nil
	case "reset-capacity":
		capacity, err := strconv.Atoi(s.arg)
		if err != nil {
			return "", &model.InvalidCapacityError{Value: s.arg}
		}
		count, err := srv.ResetCapacity(ctx, capacity)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("capacity %d, cleared %d", capacity, count), nil
	case "list":
		var ids []string
		for _, task := range srv.List(ctx) {
			ids = append(ids, task.ID())
		}
		return "[" + strings.Join(ids, " ") + "]", nil
	}
	return "", fmt.Errorf("unknown step %q", s.raw)
}
