package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/viant/taskmgr"
	"github.com/viant/taskmgr/service/manager"
	"github.com/viant/taskmgr/stats"
)

// runStyles holds lipgloss styles for run output.
type runStyles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Muted  lipgloss.Style
	Error  lipgloss.Style
}

func newRunStyles() runStyles {
	return runStyles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")),
		Header: lipgloss.NewStyle().Bold(true),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}

type runReport struct {
	Steps    []*stepResult  `json:"steps"`
	Snapshot *manager.View  `json:"snapshot"`
	Stats    stats.Snapshot `json:"stats"`
}

func renderRunJSON(w io.Writer, srv *taskmgr.Service, results []*stepResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&runReport{Steps: results, Snapshot: srv.Snapshot(), Stats: srv.Stats()})
}

func renderRunHuman(w io.Writer, srv *taskmgr.Service, results []*stepResult) error {
	styles := newRunStyles()
	view := srv.Snapshot()

	fmt.Fprintln(w, styles.Title.Render("Steps"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, styles.Header.Render("STEP")+"\t"+styles.Header.Render("RESULT"))
	for _, result := range results {
		outcome := result.Outcome
		if result.Error != "" {
			outcome = styles.Error.Render("error: " + result.Error)
		}
		fmt.Fprintf(tw, "%s\t%s\n", result.Step, outcome)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Title.Render(fmt.Sprintf("Tasks (%d/%d, %v)", view.Size, view.Capacity, view.Mode)))
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, styles.Header.Render("ID")+"\t"+styles.Header.Render("CREATED")+"\t"+styles.Header.Render("PRIORITY"))
	for _, item := range view.Items {
		fmt.Fprintf(tw, "%s\t%d\t%v\n", item.ID, item.CreatedAt, item.Priority)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	counters := srv.Stats()
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Muted.Render(fmt.Sprintf("admitted %d, skipped %d, rejected %d, evicted %d, killed %d",
		counters.Admitted, counters.Skipped, counters.Rejected, counters.Evicted, counters.Killed)))
	return nil
}
