// Package display renders the live per-file status board. Renderers are only
// ever invoked from the coordinating goroutine, so none of them lock.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"docstitch/internal/taskboard"
)

// Reporter is the status capability the file coordinator drives. Begin is
// called once per file before dispatch, Update after each task resolves, and
// Finish once every task is terminal.
type Reporter interface {
	Begin(file string, statuses []taskboard.Status)
	Update(file string, function string, statuses []taskboard.Status)
	Finish(file string, statuses []taskboard.Status)
}

var (
	stylePending   = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
	styleSucceeded = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // green
	styleFailed    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // red
)

// NewReporter picks the renderer for w: in-place redraw when w is a
// terminal, append-only lines otherwise.
func NewReporter(w io.Writer) Reporter {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return &terminalReporter{w: w}
	}
	return &plainReporter{w: w}
}

// terminalReporter redraws the whole board in place using cursor-up escapes,
// one line per function plus the file header.
type terminalReporter struct {
	w         io.Writer
	drawn     int // lines rendered by the previous draw
	finalized bool
}

func (r *terminalReporter) Begin(file string, statuses []taskboard.Status) {
	r.drawn = 0
	r.finalized = false
	r.draw(file, statuses)
}

func (r *terminalReporter) Update(file string, _ string, statuses []taskboard.Status) {
	r.clear()
	r.draw(file, statuses)
}

func (r *terminalReporter) Finish(file string, statuses []taskboard.Status) {
	r.finalized = true
	r.clear()
	r.draw(file, statuses)
	r.drawn = 0
}

func (r *terminalReporter) clear() {
	if r.drawn > 0 {
		fmt.Fprint(r.w, strings.Repeat("\033[A\033[2K", r.drawn))
	}
}

func (r *terminalReporter) draw(file string, statuses []taskboard.Status) {
	header := fmt.Sprintf("Processing %s:", file)
	if r.finalized {
		fmt.Fprintln(r.w, styleSucceeded.Render(header+" ✓"))
	} else {
		fmt.Fprintln(r.w, stylePending.Render(header))
	}
	for _, st := range statuses {
		fmt.Fprintln(r.w, renderStatus(st))
	}
	r.drawn = len(statuses) + 1
}

func renderStatus(st taskboard.Status) string {
	line := "  " + st.Function
	switch st.State {
	case taskboard.TaskSucceeded:
		return styleSucceeded.Render(line + " ✓")
	case taskboard.TaskFailed, taskboard.TaskTimedOut:
		return styleFailed.Render(line + " ✗")
	default:
		return stylePending.Render(line)
	}
}

// plainReporter emits one line per transition. Suits pipes and CI logs where
// cursor movement would only smear escapes across the output.
type plainReporter struct {
	w io.Writer
}

func (r *plainReporter) Begin(file string, statuses []taskboard.Status) {
	fmt.Fprintf(r.w, "Processing %s (%d functions)\n", file, len(statuses))
}

func (r *plainReporter) Update(_ string, function string, statuses []taskboard.Status) {
	for _, st := range statuses {
		if st.Function == function {
			fmt.Fprintf(r.w, "  %s: %s\n", st.Function, st.State)
			return
		}
	}
}

func (r *plainReporter) Finish(file string, statuses []taskboard.Status) {
	failed := 0
	for _, st := range statuses {
		if st.State == taskboard.TaskFailed || st.State == taskboard.TaskTimedOut {
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(r.w, "Done %s (%d failed)\n", file, failed)
		return
	}
	fmt.Fprintf(r.w, "Done %s\n", file)
}
