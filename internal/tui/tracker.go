package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Jrakru/spec-kit/internal/core"
)

// Tracker renders a StepTracker as a live step tree while provisioning runs.
// In interactive mode a bubbletea program repaints the tree on every state
// change; otherwise each terminal state is printed as a plain line.
type Tracker struct {
	title string
	steps *core.StepTracker
	w     io.Writer
	live  bool

	program *tea.Program
}

// NewTracker builds a tracker writing to w. Live rendering is used only
// when interactive is set (a TTY is attached).
func NewTracker(w io.Writer, title string, interactive bool) *Tracker {
	return &Tracker{
		title: title,
		steps: core.NewStepTracker(title),
		w:     w,
		live:  interactive,
	}
}

// Steps exposes the underlying tracker as a core.Reporter for the pipeline.
func (t *Tracker) Steps() core.Reporter {
	if t.live {
		return t.steps
	}
	return &plainReporter{steps: t.steps, w: t.w}
}

type trackerRefreshMsg struct{}

// Run executes fn while the tree renders, then leaves a final static copy
// of the tree on the terminal.
func (t *Tracker) Run(fn func(core.Reporter) error) error {
	if !t.live {
		fmt.Fprintln(t.w, brightStyle.Render(t.title))
		err := fn(t.Steps())
		return err
	}

	model := trackerModel{
		title:   t.title,
		steps:   t.steps,
		spinner: newTrackerSpinner(),
	}
	t.program = tea.NewProgram(model, tea.WithOutput(t.w))
	t.steps.AttachRefresh(func() {
		if t.program != nil {
			t.program.Send(trackerRefreshMsg{})
		}
	})

	done := make(chan error, 1)
	go func() {
		done <- fn(t.steps)
		t.program.Send(trackerDoneMsg{})
	}()

	if _, err := t.program.Run(); err != nil {
		// Fall through to the pipeline result; a broken terminal should
		// not mask the provisioning outcome.
		fmt.Fprintf(t.w, "rendering progress failed: %v\n", err)
	}
	t.steps.AttachRefresh(nil)

	runErr := <-done
	fmt.Fprintln(t.w, renderStepTree(t.title, t.steps.Snapshot(), ""))
	return runErr
}

// RenderSteps draws a static step tree, for flows that mark every step
// synchronously and print once.
func RenderSteps(title string, steps []core.Step) string {
	return renderStepTree(title, steps, "")
}

func newTrackerSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(spinnerStyle),
	)
}

type trackerDoneMsg struct{}

type trackerModel struct {
	title   string
	steps   *core.StepTracker
	spinner spinner.Model
	done    bool
}

func (m trackerModel) Init() tea.Cmd { return m.spinner.Tick }

func (m trackerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case trackerDoneMsg:
		m.done = true
		return m, tea.Quit
	case trackerRefreshMsg:
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		// The tree is display-only; swallow keys so stray input does not
		// end up on the shell after the program exits.
		return m, nil
	}
	return m, nil
}

func (m trackerModel) View() string {
	if m.done {
		return ""
	}
	return renderStepTree(m.title, m.steps.Snapshot(), m.spinner.View()) + "\n"
}

// renderStepTree draws the step list with status glyphs:
// green ● done, grey ○ pending, red ● error, yellow ○ skipped.
func renderStepTree(title string, steps []core.Step, spinnerView string) string {
	var b strings.Builder
	b.WriteString(brightStyle.Render(title))
	for _, step := range steps {
		b.WriteString("\n")

		var glyph, label string
		switch step.Status {
		case core.StatusDone:
			glyph = successStyle.Render("●")
			label = brightStyle.Render(step.Label)
		case core.StatusRunning:
			glyph = spinnerStyle.Render("○")
			if spinnerView != "" {
				glyph = spinnerView
			}
			label = brightStyle.Render(step.Label)
		case core.StatusError:
			glyph = errorStyle.Render("●")
			label = errorStyle.Render(step.Label)
		case core.StatusSkipped:
			glyph = warningStyle.Render("○")
			label = mutedStyle.Render(step.Label)
		default:
			glyph = mutedStyle.Render("○")
			label = mutedStyle.Render(step.Label)
		}

		b.WriteString("  " + glyph + " " + label)
		if step.Detail != "" {
			b.WriteString(" " + mutedStyle.Render("("+step.Detail+")"))
		}
	}
	return b.String()
}

// plainReporter prints one line per terminal step state for non-TTY runs
// (CI logs, piped output).
type plainReporter struct {
	steps *core.StepTracker
	w     io.Writer
}

func (r *plainReporter) Add(key, label string) { r.steps.Add(key, label) }
func (r *plainReporter) Start(key, detail string) {
	r.steps.Start(key, detail)
}

func (r *plainReporter) Complete(key, detail string) {
	r.steps.Complete(key, detail)
	r.line(key, "done", detail)
}

func (r *plainReporter) Skip(key, detail string) {
	r.steps.Skip(key, detail)
	r.line(key, "skipped", detail)
}

func (r *plainReporter) Error(key, detail string) {
	r.steps.Error(key, detail)
	r.line(key, "error", detail)
}

func (r *plainReporter) line(key, status, detail string) {
	label := key
	for _, step := range r.steps.Snapshot() {
		if step.Key == key {
			label = step.Label
			break
		}
	}
	if detail != "" {
		fmt.Fprintf(r.w, "%s: %s (%s)\n", label, status, detail)
		return
	}
	fmt.Fprintf(r.w, "%s: %s\n", label, status)
}
