// Package tui renders live run progress with bubbletea. It consumes
// the progress events the job loop emits and draws a single-line
// progress bar plus the incumbent best.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/medlar-opt/medlar/job"
)

// ProgressMsg carries one run-loop progress update.
type ProgressMsg job.Progress

// DoneMsg signals run completion.
type DoneMsg struct {
	Err error
}

// Model is the progress TUI model.
type Model struct {
	jobName string

	progress <-chan job.Progress
	done     <-chan error

	last  job.Progress
	seen  bool
	ended bool
	err   error

	width int
}

// NewModel creates a progress model fed by the given channels. The
// done channel must deliver exactly one value when the run finishes.
func NewModel(jobName string, progress <-chan job.Progress, done <-chan error) Model {
	return Model{jobName: jobName, progress: progress, done: done, width: 80}
}

func (m Model) Init() tea.Cmd {
	return m.wait()
}

// wait blocks on the next progress or completion event.
func (m Model) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case p := <-m.progress:
			return ProgressMsg(p)
		case err := <-m.done:
			return DoneMsg{Err: err}
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProgressMsg:
		m.last = job.Progress(msg)
		m.seen = true
		return m, m.wait()

	case DoneMsg:
		m.ended = true
		m.err = msg.Err
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

// Err returns the run error delivered on completion, if any.
func (m Model) Err() error { return m.err }

// Run displays the progress TUI until the run completes.
func Run(jobName string, progress <-chan job.Progress, done <-chan error) error {
	final, err := tea.NewProgram(NewModel(jobName, progress, done)).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
