package main

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// spinnerModel drives a bubbletea progress view while a long-running stage
// (currently file loading under --watch) runs on its own goroutine; the
// program quits itself the moment that goroutine reports done.
type spinnerModel struct {
	spin  spinner.Model
	label string
	done  chan error
	err   error
}

type doneMsg struct{ err error }

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, waitDone(m.done))
}

func waitDone(done chan error) tea.Cmd {
	return func() tea.Msg { return doneMsg{err: <-done} }
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	return m.spin.View() + " " + m.label + "\n"
}

// runWithSpinner runs work on its own goroutine while a bubbletea spinner
// renders progress, returning work's error once it finishes.
func runWithSpinner(label string, work func() error) error {
	done := make(chan error, 1)
	go func() { done <- work() }()

	s := spinner.New()
	s.Spinner = spinner.Dot
	m := spinnerModel{spin: s, label: label, done: done}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	return final.(spinnerModel).err
}
