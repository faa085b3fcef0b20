package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eventer/runsheet-cli/internal/domain"
)

// endOutcomeMsg carries the backend's verdict on an end request.
type endOutcomeMsg struct {
	record domain.SessionEndRecord
	err    error
}

type endProgressModel struct {
	spinner  spinner.Model
	activity string
	end      tea.Cmd
	outcome  endOutcomeMsg
	done     bool
}

func newEndProgressModel(slot domain.Slot, end tea.Cmd) endProgressModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return endProgressModel{
		spinner:  s,
		activity: slot.Activity,
		end:      end,
	}
}

func (m endProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.end)
}

func (m endProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case endOutcomeMsg:
		m.done = true
		m.outcome = msg
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m endProgressModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s Ending session %q...", m.spinner.View(), m.activity)
}

// runEndSpinner keeps a spinner on screen while the end request is in
// flight and hands back the recorded end once the backend answers.
func runEndSpinner(ctx context.Context, output io.Writer, slot domain.Slot, end func(context.Context) (domain.SessionEndRecord, error)) (domain.SessionEndRecord, error) {
	endCmd := func() tea.Msg {
		record, err := end(ctx)
		return endOutcomeMsg{record: record, err: err}
	}

	p := tea.NewProgram(
		newEndProgressModel(slot, endCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return domain.SessionEndRecord{}, err
	}

	result, ok := finalModel.(endProgressModel)
	if !ok {
		return domain.SessionEndRecord{}, fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.outcome.record, result.outcome.err
}
