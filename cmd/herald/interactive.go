package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/herald-tools/herald/internal/console"
	"github.com/herald-tools/herald/internal/domain"
	"github.com/herald-tools/herald/internal/ui/style"
)

// runInteractive launches the full-screen console TUI.
func runInteractive(ctx context.Context, logger domain.Logger) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("interactive mode requires a terminal")
	}

	var out bytes.Buffer
	input := textinput.New()
	input.Prompt = "herald> "
	input.Focus()

	m := consoleModel{
		ctx:     ctx,
		console: console.New(&out, logger),
		out:     &out,
		input:   input,
		lines:   []string{style.Subtle("type a command, or 'help' to list them; esc quits")},
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type consoleModel struct {
	ctx     context.Context
	console *console.Console
	out     *bytes.Buffer

	input      textinput.Model
	transcript viewport.Model
	lines      []string
	ready      bool
	width      int
	height     int
}

func (m consoleModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// One row for the input line.
		if !m.ready {
			m.transcript = viewport.New(msg.Width, msg.Height-1)
			m.ready = true
		} else {
			m.transcript.Width = msg.Width
			m.transcript.Height = msg.Height - 1
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			m.run(line)
			m.refresh()
			return m, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.transcript, cmd = m.transcript.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// run executes one invocation line and appends its output, or its error,
// to the transcript.
func (m *consoleModel) run(line string) {
	m.lines = append(m.lines, style.Subtle("herald> ")+line)

	m.out.Reset()
	err := m.console.Execute(m.ctx, line)
	if output := strings.TrimRight(m.out.String(), "\n"); output != "" {
		m.lines = append(m.lines, strings.Split(output, "\n")...)
	}
	if err != nil {
		m.lines = append(m.lines, style.Error(err.Error()))
	}
}

func (m *consoleModel) refresh() {
	if !m.ready {
		return
	}
	m.transcript.SetContent(strings.Join(m.lines, "\n"))
	m.transcript.GotoBottom()
}

func (m consoleModel) View() string {
	if !m.ready {
		return "loading..."
	}
	return fmt.Sprintf("%s\n%s", m.transcript.View(), m.input.View())
}
