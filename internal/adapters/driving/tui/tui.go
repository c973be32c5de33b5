// Package tui provides the interactive chat view, built with Bubbletea
// following the Elm architecture.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fluffyai/helpdesk-cli/internal/core/ports/driving"
)

// exitWords terminate the conversation when typed as a message.
var exitWords = map[string]bool{
	"quit":    true,
	"exit":    true,
	"bye":     true,
	"goodbye": true,
}

// replyReceived carries the outcome of one chat turn back into Update.
type replyReceived struct {
	reply string
	err   error
}

// Model is the chat view state.
type Model struct {
	chat   driving.ChatService
	useRAG bool
	styles *Styles

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	transcript []string
	waiting    bool
	ready      bool
	width      int
	height     int
}

// NewModel creates the chat view.
func NewModel(chat driving.ChatService, useRAG bool) *Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about products, shipping, returns..."
	ti.Focus()
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		chat:    chat,
		useRAG:  useRAG,
		styles:  DefaultStyles(),
		input:   ti,
		spinner: sp,
		width:   80,
		height:  24,
	}
}

// Init starts the input cursor blink.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages following the Elm architecture.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			return m.submit()
		}

	case replyReceived:
		m.waiting = false
		if msg.err != nil {
			m.appendLine(m.styles.Error.Render(
				fmt.Sprintf("That didn't work: %v", msg.err)))
			m.appendLine(m.styles.Notice.Render(
				"Retry your question, or type \"reset\" to start over."))
		} else {
			m.appendLine(m.styles.BotLabel.Render("FluffyAI: ") + msg.reply)
		}
		m.appendLine("")
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit processes the typed line: control word or chat message.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}
	m.input.Reset()

	if exitWords[strings.ToLower(line)] {
		return m, tea.Quit
	}
	if strings.EqualFold(line, "reset") {
		m.chat.Reset()
		m.transcript = nil
		m.appendLine(m.styles.Notice.Render("Conversation cleared."))
		m.appendLine("")
		return m, nil
	}

	m.appendLine(m.styles.UserLabel.Render("You: ") + line)
	m.waiting = true
	return m, tea.Batch(m.spinner.Tick, m.send(line))
}

// send runs the chat turn off the UI loop.
func (m *Model) send(message string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.chat.Respond(context.Background(), message, m.useRAG)
		return replyReceived{reply: reply, err: err}
	}
}

func (m *Model) appendLine(line string) {
	m.transcript = append(m.transcript, line)
	m.viewport.SetContent(strings.Join(m.transcript, "\n"))
	m.viewport.GotoBottom()
}

func (m *Model) layout() {
	// Title, input box and help take the rest of the height.
	m.viewport = viewport.New(m.width, m.height-7)
	m.viewport.SetContent(strings.Join(m.transcript, "\n"))
	m.viewport.GotoBottom()
	m.input.Width = m.width - 6
}

// View renders the chat screen.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("FluffyAI Helpdesk"))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.waiting {
		b.WriteString(m.spinner.View() + " Thinking...")
	} else {
		b.WriteString(m.styles.InputBox.Render(m.input.View()))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter: send • reset: clear conversation • quit/esc: leave"))
	return b.String()
}

// Run starts the chat TUI and blocks until the user leaves.
func Run(chat driving.ChatService, useRAG bool) error {
	p := tea.NewProgram(NewModel(chat, useRAG), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
