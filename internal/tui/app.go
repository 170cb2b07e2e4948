package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessellate-ai/maestro/internal/supervisor"
)

// MessageSubmittedMsg is sent when the user submits a message.
type MessageSubmittedMsg struct {
	Text string
}

// SupervisorEventMsg wraps a supervisor progress event for display.
type SupervisorEventMsg struct {
	Event supervisor.Event
}

// TurnResultMsg carries a completed turn's response (or its error).
type TurnResultMsg struct {
	Response string
	Err      error
}

var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	eventStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	inputBoxStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// ChatApp is the main model for interactive mode: a scrolling transcript
// with an input field and a spinner while a turn is in flight.
type ChatApp struct {
	input      textinput.Model
	spin       spinner.Model
	transcript []string
	width      int
	height     int
	busy       bool
	quitting   bool

	// Callback for when a message is submitted
	onSubmit func(text string)
}

// NewChatApp creates a new ChatApp.
func NewChatApp() *ChatApp {
	ti := textinput.New()
	ti.Placeholder = "Ask Maestro anything and press Enter..."
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &ChatApp{
		input: ti,
		spin:  sp,
		width: 80,
	}
}

// SetSubmitHandler sets the callback for message submissions. The handler
// runs on the update loop; long work must be dispatched to a goroutine.
func (a *ChatApp) SetSubmitHandler(handler func(text string)) {
	a.onSubmit = handler
}

// Init implements tea.Model.
func (a *ChatApp) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *ChatApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			a.quitting = true
			return a, tea.Quit

		case "enter":
			text := strings.TrimSpace(a.input.Value())
			if text == "" || a.busy {
				return a, nil
			}
			a.input.Reset()
			return a, func() tea.Msg {
				return MessageSubmittedMsg{Text: text}
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = msg.Width - 6

	case MessageSubmittedMsg:
		a.appendLine(userStyle.Render("You: ") + msg.Text)
		a.busy = true
		if a.onSubmit != nil {
			a.onSubmit(msg.Text)
		}
		return a, a.spin.Tick

	case SupervisorEventMsg:
		if line := describeEvent(msg.Event); line != "" {
			a.appendLine(eventStyle.Render("  " + line))
		}
		return a, nil

	case TurnResultMsg:
		a.busy = false
		if msg.Err != nil {
			a.appendLine(errorStyle.Render("Error: " + msg.Err.Error()))
		} else {
			a.appendLine(assistantStyle.Render("Maestro: " + msg.Response))
		}
		a.appendLine("")
		return a, nil

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// appendLine adds a line to the transcript, keeping it bounded.
func (a *ChatApp) appendLine(line string) {
	const maxLines = 500
	a.transcript = append(a.transcript, line)
	if len(a.transcript) > maxLines {
		a.transcript = a.transcript[len(a.transcript)-maxLines:]
	}
}

// View implements tea.Model.
func (a *ChatApp) View() string {
	if a.quitting {
		return "Goodbye!\n"
	}

	// Show only as many transcript lines as fit above the input box.
	visible := a.height - 5
	if visible < 1 {
		visible = 1
	}
	lines := a.transcript
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}
	transcript := strings.Join(lines, "\n")

	status := ""
	if a.busy {
		status = a.spin.View() + " thinking..."
	}

	inputBox := inputBoxStyle.Width(a.width - 2).Render(userStyle.Render("> ") + a.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, transcript, status, inputBox)
}

// describeEvent renders a supervisor event as a transcript line.
func describeEvent(e supervisor.Event) string {
	switch e.Type {
	case supervisor.EventStepStarted:
		return fmt.Sprintf("[%s] working on %s (attempt %d)", e.Agent, e.StepID, e.Attempt)
	case supervisor.EventReviewStarted:
		return fmt.Sprintf("[critic] reviewing %s", e.StepID)
	case supervisor.EventStepRetrying:
		return fmt.Sprintf("[%s] %s rejected, retrying (attempt %d)", e.Agent, e.StepID, e.Attempt+1)
	case supervisor.EventStepFinalized:
		return fmt.Sprintf("[%s] %s finalized", e.Agent, e.StepID)
	case supervisor.EventTurnDone:
		return ""
	default:
		return string(e.Type)
	}
}

// NewChatProgram creates a new Bubbletea program for interactive mode.
func NewChatProgram() (*tea.Program, *ChatApp) {
	app := NewChatApp()
	p := tea.NewProgram(app, tea.WithAltScreen())
	return p, app
}
