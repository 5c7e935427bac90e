package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lexai/internal/domain"
)

// AnswerPort is the TUI-facing subset of the pipeline service.
type AnswerPort interface {
	Answer(query string) *domain.AnswerRecord
}

// Model is the Bubble Tea model for the interactive question prompt.
type Model struct {
	service  AnswerPort
	input    textinput.Model
	viewport viewport.Model
	record   *domain.AnswerRecord
	summary  string
	status   string
	ready    bool
}

// New creates a new TUI model instance. summary is the ingest report shown
// in the header.
func New(service AnswerPort, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a legal question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{service: service, input: ti, viewport: vp, summary: summary, status: "Corpus loaded. Ask away."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := answerBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header + summary, status, query box, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderAnswer())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" {
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m.record = m.service.Answer(q)
				m.status = "Answered: " + q
				m.viewport.SetContent(m.renderAnswer())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout with the current answer.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("LEXAI Legal Assistant")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	body := answerBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + body + "\n" + input + "\n" + status
}

func (m Model) renderAnswer() string {
	if m.record == nil {
		return "No answer yet."
	}
	var b strings.Builder
	if m.record.Metadata.TLDR != "" {
		b.WriteString(tldrStyle.Render("TL;DR: " + m.record.Metadata.TLDR))
		b.WriteString("\n\n")
	}
	b.WriteString(m.record.Markdown)
	return b.String()
}

var (
	answerBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	tldrStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)
