package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/dungeon/internal/app"
	"github.com/jwebster45206/dungeon/pkg/l10n"
	"github.com/jwebster45206/dungeon/pkg/session"
	"github.com/jwebster45206/dungeon/pkg/story/goldseekers"
	"github.com/jwebster45206/dungeon/pkg/textfilter"
)

// Console text. Each string is a catalog key.
const (
	textPlaceholder  = "What do you do?"
	textStartHint    = "Enter to start, Ctrl+C to exit"
	textLoading      = "Loading..."
	textInitializing = "Initializing..."
	textError        = "Error: %s"
	textGameState    = "GAME STATE"
	textSession      = "Session:"
	textPlayer       = "Player:"
	textScene        = "Scene:"
	textBoredom      = "Boredom:"
	textLanguage     = "Language:"
	textCommands     = "Commands:"
	textKeyQuit      = "• Ctrl+C: Quit"
	textKeySend      = "• Enter: Send"
	textKeyHelp      = "• /help: Help"
	textKeyCopy      = "• /copy: Copy transcript"
	textHelpHelp     = "• /help - Show this help"
	textHelpCopy     = "• /copy - Copy the transcript to the clipboard"
	textHelpQuit     = "• Ctrl+C - Quit game"
	textHelpActions  = "The story understands %d kinds of action here. Type plainly, e.g. \"open door\"."
	textNoClipboard  = "Clipboard unavailable: %v"
	textCopied       = "Transcript copied to clipboard."
	textUnknown      = "Unknown command %s. Try /help."
	textQuitTitle    = "Quit Game?"
	textQuitQuestion = "Are you sure you want to quit your adventure?"
	textQuitKeys     = "Press Y to quit, N to continue, or Ctrl+C to force quit"
)

// line is one entry of the on-screen transcript.
type line struct {
	input bool
	text  string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	ctx          context.Context
	app          *app.App
	session      *session.Session
	lines        []line
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	notice       string

	// Name prompt state
	showNameModal bool

	// Quit confirmation state
	showQuitModal bool
}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(ctx context.Context, a *app.App) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = a.Translator.Text("Tell me your name: ")
	ta.Focus()
	ta.Prompt = promptStyle.Render(a.Translator.Text("> "))
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		ctx:           ctx,
		app:           a,
		textarea:      ta,
		chatViewport:  chatVp,
		metaViewport:  metaVp,
		showNameModal: true,
	}
}

// plainTranscript is the transcript as the line driver would print it.
func (m *ConsoleUI) plainTranscript() string {
	prompt := m.app.Translator.Text("> ")
	var b strings.Builder
	for _, l := range m.lines {
		if l.input {
			b.WriteString(prompt + l.text + "\n")
		} else {
			b.WriteString(l.text + "\n")
		}
	}
	return b.String()
}

// writeChatContent renders the transcript for the current viewport width
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding
	if chatWidth < 10 {
		chatWidth = 10
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(strings.ToUpper(m.session.Player().Map().Name())) + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth)) + "\n\n")

	prompt := m.app.Translator.Text("> ")
	for _, l := range m.lines {
		if l.input {
			content.WriteString(userStyle.Render(prompt+wordwrap.String(l.text, chatWidth-len(prompt))) + "\n\n")
			continue
		}
		content.WriteString(narratorStyle.Render(wordwrap.String(l.text, chatWidth)) + "\n")
	}

	if m.session.Over() {
		content.WriteString("\n" + noticeStyle.Render(m.app.Translator.Text("Press Enter to exit.")) + "\n")
	}
	if m.notice != "" {
		content.WriteString("\n" + noticeStyle.Render(m.notice) + "\n")
	}
	if m.err != nil {
		content.WriteString("\n" + errorStyle.Render(m.app.Translator.Text(textError, m.err.Error())) + "\n")
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func writeMetadata(s *session.Session, tr l10n.Translator) string {
	p := s.Player()

	var content strings.Builder
	content.WriteString(titleStyle.Render(tr.Text(textGameState)) + "\n\n")

	content.WriteString(tr.Text(textSession) + "\n")
	content.WriteString(s.ID().String()[:8] + "...\n\n")

	content.WriteString(tr.Text(textPlayer) + "\n")
	content.WriteString(p.Name() + "\n\n")

	content.WriteString(tr.Text(textScene) + "\n")
	if sc := p.Scene(); sc != nil {
		content.WriteString(sc.Name() + "\n\n")
	} else {
		content.WriteString("-\n\n")
	}

	if a, err := goldseekers.AdventurerOf(p); err == nil {
		content.WriteString(tr.Text(textBoredom) + "\n")
		content.WriteString(fmt.Sprintf("%d / %d\n\n", a.Boredom(), goldseekers.Patience))
	}

	content.WriteString(tr.Text(textLanguage) + "\n")
	content.WriteString(tr.Language().String() + "\n")

	content.WriteString("\n")
	for _, key := range []string{textCommands, textKeyQuit, textKeySend, textKeyHelp, textKeyCopy} {
		content.WriteString(tr.Text(key) + "\n")
	}

	return content.String()
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m *ConsoleUI) resize() {
	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

func (m *ConsoleUI) refresh() {
	m.writeChatContent()
	m.metaViewport.SetContent(writeMetadata(m.session, m.app.Translator))
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle name prompt first
	if m.showNameModal {
		return m.updateNameModal(msg)
	}

	// Handle quit modal second
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if m.session.Over() {
				return m, tea.Quit
			}
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.session.Over() {
				return m, tea.Quit
			}

			input := m.textarea.Value()
			m.textarea.Reset()
			m.notice = ""

			if strings.HasPrefix(strings.TrimSpace(input), "/") {
				return m.handleCommand(strings.TrimSpace(input))
			}
			if textfilter.IsBlank(input) {
				return m, nil
			}

			m.lines = append(m.lines, line{input: true, text: strings.TrimSpace(input)})
			res, err := m.session.Turn(m.ctx, input)
			for _, text := range res.Messages {
				m.lines = append(m.lines, line{text: text})
			}
			m.err = err
			if m.session.Over() {
				m.textarea.Blur()
			}
			m.refresh()
			return m, nil
		}
	}

	// Update components for non-mouse events
	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	tr := m.app.Translator
	switch strings.ToLower(input) {
	case "/help":
		var cmds []string
		if sc := m.session.Player().Scene(); sc != nil {
			cmds = sc.Commands()
		}
		m.notice = strings.Join([]string{
			tr.Text(textCommands),
			tr.Text(textHelpHelp),
			tr.Text(textHelpCopy),
			tr.Text(textHelpQuit),
			"",
			tr.Text(textHelpActions, len(cmds)),
		}, "\n")

	case "/copy":
		if err := clipboard.WriteAll(m.plainTranscript()); err != nil {
			m.notice = tr.Text(textNoClipboard, err)
		} else {
			m.notice = tr.Text(textCopied)
		}

	default:
		m.notice = tr.Text(textUnknown, input)
	}

	m.refresh()
	return m, nil
}

func (m ConsoleUI) updateNameModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			s, err := m.app.NewSession(m.textarea.Value())
			if err != nil {
				m.err = err
				return m, nil
			}
			m.session = s
			m.showNameModal = false
			m.textarea.Reset()
			m.textarea.Placeholder = m.app.Translator.Text(textPlaceholder)
			for _, text := range s.Opening(m.ctx) {
				m.lines = append(m.lines, line{text: text})
			}
			if m.width > 0 && m.height > 0 {
				m.resize()
				m.ready = true
				m.refresh()
			}
			return m, textarea.Blink
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderModal(title, body string) string {
	if m.width == 0 || m.height == 0 {
		return m.app.Translator.Text(textLoading)
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render(title))
	content.WriteString("\n\n")
	content.WriteString(body)

	// Create the modal
	modal := modalStyle.Width(50).Render(content.String())

	// Center the modal
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showNameModal {
		body := m.textarea.View() + "\n\n" + promptStyle.Render(m.app.Translator.Text(textStartHint))
		if m.err != nil {
			body += "\n\n" + errorStyle.Render(m.err.Error())
		}
		return m.renderModal(m.app.Translator.Text(goldseekers.MapName), body)
	}

	if m.showQuitModal {
		tr := m.app.Translator
		return m.renderModal(tr.Text(textQuitTitle),
			tr.Text(textQuitQuestion)+"\n\n"+
				promptStyle.Render(tr.Text(textQuitKeys)))
	}

	if !m.ready {
		return "\n  " + m.app.Translator.Text(textInitializing)
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"", // Add empty line for spacing
			separatorStyle.Render(strings.Repeat("─", chatWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}
