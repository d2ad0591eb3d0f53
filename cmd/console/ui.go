package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/tavernkeep/gamemaster/pkg/actor"
	"github.com/tavernkeep/gamemaster/pkg/chat"
	"github.com/tavernkeep/gamemaster/pkg/mechanics"
	"github.com/tavernkeep/gamemaster/pkg/state"
)

const (
	AgentName       = "Game Master"
	PlaceHolderText = "What do you do?"
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	session      *state.Session
	character    *actor.Character
	lastResult   *mechanics.CheckResult
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	// Scenario selection state
	showScenarioModal bool
	scenarios         []string
	scenarioMap       map[string]string
	selectedScenario  int
	loadingScenarios  bool

	// Quit confirmation state
	showQuitModal bool

	progressTick int
}

type actionResponseMsg struct {
	response *chat.ActionResponse
	err      error
}

type sessionRefreshMsg struct {
	session   *state.Session
	character *actor.Character
	err       error
}

type scenariosLoadedMsg struct {
	scenarios   []string
	scenarioMap map[string]string
	err         error
}

type sessionCreatedMsg struct {
	session   *state.Session
	character *actor.Character
	err       error
}

type progressTickMsg struct{}

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
			Foreground(lipgloss.Color("205")).
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	diceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")) // gold

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

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

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:            cfg,
		client:            client,
		textarea:          ta,
		chatViewport:      chatVp,
		metaViewport:      metaVp,
		showScenarioModal: true,
		loadingScenarios:  true,
	}
}

func (m *ConsoleUI) writeMetadata() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("GAMEMASTER") + "\n\n")

	if m.character != nil {
		content.WriteString(fmt.Sprintf("%s\n", m.character.Name))
		content.WriteString(fmt.Sprintf("Level %d\n", m.character.Level))
		content.WriteString(fmt.Sprintf("HP %d/%d\n", m.character.HP, m.character.MaxHP))
		content.WriteString(fmt.Sprintf("XP %d\n\n", m.character.Experience))

		if len(m.character.Inventory) > 0 {
			content.WriteString("Inventory:\n")
			for _, item := range m.character.Inventory {
				content.WriteString("• " + item + "\n")
			}
			content.WriteString("\n")
		}
	}

	if m.session != nil {
		content.WriteString("Location:\n")
		content.WriteString(m.session.Location + "\n\n")
		content.WriteString(fmt.Sprintf("Turn %d of %d\n\n", m.session.TurnCount, m.session.MaxTurns))
		if m.session.IsEnded {
			content.WriteString(titleStyle.Render("THE END") + "\n")
			content.WriteString("Ending: " + m.session.EndingType + "\n\n")
		}
	}

	if m.lastResult != nil {
		content.WriteString("Last check:\n")
		content.WriteString(diceStyle.Render(m.lastResult.Summary) + "\n\n")
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /help: Help\n")
	content.WriteString("• /copy: Copy story\n")

	return content.String()
}

// writeChatContent rebuilds the chat viewport from session history.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6

	var content strings.Builder
	content.WriteString(titleStyle.Render("GAMEMASTER") + "\n\n")
	content.WriteString("Type your actions below to play.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(chatWidth-6, 10))) + "\n\n")

	if m.session != nil {
		for _, msg := range m.session.ChatHistory {
			switch msg.Role {
			case chat.ChatRoleAgent, chat.ChatRoleSystem:
				content.WriteString(narratorStyle.Render(AgentName+": ") +
					wordwrap.String(msg.Content, chatWidth-6) + "\n\n")
			case chat.ChatRoleUser:
				content.WriteString(userStyle.Render("You: ") +
					wordwrap.String(msg.Content, chatWidth-6) + "\n\n")
			}
		}
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

// storyText returns the plain chat transcript, for /copy.
func (m *ConsoleUI) storyText() string {
	if m.session == nil {
		return ""
	}
	var sb strings.Builder
	for _, msg := range m.session.ChatHistory {
		switch msg.Role {
		case chat.ChatRoleAgent:
			sb.WriteString(AgentName + ": " + msg.Content + "\n\n")
		case chat.ChatRoleUser:
			sb.WriteString("You: " + msg.Content + "\n\n")
		}
	}
	return sb.String()
}

func (m ConsoleUI) Init() tea.Cmd {
	if m.showScenarioModal {
		return m.loadScenarios()
	}
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showScenarioModal {
		return m.updateScenarioModal(msg)
	}
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
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.writeChatContent()
		m.metaViewport.SetContent(m.writeMetadata())
		m.ready = true

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}
			if m.session != nil && m.session.IsEnded {
				return m, nil
			}

			m.textarea.Reset()
			m.loading = true
			m.progressTick = 0

			m.session.AppendMessage(chat.ChatRoleUser, input)
			m.writeChatContent()

			return m, tea.Batch(m.sendAction(input), progressTick())
		}

	case actionResponseMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.writeChatContent()
			current := m.chatViewport.View()
			m.chatViewport.SetContent(current + errorStyle.Render("Error: "+msg.err.Error()) + "\n\n")
		} else {
			resp := msg.response
			m.session.AppendMessage(chat.ChatRoleAgent, resp.Narrative)
			m.session.TurnCount = resp.TurnCount
			if resp.IsEnding {
				m.session.End(resp.EndingType)
			}
			m.lastResult = resp.DiceResult
			if m.character != nil {
				m.character.HP = resp.HP
				m.character.MaxHP = resp.MaxHP
				m.character.Level = resp.Level
			}
			m.writeChatContent()
			m.metaViewport.SetContent(m.writeMetadata())
		}
		m.chatViewport.GotoBottom()
		return m, m.refreshSession()

	case sessionRefreshMsg:
		if msg.err == nil && msg.session != nil {
			m.session = msg.session
			m.character = msg.character
			m.metaViewport.SetContent(m.writeMetadata())
		}

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
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

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	cmd := strings.ToLower(strings.TrimSpace(input))

	switch cmd {
	case "/help":
		helpText := `
Commands:
• /help - Show this help
• /copy - Copy the story so far to the clipboard
• Ctrl+C - Quit game

How to play:
• Type your actions and press Enter
• The game master narrates and the dice decide
• Risky actions are resolved with a d20 check
`
		current := m.chatViewport.View()
		m.chatViewport.SetContent(current + titleStyle.Render("Help:") + helpText + "\n")
		m.chatViewport.GotoBottom()

	case "/copy":
		var note string
		if err := clipboard.WriteAll(m.storyText()); err != nil {
			note = errorStyle.Render("Could not copy to clipboard: "+err.Error()) + "\n\n"
		} else {
			note = loadingStyle.Render("Story copied to clipboard.") + "\n\n"
		}
		current := m.chatViewport.View()
		m.chatViewport.SetContent(current + note)
		m.chatViewport.GotoBottom()
	}

	m.textarea.Reset()
	return m, nil
}

func (m ConsoleUI) sendAction(action string) tea.Cmd {
	return func() tea.Msg {
		resp, err := sendAction(m.client, m.config.APIBaseURL, m.session.ID, action)
		return actionResponseMsg{resp, err}
	}
}

func (m ConsoleUI) refreshSession() tea.Cmd {
	return func() tea.Msg {
		sr, err := getSession(m.client, m.config.APIBaseURL, m.session.ID)
		if err != nil {
			return sessionRefreshMsg{nil, nil, err}
		}
		return sessionRefreshMsg{sr.Session, sr.Character, nil}
	}
}

func (m ConsoleUI) loadScenarios() tea.Cmd {
	return func() tea.Msg {
		names, scenarioMap, err := listScenarios(m.client, m.config.APIBaseURL)
		return scenariosLoadedMsg{names, scenarioMap, err}
	}
}

func (m ConsoleUI) createSessionFromScenario(scenarioFile string) tea.Cmd {
	return func() tea.Msg {
		sr, err := createSession(m.client, m.config.APIBaseURL, m.config.CharacterName, scenarioFile)
		if err != nil {
			return sessionCreatedMsg{nil, nil, err}
		}
		return sessionCreatedMsg{sr.Session, sr.Character, nil}
	}
}

func (m ConsoleUI) updateScenarioModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case scenariosLoadedMsg:
		m.loadingScenarios = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.scenarios = msg.scenarios
			m.scenarioMap = msg.scenarioMap
		}

	case sessionCreatedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.session = msg.session
			m.character = msg.character
			m.showScenarioModal = false
			if m.width > 0 && m.height > 0 {
				m.resize()
			}
			m.writeChatContent()
			m.metaViewport.SetContent(m.writeMetadata())
			m.textarea.Focus()
			m.ready = true
		}
		return m, textarea.Blink

	case tea.KeyMsg:
		if m.loadingScenarios || m.err != nil {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyUp:
			if m.selectedScenario > 0 {
				m.selectedScenario--
			}
		case tea.KeyDown:
			if m.selectedScenario < len(m.scenarios)-1 {
				m.selectedScenario++
			}
		case tea.KeyEnter:
			if len(m.scenarios) > 0 {
				name := m.scenarios[m.selectedScenario]
				m.loading = true
				return m, m.createSessionFromScenario(m.scenarioMap[name])
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

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
				if !m.showScenarioModal {
					m.textarea.Focus()
					return m, textarea.Blink
				}
				return m, nil
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to quit your adventure?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderScenarioModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	if m.loadingScenarios {
		content.WriteString(modalTitleStyle.Render("Loading Scenarios..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Please wait while we fetch available scenarios..."))
	} else if m.err != nil {
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(fmt.Sprintf("Failed to load scenarios: %v", m.err)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	} else if m.loading {
		content.WriteString(modalTitleStyle.Render("Creating Game..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Setting up your adventure..."))
	} else {
		content.WriteString(modalTitleStyle.Render("Select a Scenario"))
		content.WriteString("\n\n")

		for i, name := range m.scenarios {
			if i == m.selectedScenario {
				content.WriteString(modalSelectedItemStyle.Render("▶ " + name))
			} else {
				content.WriteString(modalItemStyle.Render("  " + name))
			}
			content.WriteString("\n")
		}

		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showScenarioModal {
		return m.renderScenarioModal()
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(chatWidth-4, 10))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
	if usable <= 0 {
		usable = 30
	}
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		switch {
		case i < filled:
			bar.WriteString("█")
		case i == filled && frame%4 < 2:
			bar.WriteString("▓")
		default:
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
