// Package tui is the terminal interface: it renders nodes and paradox
// banners, and routes system commands that never reach the engine.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inkvein/storyloop/internal/engine"
	"github.com/inkvein/storyloop/internal/game"
	"github.com/inkvein/storyloop/internal/paradox"
	"github.com/inkvein/storyloop/internal/player"
)

type sessionState int

const (
	statePlaying sessionState = iota
	stateError
)

type model struct {
	state     sessionState
	engine    *engine.Engine
	session   *game.Session
	textInput textinput.Model
	viewport  viewport.Model
	err       error
	gameLog   string
	width     int
	height    int
	notice    string
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	paradoxStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true)

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87D7FF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

func newModel(eng *engine.Engine, session *game.Session) model {
	ti := textinput.New()
	ti.Placeholder = "What do you do?"
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	return model{
		state:     statePlaying,
		engine:    eng,
		session:   session,
		textInput: ti,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type turnProcessedMsg struct {
	result *engine.TurnResult
	err    error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.state != statePlaying {
				return m, nil
			}
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}
			m.textInput.Reset()
			m.notice = ""

			input = m.resolveNumericChoice(input)
			command := player.Parse(input)
			if command.IsSystem {
				return m.handleSystem(command)
			}

			logWidth := m.logWidth()
			styled := userStyle.Width(logWidth).Render("> " + input)
			m.gameLog += "\n\n" + styled + "\n\n"
			m.refreshLog()
			return m, m.processTurn(command)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.viewport.Width == 0 {
			m.viewport = viewport.New(m.logWidth(), msg.Height-6)
			m.gameLog = m.renderScene(nil)
		}
		m.viewport.Width = m.logWidth()
		m.viewport.Height = msg.Height - 6
		m.refreshLog()

	case turnProcessedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.gameLog += m.renderTurn(msg.result)
		m.refreshLog()
		return m, nil
	}

	if m.state == statePlaying {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// resolveNumericChoice maps a bare number to the corresponding choice action
// on the current node.
func (m model) resolveNumericChoice(input string) string {
	n, err := strconv.Atoi(input)
	if err != nil {
		return input
	}
	node, nerr := m.session.CurrentNode()
	if nerr != nil || n < 1 || n > len(node.Choices) {
		return input
	}
	return node.Choices[n-1].Action
}

func (m model) handleSystem(command player.Command) (tea.Model, tea.Cmd) {
	switch command.Verb {
	case "quit":
		return m, tea.Quit
	case "help":
		m.notice = helpText
	case "status":
		m.notice = "" // already visible in the sidebar
	case "map":
		m.notice = m.renderMap()
	case "save":
		name := command.Target
		if name == "" {
			name = "current"
		}
		if err := m.session.Save(name); err != nil {
			m.notice = "save failed: " + err.Error()
		} else {
			m.notice = "saved as " + name
		}
	case "load":
		name := command.Target
		if name == "" {
			name = "current"
		}
		restored, err := game.Load(name)
		if err != nil {
			// A failed load leaves the running session untouched.
			m.notice = "load failed: " + err.Error()
		} else {
			m.session = restored
			m.gameLog = m.renderScene(nil)
			m.notice = "loaded " + name
		}
	}
	m.refreshLog()
	return m, nil
}

func (m model) processTurn(command player.Command) tea.Cmd {
	return func() tea.Msg {
		result, err := m.engine.ProcessTurn(m.session, command)
		return turnProcessedMsg{result: result, err: err}
	}
}

// renderScene renders the current node (used at startup and after a load).
func (m model) renderScene(pdx *paradox.Paradox) string {
	node, err := m.session.CurrentNode()
	if err != nil {
		return gameStyle.Render("The story has not yet begun...")
	}
	logWidth := m.logWidth()

	var b strings.Builder
	b.WriteString(gameStyle.Bold(true).Render("~ " + node.Location + " ~"))
	b.WriteString("\n\n")
	if pdx != nil {
		banner := fmt.Sprintf("PARADOX: %s (severity %d/10)", pdx.Type, pdx.Severity)
		b.WriteString(paradoxStyle.Width(logWidth).Render(banner))
		b.WriteString("\n\n")
	}
	b.WriteString(gameStyle.Width(logWidth).Render(node.Text))
	b.WriteString("\n\n")
	for i, c := range node.Choices {
		b.WriteString(choiceStyle.Render(fmt.Sprintf("  [%d] %s", i+1, c.Label)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) renderTurn(result *engine.TurnResult) string {
	return m.renderScene(result.Paradox) + "\n"
}

func (m model) renderMap() string {
	stats := m.session.Tracker.Statistics()
	var b strings.Builder
	b.WriteString("visited: " + strings.Join(m.session.Player.VisitedLocations, ", "))
	b.WriteString(fmt.Sprintf("\nturns: %d  locations: %d  nodes: %d",
		stats.TotalEntries, stats.DistinctLocations, m.session.Graph.Len()))
	b.WriteString(fmt.Sprintf("\nparadoxes: %d  rewrites: %d",
		m.session.ParadoxCount, m.session.RewriteCount))
	return b.String()
}

const helpText = `go [direction] | look | take [item] | drop [item] | use [item] | talk [target]
status, map, save [name], load [name], quit`

func (m *model) refreshLog() {
	if m.viewport.Width == 0 {
		return
	}
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

func (m model) logWidth() int {
	return int(float64(m.width) * 0.75)
}

func (m model) View() string {
	switch m.state {
	case stateError:
		return fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.\n", m.err)
	}

	logView := m.viewport.View()
	stateView := m.renderState()

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, logView, stateView)

	footer := helpStyle.Render("Type an action, a choice number, or 'help'.")
	if m.notice != "" {
		footer = helpStyle.Render(m.notice)
	}

	return "\n" + lipgloss.JoinVertical(lipgloss.Left,
		mainView,
		"\n"+m.textInput.View(),
		"\n"+footer,
	) + "\n"
}

func (m model) renderState() string {
	p := m.session.Player

	location := titleStyle.Render("LOCATION") + "\n" + p.CurrentLocation + "\n\n"

	invTitle := titleStyle.Render("INVENTORY") + "\n"
	inventory := ""
	if len(p.Inventory) == 0 {
		inventory = "(empty)\n"
	} else {
		for _, item := range p.Inventory {
			inventory += "- " + item + "\n"
		}
	}
	inventory += "\n"

	statsTitle := titleStyle.Render("STORY") + "\n"
	stats := fmt.Sprintf("Visited: %d\nParadoxes: %d\nRewrites: %d\nNodes: %d\n",
		len(p.VisitedLocations), m.session.ParadoxCount,
		m.session.RewriteCount, m.session.Graph.Len())

	content := location + invTitle + inventory + statsTitle + stats

	stateWidth := int(float64(m.width) * 0.23)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(content)
}

// Run starts the interactive loop and blocks until the player quits.
func Run(eng *engine.Engine, session *game.Session) error {
	p := tea.NewProgram(newModel(eng, session), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
