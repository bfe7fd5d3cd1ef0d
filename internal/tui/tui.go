package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shieldskcd/worldforge/internal/forge"
	"github.com/shieldskcd/worldforge/internal/logger"
	"github.com/shieldskcd/worldforge/internal/models"
)

type sessionState int

const (
	stateInputPrompt sessionState = iota
	stateLoading
	stateViewing
)

const maxHistory = 5

const promptPlaceholder = "e.g., A throne room with a jester who tells bad dad jokes..."

type model struct {
	state     sessionState
	forge     *forge.Forge
	examples  []string
	saveDir   string
	textInput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	current   *models.World
	history   []models.World // oldest first, at most maxHistory
	status    string
	width     int
	height    int
}

func NewModel(f *forge.Forge, examples []string, saveDir string) model {
	ti := textinput.New()
	ti.Placeholder = promptPlaceholder
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		state:     stateInputPrompt,
		forge:     f,
		examples:  examples,
		saveDir:   saveDir,
		textInput: ti,
		spinner:   sp,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type worldGeneratedMsg struct {
	world models.World
}

type worldSavedMsg struct {
	path string
	err  error
}

type worldLoadedMsg struct {
	name  string
	world models.World
	err   error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "pgup", "pgdown":
			if m.state == stateViewing {
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}

		case "enter":
			if m.state == stateLoading {
				return m, nil
			}
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}
			m.textInput.Reset()
			if strings.HasPrefix(input, "/") {
				return m.runCommand(input)
			}
			return m.startGenerate(input)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.mainWidth()
		m.viewport.Height = max(msg.Height-8, 1)
		m.refresh()

	case spinner.TickMsg:
		if m.state == stateLoading {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case worldGeneratedMsg:
		w := msg.world
		m.show(w)
		m.status = "Created: " + w.Name
		if w.Source == models.SourceTemplate && m.forge.Settings().UseExternal && m.forge.ExternalAvailable() {
			m.status += " (template fallback)"
		}
		return m, nil

	case worldLoadedMsg:
		if msg.err != nil {
			logger.Error("failed to load world", "name", msg.name, "error", msg.err)
			m.status = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.show(msg.world)
		m.status = "Loaded: " + msg.world.Name
		return m, nil

	case worldSavedMsg:
		if msg.err != nil {
			logger.Error("failed to save world", "error", msg.err)
			m.status = "Save failed: " + msg.err.Error()
		} else {
			m.status = "Saved to " + msg.path
		}
		return m, nil
	}

	if m.state != stateLoading {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) startGenerate(prompt string) (tea.Model, tea.Cmd) {
	m.state = stateLoading
	m.status = ""
	return m, tea.Batch(m.spinner.Tick, m.generateWorld(prompt))
}

func (m model) runCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	s := m.forge.Settings()
	switch fields[0] {
	case "/quit":
		return m, tea.Quit

	case "/restart", "/clear":
		m.state = stateInputPrompt
		m.current = nil
		m.history = nil
		m.status = ""
		m.textInput.Placeholder = promptPlaceholder
		return m, nil

	case "/save":
		if m.current == nil {
			m.status = "Nothing to save yet."
			return m, nil
		}
		return m, m.saveWorld(*m.current)

	case "/npcs":
		s.IncludeNPCs = !s.IncludeNPCs
		m.status = toggleStatus("NPCs", s.IncludeNPCs)
	case "/props":
		s.IncludeProps = !s.IncludeProps
		m.status = toggleStatus("Props", s.IncludeProps)
	case "/exits":
		s.IncludeExits = !s.IncludeExits
		m.status = toggleStatus("Exits", s.IncludeExits)
	case "/llm":
		if !m.forge.ExternalAvailable() {
			m.status = "No API key configured; using template-based generation."
			return m, nil
		}
		s.UseExternal = !s.UseExternal
		m.status = toggleStatus("LLM generation", s.UseExternal)

	case "/creativity":
		c, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			m.status = "Usage: /creativity 0.0-1.0"
			return m, nil
		}
		s.Creativity = c
		m.forge.SetSettings(s)
		m.status = fmt.Sprintf("Creativity set to %.2f", m.forge.Settings().Creativity)
		return m, nil

	case "/saved":
		m.status = m.savedList()
		return m, nil

	case "/load":
		if arg == "" {
			m.status = "Usage: /load NAME (see /saved)"
			return m, nil
		}
		return m, m.loadWorld(arg)

	case "/examples":
		var b strings.Builder
		b.WriteString("Try these (/example N):")
		for i, ex := range m.examples {
			fmt.Fprintf(&b, "\n  %d. %s", i+1, ex)
		}
		m.status = b.String()
		return m, nil

	case "/example":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(m.examples) {
			m.status = fmt.Sprintf("Usage: /example 1-%d", len(m.examples))
			return m, nil
		}
		return m.startGenerate(m.examples[n-1])

	case "/history":
		if arg == "" {
			m.status = m.historyList()
			return m, nil
		}
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(m.history) {
			m.status = "Usage: /history N"
			return m, nil
		}
		w := m.history[len(m.history)-n]
		m.current = &w
		m.state = stateViewing
		m.status = "Showing: " + w.Name
		m.refresh()
		return m, nil

	case "/help":
		m.status = "Commands: /save, /saved, /load NAME, /history [N], /examples, /example N, /npcs, /props, /exits, /llm, /creativity X, /restart, /quit"
		return m, nil

	default:
		m.status = "Unknown command: " + fields[0]
		return m, nil
	}

	m.forge.SetSettings(s)
	return m, nil
}

func toggleStatus(what string, on bool) string {
	if on {
		return what + " enabled"
	}
	return what + " disabled"
}

func (m model) historyList() string {
	if len(m.history) == 0 {
		return "No worlds yet."
	}
	var b strings.Builder
	b.WriteString("History (newest first, /history N):")
	for i := len(m.history) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "\n  %d. %s", len(m.history)-i, m.history[i].Name)
	}
	return b.String()
}

func (m model) savedList() string {
	names, err := models.ListWorlds(m.saveDir)
	if err != nil {
		logger.Error("failed to list saved worlds", "dir", m.saveDir, "error", err)
		return "Could not list saved worlds: " + err.Error()
	}
	if len(names) == 0 {
		return "No saved worlds in " + m.saveDir
	}
	var b strings.Builder
	b.WriteString("Saved worlds (/load NAME):")
	for _, name := range names {
		b.WriteString("\n  " + name)
	}
	return b.String()
}

// show makes w the current world and appends it to the history.
func (m *model) show(w models.World) {
	m.history = append(m.history, w)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
	m.current = &w
	m.state = stateViewing
	if m.viewport.Width == 0 {
		m.viewport = viewport.New(m.mainWidth(), max(m.height-8, 1))
	}
	m.textInput.Placeholder = "Describe another world, or /help"
	m.refresh()
}

func (m model) mainWidth() int {
	return int(float64(m.width) * 0.65)
}

func (m *model) refresh() {
	if m.current == nil || m.viewport.Width == 0 {
		return
	}
	m.viewport.SetContent(renderMain(*m.current, m.viewport.Width))
	m.viewport.GotoTop()
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateInputPrompt:
		mode := "Using template-based generation."
		if m.forge.ExternalAvailable() && m.forge.Settings().UseExternal {
			mode = "LLM generation enabled (falls back to templates)."
		}
		s = fmt.Sprintf(
			"%s\n\n%s\n\n%s\n\n%s",
			titleStyle.Render("World Forge"),
			"Describe a world and watch it come to life:",
			m.textInput.View(),
			helpStyle.Render(mode+" Type /examples for ideas, /help for commands."),
		)

	case stateLoading:
		s = fmt.Sprintf("\n  %s Forging your world... please wait.\n", m.spinner.View())

	case stateViewing:
		sideWidth := int(float64(m.width) * 0.3)
		side := sideStyle.Width(sideWidth).Height(m.viewport.Height).Render(renderSide(*m.current))
		mainView := lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), side)

		s = lipgloss.JoinVertical(lipgloss.Left,
			mainView,
			"\n"+m.textInput.View(),
			"\n"+helpStyle.Render("PgUp/PgDn to scroll. /save to export, /help for commands, Esc to quit."),
		)
	}

	if m.status != "" {
		s += "\n\n" + statusStyle.Render(m.status)
	}
	return "\n" + s + "\n"
}

func (m model) generateWorld(prompt string) tea.Cmd {
	return func() tea.Msg {
		return worldGeneratedMsg{m.forge.Generate(context.Background(), prompt)}
	}
}

func (m model) saveWorld(w models.World) tea.Cmd {
	return func() tea.Msg {
		path, err := models.SaveWorld(m.saveDir, w)
		return worldSavedMsg{path: path, err: err}
	}
}

func (m model) loadWorld(name string) tea.Cmd {
	return func() tea.Msg {
		w, err := models.LoadWorld(m.saveDir, name)
		return worldLoadedMsg{name: name, world: w, err: err}
	}
}

func Run(f *forge.Forge, examples []string, saveDir string) error {
	p := tea.NewProgram(NewModel(f, examples, saveDir), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
