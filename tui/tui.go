package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/termcore/engine"
)

// Model is the Bubble Tea model wrapping a command engine. The engine owns
// all line editing, history and completion; the model's job is to encode
// key presses into the byte stream the engine expects and to mirror the
// engine's terminal output into a scrollable viewport.
type Model struct {
	engine *engine.Engine
	screen *screen

	// Handle is passed through to command handlers on every processing
	// pass.
	Handle any

	viewport viewport.Model
	width    int
	height   int
	ready    bool
	quitting bool
}

// New creates a TUI model wired to the given engine. The engine's output
// sink is replaced.
func New(eng *engine.Engine) Model {
	scr := newScreen()
	eng.SetOutput(scr)
	return Model{
		engine: eng,
		screen: scr,
	}
}

// Run starts the Bubble Tea program and blocks until the session ends.
func Run(eng *engine.Engine) error {
	p := tea.NewProgram(New(eng), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init runs one processing pass so the invitation is on screen before the
// first keystroke.
func (m Model) Init() tea.Cmd {
	m.engine.Process(m.Handle)
	return nil
}

// keyBytes encodes a key press as the bytes a terminal would send.
func keyBytes(msg tea.KeyMsg) []byte {
	switch msg.Type {
	case tea.KeyEnter:
		return []byte{'\r'}
	case tea.KeyBackspace:
		return []byte{0x7F}
	case tea.KeyTab:
		return []byte{'\t'}
	case tea.KeySpace:
		return []byte{' '}
	case tea.KeyUp:
		return []byte{0x1B, '[', 'A'}
	case tea.KeyDown:
		return []byte{0x1B, '[', 'B'}
	case tea.KeyRunes:
		return []byte(string(msg.Runes))
	}
	return nil
}

// Update handles key presses and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 1 // status bar
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

		if b := keyBytes(msg); b != nil {
			m.engine.Receive(b)
			m.engine.Process(m.Handle)
			m.refreshViewport()
		}
	}

	return m, nil
}

// refreshViewport rebuilds the viewport content from the screen emulator
// and keeps the newest output visible.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	lines := append([]string{}, m.screen.Lines()...)
	lines = append(lines, stylePrompt.Render(m.screen.Current()))

	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

// View renders the scrollback above the status bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}
	return m.viewport.View() + "\n" + m.renderStatusBar()
}

// viewportKeyMap limits viewport scrolling to the page keys, leaving
// everything else for the engine.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
	}
}
