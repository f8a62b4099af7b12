// Package tui implements the interactive setup wizard.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/threadsage/threadsage/internal/logging"
)

// KeyMap defines keybindings
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
	Help   key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("ctrl+c/q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// App is the main TUI application
type App struct {
	theme    *Theme
	keyMap   KeyMap
	help     help.Model
	screen   Screen
	width    int
	height   int
	ready    bool
	showHelp bool
}

// NewApp creates a new TUI application
func NewApp() *App {
	theme := NewTheme()
	keyMap := DefaultKeyMap()
	helpModel := help.New()
	helpModel.Styles.ShortKey = theme.Bold
	helpModel.Styles.ShortDesc = theme.Text
	helpModel.Styles.ShortSeparator = theme.Faint
	helpModel.Styles.FullKey = theme.Bold
	helpModel.Styles.FullDesc = theme.Text
	helpModel.Styles.FullSeparator = theme.Faint

	// Direct logs to stderr so they do not break the interface
	logging.Initialize(&logging.Config{
		Level:      logging.LogLevelInfo,
		Output:     os.Stderr,
		JSONFormat: false,
	})

	app := &App{
		theme:    theme,
		keyMap:   keyMap,
		help:     helpModel,
		showHelp: false,
	}
	app.screen = NewSetupScreen(app)

	return app
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.screen.Init()
}

// Update handles UI updates
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keyMap.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keyMap.Help):
			a.showHelp = !a.showHelp
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.ready = true
	}

	// Update the current screen
	newScreen, cmd := a.screen.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	// If the screen was changed, update the reference
	if s, ok := newScreen.(Screen); ok && s != a.screen {
		a.screen = s
	}

	return a, tea.Batch(cmds...)
}

// View renders the UI
func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	content := a.screen.View()

	// Show help at the bottom if enabled
	if a.showHelp {
		helpKeys := a.screen.ShortHelp()
		helpView := a.help.ShortHelpView(helpKeys)
		return lipgloss.JoinVertical(lipgloss.Left, content, "\n", helpView)
	}

	return content
}

// GetTheme returns the theme
func (a *App) GetTheme() *Theme {
	return a.theme
}

// GetKeyMap returns the keymap
func (a *App) GetKeyMap() KeyMap {
	return a.keyMap
}

// GetWidth returns the terminal width
func (a *App) GetWidth() int {
	return a.width
}

// GetHeight returns the terminal height
func (a *App) GetHeight() int {
	return a.height
}

// Run runs the TUI application
func Run() error {
	app := NewApp()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
