package tui

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/threadsage/threadsage/internal/config"
	"github.com/threadsage/threadsage/internal/models"
)

// Field indices for the setup screen
const (
	fieldTrigger = iota
	fieldDefaultModel
	fieldAliases
	fieldOutputPath
	fieldCount // Total number of fields
)

// SetupScreen collects the model table and writes it to the repository
type SetupScreen struct {
	BaseScreen
	triggerInput      textinput.Model
	defaultModelInput textinput.Model
	aliasesInput      textinput.Model
	outputPathInput   textinput.Model
	inputs            []textinput.Model
	focusedInput      int
	executing         bool
	result            string
	resultError       error
}

// saveResultMsg reports the outcome of writing the model table
type saveResultMsg struct {
	output string
	err    error
}

// updateInputReferences updates all the input field references from the inputs slice
func (s *SetupScreen) updateInputReferences() {
	s.triggerInput = s.inputs[fieldTrigger]
	s.defaultModelInput = s.inputs[fieldDefaultModel]
	s.aliasesInput = s.inputs[fieldAliases]
	s.outputPathInput = s.inputs[fieldOutputPath]
}

// NewSetupScreen creates a new setup screen
func NewSetupScreen(app *App) *SetupScreen {
	outputPath := strings.TrimSpace(os.Getenv("THREADSAGE_MODELS_FILE"))
	if outputPath == "" {
		outputPath = config.DefaultModelsFile
	}

	// Trigger input
	triggerInput := textinput.New()
	triggerInput.Placeholder = "/ai"
	triggerInput.Width = 20
	triggerInput.SetValue("/ai")
	triggerInput.Focus()

	// Default model input
	defaultModelInput := textinput.New()
	defaultModelInput.Placeholder = "openai/gpt-4o"
	defaultModelInput.Width = 50

	// Extra alias input
	aliasesInput := textinput.New()
	aliasesInput.Placeholder = "claude=anthropic/claude-sonnet-4, gemini=google/gemini-2.5-pro"
	aliasesInput.Width = 70

	// Output path input
	outputPathInput := textinput.New()
	outputPathInput.Placeholder = config.DefaultModelsFile
	outputPathInput.Width = 50
	outputPathInput.SetValue(outputPath)

	// Prefill from an existing model table so editing does not start blank
	if table, err := config.LoadAliasTable(outputPath); err == nil {
		if def, ok := table[models.DefaultAlias]; ok {
			defaultModelInput.SetValue(def)
		}
		aliasesInput.SetValue(formatAliasPairs(table))
	}

	inputs := []textinput.Model{
		triggerInput,
		defaultModelInput,
		aliasesInput,
		outputPathInput,
	}

	// Verify we have the right number of inputs
	if len(inputs) != fieldCount {
		panic(fmt.Sprintf("Input field count mismatch: expected %d, got %d", fieldCount, len(inputs)))
	}

	return &SetupScreen{
		BaseScreen:        NewBaseScreen(app, "Threadsage Setup"),
		triggerInput:      triggerInput,
		defaultModelInput: defaultModelInput,
		aliasesInput:      aliasesInput,
		outputPathInput:   outputPathInput,
		inputs:            inputs,
		focusedInput:      fieldTrigger,
		executing:         false,
	}
}

// Init initializes the setup screen
func (s *SetupScreen) Init() tea.Cmd {
	s.executing = false
	s.result = ""
	s.resultError = nil
	return textinput.Blink
}

// Update handles UI updates for the setup screen
func (s *SetupScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if s.executing {
			return s, nil
		}

		// When showing a result, ESC returns to the form
		if s.result != "" {
			if key.Matches(msg, s.app.keyMap.Back) {
				s.result = ""
				s.resultError = nil
				return s, nil
			}
			return s, nil
		}

		switch {
		case key.Matches(msg, s.app.keyMap.Up, s.app.keyMap.Down):
			if key.Matches(msg, s.app.keyMap.Up) {
				if s.focusedInput > 0 {
					s.focusedInput--
				} else {
					return s, nil
				}
			} else {
				if s.focusedInput < fieldCount-1 {
					s.focusedInput++
				} else {
					return s, nil
				}
			}

			for i := 0; i < fieldCount; i++ {
				if i == s.focusedInput {
					s.inputs[i].Focus()
				} else {
					s.inputs[i].Blur()
				}
			}
			s.updateInputReferences()

			return s, nil

		case key.Matches(msg, s.app.keyMap.Select):
			// Enter on the last field saves, elsewhere it advances
			if s.focusedInput < fieldCount-1 {
				s.focusedInput++
				for i := 0; i < fieldCount; i++ {
					if i == s.focusedInput {
						s.inputs[i].Focus()
					} else {
						s.inputs[i].Blur()
					}
				}
				s.updateInputReferences()
				return s, nil
			}

			if s.defaultModelInput.Value() == "" {
				s.result = "Please provide a default model"
				s.resultError = fmt.Errorf("default model is required")
				return s, nil
			}

			s.executing = true
			return s, s.startSave()
		}

	case saveResultMsg:
		s.executing = false
		s.result = msg.output
		s.resultError = msg.err
		return s, nil
	}

	// Handle input updates for the focused input
	if s.focusedInput >= 0 && s.focusedInput < fieldCount {
		var cmd tea.Cmd
		s.inputs[s.focusedInput], cmd = s.inputs[s.focusedInput].Update(msg)
		s.updateInputReferences()
		cmds = append(cmds, cmd)
	}

	return s, tea.Batch(cmds...)
}

// View renders the setup screen
func (s *SetupScreen) View() string {
	theme := s.app.GetTheme()

	if s.executing {
		return theme.Title.Render("Writing model table...") + "\n\n" +
			theme.Text.Render("Please wait...")
	}

	if s.result != "" {
		resultStyle := theme.SuccessText
		if s.resultError != nil {
			resultStyle = theme.ErrorText
		}

		content := theme.Title.Render("Setup Result") + "\n\n" +
			resultStyle.Render(s.result) + "\n\n" +
			theme.Faint.Render("Press ESC to go back, q to quit")

		return lipgloss.NewStyle().Width(s.app.GetWidth()).Align(lipgloss.Left).Render(content)
	}

	content := s.RenderTitle() + "\n\n"
	content += theme.Subtitle.Render("Configure the comment trigger and model table:") + "\n\n"

	focusedStyle := theme.Bold.Foreground(lipgloss.Color(theme.Blue))
	normalStyle := theme.Text

	// Trigger
	triggerLabel := normalStyle.Render("Trigger")
	if s.focusedInput == fieldTrigger {
		triggerLabel = focusedStyle.Render("Trigger")
	}
	content += triggerLabel + "\n" + s.triggerInput.View() + "\n" +
		theme.Faint.Render("Comments addressed to the bot start with this word") + "\n\n"

	// Default model
	defaultLabel := normalStyle.Render("Default Model")
	if s.focusedInput == fieldDefaultModel {
		defaultLabel = focusedStyle.Render("Default Model")
	}
	content += defaultLabel + "\n" + s.defaultModelInput.View() + "\n" +
		theme.Faint.Render("Used when a question names no alias") + "\n\n"

	// Extra aliases
	aliasesLabel := normalStyle.Render("Extra Aliases")
	if s.focusedInput == fieldAliases {
		aliasesLabel = focusedStyle.Render("Extra Aliases")
	}
	content += aliasesLabel + "\n" + s.aliasesInput.View() + "\n" +
		theme.Faint.Render("Comma-separated alias=model pairs, may be empty") + "\n\n"

	// Output path
	pathLabel := normalStyle.Render("Model Table Path")
	if s.focusedInput == fieldOutputPath {
		pathLabel = focusedStyle.Render("Model Table Path")
	}
	content += pathLabel + "\n" + s.outputPathInput.View() + "\n" +
		theme.Faint.Render("Written as JSON inside the repository") + "\n\n"

	// Instructions
	content += theme.Faint.Render("Use ↑/↓ to navigate, Enter on the last field to save") + "\n\n"

	// Footer
	content += s.RenderFooter()

	return lipgloss.NewStyle().Width(s.app.GetWidth()).Align(lipgloss.Left).Render(content)
}

// ShortHelp returns keybindings to be shown in the help menu
func (s *SetupScreen) ShortHelp() []key.Binding {
	return []key.Binding{
		s.app.keyMap.Up,
		s.app.keyMap.Down,
		s.app.keyMap.Select,
		s.app.keyMap.Back,
		s.app.keyMap.Help,
		s.app.keyMap.Quit,
	}
}

// startSave writes the model table to the chosen path
func (s *SetupScreen) startSave() tea.Cmd {
	return func() tea.Msg {
		table, err := parseAliasPairs(s.aliasesInput.Value())
		if err != nil {
			return saveResultMsg{output: err.Error(), err: err}
		}
		table[models.DefaultAlias] = strings.TrimSpace(s.defaultModelInput.Value())

		path := strings.TrimSpace(s.outputPathInput.Value())
		if path == "" {
			path = config.DefaultModelsFile
		}

		if err := config.WriteAliasTable(path, table); err != nil {
			return saveResultMsg{output: "Error writing model table: " + err.Error(), err: err}
		}

		output := fmt.Sprintf("Model table written to %s", path)
		trigger := strings.TrimSpace(s.triggerInput.Value())
		if trigger != "" && trigger != "/ai" {
			output += fmt.Sprintf("\n\nSet THREADSAGE_TRIGGER to %q in the workflow to match.", trigger)
		}
		return saveResultMsg{output: output}
	}
}

// parseAliasPairs parses "alias=model" pairs separated by commas
func parseAliasPairs(value string) (models.AliasTable, error) {
	table := models.AliasTable{}
	for _, pair := range strings.Split(value, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		alias, model, found := strings.Cut(pair, "=")
		alias = strings.TrimSpace(alias)
		model = strings.TrimSpace(model)
		if !found || alias == "" || model == "" {
			return nil, fmt.Errorf("invalid alias pair %q, want alias=model", pair)
		}
		table[strings.ToLower(alias)] = model
	}
	return table, nil
}

// formatAliasPairs renders the non-default table entries for the alias input
func formatAliasPairs(table models.AliasTable) string {
	aliases := make([]string, 0, len(table))
	for alias := range table {
		if alias == models.DefaultAlias {
			continue
		}
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	pairs := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		pairs = append(pairs, alias+"="+table[alias])
	}
	return strings.Join(pairs, ", ")
}
