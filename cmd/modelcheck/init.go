package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"modelcheck/internal/settings"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .modelcheck/settings.yaml interactively",
	Long: `Prompt for checker configuration and write it to
.modelcheck/settings.yaml in the current directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		existing, err := settings.Load(".")
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf(".modelcheck/settings.yaml already exists")
		}

		answers, err := promptQuestions([]question{
			{key: "source", prompt: "Rule table path or URL"},
			{key: "strict", prompt: "Strict mode (y/N)"},
			{key: "fuzzy", prompt: "Fuzzy matching for 'is like' (y/N)"},
			{key: "threshold", prompt: "Fuzzy similarity threshold (blank for default)"},
			{key: "disable", prompt: "Rule IDs to disable, comma-separated (blank for none)"},
		})
		if err != nil {
			return fmt.Errorf("prompt: %w", err)
		}

		cfg := &settings.Settings{
			Rules: settings.Rules{
				Source: strings.TrimSpace(answers["source"]),
			},
			Checker: settings.Checker{
				Strict: yes(answers["strict"]),
				Fuzzy:  yes(answers["fuzzy"]),
			},
		}
		if raw := strings.TrimSpace(answers["threshold"]); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("invalid threshold %q: %w", raw, err)
			}
			cfg.Checker.FuzzyThreshold = v
		}
		if raw := strings.TrimSpace(answers["disable"]); raw != "" {
			for _, id := range strings.Split(raw, ",") {
				if id = strings.TrimSpace(id); id != "" {
					cfg.Rules.Disable = append(cfg.Rules.Disable, id)
				}
			}
		}

		if err := settings.Save(".", cfg); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "wrote .modelcheck/settings.yaml")
		return nil
	},
}

func yes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true":
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// TUI prompt helpers
// ---------------------------------------------------------------------------

type question struct {
	key    string
	prompt string
}

// promptModel is a bubbletea model that asks one question at a time.
type promptModel struct {
	questions []question
	idx       int
	inputs    []textinput.Model
	done      bool
}

func newPromptModel(questions []question) promptModel {
	inputs := make([]textinput.Model, len(questions))
	for i, q := range questions {
		ti := textinput.New()
		ti.Placeholder = q.prompt
		ti.CharLimit = 512
		inputs[i] = ti
	}
	m := promptModel{
		questions: questions,
		inputs:    inputs,
	}
	if len(inputs) > 0 {
		m.inputs[0].Focus()
	}
	return m
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.idx < len(m.inputs)-1 {
				m.inputs[m.idx].Blur()
				m.idx++
				m.inputs[m.idx].Focus()
				return m, textinput.Blink
			}
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.inputs[m.idx], cmd = m.inputs[m.idx].Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || len(m.questions) == 0 {
		return ""
	}
	q := m.questions[m.idx]
	return fmt.Sprintf("%s: %s\n", q.prompt, m.inputs[m.idx].View())
}

// promptQuestions runs the TUI and returns answers keyed by question.key.
func promptQuestions(questions []question) (map[string]string, error) {
	if len(questions) == 0 {
		return map[string]string{}, nil
	}
	m := newPromptModel(questions)
	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return nil, err
	}
	final, ok := result.(promptModel)
	if !ok || !final.done {
		return nil, fmt.Errorf("prompt cancelled")
	}
	answers := make(map[string]string, len(questions))
	for i, q := range questions {
		answers[q.key] = final.inputs[i].Value()
	}
	return answers, nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
