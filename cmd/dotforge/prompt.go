package main

// prompt.go — sequential interactive prompts for axes the caller left
// unset. Each answer is validated immediately; the run ends with a
// confirmation summary before anything touches disk.

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"dotforge/internal/axis"
)

// question is a single interactive prompt with immediate validation.
type question struct {
	key      string
	prompt   string
	validate func(string) error
	apply    func(raw *axis.RawInput, answer string)
}

func parseBoolAnswer(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "n", "no", "false":
		return false, nil
	case "y", "yes", "true":
		return true, nil
	default:
		return false, fmt.Errorf("answer y or n")
	}
}

func validBool(s string) error {
	_, err := parseBoolAnswer(s)
	return err
}

func axisPrompt(name string, values []string) string {
	return fmt.Sprintf("%s (%s; default %s)", name, strings.Join(values, ", "), values[0])
}

// missingQuestions builds the prompt list for everything not already
// pinned by a flag.
func missingQuestions(raw *axis.RawInput, set map[string]bool) []question {
	var qs []question
	if strings.TrimSpace(raw.Name) == "" {
		qs = append(qs, question{
			key:    "name",
			prompt: "project name",
			validate: func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("a project name is required")
				}
				return nil
			},
			apply: func(r *axis.RawInput, a string) { r.Name = a },
		})
	}
	if !set["runtime"] && raw.Runtime == "" {
		qs = append(qs, question{
			key:      "runtime",
			prompt:   axisPrompt("runtime", axisValues(axis.Runtimes)),
			validate: func(s string) error { _, err := axis.ParseRuntime(s); return err },
			apply:    func(r *axis.RawInput, a string) { r.Runtime = a },
		})
	}
	if !set["db"] && raw.Database == "" {
		qs = append(qs, question{
			key:      "database",
			prompt:   axisPrompt("database", axisValues(axis.Databases)),
			validate: func(s string) error { _, err := axis.ParseDatabase(s); return err },
			apply:    func(r *axis.RawInput, a string) { r.Database = a },
		})
	}
	if !set["ui"] && raw.UI == "" {
		qs = append(qs, question{
			key:      "ui",
			prompt:   axisPrompt("ui", axisValues(axis.UIKits)),
			validate: func(s string) error { _, err := axis.ParseUIKit(s); return err },
			apply:    func(r *axis.RawInput, a string) { r.UI = a },
		})
	}
	if !set["pattern"] && raw.Pattern == "" {
		qs = append(qs, question{
			key:      "pattern",
			prompt:   axisPrompt("pattern", axisValues(axis.Patterns)),
			validate: func(s string) error { _, err := axis.ParsePattern(s); return err },
			apply:    func(r *axis.RawInput, a string) { r.Pattern = a },
		})
	}
	if !set["topology"] && raw.Topology == "" {
		qs = append(qs, question{
			key:      "topology",
			prompt:   axisPrompt("topology", axisValues(axis.Topologies)),
			validate: func(s string) error { _, err := axis.ParseTopology(s); return err },
			apply:    func(r *axis.RawInput, a string) { r.Topology = a },
		})
	}
	if !set["tests"] {
		qs = append(qs, question{
			key:      "tests",
			prompt:   "include an xUnit test project? (y/N)",
			validate: validBool,
			apply: func(r *axis.RawInput, a string) {
				r.Tests, _ = parseBoolAnswer(a)
			},
		})
	}
	if !set["standards"] {
		qs = append(qs, question{
			key:      "standards",
			prompt:   "attach the standards corpus? (y/N)",
			validate: validBool,
			apply: func(r *axis.RawInput, a string) {
				r.Standards, _ = parseBoolAnswer(a)
			},
		})
	}
	return qs
}

// promptMissing collects the unset axes interactively and asks for final
// confirmation against the resolved summary. Returns false when the user
// declines or cancels.
func promptMissing(raw *axis.RawInput, set map[string]bool) (bool, error) {
	qs := missingQuestions(raw, set)
	if len(qs) > 0 {
		answers, err := promptQuestions(qs)
		if err != nil {
			return false, err
		}
		for i, q := range qs {
			q.apply(raw, answers[i])
		}
	}

	cfg, warnings, err := axis.Resolve(*raw)
	if err != nil {
		return false, err
	}
	printSummary(cfg, warnings)

	confirm := []question{{
		key:      "confirm",
		prompt:   "generate? (Y/n)",
		validate: validBool,
	}}
	answers, err := promptQuestions(confirm)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answers[0])) {
	case "", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// ---------------------------------------------------------------------------
// bubbletea prompt loop
// ---------------------------------------------------------------------------

// promptModel asks one question at a time, validating on enter.
type promptModel struct {
	questions []question
	idx       int
	inputs    []textinput.Model
	errMsg    string
	done      bool
}

func newPromptModel(questions []question) promptModel {
	inputs := make([]textinput.Model, len(questions))
	for i, q := range questions {
		ti := textinput.New()
		ti.Placeholder = q.prompt
		ti.CharLimit = 256
		inputs[i] = ti
	}
	m := promptModel{questions: questions, inputs: inputs}
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
			q := m.questions[m.idx]
			if q.validate != nil {
				if err := q.validate(m.inputs[m.idx].Value()); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
			}
			m.errMsg = ""
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
	view := fmt.Sprintf("%s: %s\n", q.prompt, m.inputs[m.idx].View())
	if m.errMsg != "" {
		view += errStyle.Render(m.errMsg) + "\n"
	}
	return view
}

// promptQuestions runs the TUI and returns one answer per question, in
// question order.
func promptQuestions(questions []question) ([]string, error) {
	if len(questions) == 0 {
		return nil, nil
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
	answers := make([]string, len(questions))
	for i := range questions {
		answers[i] = final.inputs[i].Value()
	}
	return answers, nil
}
