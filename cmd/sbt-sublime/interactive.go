package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rathboma/sbt-sublime/internal/artifact"
	"github.com/rathboma/sbt-sublime/internal/manifest"
	"gopkg.in/yaml.v3"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	noteStyle     = lipgloss.NewStyle().Faint(true)
)

const coordinateHint = "org:name:rev for Java libraries, org::name:rev for Scala cross-built ones"

// inputModel reads one line, validated on enter. Entries accepted earlier in
// the same session are listed above the input.
type inputModel struct {
	textInput textinput.Model
	title     string
	hint      string
	accepted  []string
	validate  func(string) error
	errMsg    string
	done      bool
	aborted   bool
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			val := m.textInput.Value()
			if m.validate != nil {
				if err := m.validate(val); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		}
	}
	m.errMsg = ""
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	for _, a := range m.accepted {
		b.WriteString(noteStyle.Render("  ✓ "+a) + "\n")
	}
	b.WriteString(titleStyle.Render(m.title) + "\n")
	b.WriteString(m.textInput.View() + "\n")
	switch {
	case m.errMsg != "":
		b.WriteString(errStyle.Render(m.errMsg) + "\n")
	case m.hint != "":
		b.WriteString(noteStyle.Render(m.hint) + "\n")
	}
	return b.String()
}

// confirmModel asks a yes/no question; enter keeps the current choice.

type confirmModel struct {
	title   string
	value   bool
	done    bool
	aborted bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		case "y", "Y":
			m.value = true
			m.done = true
			return m, tea.Quit
		case "n", "N":
			m.value = false
			m.done = true
			return m, tea.Quit
		case "left", "right", "tab", "h", "l":
			m.value = !m.value
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	yes := " Yes "
	no := " No "
	if m.value {
		yes = selectedStyle.Render(" Yes ")
	} else {
		no = selectedStyle.Render(" No ")
	}
	return fmt.Sprintf("%s %s / %s %s\n", titleStyle.Render(m.title), yes, no, noteStyle.Render("(y/n, tab to switch)"))
}

func promptInput(m inputModel, placeholder string) (string, error) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	m.textInput = ti

	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", err
	}
	rm := result.(inputModel)
	if rm.aborted {
		return "", fmt.Errorf("user aborted")
	}
	return rm.textInput.Value(), nil
}

func promptConfirm(title string) (bool, error) {
	result, err := tea.NewProgram(confirmModel{title: title}).Run()
	if err != nil {
		return false, err
	}
	rm := result.(confirmModel)
	if rm.aborted {
		return false, fmt.Errorf("user aborted")
	}
	return rm.value, nil
}

// dependencyKey identifies a dependency regardless of revision.
func dependencyKey(d manifest.Dependency) string {
	return d.Org + ":" + d.Name
}

// coordinateValidator returns a validation function for "org:name:rev"
// input. existing holds dependencyKey values that may not be added again.
func coordinateValidator(existing map[string]bool) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return fmt.Errorf("dependency is required")
		}
		c, err := artifact.ParseCoordinate(s, "")
		if err != nil {
			return err
		}
		if existing[dependencyKey(manifest.DependencyFrom(c))] {
			return fmt.Errorf("dependency %s:%s is already declared", c.Org, c.Name)
		}
		return nil
	}
}

// moduleIDValidator checks an interactively entered module id.
func moduleIDValidator(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("module id is required")
	}
	if strings.ContainsAny(s, "/\\ ") {
		return fmt.Errorf("module id must not contain spaces or path separators")
	}
	return nil
}

// interactiveAddDependencies collects dependencies from the user until they
// decline to add another. existing prevents declaring a library twice.
func interactiveAddDependencies(existing map[string]bool) ([]manifest.Dependency, error) {
	seen := make(map[string]bool, len(existing))
	for k := range existing {
		seen[k] = true
	}

	var (
		deps     []manifest.Dependency
		accepted []string
	)
	for {
		input, err := promptInput(inputModel{
			title:    fmt.Sprintf("Dependency #%d", len(deps)+1),
			hint:     coordinateHint,
			accepted: accepted,
			validate: coordinateValidator(seen),
		}, "org.typelevel::cats-core:2.10.0")
		if err != nil {
			return nil, err
		}
		input = strings.TrimSpace(input)
		parsed, err := parseDependencies([]string{input})
		if err != nil {
			return nil, err
		}
		d := parsed[0]
		seen[dependencyKey(d)] = true
		deps = append(deps, d)
		accepted = append(accepted, input)

		more, err := promptConfirm("Add another dependency?")
		if err != nil {
			return nil, err
		}
		if !more {
			return deps, nil
		}
	}
}

// parseDependencies converts command-line coordinates into dependencies.
func parseDependencies(args []string) ([]manifest.Dependency, error) {
	deps := make([]manifest.Dependency, 0, len(args))
	seen := make(map[string]bool, len(args))
	for _, a := range args {
		c, err := artifact.ParseCoordinate(a, "")
		if err != nil {
			return nil, err
		}
		d := manifest.DependencyFrom(c)
		d.Cross = strings.Contains(a, "::")
		if seen[dependencyKey(d)] {
			return nil, fmt.Errorf("duplicate dependency %s in arguments", dependencyKey(d))
		}
		seen[dependencyKey(d)] = true
		deps = append(deps, d)
	}
	return deps, nil
}

// buildDefinition assembles a Build and serializes it to YAML.
func buildDefinition(name, scalaVersion string, modules []manifest.Module) ([]byte, error) {
	b := manifest.Build{
		Version:      1,
		Name:         name,
		ScalaVersion: scalaVersion,
		Modules:      modules,
	}
	if err := manifest.Validate(&b); err != nil {
		return nil, err
	}
	return yaml.Marshal(&b)
}
