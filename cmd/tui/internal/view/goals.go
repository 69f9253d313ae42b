package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/dompet-app/dompet/internal/goal"
)

// GoalsModel shows savings goals and records contributions towards them.
type GoalsModel struct {
	CommonModel
	deps Deps

	goals  []*goal.Goal
	cursor int
	bar    progress.Model

	form         *huh.Form
	contribution *string

	loading bool
	status  string
	err     error
}

func NewGoalsModel(deps Deps) GoalsModel {
	return GoalsModel{
		deps:    deps,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
		loading: true,
	}
}

func (m GoalsModel) Title() string { return "Savings Goals" }

func (m GoalsModel) ShortHelp() string {
	if m.form != nil {
		return "Esc: cancel"
	}

	return "Esc: back | ↑/↓: select | c: contribute | r: refresh"
}

func (m GoalsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m GoalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case goalsLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.goals = msg.goals
			m.cursor = min(m.cursor, max(len(m.goals)-1, 0))
		}

		return m, nil

	case contributedMsg:
		m.form = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("%s is now at %s", msg.goal.Name, FormatAmount(msg.goal.CurrentAmount))
		if msg.goal.Reached() {
			m.status += " (reached!)"
		}

		return m, m.loadCmd()
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, Back
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.goals)-1 {
				m.cursor++
			}
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "c":
			if len(m.goals) > 0 {
				return m.enterContribute()
			}
		}
	}

	return m, nil
}

func (m GoalsModel) enterContribute() (tea.Model, tea.Cmd) {
	m.contribution = new(string)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Contribute to %s", m.goals[m.cursor].Name)).
				Placeholder("100000").
				Value(m.contribution).
				Validate(validateAmount),
		),
	).WithWidth(45).WithShowHelp(false)

	return m, m.form.Init()
}

func (m GoalsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	amount, err := parseAmount(*m.contribution)
	if err != nil {
		m.form = nil
		m.status = err.Error()

		return m, nil
	}

	return m, m.contributeCmd(m.goals[m.cursor], amount)
}

func (m GoalsModel) View() string {
	if m.loading && len(m.goals) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("Loading goals...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Savings Goals") + "\n\n")

	if len(m.goals) == 0 {
		b.WriteString(faintStyle.Render("No goals yet."))
	}

	for i, g := range m.goals {
		line := fmt.Sprintf("%-20s %s  %s / %s", g.Name,
			m.bar.ViewAs(g.Progress().InexactFloat64()/100),
			FormatAmount(g.CurrentAmount), FormatAmount(g.TargetAmount))

		if g.Deadline != nil {
			line += faintStyle.Render("  by " + FormatDate(*g.Deadline))
		}

		if i == m.cursor {
			line = activeStyle("> " + line)
		} else {
			line = "  " + line
		}

		b.WriteString(line + "\n")
	}

	content := boxed(b.String())

	if m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Width(48).Render(m.form.View()))
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type goalsLoadedMsg struct {
	goals []*goal.Goal
	err   error
}

func (m GoalsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		goals, err := m.deps.Goals.List(ctx, m.deps.UserID)

		return goalsLoadedMsg{goals: goals, err: err}
	}
}

type contributedMsg struct {
	goal *goal.Goal
	err  error
}

func (m GoalsModel) contributeCmd(g *goal.Goal, amount decimal.Decimal) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.deps.Goals.Contribute(ctx, m.deps.UserID, g.ID, amount)

		return contributedMsg{goal: updated, err: err}
	}
}
