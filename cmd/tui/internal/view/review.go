package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/dompet-app/dompet/internal/matching"
)

type rulesState int

const (
	rulesStateBrowse rulesState = iota
	rulesStateLearn
)

// RulesModel manages the description rules used to categorise imports.
type RulesModel struct {
	CommonModel
	deps Deps

	state      rulesState
	table      table.Model
	rules      []*matching.Rule
	categories map[uuid.UUID]string
	options    []huh.Option[uuid.UUID]

	form   *huh.Form
	fields *ruleFields

	loading bool
	status  string
	err     error
}

type ruleFields struct {
	pattern  string
	category uuid.UUID
}

func NewRulesModel(deps Deps) RulesModel {
	columns := []table.Column{
		{Title: "Pattern", Width: 30},
		{Title: "Category", Width: 24},
		{Title: "Created", Width: 12},
	}

	return RulesModel{
		deps:    deps,
		table:   newTable(columns, 15),
		loading: true,
	}
}

func (m RulesModel) Title() string { return "Matching Rules" }

func (m RulesModel) ShortHelp() string {
	if m.state == rulesStateLearn {
		return "Esc: cancel"
	}

	return "Esc: back | n: new rule | d: delete | r: refresh"
}

func (m RulesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m RulesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case rulesLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.rules = msg.rules
			m.categories = msg.categories
			m.options = msg.options
			m.refreshTable()
		}

		return m, nil

	case ruleSavedMsg:
		m.state = rulesStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		return m, m.loadCmd()
	}

	if m.state == rulesStateLearn {
		return m.updateLearn(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterLearn()
		case "d":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.rules) {
				return m, m.deleteCmd(m.rules[idx])
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RulesModel) enterLearn() (tea.Model, tea.Cmd) {
	if len(m.options) == 0 {
		m.status = "No categories to assign"
		return m, nil
	}

	m.fields = &ruleFields{category: m.options[0].Value}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Description contains").
				Placeholder("GRAB FOOD").
				Value(&m.fields.pattern).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("pattern cannot be empty")
					}

					return nil
				}),
			huh.NewSelect[uuid.UUID]().
				Title("Category").
				Options(m.options...).
				Value(&m.fields.category),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = rulesStateLearn
	m.table.Blur()

	return m, m.form.Init()
}

func (m RulesModel) updateLearn(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		m.state = rulesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.learnCmd(m.fields.pattern, m.fields.category)
}

func (m RulesModel) View() string {
	if m.loading && len(m.rules) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("Loading rules...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	content := titleStyle.Render("Matching Rules") + "\n" + boxed(m.table.View())

	if m.state == rulesStateLearn && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Width(48).Render("New Rule\n\n"+m.form.View()))
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *RulesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rules))
	for _, r := range m.rules {
		name, ok := m.categories[r.CategoryID]
		if !ok {
			name = r.CategoryID.String()
		}

		rows = append(rows, table.Row{r.Pattern, name, FormatDate(r.CreatedAt)})
	}

	m.table.SetRows(rows)
}

// Messages

type rulesLoadedMsg struct {
	rules      []*matching.Rule
	categories map[uuid.UUID]string
	options    []huh.Option[uuid.UUID]
	err        error
}

func (m RulesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rules, err := m.deps.Matching.List(ctx, m.deps.UserID)
		if err != nil {
			return rulesLoadedMsg{err: err}
		}

		categories, err := m.deps.Categories.List(ctx, m.deps.UserID, nil)
		if err != nil {
			return rulesLoadedMsg{err: err}
		}

		msg := rulesLoadedMsg{rules: rules, categories: make(map[uuid.UUID]string, len(categories))}
		for _, c := range categories {
			label := fmt.Sprintf("%s (%s)", c.Name, c.Type)
			msg.categories[c.ID] = label
			msg.options = append(msg.options, huh.NewOption(label, c.ID))
		}

		return msg
	}
}

type ruleSavedMsg struct {
	status string
	err    error
}

func (m RulesModel) learnCmd(pattern string, categoryID uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rule, err := m.deps.Matching.Learn(ctx, m.deps.UserID, pattern, categoryID)
		if err != nil {
			return ruleSavedMsg{err: err}
		}

		return ruleSavedMsg{status: fmt.Sprintf("Learned %q", rule.Pattern)}
	}
}

func (m RulesModel) deleteCmd(rule *matching.Rule) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.deps.Matching.Delete(ctx, m.deps.UserID, rule.ID); err != nil {
			return ruleSavedMsg{err: err}
		}

		return ruleSavedMsg{status: fmt.Sprintf("Deleted %q", rule.Pattern)}
	}
}

